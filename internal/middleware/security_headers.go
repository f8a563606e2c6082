package middleware

import "net/http"

// グラフページはテンプレートにインラインの<script>と<style>を埋め込んで
// 配信するため、CSPはインラインを許可しつつ外部オリジンへの読み込みを塞ぐ。
// fetch先は自サイトの /api/posts/{postId} のみ。
const contentSecurityPolicy = "default-src 'none'; " +
	"script-src 'unsafe-inline'; " +
	"style-src 'unsafe-inline'; " +
	"connect-src 'self'; " +
	"img-src 'self'; " +
	"base-uri 'none'; " +
	"form-action 'none'; " +
	"frame-ancestors 'none'"

// NewSecurityHeadersMiddleware はセキュリティ関連のHTTPレスポンスヘッダーを付与するミドルウェアを返す。
// HTMLとJSONの両方に同じヘッダーを付ける。CSPはHTML以外には実質無意味だが、
// パスで出し分けるほどの価値はない。
func NewSecurityHeadersMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", contentSecurityPolicy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			next.ServeHTTP(w, r)
		})
	}
}
