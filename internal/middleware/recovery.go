package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// panic時も通常の500と同じワイヤ形式で返す。クライアントに
// 失敗の種類を区別させない。
const panicResponseBody = `{"error":"Internal server error"}` + "\n"

// NewRecoveryMiddleware はpanic発生時にプロセスクラッシュを防ぎ、
// 500レスポンスを返すミドルウェアを生成する。
// スタックトレースはログにのみ記録し、レスポンスには含めない。
func NewRecoveryMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(panicResponseBody))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
