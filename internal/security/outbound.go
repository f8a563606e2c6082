// Package security はアプリケーションのセキュリティ機能を提供する。
//
// 外部APIへの全HTTPリクエストはSSRF防止機能付きクライアントを経由する。
// またNotionから取得したテキストはクライアントへ返す前にマークアップを
// 除去し、RSS出力のみ許可リストベースでサニタイズする。
package security

import (
	"net/http"
	"time"

	"github.com/doyensec/safeurl"
)

// allowedSchemes は外部リクエストで許可されるURLスキーム。
var allowedSchemes = []string{"https"}

// NewOutboundClient はSSRF防止機能付きの外部API用HTTPクライアントを生成する。
// safeurlライブラリにより、プライベートIP、ループバック、リンクローカル、
// メタデータIPへのリクエストが自動的にブロックされる。
// allowedHostsを指定した場合、そのホスト以外へのリクエストも拒否される。
// safeurlはnet.DialerのControlフックでDNS解決後のIPアドレスを検証するため、
// DNS再バインディング攻撃にも対応している。
func NewOutboundClient(timeout time.Duration, allowedHosts ...string) *http.Client {
	builder := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(443)

	if len(allowedHosts) > 0 {
		builder = builder.SetAllowedHosts(allowedHosts...)
	}

	wrappedClient := safeurl.Client(builder.Build())
	return wrappedClient.Client
}
