package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// FeedSanitizerService はRSS出力に含めるテキストのサニタイズ機能の
// インターフェースを定義する。
type FeedSanitizerService interface {
	// Sanitize はテキストをサニタイズして安全な文字列を返す。
	// 許可タグ（p, br, strong, em, code）のみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// feedSanitizer はFeedSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type feedSanitizer struct {
	policy *bluemonday.Policy
}

// NewFeedSanitizer はFeedSanitizerServiceの新しいインスタンスを生成する。
// RSSのdescriptionに載せるプレビューテキスト用の最小許可リストを構築する。
func NewFeedSanitizer() *feedSanitizer {
	p := bluemonday.NewPolicy()

	// 許可タグ: 段落・強調・コードのみ。リンクや画像はプレビューに不要。
	// script, iframe, style等は許可リストに含めないことで自動的に除去される。
	p.AllowElements("p", "br", "strong", "em", "code")

	return &feedSanitizer{
		policy: p,
	}
}

// Sanitize はテキストをサニタイズして安全な文字列を返す。
func (s *feedSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
