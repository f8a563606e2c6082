package security

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup は文字列からHTMLマークアップを除去し、テキストノードのみを
// 連結して返す。Notionのplain_textは通常マークアップを含まないが、
// 貼り付けられたタグがそのままクライアントへ届かないようにするための防御。
// マークアップを含まない入力はそのまま返る（冪等）。
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}
