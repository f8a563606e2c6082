// Package model はドメインモデルを定義する。
package model

// BlockKind は正規化後のコンテンツブロックの種別。
// Notionの多様なブロック型をこの閉じた集合に写像する。
type BlockKind string

const (
	// BlockKindParagraph は段落ブロック。
	BlockKindParagraph BlockKind = "paragraph"
	// BlockKindHeading3 は見出し3ブロック。
	BlockKindHeading3 BlockKind = "heading3"
	// BlockKindNumberedItem は番号付きリスト項目ブロック。
	BlockKindNumberedItem BlockKind = "numberedListItem"
	// BlockKindBulletedItem は箇条書きリスト項目ブロック。
	BlockKindBulletedItem BlockKind = "bulletedListItem"
	// BlockKindUnknown は未対応のブロック型。テキストは常に空。
	BlockKindUnknown BlockKind = "unknown"
)

// ContentBlock は正規化済みのコンテンツブロック。
// Textはソースブロック内の全インラインテキストランを順序通りに
// 区切りなしで連結したもの。イミュータブルとして扱う。
type ContentBlock struct {
	Kind BlockKind `json:"type"`
	Text string    `json:"text"`
}
