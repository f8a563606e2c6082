// Package content はNotionブロックの正規化を提供する。
// 多様なブロック型を閉じたContentBlockの集合に写像する。
package content

import (
	"strings"

	"github.com/hitoshi/kusa/internal/model"
	"github.com/hitoshi/kusa/internal/notion"
)

// kindByType はNotionのブロック型タグから正規化後の種別への写像。
var kindByType = map[string]model.BlockKind{
	notion.BlockTypeParagraph:        model.BlockKindParagraph,
	notion.BlockTypeHeading3:         model.BlockKindHeading3,
	notion.BlockTypeNumberedListItem: model.BlockKindNumberedItem,
	notion.BlockTypeBulletedListItem: model.BlockKindBulletedItem,
}

// IsTextBlock はブロックが対応済みのテキストブロック型かを返す。
func IsTextBlock(block notion.Block) bool {
	_, ok := kindByType[block.Type]
	return ok
}

// Normalize は1つのNotionブロックをContentBlockに正規化する。
// テキストは全インラインランのplain_textを順序通りに区切りなしで連結した
// そのままの文字列。`<`や`>`を含む本文も改変しない（エスケープは
// 出力側のテンプレート／クライアントの責務）。
// 未対応のブロック型はエラーにせず、unknown種別・空テキストに縮退させる。
// 1つの不正なブロックが投稿全体の描画を止めることはない。副作用なし。
func Normalize(block notion.Block) model.ContentBlock {
	kind, ok := kindByType[block.Type]
	if !ok {
		return model.ContentBlock{Kind: model.BlockKindUnknown, Text: ""}
	}

	var b strings.Builder
	for _, run := range block.RichTextRuns() {
		b.WriteString(run.PlainText)
	}

	return model.ContentBlock{
		Kind: kind,
		Text: b.String(),
	}
}

// NormalizeAll はブロック列を順序を保って正規化する。
func NormalizeAll(blocks []notion.Block) []model.ContentBlock {
	result := make([]model.ContentBlock, len(blocks))
	for i, block := range blocks {
		result[i] = Normalize(block)
	}
	return result
}
