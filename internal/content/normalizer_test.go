package content

import (
	"testing"

	"github.com/hitoshi/kusa/internal/model"
	"github.com/hitoshi/kusa/internal/notion"
)

func runs(texts ...string) *notion.RichTextBody {
	body := &notion.RichTextBody{}
	for _, t := range texts {
		body.RichText = append(body.RichText, notion.RichText{PlainText: t})
	}
	return body
}

func TestNormalize_SupportedKinds(t *testing.T) {
	tests := []struct {
		name     string
		block    notion.Block
		wantKind model.BlockKind
		wantText string
	}{
		{
			name:     "paragraph",
			block:    notion.Block{Type: "paragraph", Paragraph: runs("hello", " ", "world")},
			wantKind: model.BlockKindParagraph,
			wantText: "hello world",
		},
		{
			name:     "heading_3",
			block:    notion.Block{Type: "heading_3", Heading3: runs("見出し")},
			wantKind: model.BlockKindHeading3,
			wantText: "見出し",
		},
		{
			name:     "numbered_list_item",
			block:    notion.Block{Type: "numbered_list_item", NumberedListItem: runs("first")},
			wantKind: model.BlockKindNumberedItem,
			wantText: "first",
		},
		{
			name:     "bulleted_list_item",
			block:    notion.Block{Type: "bulleted_list_item", BulletedListItem: runs("item")},
			wantKind: model.BlockKindBulletedItem,
			wantText: "item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.block)
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestNormalize_ConcatenatesRunsInOrderWithNoSeparator(t *testing.T) {
	block := notion.Block{Type: "paragraph", Paragraph: runs("a", "b", "c")}
	got := Normalize(block)
	if got.Text != "abc" {
		t.Errorf("Text = %q, want abc（順序通り・区切りなし連結）", got.Text)
	}
}

func TestNormalize_UnsupportedTypeDegradesToUnknown(t *testing.T) {
	tests := []string{"image", "code", "toggle", "child_page", ""}

	for _, typ := range tests {
		block := notion.Block{Type: typ}
		got := Normalize(block)
		if got.Kind != model.BlockKindUnknown {
			t.Errorf("Normalize(type=%q).Kind = %s, want unknown", typ, got.Kind)
		}
		if got.Text != "" {
			t.Errorf("Normalize(type=%q).Text = %q, want 空文字列", typ, got.Text)
		}
	}
}

func TestNormalize_EmptyRuns(t *testing.T) {
	block := notion.Block{Type: "paragraph", Paragraph: &notion.RichTextBody{}}
	got := Normalize(block)
	if got.Kind != model.BlockKindParagraph {
		t.Errorf("Kind = %s, want paragraph", got.Kind)
	}
	if got.Text != "" {
		t.Errorf("Text = %q, want 空文字列", got.Text)
	}
}

func TestNormalize_PreservesAngleBrackets(t *testing.T) {
	// plain_textは改変せずそのまま返す。山括弧を含む本文が
	// タグと誤認されて欠落してはならない。
	tests := []struct {
		name string
		text string
	}{
		{"比較演算子", "for i<n loop"},
		{"タグを含む技術記事", "use the <div> element"},
		{"閉じタグのない記述", "<em>open text"},
		{"ジェネリクス", "Map<string, List<int>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := notion.Block{Type: "paragraph", Paragraph: runs(tt.text)}
			got := Normalize(block)
			if got.Text != tt.text {
				t.Errorf("Text = %q, want %q（入力そのまま）", got.Text, tt.text)
			}
		})
	}
}

func TestIsTextBlock(t *testing.T) {
	supported := []string{"paragraph", "heading_3", "numbered_list_item", "bulleted_list_item"}
	for _, typ := range supported {
		if !IsTextBlock(notion.Block{Type: typ}) {
			t.Errorf("IsTextBlock(%s) = false, want true", typ)
		}
	}

	unsupported := []string{"image", "heading_1", "toggle", ""}
	for _, typ := range unsupported {
		if IsTextBlock(notion.Block{Type: typ}) {
			t.Errorf("IsTextBlock(%s) = true, want false", typ)
		}
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	blocks := []notion.Block{
		{Type: "heading_3", Heading3: runs("title")},
		{Type: "paragraph", Paragraph: runs("body")},
		{Type: "video"},
	}

	got := NormalizeAll(blocks)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Kind != model.BlockKindHeading3 || got[1].Kind != model.BlockKindParagraph || got[2].Kind != model.BlockKindUnknown {
		t.Errorf("順序が保存されていない: %+v", got)
	}
}
