package notion

// Notion APIのワイヤーフォーマットに対応する型定義。
// プロパティとブロックは型タグ付きのユニオンとして返されるため、
// タグによる絞り込みアクセサを各型に用意する。
// 未知のタグに対してはエラーではなくゼロ値へフォールバックする。

// ブロック型タグ
const (
	BlockTypeParagraph        = "paragraph"
	BlockTypeHeading3         = "heading_3"
	BlockTypeNumberedListItem = "numbered_list_item"
	BlockTypeBulletedListItem = "bulleted_list_item"
)

// プロパティ型タグ
const (
	PropertyTypeTitle    = "title"
	PropertyTypeRichText = "rich_text"
	PropertyTypeDate     = "date"
)

// RichText は1つのインラインテキストラン。
type RichText struct {
	PlainText string `json:"plain_text"`
}

// RichTextBody はリッチテキストランの列を持つブロック本体。
type RichTextBody struct {
	RichText []RichText `json:"rich_text"`
}

// Block は1つのページコンテンツブロック。
// Typeタグに対応するフィールドのみが非nilになる。
type Block struct {
	Object           string        `json:"object"`
	ID               string        `json:"id"`
	Type             string        `json:"type"`
	Paragraph        *RichTextBody `json:"paragraph,omitempty"`
	Heading3         *RichTextBody `json:"heading_3,omitempty"`
	NumberedListItem *RichTextBody `json:"numbered_list_item,omitempty"`
	BulletedListItem *RichTextBody `json:"bulleted_list_item,omitempty"`
}

// RichTextRuns はTypeタグに対応する本体のリッチテキストランを返す。
// 未対応のタグ、または本体が欠落している場合はnilを返す。
func (b *Block) RichTextRuns() []RichText {
	var body *RichTextBody
	switch b.Type {
	case BlockTypeParagraph:
		body = b.Paragraph
	case BlockTypeHeading3:
		body = b.Heading3
	case BlockTypeNumberedListItem:
		body = b.NumberedListItem
	case BlockTypeBulletedListItem:
		body = b.BulletedListItem
	default:
		return nil
	}
	if body == nil {
		return nil
	}
	return body.RichText
}

// DateValue はdateプロパティの値。
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Property はページの1プロパティ。型タグ付きユニオン。
type Property struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Date     *DateValue `json:"date,omitempty"`
}

// FirstPlainText は最初のテキストランのplain_textを返す。
// titleまたはrich_text以外の型タグ、またはランが空の場合は空文字列を返す。
func (p Property) FirstPlainText() string {
	var runs []RichText
	switch p.Type {
	case PropertyTypeTitle:
		runs = p.Title
	case PropertyTypeRichText:
		runs = p.RichText
	default:
		return ""
	}
	if len(runs) == 0 {
		return ""
	}
	return runs[0].PlainText
}

// DateStart はdateプロパティの開始日を返す。
// date以外の型タグ、または値が欠落している場合は空文字列を返す。
func (p Property) DateStart() string {
	if p.Type != PropertyTypeDate || p.Date == nil {
		return ""
	}
	return p.Date.Start
}

// Page は1つのNotionページ。
type Page struct {
	Object         string              `json:"object"`
	ID             string              `json:"id"`
	CreatedTime    string              `json:"created_time"`
	LastEditedTime string              `json:"last_edited_time"`
	URL            string              `json:"url"`
	Properties     map[string]Property `json:"properties"`
}

// IsFull はフルページオブジェクトかを返す。
// 部分ページオブジェクトにはurlフィールドが含まれない。
func (p *Page) IsFull() bool {
	return p.Object == "page" && p.URL != ""
}

// Sort はデータベースクエリのソート指定。
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"` // ascending | descending
}

// QueryRequest はデータベースクエリのリクエストボディ。
type QueryRequest struct {
	Sorts       []Sort `json:"sorts,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
}

// QueryResult はデータベースクエリの1ページ分の結果。
type QueryResult struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// BlockList はブロック子要素一覧の1ページ分の結果。
type BlockList struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// apiError はNotion APIのエラーレスポンスボディ。
type apiError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
