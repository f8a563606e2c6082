package model

// DefaultEntryTitle はタイトルプロパティが空の場合のフォールバック。
const DefaultEntryTitle = "Untitled"

// EntrySummary は執筆データベースの1行に対応するサマリーレコード。
// PostIDが空文字列の場合は「その日のエントリは存在するが公開可能な
// 投稿がない」状態を表す。これは「エントリ自体がない」状態とは区別される。
type EntrySummary struct {
	PostID  string `json:"postId"`
	Title   string `json:"title"`
	Date    string `json:"date"`    // yyyy-MM-dd形式。未設定の場合は空文字列
	Preview string `json:"preview"` // 任意のプレビューテキスト
}

// HasPost は公開可能な投稿が紐付いているかを返す。
func (e EntrySummary) HasPost() bool {
	return e.PostID != ""
}
