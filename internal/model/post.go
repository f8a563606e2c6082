package model

// PostDocument は1件の投稿の正規化済みドキュメント。
// 取得リクエストごとに新規に構築され、構築後は変更されない。
// トランスポート層の再検証ウィンドウを超えてキャッシュされることはない。
type PostDocument struct {
	Title          string         `json:"title"`
	Date           string         `json:"date"`
	Content        []ContentBlock `json:"content"`
	LastEditedTime string         `json:"lastEditedTime"`
	URL            string         `json:"url"`
}
