package model

import (
	"errors"
	"fmt"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: config, notion, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeConfigMissing        = "CONFIG_MISSING"
	ErrCodePostNotFound         = "POST_NOT_FOUND"
	ErrCodeInvalidPageStructure = "INVALID_PAGE_STRUCTURE"
	ErrCodeNotionFetchFailed    = "NOTION_FETCH_FAILED"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

// NewConfigMissingError は必須設定の欠落エラーを生成する。
// 呼び出し元が処理を続行できないため、握りつぶさず伝播させる。
func NewConfigMissingError(name string) *APIError {
	return &APIError{
		Code:     ErrCodeConfigMissing,
		Message:  fmt.Sprintf("必須設定が未設定です: %s", name),
		Category: "config",
		Action:   ".envまたは環境変数を確認してください。",
	}
}

// NewPostNotFoundError は投稿未検出エラーを生成する。
func NewPostNotFoundError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された投稿が見つかりません: %s", postID),
		Category: "notion",
		Action:   "投稿IDを確認してください。",
	}
}

// NewInvalidPageStructureError はページ構造不正エラーを生成する。
// タイトルプロパティが空のページなど、ドキュメントとして組み立て
// られないページに対して返す。クライアントには未検出と同一に扱われる。
func NewInvalidPageStructureError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPageStructure,
		Message:  fmt.Sprintf("ページ構造が不正です: %s", postID),
		Category: "notion",
		Action:   "Notionページのタイトルプロパティを確認してください。",
	}
}

// NewNotionFetchFailedError はNotion API呼び出し失敗エラーを生成する。
func NewNotionFetchFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeNotionFetchFailed,
		Message:  fmt.Sprintf("Notion APIの呼び出しに失敗しました: %s", reason),
		Category: "notion",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// IsNotFound はエラーが404相当（投稿未検出または構造不正）かを判定する。
// 両者はクライアントに対して区別されない。
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == ErrCodePostNotFound || apiErr.Code == ErrCodeInvalidPageStructure
	}
	return false
}

// IsConfigMissing はエラーが必須設定の欠落かを判定する。
func IsConfigMissing(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == ErrCodeConfigMissing
	}
	return false
}
