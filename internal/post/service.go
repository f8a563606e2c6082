// Package post は投稿ドキュメントの取得と組み立てを提供する。
package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hitoshi/kusa/internal/cache"
	"github.com/hitoshi/kusa/internal/content"
	"github.com/hitoshi/kusa/internal/model"
	"github.com/hitoshi/kusa/internal/notion"
)

// propPageTitle は投稿ページのタイトルプロパティのキー。
const propPageTitle = "title"

// cacheOpGetPost は投稿取得のキャッシュ操作名。
const cacheOpGetPost = "getPost"

// PageReader は投稿取得が必要とするNotionクライアントのインターフェース。
type PageReader interface {
	RetrievePage(ctx context.Context, pageID string) (*notion.Page, error)
	ListBlockChildren(ctx context.Context, blockID, cursor string) (*notion.BlockList, error)
}

// Service は投稿取得のサービス。
// ページメタデータ取得とブロック子要素取得の2つの独立した外部呼び出しを
// 合成し、正規化済みのPostDocumentを組み立てる。
type Service struct {
	reader PageReader
	cache  *cache.ResultCache
	logger *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(reader PageReader, resultCache *cache.ResultCache, logger *slog.Logger) *Service {
	return &Service{
		reader: reader,
		cache:  resultCache,
		logger: logger,
	}
}

// Fetch は投稿IDからPostDocumentを組み立てて返す。
//
// ページが存在しない・アクセス不能な場合はPOST_NOT_FOUND、タイトル
// プロパティが空の場合はINVALID_PAGE_STRUCTUREを返す。エンドポイントは
// 両者を区別せず404として扱う。その他の失敗はそのまま伝播し、
// エンドポイントで500になる。
func (s *Service) Fetch(ctx context.Context, postID string) (*model.PostDocument, error) {
	if cached, ok := s.cache.Get(cacheOpGetPost, postID); ok {
		if doc, ok := cached.(*model.PostDocument); ok {
			return doc, nil
		}
	}

	page, err := s.reader.RetrievePage(ctx, postID)
	if err != nil {
		if errors.Is(err, notion.ErrObjectNotFound) {
			return nil, model.NewPostNotFoundError(postID)
		}
		return nil, fmt.Errorf("ページメタデータの取得に失敗しました: %w", err)
	}

	// タイトルが空のページはドキュメントとして組み立てられない。
	// ブロック取得前に検査して無駄な呼び出しを避ける。
	title := page.Properties[propPageTitle].FirstPlainText()
	if title == "" {
		return nil, model.NewInvalidPageStructureError(postID)
	}

	blocks := s.fetchAllChildren(ctx, postID)

	// 対応済みのテキストブロック型のみを残してから正規化する
	textBlocks := make([]notion.Block, 0, len(blocks))
	for _, b := range blocks {
		if content.IsTextBlock(b) {
			textBlocks = append(textBlocks, b)
		}
	}

	doc := &model.PostDocument{
		Title:          title,
		Date:           page.CreatedTime,
		Content:        content.NormalizeAll(textBlocks),
		LastEditedTime: page.LastEditedTime,
		URL:            page.URL,
	}

	s.cache.Set(cacheOpGetPost, doc, postID)
	return doc, nil
}

// fetchAllChildren はカーソルページネーションで全ブロック子要素を収集する。
// ページネーション途中の失敗は蓄積を打ち切るだけで、それまでに収集した
// 結果は破棄しない（部分的な投稿でも描画できる方がよい）。
func (s *Service) fetchAllChildren(ctx context.Context, pageID string) []notion.Block {
	var children []notion.Block
	cursor := ""

	for {
		list, err := s.reader.ListBlockChildren(ctx, pageID, cursor)
		if err != nil {
			s.logger.Error("ブロック子要素の取得に失敗しました",
				slog.String("page_id", pageID),
				slog.String("cursor", cursor),
				slog.Int("collected", len(children)),
				slog.String("error", err.Error()),
			)
			return children
		}

		children = append(children, list.Results...)

		if !list.HasMore {
			return children
		}
		// has_moreなのにnext_cursorが空・前回と同一のレスポンスは前進できない。
		// 同じページを無限に再取得しないよう、収集済み分で打ち切る。
		if list.NextCursor == "" || list.NextCursor == cursor {
			s.logger.Warn("next_cursorが前進しないためページネーションを打ち切ります",
				slog.String("page_id", pageID),
				slog.String("cursor", cursor),
				slog.Int("collected", len(children)),
			)
			return children
		}
		cursor = list.NextCursor
	}
}
