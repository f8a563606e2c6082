// Package entry は執筆データベースのエントリ一覧取得を提供する。
package entry

import (
	"context"
	"log/slog"

	"github.com/hitoshi/kusa/internal/cache"
	"github.com/hitoshi/kusa/internal/model"
	"github.com/hitoshi/kusa/internal/notion"
)

// 執筆データベースのプロパティ名。
const (
	propTitle       = "Name"
	propPublishDate = "Publish Date"
	propPostID      = "PostID"
	propPreview     = "Preview"
)

// cacheOpListEntries はエントリ一覧のキャッシュ操作名。
const cacheOpListEntries = "listEntries"

// DatabaseQuerier はエントリ一覧が必要とするNotionクライアントのインターフェース。
type DatabaseQuerier interface {
	QueryDatabase(ctx context.Context, databaseID string, req notion.QueryRequest) (*notion.QueryResult, error)
}

// Service はエントリ一覧取得のサービス。
type Service struct {
	querier    DatabaseQuerier
	databaseID string
	cache      *cache.ResultCache
	logger     *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
// databaseIDは執筆データベースのID。空の場合、Listは設定欠落エラーを返す。
func NewService(querier DatabaseQuerier, databaseID string, resultCache *cache.ResultCache, logger *slog.Logger) *Service {
	return &Service{
		querier:    querier,
		databaseID: databaseID,
		cache:      resultCache,
		logger:     logger,
	}
}

// List は執筆データベースの全エントリを公開日の降順で返す。
//
// データベースIDが未設定の場合はConfigMissingエラーを返す（呼び出し元が
// 処理を続行できないため、他の操作と異なり握りつぶさず伝播させる）。
// クエリ失敗時はエラーを返さない。ログに記録した上で空スライスを返し、
// 呼び出し元はクラッシュせずに空のグラフを描画する。
func (s *Service) List(ctx context.Context) ([]model.EntrySummary, error) {
	if s.databaseID == "" {
		return nil, model.NewConfigMissingError("NOTION_WRITING_DATABASE_ID")
	}

	if cached, ok := s.cache.Get(cacheOpListEntries, s.databaseID); ok {
		if entries, ok := cached.([]model.EntrySummary); ok {
			return entries, nil
		}
	}

	result, err := s.querier.QueryDatabase(ctx, s.databaseID, notion.QueryRequest{
		Sorts: []notion.Sort{{Property: propPublishDate, Direction: "descending"}},
	})
	if err != nil {
		// 一覧は可用性を優先する。壊れたグラフより一時的に空のグラフの方がよい。
		s.logger.Error("エントリ一覧の取得に失敗しました",
			slog.String("database_id", s.databaseID),
			slog.String("error", err.Error()),
		)
		return []model.EntrySummary{}, nil
	}

	entries := make([]model.EntrySummary, 0, len(result.Results))
	for _, page := range result.Results {
		// フルページでない行は黙って落とす
		if !page.IsFull() {
			continue
		}
		entries = append(entries, toEntrySummary(page))
	}

	s.cache.Set(cacheOpListEntries, entries, s.databaseID)
	return entries, nil
}

// toEntrySummary は1行のページをEntrySummaryに変換する。
// プロパティ値は改変せずそのまま写す（エスケープは出力側の責務）。
func toEntrySummary(page notion.Page) model.EntrySummary {
	title := page.Properties[propTitle].FirstPlainText()
	if title == "" {
		title = model.DefaultEntryTitle
	}

	return model.EntrySummary{
		PostID:  page.Properties[propPostID].FirstPlainText(),
		Title:   title,
		Date:    page.Properties[propPublishDate].DateStart(),
		Preview: page.Properties[propPreview].FirstPlainText(),
	}
}
