package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/kusa/internal/grid"
	"github.com/hitoshi/kusa/internal/middleware"
	"github.com/hitoshi/kusa/internal/model"
	"github.com/hitoshi/kusa/internal/view"
)

// EntryServiceInterface はグラフ／フィードハンドラーが必要とする
// サービスインターフェース。
type EntryServiceInterface interface {
	// List は執筆データベースの全エントリを公開日の降順で返す。
	List(ctx context.Context) ([]model.EntrySummary, error)
}

// GraphHandler はコントリビューショングラフページのHTTPハンドラー。
type GraphHandler struct {
	service    EntryServiceInterface
	renderer   *view.Renderer
	logger     *slog.Logger
	title      string
	graphStart time.Time
	graphEnd   time.Time
}

// NewGraphHandler はGraphHandlerを生成する。
// startとendはグラフの描画対象期間（両端含む）。
func NewGraphHandler(service EntryServiceInterface, renderer *view.Renderer, logger *slog.Logger, title string, start, end time.Time) *GraphHandler {
	return &GraphHandler{
		service:    service,
		renderer:   renderer,
		logger:     logger,
		title:      title,
		graphStart: start,
		graphEnd:   end,
	}
}

// GetGraph はグラフページを描画する。
// GET /
//
// エントリ取得の失敗時でも空のグリッドで描画を継続する
// （エントリ一覧は可用性を優先し、サービス層で空集合に縮退する）。
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		// 設定不備（執筆データベース未設定）でもページ自体は空グリッドで返す
		h.logger.Warn("エントリ一覧の取得に失敗",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		entries = []model.EntrySummary{}
	}

	data := view.GraphPageData{
		Title:  h.title,
		Months: grid.Months(h.graphStart, h.graphEnd),
		Weeks:  grid.Build(h.graphStart, h.graphEnd, entries),
	}

	// 描画失敗時に中途半端なボディを返さないよう、バッファに描画してから書き出す
	var buf bytes.Buffer
	if err := h.renderer.RenderGraph(&buf, data); err != nil {
		h.logger.Error("グラフページの描画に失敗",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=0, s-maxage=60")
	w.Write(buf.Bytes())
}
