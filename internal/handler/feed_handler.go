package handler

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/kusa/internal/feedgen"
	"github.com/hitoshi/kusa/internal/middleware"
)

// FeedHandler はRSSフィード配信のHTTPハンドラー。
type FeedHandler struct {
	service   EntryServiceInterface
	generator *feedgen.Generator
	logger    *slog.Logger
}

// NewFeedHandler はFeedHandlerを生成する。
func NewFeedHandler(service EntryServiceInterface, generator *feedgen.Generator, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		service:   service,
		generator: generator,
		logger:    logger,
	}
}

// GetFeed はRSS 2.0フィードを配信する。
// GET /feed.xml
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Warn("フィード用エントリ一覧の取得に失敗",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		entries = nil
	}

	body, err := h.generator.Generate(entries)
	if err != nil {
		h.logger.Error("フィードの生成に失敗",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=0, s-maxage=60")
	w.Write(body)
}
