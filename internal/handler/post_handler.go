package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/kusa/internal/middleware"
	"github.com/hitoshi/kusa/internal/model"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// Fetch は投稿IDからタイトルと正規化済み本文を含むドキュメントを返す。
	Fetch(ctx context.Context, postID string) (*model.PostDocument, error)
}

// PostHandler は投稿取得のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
	logger  *slog.Logger
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		logger:  logger,
	}
}

// GetPost は投稿ドキュメントを取得する。
// GET /api/posts/{postId}
//
// 存在しない投稿とタイトルの取れないページはいずれも404を返し、
// クライアントからは区別できない。詳細はログにのみ残す。
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	if postID == "" {
		writeErrorResponse(w, http.StatusNotFound, "Post not found")
		return
	}

	doc, err := h.service.Fetch(r.Context(), postID)
	if err != nil {
		if model.IsNotFound(err) {
			h.logger.Warn("投稿が取得できない",
				slog.String("post_id", postID),
				slog.String("error", err.Error()),
				slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
			)
			writeErrorResponse(w, http.StatusNotFound, "Post not found")
			return
		}

		h.logger.Error("投稿の取得に失敗",
			slog.String("post_id", postID),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// CDN側で60秒キャッシュさせ、ブラウザには都度再検証させる
	w.Header().Set("Cache-Control", "public, max-age=0, s-maxage=60")
	writeJSON(w, http.StatusOK, doc)
}
