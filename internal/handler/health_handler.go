package handler

import "net/http"

// HealthHandler はヘルスチェックのHTTPハンドラー。
// 外部依存（Notion API）には触れず、プロセスの生存のみを応答する。
type HealthHandler struct{}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// GetHealth はヘルスチェックに応答する。
// GET /healthz
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
