package handler

import (
	"encoding/json"
	"net/http"
)

// errorResponse はエラー時のレスポンスボディ。
// クライアントには定型メッセージのみを返し、内部の失敗理由は含めない。
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeErrorResponse は{"error": message}形式のエラーレスポンスを書き込む。
func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}
