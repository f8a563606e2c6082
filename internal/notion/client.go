// Package notion はNotion REST APIの読み取り専用クライアントを提供する。
// ページ取得、データベースクエリ、ブロック子要素一覧の3操作と、
// 起動時の資格情報検証を含む。書き込み系のAPIは扱わない。
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// defaultBaseURL はNotion APIのベースURL。
	defaultBaseURL = "https://api.notion.com"
	// apiVersion はNotion-Versionヘッダーに設定するAPIバージョン。
	apiVersion = "2022-06-28"
)

// 呼び出し結果の分類に使うセンチネルエラー。
var (
	// ErrObjectNotFound は対象オブジェクトが存在しないかアクセス不能であることを示す。
	ErrObjectNotFound = errors.New("notion: object not found")
	// ErrUnauthorized は資格情報が無効であることを示す。
	ErrUnauthorized = errors.New("notion: unauthorized")
)

// MetricsRecorder はAPI呼び出しメトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordNotionCall(operation string, outcome string)
	RecordNotionLatency(operation string, duration time.Duration)
}

// Client はNotion APIのクライアント。
// プロセス全体で1インスタンスを起動時に生成し、全呼び出しで再利用する。
// リクエストごとの生成は行わない。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	token      string
	baseURL    string // テスト用にエンドポイントを差し替え可能
	metrics    MetricsRecorder
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, token string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		token:      token,
		baseURL:    defaultBaseURL,
	}
}

// SetBaseURL はAPIのベースURLを差し替える。テスト用。
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetMetricsRecorder はAPI呼び出しメトリクスの記録先を設定する。
func (c *Client) SetMetricsRecorder(m MetricsRecorder) {
	c.metrics = m
}

// RetrievePage はページIDでページメタデータを取得する。
// ページが存在しない・アクセス不能・フルページでない場合はErrObjectNotFoundを返す。
func (c *Client) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.doGet(ctx, "retrieve_page", "/v1/pages/"+url.PathEscape(pageID), nil, &page); err != nil {
		return nil, err
	}
	if !page.IsFull() {
		return nil, fmt.Errorf("page %s: %w", pageID, ErrObjectNotFound)
	}
	return &page, nil
}

// QueryDatabase はデータベースをクエリし、1ページ分の結果を返す。
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (*QueryResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("クエリリクエストのエンコードに失敗しました: %w", err)
	}

	var result QueryResult
	path := "/v1/databases/" + url.PathEscape(databaseID) + "/query"
	if err := c.doPost(ctx, "query_database", path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListBlockChildren はブロックの子要素一覧を1ページ分取得する。
// cursorが空の場合は先頭ページを取得する。
func (c *Client) ListBlockChildren(ctx context.Context, blockID, cursor string) (*BlockList, error) {
	query := url.Values{}
	if cursor != "" {
		query.Set("start_cursor", cursor)
	}

	var list BlockList
	path := "/v1/blocks/" + url.PathEscape(blockID) + "/children"
	if err := c.doGet(ctx, "list_block_children", path, query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// VerifyCredentials はトークンとデータベースIDの有効性を検証する。
// トークン無効の場合はErrUnauthorized、データベース不在の場合は
// ErrObjectNotFoundを返す。
func (c *Client) VerifyCredentials(ctx context.Context, databaseID string) error {
	// トークン検証: 自分自身のユーザー情報を取得する
	if err := c.doGet(ctx, "users_me", "/v1/users/me", nil, &struct{}{}); err != nil {
		return fmt.Errorf("トークンの検証に失敗しました: %w", err)
	}

	// データベースID検証: メタデータを取得する
	path := "/v1/databases/" + url.PathEscape(databaseID)
	if err := c.doGet(ctx, "retrieve_database", path, nil, &struct{}{}); err != nil {
		return fmt.Errorf("データベースIDの検証に失敗しました: %w", err)
	}

	return nil
}

// doGet はGETリクエストを実行し、レスポンスをoutにデコードする。
func (c *Client) doGet(ctx context.Context, operation, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	return c.do(operation, req, out)
}

// doPost はPOSTリクエストを実行し、レスポンスをoutにデコードする。
func (c *Client) doPost(ctx context.Context, operation, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(operation, req, out)
}

// do は共通ヘッダーを付与してリクエストを実行し、ステータスを分類する。
func (c *Client) do(operation string, req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("User-Agent", "Kusa/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.RecordNotionLatency(operation, time.Since(start))
	}
	if err != nil {
		c.recordOutcome(operation, "network_error")
		c.logger.Error("Notion APIの呼び出しに失敗しました",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("notion %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.classifyError(operation, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordOutcome(operation, "read_error")
		return fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.recordOutcome(operation, "decode_error")
		c.logger.Error("Notion APIレスポンスのパースに失敗しました",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	c.recordOutcome(operation, "success")
	return nil
}

// classifyError はエラーステータスのレスポンスをセンチネルエラーに分類する。
// エラーボディの詳細はログにのみ記録する。
func (c *Client) classifyError(operation string, resp *http.Response) error {
	var apiErr apiError
	body, readErr := io.ReadAll(resp.Body)
	if readErr == nil {
		// デコード失敗時はステータスコードのみで分類する
		_ = json.Unmarshal(body, &apiErr)
	}

	c.logger.Error("Notion APIがエラーステータスを返しました",
		slog.String("operation", operation),
		slog.Int("http_status", resp.StatusCode),
		slog.String("error_code", apiErr.Code),
	)

	switch resp.StatusCode {
	case http.StatusNotFound:
		c.recordOutcome(operation, "not_found")
		return fmt.Errorf("notion %s: %w", operation, ErrObjectNotFound)
	case http.StatusUnauthorized:
		c.recordOutcome(operation, "unauthorized")
		return fmt.Errorf("notion %s: %w", operation, ErrUnauthorized)
	default:
		c.recordOutcome(operation, "api_error")
		return fmt.Errorf("notion %s: APIがステータス %d を返しました", operation, resp.StatusCode)
	}
}

func (c *Client) recordOutcome(operation, outcome string) {
	if c.metrics != nil {
		c.metrics.RecordNotionCall(operation, outcome)
	}
}
