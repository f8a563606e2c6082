package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	c := NewClient(server.Client(), newTestLogger(&buf), "secret_test")
	c.SetBaseURL(server.URL)
	return c, server
}

func TestClient_RetrievePage_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pages/page-1" {
			t.Errorf("path = %s, want /v1/pages/page-1", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret_test" {
			t.Errorf("Authorization = %s, want Bearer secret_test", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %s, want 2022-06-28", got)
		}

		json.NewEncoder(w).Encode(Page{
			Object:         "page",
			ID:             "page-1",
			CreatedTime:    "2025-01-06T09:00:00.000Z",
			LastEditedTime: "2025-01-07T09:00:00.000Z",
			URL:            "https://www.notion.so/page-1",
			Properties: map[string]Property{
				"title": {Type: "title", Title: []RichText{{PlainText: "Day 1"}}},
			},
		})
	})

	page, err := c.RetrievePage(context.Background(), "page-1")
	if err != nil {
		t.Fatalf("RetrievePage がエラーを返した: %v", err)
	}
	if page.ID != "page-1" {
		t.Errorf("ID = %s, want page-1", page.ID)
	}
	if page.Properties["title"].FirstPlainText() != "Day 1" {
		t.Errorf("title = %s, want Day 1", page.Properties["title"].FirstPlainText())
	}
}

func TestClient_RetrievePage_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"object": "error", "status": 404, "code": "object_not_found",
		})
	})

	_, err := c.RetrievePage(context.Background(), "missing")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("err = %v, want ErrObjectNotFound", err)
	}
}

func TestClient_RetrievePage_PartialPageIsNotFound(t *testing.T) {
	// URLフィールドを持たない部分ページオブジェクトはフルページとして扱わない
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Page{Object: "page", ID: "page-1"})
	})

	_, err := c.RetrievePage(context.Background(), "page-1")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("err = %v, want ErrObjectNotFound", err)
	}
}

func TestClient_QueryDatabase_SendsSorts(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("HTTPメソッド = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/databases/db-1/query" {
			t.Errorf("path = %s, want /v1/databases/db-1/query", r.URL.Path)
		}

		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("リクエストボディのデコードに失敗: %v", err)
		}
		if len(req.Sorts) != 1 || req.Sorts[0].Property != "Publish Date" || req.Sorts[0].Direction != "descending" {
			t.Errorf("sorts = %+v, want Publish Date descending", req.Sorts)
		}

		json.NewEncoder(w).Encode(QueryResult{
			Results: []Page{{Object: "page", ID: "row-1", URL: "https://www.notion.so/row-1"}},
			HasMore: false,
		})
	})

	result, err := c.QueryDatabase(context.Background(), "db-1", QueryRequest{
		Sorts: []Sort{{Property: "Publish Date", Direction: "descending"}},
	})
	if err != nil {
		t.Fatalf("QueryDatabase がエラーを返した: %v", err)
	}
	if len(result.Results) != 1 {
		t.Errorf("結果件数 = %d, want 1", len(result.Results))
	}
}

func TestClient_ListBlockChildren_CursorParam(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/blocks/page-1/children" {
			t.Errorf("path = %s, want /v1/blocks/page-1/children", r.URL.Path)
		}

		cursor := r.URL.Query().Get("start_cursor")
		switch cursor {
		case "":
			json.NewEncoder(w).Encode(BlockList{
				Results:    []Block{{Object: "block", Type: "paragraph", Paragraph: &RichTextBody{RichText: []RichText{{PlainText: "one"}}}}},
				HasMore:    true,
				NextCursor: "cursor-2",
			})
		case "cursor-2":
			json.NewEncoder(w).Encode(BlockList{
				Results: []Block{{Object: "block", Type: "paragraph", Paragraph: &RichTextBody{RichText: []RichText{{PlainText: "two"}}}}},
				HasMore: false,
			})
		default:
			t.Errorf("予期しないcursor: %s", cursor)
		}
	})

	first, err := c.ListBlockChildren(context.Background(), "page-1", "")
	if err != nil {
		t.Fatalf("ListBlockChildren がエラーを返した: %v", err)
	}
	if !first.HasMore || first.NextCursor != "cursor-2" {
		t.Errorf("has_more = %v, next_cursor = %s, want true/cursor-2", first.HasMore, first.NextCursor)
	}

	second, err := c.ListBlockChildren(context.Background(), "page-1", first.NextCursor)
	if err != nil {
		t.Fatalf("2ページ目の取得がエラーを返した: %v", err)
	}
	if second.HasMore {
		t.Error("最終ページでhas_more = true")
	}
}

func TestClient_ListBlockChildren_NullNextCursor(t *testing.T) {
	// Notionは最終ページでnext_cursorにnullを返す
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [], "has_more": false, "next_cursor": null}`))
	})

	list, err := c.ListBlockChildren(context.Background(), "page-1", "")
	if err != nil {
		t.Fatalf("ListBlockChildren がエラーを返した: %v", err)
	}
	if list.NextCursor != "" {
		t.Errorf("next_cursor = %q, want 空文字列", list.NextCursor)
	}
}

func TestClient_VerifyCredentials_Valid(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"object": "user"}`))
	})

	if err := c.VerifyCredentials(context.Background(), "db-1"); err != nil {
		t.Fatalf("VerifyCredentials がエラーを返した: %v", err)
	}

	want := []string{"/v1/users/me", "/v1/databases/db-1"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("呼び出しパス = %v, want %v", paths, want)
	}
}

func TestClient_VerifyCredentials_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"object": "error", "code": "unauthorized"})
	})

	err := c.VerifyCredentials(context.Background(), "db-1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestClient_VerifyCredentials_DatabaseNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/users/me" {
			w.Write([]byte(`{"object": "user"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"object": "error", "code": "object_not_found"})
	})

	err := c.VerifyCredentials(context.Background(), "db-missing")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("err = %v, want ErrObjectNotFound", err)
	}
}

func TestClient_ServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.RetrievePage(context.Background(), "page-1")
	if err == nil {
		t.Fatal("500レスポンスに対してエラーが返らない")
	}
	if errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrUnauthorized) {
		t.Errorf("500がセンチネルエラーに誤分類された: %v", err)
	}
}
