package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"

	"github.com/hitoshi/kusa/internal/feedgen"
	"github.com/hitoshi/kusa/internal/model"
	"github.com/hitoshi/kusa/internal/security"
)

func newFeedHandler(service EntryServiceInterface) *FeedHandler {
	gen := feedgen.NewGenerator("hitoshi's blog", "日々の記録", "https://blog.example.com", security.NewFeedSanitizer())
	return NewFeedHandler(service, gen, discardLogger())
}

func TestGetFeed_Success_ReturnsRSS(t *testing.T) {
	service := &fakeEntryService{
		entries: []model.EntrySummary{
			{PostID: "p1", Title: "公開済み", Date: "2025-01-10", Preview: "プレビュー"},
			{Title: "下書き", Date: "2025-01-11"},
		},
	}
	h := newFeedHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/feed.xml", nil)
	rec := httptest.NewRecorder()
	h.GetFeed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/rss+xml") {
		t.Errorf("Content-Type = %q, want application/rss+xml", got)
	}

	feed, err := gofeed.NewParser().Parse(rec.Body)
	if err != nil {
		t.Fatalf("フィードのパースに失敗: %v", err)
	}
	if len(feed.Items) != 1 {
		t.Fatalf("item数 = %d, want 1", len(feed.Items))
	}
	if feed.Items[0].Title != "公開済み" {
		t.Errorf("items[0].Title = %q, want %q", feed.Items[0].Title, "公開済み")
	}
}

func TestGetFeed_ListFailure_ReturnsEmptyFeed(t *testing.T) {
	h := newFeedHandler(&fakeEntryService{err: errors.New("接続タイムアウト")})

	req := httptest.NewRequest(http.MethodGet, "/feed.xml", nil)
	rec := httptest.NewRecorder()
	h.GetFeed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	feed, err := gofeed.NewParser().Parse(rec.Body)
	if err != nil {
		t.Fatalf("フィードのパースに失敗: %v", err)
	}
	if len(feed.Items) != 0 {
		t.Errorf("item数 = %d, want 0", len(feed.Items))
	}
}
