package feedgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"

	"github.com/hitoshi/kusa/internal/model"
	"github.com/hitoshi/kusa/internal/security"
)

func newTestGenerator() *Generator {
	return NewGenerator("hitoshi's blog", "日々の記録", "https://blog.example.com", security.NewFeedSanitizer())
}

func TestGenerate(t *testing.T) {
	entries := []model.EntrySummary{
		{PostID: "post-2", Title: "新しい投稿", Date: "2025-01-10", Preview: "最近の話"},
		{Title: "下書きのみのエントリ", Date: "2025-01-09"},
		{PostID: "post-1", Title: "古い投稿", Date: "2025-01-08"},
	}

	body, err := newTestGenerator().Generate(entries)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("生成したフィードのパースに失敗: %v", err)
	}

	if feed.Title != "hitoshi's blog" {
		t.Errorf("title = %q, want %q", feed.Title, "hitoshi's blog")
	}

	// 投稿のないエントリはitemに含めない
	if len(feed.Items) != 2 {
		t.Fatalf("item数 = %d, want 2", len(feed.Items))
	}

	// 公開日の降順を保持する
	if feed.Items[0].Title != "新しい投稿" {
		t.Errorf("items[0].Title = %q, want %q", feed.Items[0].Title, "新しい投稿")
	}
	if feed.Items[1].Title != "古い投稿" {
		t.Errorf("items[1].Title = %q, want %q", feed.Items[1].Title, "古い投稿")
	}

	if feed.Items[0].GUID != "post-2" {
		t.Errorf("items[0].GUID = %q, want %q", feed.Items[0].GUID, "post-2")
	}
	if !strings.HasSuffix(feed.Items[0].Link, "/api/posts/post-2") {
		t.Errorf("items[0].Link = %q, want /api/posts/post-2で終わる", feed.Items[0].Link)
	}

	if feed.Items[0].PublishedParsed == nil {
		t.Fatal("pubDateがパースできない")
	}
	if got := feed.Items[0].PublishedParsed.Format("2006-01-02"); got != "2025-01-10" {
		t.Errorf("pubDate = %q, want 2025-01-10", got)
	}
}

func TestGenerate_StripsMarkupFromItemTitle(t *testing.T) {
	// RSSのtitleはプレーンテキスト。タイトルに紛れたタグはここで落とす。
	entries := []model.EntrySummary{
		{PostID: "p1", Title: "<em>強調した</em>タイトル", Date: "2025-01-10"},
	}

	body, err := newTestGenerator().Generate(entries)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("生成したフィードのパースに失敗: %v", err)
	}

	if got := feed.Items[0].Title; got != "強調したタイトル" {
		t.Errorf("items[0].Title = %q, want %q", got, "強調したタイトル")
	}
}

func TestGenerate_SanitizesPreview(t *testing.T) {
	entries := []model.EntrySummary{
		{PostID: "p1", Title: "t", Date: "2025-01-10", Preview: `<script>alert("x")</script>安全なテキスト`},
	}

	body, err := newTestGenerator().Generate(entries)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("生成したフィードのパースに失敗: %v", err)
	}

	if strings.Contains(feed.Items[0].Description, "script") {
		t.Errorf("description = %q, scriptタグが除去されていない", feed.Items[0].Description)
	}
	if !strings.Contains(feed.Items[0].Description, "安全なテキスト") {
		t.Errorf("description = %q, 本文テキストが失われている", feed.Items[0].Description)
	}
}

func TestGenerate_EmptyInput_ReturnsEmptyFeed(t *testing.T) {
	body, err := newTestGenerator().Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("生成したフィードのパースに失敗: %v", err)
	}

	if len(feed.Items) != 0 {
		t.Errorf("item数 = %d, want 0", len(feed.Items))
	}
}
