// Package feedgen は公開済み投稿のRSS 2.0フィード生成を提供する。
package feedgen

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/hitoshi/kusa/internal/model"
	"github.com/hitoshi/kusa/internal/security"
)

const dateLayout = "2006-01-02"

// rss はRSS 2.0ドキュメントのルート要素。
type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Language    string `xml:"language"`
	Items       []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        guid   `xml:"guid"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Generator はエントリ一覧からRSSフィードを生成する。
// descriptionに載せるプレビューテキストはサニタイザーを通す。
type Generator struct {
	title       string
	description string
	baseURL     string
	sanitizer   security.FeedSanitizerService
}

// NewGenerator は新しいGeneratorを生成する。
func NewGenerator(title, description, baseURL string, sanitizer security.FeedSanitizerService) *Generator {
	return &Generator{
		title:       title,
		description: description,
		baseURL:     baseURL,
		sanitizer:   sanitizer,
	}
}

// Generate はエントリ一覧からRSS 2.0のXMLドキュメントを生成する。
// 公開済み投稿が紐付くエントリのみをitemとして含める。
// 入力の並び順（公開日の降順）をそのまま保持する。
func (g *Generator) Generate(entries []model.EntrySummary) ([]byte, error) {
	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:       g.title,
			Link:        g.baseURL,
			Description: g.description,
			Language:    "ja",
		},
	}

	for _, entry := range entries {
		if !entry.HasPost() {
			continue
		}

		// RSSのtitleはプレーンテキスト。descriptionと違いHTMLを
		// 許可しないため、マークアップはここで落とす。
		it := item{
			Title: security.StripMarkup(entry.Title),
			Link:  fmt.Sprintf("%s/api/posts/%s", g.baseURL, entry.PostID),
			GUID:  guid{IsPermaLink: false, Value: entry.PostID},
		}

		if entry.Preview != "" {
			it.Description = g.sanitizer.Sanitize(entry.Preview)
		}

		if entry.Date != "" {
			if t, err := time.Parse(dateLayout, entry.Date); err == nil {
				it.PubDate = t.Format(time.RFC1123Z)
			}
		}

		doc.Channel.Items = append(doc.Channel.Items, it)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("フィードのXMLエンコードに失敗: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
