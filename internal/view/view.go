// Package view はグラフページのサーバーサイドレンダリングを提供する。
// テンプレートはバイナリに埋め込み、起動時に一度だけパースする。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/hitoshi/kusa/internal/grid"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// GraphPageData はグラフページのテンプレートに渡すデータ。
type GraphPageData struct {
	Title  string
	Months []string
	Weeks  []grid.Week
}

// Renderer は埋め込みテンプレートを保持し、ページを描画する。
type Renderer struct {
	graph *template.Template
}

// NewRenderer は埋め込みテンプレートをパースしてRendererを生成する。
// テンプレートが不正な場合はエラーを返す（ビルド成果物の破損を起動時に検出する）。
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/graph.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("グラフテンプレートのパースに失敗: %w", err)
	}
	return &Renderer{graph: tmpl}, nil
}

// RenderGraph はグラフページをwに描画する。
func (r *Renderer) RenderGraph(w io.Writer, data GraphPageData) error {
	if err := r.graph.Execute(w, data); err != nil {
		return fmt.Errorf("グラフページの描画に失敗: %w", err)
	}
	return nil
}
