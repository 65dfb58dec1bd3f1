package http

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/portfolio/backend/internal/content"
	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/widget"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageRenderer struct {
	tmpl *template.Template
}

type pageData struct {
	Content   *content.Content
	Dashboard domain.DashboardData
}

func newPageRenderer() *pageRenderer {
	funcs := template.FuncMap{
		"iconGlyph": iconGlyph,
		"lower":     strings.ToLower,
	}
	return &pageRenderer{
		tmpl: template.Must(template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (p *pageRenderer) render(doc *content.Content, dash domain.DashboardData) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "index.html", pageData{Content: doc, Dashboard: dash}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// iconGlyph picks a text glyph for an icon category; the browser swaps in
// real icons when its script loads.
func iconGlyph(icon widget.IconCategory) string {
	switch icon {
	case widget.IconRain:
		return "🌧"
	case widget.IconSnow:
		return "❄"
	case widget.IconCloud:
		return "☁"
	default:
		return "☀"
	}
}
