package http

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"kindnesscup/pkg/money"
)

//go:embed templates/*.html
var templateFS embed.FS

const timestampLayout = "2006-01-02 15:04:05"

// Renderer serves the embedded HTML pages through echo's c.Render.
type Renderer struct{ t *template.Template }

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"money":    func(d decimal.Decimal) string { return money.Format(d) },
		"datetime": func(t time.Time) string { return t.Format(timestampLayout) },
		"deref":    deref[string],
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
