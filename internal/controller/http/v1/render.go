package httpv1

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"pageURL": pageURL,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func pageURL(page, perPage int, server string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if server != "" {
		q.Set("server", server)
	}
	return "/?" + q.Encode()
}
