package web

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html.tmpl").ParseFS(templateFS, "templates/page.html.tmpl"))

type pageData struct {
	Title       string
	Quiz        template.HTML
	Results     string
	Performance string
}

func renderPage(w io.Writer, data pageData) error {
	return pageTemplate.ExecuteTemplate(w, "page", data)
}
