package surface

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var surfaceTemplate = template.Must(template.New("surface.html.tmpl").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/surface.html.tmpl"))

// WriteHTML writes the surface as HTML form controls. Every control carries
// its group name in the name attribute, so a submitted form can be fed back
// through ApplyForm.
func (s *Surface) WriteHTML(w io.Writer) error {
	if err := surfaceTemplate.ExecuteTemplate(w, "surface", s.blocks); err != nil {
		return fmt.Errorf("render surface: %w", err)
	}
	return nil
}

// HTML returns the surface markup for embedding in a page template.
func (s *Surface) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.WriteHTML(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
