package page_controller

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names rendered by the page handlers.
const (
	catalogTemplate = "catalog.html"
	productTemplate = "product.html"
	privacyTemplate = "privacy.html"
	errorTemplate   = "error.html"
)

// Templates parses the embedded page templates. The result is meant for
// gin's Engine.SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.New("pages").ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for program start-up.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
