// Package web holds the server-rendered pages. Templates are embedded
// so the binary carries its own assets.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page. A parse failure is a
// programmer error, hence the panic via Must.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
