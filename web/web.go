// Package web holds the server-rendered calendar page.
package web

import (
	"embed"
	"html/template"

	"groupcal/calendar"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"dateLabel": calendar.ModalDateLabel,
	}
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
