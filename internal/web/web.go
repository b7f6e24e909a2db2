// Package web embeds the HTML templates and static assets of the web front end.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Templates parses every page template together with the shared layout
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Static returns the static asset tree rooted at its top directory
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// static is embedded above, so this cannot fail
		panic(err)
	}
	return sub
}
