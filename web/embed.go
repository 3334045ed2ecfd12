// Package web holds the page templates and browser assets compiled into the
// binary.
package web

import (
	"embed"
	"io/fs"
)

// TemplatesFS holds every page template; layout.html supplies the shared
// header, notices and footer blocks.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Static returns the browser assets rooted at the static directory, ready to
// be served under /static/.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
