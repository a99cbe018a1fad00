// Package web embeds the public registration form.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed public
var public embed.FS

// Index returns the form page.
func Index() []byte {
	b, err := public.ReadFile("public/index.html")
	if err != nil {
		// the file is embedded at build time
		panic(err)
	}
	return b
}

// Static serves the form's stylesheet and script.
func Static() http.FileSystem {
	sub, err := fs.Sub(public, "public/static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
