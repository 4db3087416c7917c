// Package web embeds the built brochure site (dist/) and provides an HTTP
// handler that serves it as a multi-page static site.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed all:dist
var distFS embed.FS

// Handler returns an http.Handler that serves the embedded site. Clean URLs
// map onto .html files (/pricing serves pricing.html); unknown paths get the
// embedded 404 page.
func Handler() http.Handler {
	subFS, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}

	fileServer := http.FileServer(http.FS(subFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/")
		if path == "" {
			path = "index.html"
		}

		if exists(subFS, path) {
			fileServer.ServeHTTP(w, r)
			return
		}

		// Clean URL: /pricing -> pricing.html.
		if !strings.Contains(path, ".") && exists(subFS, path+".html") {
			r.URL.Path = "/" + path + ".html"
			fileServer.ServeHTTP(w, r)
			return
		}

		if exists(subFS, "404.html") {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			page, _ := fs.ReadFile(subFS, "404.html")
			_, _ = w.Write(page)
			return
		}

		http.NotFound(w, r)
	})
}

func exists(fsys fs.FS, path string) bool {
	info, err := fs.Stat(fsys, path)
	return err == nil && !info.IsDir()
}
