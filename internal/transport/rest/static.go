package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Static serves the built client from dir with an index.html fallback for
// client-side routes. Requests under /api are never handled here.
func Static(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		if strings.Contains(filepath.Base(r.URL.Path), ".") {
			// Missing asset, not a client route.
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}
