package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// SPAHandler serves files from dir and falls back to dir/index.html for
// unknown paths so client-side routes resolve.
func SPAHandler(dir string) http.Handler {
	index := filepath.Join(dir, "index.html")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			http.ServeFile(w, r, name)
			return
		}
		http.ServeFile(w, r, index)
	})
}
