package main

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// fileServerHandler serves ui/static and falls back to notFound for missing files.
func (app *application) fileServerHandler(notFound http.Handler) (http.Handler, error) {
	fileRoot := path.Join(".", "ui", "static")
	var err error
	if _, err = os.Stat(fileRoot); os.IsNotExist(err) {
		var dir string
		dir, err = findModuleDir()
		if err != nil {
			return nil, fmt.Errorf("findModuleDir: %w", err)
		}
		fileRoot = path.Join(dir, "ui", "static")
	}
	var stat os.FileInfo
	if stat, err = os.Stat(fileRoot); os.IsNotExist(err) || !stat.IsDir() {
		return nil, fmt.Errorf("file server root %s does not exist or is not a directory", fileRoot)
	}
	fileServer := http.FileServer(http.Dir(fileRoot))

	static := app.recoverPanic(app.logAndTraceRequest(secureHeaders(commonContext(app.timeout(cacheForever(
		fileServer))))))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cleanPath := filepath.Clean(r.URL.Path)
		if strings.Contains(cleanPath, "..") {
			notFound.ServeHTTP(w, r)
			return
		}
		info, statErr := os.Stat(filepath.Join(fileRoot, cleanPath))
		if statErr != nil || info.IsDir() {
			notFound.ServeHTTP(w, r)
			return
		}
		static.ServeHTTP(w, r)
	}), nil
}
