// internal/api/http/assets.go
package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/mind-engage/examplanner/internal/auth/middleware"
	"github.com/mind-engage/examplanner/internal/storage"
)

// MountImports serves archived workbooks back to the user who uploaded them.
func MountImports(r chi.Router, bs storage.BlobStore) {
	// GET /imports/{file} -> imports/{sub}/{file}
	r.Get("/{file}", func(w http.ResponseWriter, r *http.Request) {
		file := chi.URLParam(r, "file")
		if file == "" || strings.ContainsAny(file, `/\`) {
			http.Error(w, "bad name", http.StatusBadRequest)
			return
		}
		key := "imports/" + authmw.SubjectFromContext(r.Context()) + "/" + file
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", xlsxContentType)
		_, _ = io.Copy(w, rc)
	})
}
