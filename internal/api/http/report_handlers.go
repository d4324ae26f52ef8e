package http

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Reaishma/Automated-grading-app/internal/classroom"
	"github.com/Reaishma/Automated-grading-app/internal/report"
	"github.com/Reaishma/Automated-grading-app/internal/storage"
)

// GET /reports/grades.xlsx
func GradesXLSXHandler(svc *classroom.Service, archive storage.BlobStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Roster(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		now := time.Now().UTC()
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, entries, now); err != nil {
			http.Error(w, "export: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if archive != nil {
			key := "grades/" + now.Format("20060102T150405Z") + ".xlsx"
			if _, err := archive.Put(r.Context(), key, bytes.NewReader(buf.Bytes())); err != nil {
				log.Warn("archive export", zap.String("key", key), zap.Error(err))
			}
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="grades.xlsx"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = buf.WriteTo(w)
	}
}

// GET /reports/archive
func ListArchiveHandler(archive storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keys, err := archive.List(r.Context(), "grades/")
		if err != nil {
			http.Error(w, "archive: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if keys == nil {
			keys = []string{}
		}
		writeJSON(w, http.StatusOK, map[string][]string{"reports": keys})
	}
}

// GET /reports/archive/{key...}
func GetArchiveHandler(archive storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "*"))
		rc, err := archive.Get(r.Context(), key)
		switch {
		case errors.Is(err, storage.ErrBadKey):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, fs.ErrNotExist):
			http.Error(w, "report not found", http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, "archive: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rc.Close()
		if strings.HasSuffix(key, ".xlsx") {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		}
		w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
		_, _ = io.Copy(w, rc)
	}
}
