package http

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	authmw "github.com/mind-engage/examplanner/internal/auth/middleware"
	"github.com/mind-engage/examplanner/internal/exam"
	"github.com/mind-engage/examplanner/internal/storage"
	syncx "github.com/mind-engage/examplanner/internal/sync"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxImportBytes  = 10 << 20
)

// GET /api/exams/export.xlsx
func ExportXLSXHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Exams.ListExams(r.Context(), exam.ListOpts{
			OwnerID: authmw.SubjectFromContext(r.Context()),
			Limit:   exam.MaxListLimit,
		})
		if err != nil {
			respondErr(w, err)
			return
		}
		var buf bytes.Buffer
		if err := exam.ExportXLSX(&buf, list); err != nil {
			respondErr(w, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="exams.xlsx"`)
		http.ServeContent(w, r, "exams.xlsx", time.Now(), bytes.NewReader(buf.Bytes()))
	}
}

type importResult struct {
	Imported int          `json:"imported"`
	Skipped  []skippedRow `json:"skipped,omitempty"`
	Archive  string       `json:"archive,omitempty"`
}

type skippedRow struct {
	ExamName string `json:"exam_name"`
	Reason   string `json:"reason"`
}

// POST /api/exams/import (multipart: file=exams.xlsx)
// The upload is archived first, then each row is validated and stored on its own.
func ImportXLSXHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := authmw.SubjectFromContext(ctx)

		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()
		raw, err := io.ReadAll(io.LimitReader(f, maxImportBytes+1))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(raw) > maxImportBytes {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}

		var res importResult
		if d.Blobs != nil {
			key, err := d.Blobs.Put(storage.ImportKey(user, time.Now()), bytes.NewReader(raw))
			if err != nil {
				respondErr(w, fmt.Errorf("archive upload: %w", err))
				return
			}
			res.Archive = key
		}

		recs, err := exam.ImportXLSX(bytes.NewReader(raw), user)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, rec := range recs {
			if err := exam.Validate(d.Cal, rec); err != nil {
				res.Skipped = append(res.Skipped, skippedRow{ExamName: rec.ExamName, Reason: err.Error()})
				continue
			}
			if err := d.Exams.PutExam(ctx, rec); err != nil {
				respondErr(w, err)
				return
			}
			res.Imported++
		}
		log.Printf("xlsx import by %s: %d imported, %d skipped", user, res.Imported, len(res.Skipped))
		d.record(ctx, syncx.ExamsImported, res.Archive, res)
		respondJSON(w, http.StatusOK, res)
	}
}
