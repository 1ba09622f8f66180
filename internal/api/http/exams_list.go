// internal/api/http/exams_list.go
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmw "github.com/mind-engage/examplanner/internal/auth/middleware"
	"github.com/mind-engage/examplanner/internal/exam"
	syncx "github.com/mind-engage/examplanner/internal/sync"
)

// GET /api/exams?q=&limit=&offset=
func ListExamsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Exams.ListExams(r.Context(), exam.ListOpts{
			OwnerID: authmw.SubjectFromContext(r.Context()),
			Q:       strings.TrimSpace(r.URL.Query().Get("q")),
			Limit:   parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:  parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			respondErr(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// GET /api/exams/{examID}
func GetExamHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := d.ownedExam(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			respondErr(w, err)
			return
		}
		respondJSON(w, http.StatusOK, rec)
	}
}

// POST /api/exams {exam_name, subject, exam_date, topics}
// Posting an existing id the caller owns updates it.
func CreateExamHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec exam.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		status := http.StatusCreated
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		} else if prev, err := d.ownedExam(ctx, rec.ID); err == nil {
			rec.CreatedAt = prev.CreatedAt
			rec.OwnerID = prev.OwnerID
			status = http.StatusOK
		} else if !errors.Is(err, exam.ErrNotFound) {
			respondErr(w, err)
			return
		} else if _, err := d.Exams.GetExam(ctx, rec.ID); err == nil {
			// exists but belongs to someone else
			http.Error(w, "exam id taken", http.StatusConflict)
			return
		}
		if rec.OwnerID == "" {
			rec.OwnerID = authmw.SubjectFromContext(ctx)
		}
		rec.Topics = exam.CleanTopics(rec.Topics)
		if err := exam.Validate(d.Cal, rec); err != nil {
			respondErr(w, err)
			return
		}
		if err := d.Exams.PutExam(ctx, rec); err != nil {
			respondErr(w, err)
			return
		}
		d.record(ctx, syncx.ExamCreated, rec.ID, map[string]string{"exam_name": rec.ExamName})
		respondJSON(w, status, rec)
	}
}

// DELETE /api/exams/{examID}
// Deleting the caller's active exam also clears the selection.
func DeleteExamHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "examID")
		if _, err := d.ownedExam(ctx, id); err != nil {
			respondErr(w, err)
			return
		}
		if err := d.Exams.DeleteExam(ctx, id); err != nil {
			respondErr(w, err)
			return
		}
		user := authmw.SubjectFromContext(ctx)
		if st, err := d.State.Get(ctx, user); err == nil && st.ActiveExamID == id {
			if err := d.State.SetActive(ctx, user, ""); err != nil {
				respondErr(w, err)
				return
			}
		}
		d.record(ctx, syncx.ExamDeleted, id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}
