package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	authmw "github.com/mind-engage/examplanner/internal/auth/middleware"
	"github.com/mind-engage/examplanner/internal/dates"
	"github.com/mind-engage/examplanner/internal/exam"
	"github.com/mind-engage/examplanner/internal/examlist"
	"github.com/mind-engage/examplanner/internal/plan"
	"github.com/mind-engage/examplanner/internal/rbac"
	"github.com/mind-engage/examplanner/internal/session"
	"github.com/mind-engage/examplanner/internal/storage"
)

// EventRecorder is the slice of syncx.EventRepo the handlers use.
type EventRecorder interface {
	Record(ctx context.Context, typ, key, actor string, data any) error
}

// Deps are shared by the tab pages and the JSON API. Events and Blobs may be nil.
type Deps struct {
	Exams    exam.Store
	State    session.Store
	Events   EventRecorder
	Blobs    storage.BlobStore
	Cal      dates.Calendar
	View     *examlist.View
	Pages    examlist.Renderer
	PlanOpts plan.Options
}

func (d Deps) record(ctx context.Context, typ, key string, data any) {
	if d.Events == nil {
		return
	}
	if err := d.Events.Record(ctx, typ, key, authmw.SubjectFromContext(ctx), data); err != nil {
		log.Printf("event %s %s: %v", typ, key, err)
	}
}

// ownedExam loads an exam the caller may see: their own, or any for admin:exams.
func (d Deps) ownedExam(ctx context.Context, id string) (exam.Record, error) {
	rec, err := d.Exams.GetExam(ctx, id)
	if err != nil {
		return exam.Record{}, err
	}
	if rec.OwnerID != authmw.SubjectFromContext(ctx) && !rbac.Can(ctx, "admin:exams") {
		return exam.Record{}, exam.ErrNotFound
	}
	return rec, nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondErr maps domain errors onto status codes; anything unknown is a 500.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, exam.ErrNotFound), errors.Is(err, examlist.ErrUnknownExam):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, exam.ErrInvalid), errors.Is(err, session.ErrUnknownTab), errors.Is(err, plan.ErrTooFar):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
