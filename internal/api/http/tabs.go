package http

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmw "github.com/mind-engage/examplanner/internal/auth/middleware"
	"github.com/mind-engage/examplanner/internal/exam"
	"github.com/mind-engage/examplanner/internal/examlist"
	"github.com/mind-engage/examplanner/internal/plan"
	"github.com/mind-engage/examplanner/internal/session"
	syncx "github.com/mind-engage/examplanner/internal/sync"
	"github.com/mind-engage/examplanner/internal/web"
)

// page is the binding for every template rendered inside the layout.
type page struct {
	Title string
	Tab   string
	User  string
	Error string
	List  examlist.Model
	Plan  *plan.Plan
	Exam  *exam.Record
}

func (d Deps) render(w http.ResponseWriter, status int, name string, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := d.Pages.Render(w, name, p, web.Layout); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

func (d Deps) renderError(w http.ResponseWriter, r *http.Request, tab string, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	d.render(w, http.StatusInternalServerError, "error", page{
		Title: "Error",
		Tab:   tab,
		User:  authmw.UsernameFromContext(r.Context()),
		Error: err.Error(),
	})
}

// listProps gathers the inputs for the exam list: the caller's exams in store
// order and the currently active record. A selection pointing at a deleted
// exam is treated as no selection.
func (d Deps) listProps(ctx context.Context, user string) (examlist.Props, error) {
	list, err := d.Exams.ListExams(ctx, exam.ListOpts{OwnerID: user, Limit: exam.MaxListLimit})
	if err != nil {
		return examlist.Props{}, err
	}
	st, err := d.State.Get(ctx, user)
	if err != nil {
		return examlist.Props{}, err
	}
	p := examlist.Props{Exams: list}
	if st.ActiveExamID != "" {
		rec, err := d.Exams.GetExam(ctx, st.ActiveExamID)
		switch {
		case err == nil:
			p.ActiveExam = &rec
		case !errors.Is(err, exam.ErrNotFound):
			return examlist.Props{}, err
		}
	}
	return p, nil
}

// GET /
func HomeHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := d.State.Get(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			d.renderError(w, r, session.DefaultTab, err)
			return
		}
		http.Redirect(w, r, "/"+st.Tab, http.StatusSeeOther)
	}
}

// GET /exams
func ExamsTabHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := authmw.SubjectFromContext(ctx)
		if err := d.State.SetTab(ctx, user, session.TabExams); err != nil {
			d.renderError(w, r, session.TabExams, err)
			return
		}
		props, err := d.listProps(ctx, user)
		if err != nil {
			d.renderError(w, r, session.TabExams, err)
			return
		}
		model, err := d.View.Build(props)
		if err != nil {
			// a bad stored date is shown, never papered over
			d.renderError(w, r, session.TabExams, err)
			return
		}
		d.render(w, http.StatusOK, "exams", page{Title: "Exams", Tab: session.TabExams, User: authmw.UsernameFromContext(ctx), List: model})
	}
}

// GET /exams/list renders only the list, for in-place refreshes.
func ExamListFragmentHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		props, err := d.listProps(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			respondErr(w, err)
			return
		}
		var buf bytes.Buffer
		if err := d.View.Render(&buf, d.Pages, props); err != nil {
			respondErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

// POST /exams/{examID}/select is the row click: the list view reports the
// chosen record and the navigation target, and the host applies both.
func SelectExamHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := authmw.SubjectFromContext(ctx)
		props, err := d.listProps(ctx, user)
		if err != nil {
			respondErr(w, err)
			return
		}

		var cbErr error
		var target string
		props.OnSelect = func(rec exam.Record) {
			if cbErr = d.State.SetActive(ctx, user, rec.ID); cbErr == nil {
				d.record(ctx, syncx.ExamSelected, rec.ID, map[string]string{"exam_name": rec.ExamName})
			}
		}
		props.OnNavigate = func(t string) {
			if cbErr != nil {
				return
			}
			if cbErr = d.State.SetTab(ctx, user, t); cbErr == nil {
				target = t
			}
		}

		if err := d.View.Activate(props, chi.URLParam(r, "examID")); err != nil {
			respondErr(w, err)
			return
		}
		if cbErr != nil {
			respondErr(w, cbErr)
			return
		}
		http.Redirect(w, r, "/"+target, http.StatusSeeOther)
	}
}

// GET /plan
func PlanTabHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := authmw.SubjectFromContext(ctx)
		if err := d.State.SetTab(ctx, user, session.TabPlan); err != nil {
			d.renderError(w, r, session.TabPlan, err)
			return
		}
		st, err := d.State.Get(ctx, user)
		if err != nil {
			d.renderError(w, r, session.TabPlan, err)
			return
		}
		pg := page{Title: "Study plan", Tab: session.TabPlan, User: authmw.UsernameFromContext(ctx)}
		if st.ActiveExamID != "" {
			rec, err := d.ownedExam(ctx, st.ActiveExamID)
			switch {
			case errors.Is(err, exam.ErrNotFound):
				// selection went stale; fall through to the hint
			case err != nil:
				d.renderError(w, r, session.TabPlan, err)
				return
			default:
				p, err := plan.Build(rec, d.Cal, d.PlanOpts)
				if err != nil {
					d.renderError(w, r, session.TabPlan, err)
					return
				}
				pg.Plan, pg.Exam = &p, &rec
			}
		}
		d.render(w, http.StatusOK, "plan", pg)
	}
}

// GET /create
func CreateTabHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := authmw.SubjectFromContext(ctx)
		if err := d.State.SetTab(ctx, user, session.TabCreate); err != nil {
			d.renderError(w, r, session.TabCreate, err)
			return
		}
		d.render(w, http.StatusOK, "create", page{Title: "Create", Tab: session.TabCreate, User: authmw.UsernameFromContext(ctx)})
	}
}

// POST /create (form: exam_name, subject, exam_date, topics one per line)
func CreateFormHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := authmw.SubjectFromContext(ctx)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		rec := exam.Record{
			ID:       uuid.NewString(),
			OwnerID:  user,
			ExamName: strings.TrimSpace(r.PostFormValue("exam_name")),
			Subject:  strings.TrimSpace(r.PostFormValue("subject")),
			ExamDate: strings.TrimSpace(r.PostFormValue("exam_date")),
			Topics:   exam.CleanTopics(strings.Split(r.PostFormValue("topics"), "\n")),
		}
		if err := exam.Validate(d.Cal, rec); err != nil {
			d.render(w, http.StatusBadRequest, "create", page{Title: "Create", Tab: session.TabCreate, User: authmw.UsernameFromContext(ctx), Error: err.Error()})
			return
		}
		if err := d.Exams.PutExam(ctx, rec); err != nil {
			d.renderError(w, r, session.TabCreate, err)
			return
		}
		d.record(ctx, syncx.ExamCreated, rec.ID, map[string]string{"exam_name": rec.ExamName})
		http.Redirect(w, r, "/exams", http.StatusSeeOther)
	}
}

// GET /login
func LoginPageHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pg := page{Title: "Sign in"}
		if r.URL.Query().Get("failed") != "" {
			pg.Error = "Invalid username or password."
		}
		d.render(w, http.StatusOK, "login", pg)
	}
}
