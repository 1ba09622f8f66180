package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/examplanner/internal/plan"
)

// GET /api/plan/{examID}
func PlanHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := d.ownedExam(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			respondErr(w, err)
			return
		}
		p, err := plan.Build(rec, d.Cal, d.PlanOpts)
		if err != nil {
			respondErr(w, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}
