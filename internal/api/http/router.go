package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/mind-engage/examplanner/internal/auth/middleware"
	"github.com/mind-engage/examplanner/internal/rbac"
)

type RouterOptions struct {
	Auth        *authmw.AuthService
	Users       *sql.DB
	CORSOrigins []string
}

// NewRouter mounts the HTML tabs (cookie auth) and the JSON API (bearer or cookie).
func NewRouter(d Deps, o RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	r.Get("/login", LoginPageHandler(d))
	r.Post("/login", authmw.LoginHandler(o.Auth, o.Users))
	r.Get("/logout", authmw.LogoutHandler(o.Auth, d.State.Clear))

	// Tabs
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(o.Auth, "/login"))

		pr.With(rbac.RequireAny("exam:view", "plan:view")).Get("/", HomeHandler(d))
		pr.With(rbac.Require("exam:view")).Get("/exams", ExamsTabHandler(d))
		pr.With(rbac.Require("exam:view")).Get("/exams/list", ExamListFragmentHandler(d))
		pr.With(rbac.Require("plan:view")).Post("/exams/{examID}/select", SelectExamHandler(d))
		pr.With(rbac.Require("plan:view")).Get("/plan", PlanTabHandler(d))
		pr.With(rbac.Require("exam:create")).Get("/create", CreateTabHandler(d))
		pr.With(rbac.Require("exam:create")).Post("/create", CreateFormHandler(d))
	})

	// JSON API
	r.Route("/api", func(ar chi.Router) {
		ar.Use(cors.Handler(cors.Options{
			AllowedOrigins:   o.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		ar.Post("/auth/login", authmw.LoginHandler(o.Auth, o.Users))

		ar.Group(func(pr chi.Router) {
			pr.Use(authmw.JWTMiddleware(o.Auth, ""))

			pr.With(rbac.Require("exam:view")).Get("/exams", ListExamsHandler(d))
			pr.With(rbac.Require("exam:create")).Post("/exams", CreateExamHandler(d))
			pr.With(rbac.Require("exam:export")).Get("/exams/export.xlsx", ExportXLSXHandler(d))
			pr.With(rbac.Require("exam:create")).Post("/exams/import", ImportXLSXHandler(d))
			pr.With(rbac.Require("exam:view")).Get("/exams/{examID}", GetExamHandler(d))
			pr.With(rbac.Require("exam:delete")).Delete("/exams/{examID}", DeleteExamHandler(d))
			pr.With(rbac.Require("plan:view")).Get("/plan/{examID}", PlanHandler(d))

			if d.Blobs != nil {
				pr.Route("/imports", func(ir chi.Router) {
					ir.Use(rbac.Require("exam:create"))
					MountImports(ir, d.Blobs)
				})
			}
		})
	})
	return r
}
