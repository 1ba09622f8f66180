package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/mind-engage/examplanner/internal/api/http"
	auth "github.com/mind-engage/examplanner/internal/auth/middleware"
	"github.com/mind-engage/examplanner/internal/config"
	"github.com/mind-engage/examplanner/internal/dates"
	"github.com/mind-engage/examplanner/internal/db"
	"github.com/mind-engage/examplanner/internal/exam"
	"github.com/mind-engage/examplanner/internal/examlist"
	"github.com/mind-engage/examplanner/internal/plan"
	"github.com/mind-engage/examplanner/internal/session"
	storage "github.com/mind-engage/examplanner/internal/storage"
	syncx "github.com/mind-engage/examplanner/internal/sync"
	"github.com/mind-engage/examplanner/internal/web"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	// --- Selection state ---
	var state session.Store
	switch cfg.StateDriver {
	case "redis":
		rdb, err := session.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("state store: %v", err)
		}
		defer rdb.Close()
		state = session.NewRedis(rdb)
	case "memory", "":
		state = session.NewMemory()
	default:
		log.Fatalf("unsupported STATE_DRIVER %q", cfg.StateDriver)
	}

	cal, err := dates.NewLocal(cfg.TimeZone)
	if err != nil {
		log.Fatalf("calendar: %v", err)
	}
	pages, err := web.NewEngine()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	deps := api.Deps{
		Exams:  exam.NewSQLStore(dbh, cfg.DBDriver),
		State:  state,
		Events: syncx.NewEventRepo(dbh),
		Blobs:  bs,
		Cal:    cal,
		View:   examlist.New(cal),
		Pages:  pages,
		PlanOpts: plan.Options{
			RestDay:      cfg.PlanRestDay,
			RevisionDays: cfg.PlanRevisionDays,
		},
	}
	r := api.NewRouter(deps, api.RouterOptions{
		Auth:        auth.NewAuthService(cfg.AuthSecret, cfg.SecureCookie),
		Users:       dbh,
		CORSOrigins: cfg.CORSOrigins,
	})

	log.Printf("listening on %s (mode=%s, db=%s, state=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.StateDriver)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	log.Fatal(srv.ListenAndServe())
}
