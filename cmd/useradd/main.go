package main

import (
	"context"
	"flag"
	"log"
	"time"

	auth "github.com/mind-engage/examplanner/internal/auth/middleware"
	"github.com/mind-engage/examplanner/internal/config"
	"github.com/mind-engage/examplanner/internal/db"
)

func main() {
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", "student", "student|viewer|admin")
	flag.Parse()

	cfg := config.FromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	u, err := auth.CreateUser(ctx, dbh, *username, *password, *role)
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	log.Printf("created %s (%s) id=%s", u.Username, u.Role, u.ID)
}
