package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string // sqlite|postgres
	DBDSN    string

	StateDriver   string // memory|redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BlobBasePath string

	AuthSecret   string
	SecureCookie bool
	CORSOrigins  []string

	// Study plan shaping
	PlanRestDay      time.Weekday
	PlanRevisionDays int

	// IANA zone used for "today"; empty means the process local zone.
	TimeZone string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	defOrigins := "http://localhost:3000,http://localhost:8080"
	if mode == ModeOnline {
		defOrigins = "https://your-frontend.example.com"
	}
	return Config{
		Mode:             mode,
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		DBDriver:         envOr("DB_DRIVER", "sqlite"),
		DBDSN:            envOr("DB_DSN", ""),
		StateDriver:      envOr("STATE_DRIVER", "memory"),
		RedisAddr:        envOr("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envInt("REDIS_DB", 0),
		BlobBasePath:     envOr("BLOB_BASE_PATH", "./data"),
		AuthSecret:       envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		SecureCookie:     envBool("SECURE_COOKIE", mode == ModeOnline),
		CORSOrigins:      csvOr("CORS_ORIGINS", defOrigins),
		PlanRestDay:      weekdayOr("PLAN_REST_DAY", time.Sunday),
		PlanRevisionDays: envInt("PLAN_REVISION_DAYS", 2),
		TimeZone:         os.Getenv("TZ_NAME"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// weekdayOr accepts "sunday".."saturday" or 0..6; "none" disables rest days (-1).
func weekdayOr(k string, def time.Weekday) time.Weekday {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	if v == "" {
		return def
	}
	if v == "none" {
		return -1
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == v {
			return d
		}
	}
	return def
}
