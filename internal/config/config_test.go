package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DB_DRIVER", "STATE_DRIVER", "CORS_ORIGINS", "PLAN_REST_DAY", "PLAN_REVISION_DAYS", "SECURE_COOKIE"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Mode != ModeOffline || c.HTTPAddr != ":8080" || c.DBDriver != "sqlite" || c.StateDriver != "memory" {
		t.Fatalf("unexpected defaults %#v", c)
	}
	if c.SecureCookie {
		t.Fatalf("offline mode should not force secure cookies")
	}
	if c.PlanRestDay != time.Sunday || c.PlanRevisionDays != 2 {
		t.Fatalf("plan defaults: %v %d", c.PlanRestDay, c.PlanRevisionDays)
	}
	want := []string{"http://localhost:3000", "http://localhost:8080"}
	if !reflect.DeepEqual(c.CORSOrigins, want) {
		t.Fatalf("origins %v", c.CORSOrigins)
	}
}

func TestFromEnv_Online(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("SECURE_COOKIE", "")
	t.Setenv("CORS_ORIGINS", " https://a.test , ,https://b.test")
	t.Setenv("REDIS_DB", "3")
	c := FromEnv()
	if !c.SecureCookie || c.RedisDB != 3 {
		t.Fatalf("online config %#v", c)
	}
	if !reflect.DeepEqual(c.CORSOrigins, []string{"https://a.test", "https://b.test"}) {
		t.Fatalf("origins %v", c.CORSOrigins)
	}
}

func TestWeekdayOr(t *testing.T) {
	cases := map[string]time.Weekday{
		"":         time.Sunday,
		"Saturday": time.Saturday,
		"3":        time.Wednesday,
		"none":     -1,
		"7":        time.Sunday,
		"someday":  time.Sunday,
	}
	for in, want := range cases {
		t.Setenv("PLAN_REST_DAY", in)
		if got := weekdayOr("PLAN_REST_DAY", time.Sunday); got != want {
			t.Errorf("%q: got %v want %v", in, got, want)
		}
	}
}
