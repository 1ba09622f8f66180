package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mind-engage/examplanner/internal/db"
	"github.com/mind-engage/examplanner/internal/rbac"
)

func TestCreateAndVerifyUser(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:authusers?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	defer dbh.Close()

	u, err := CreateUser(ctx, dbh, " bo ", "pw", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Username != "bo" || u.Role != "student" || u.ID == "" {
		t.Fatalf("unexpected user %#v", u)
	}
	if _, err := CreateUser(ctx, dbh, "bo", "other", "student"); err == nil {
		t.Fatalf("duplicate username accepted")
	}
	if _, err := CreateUser(ctx, dbh, "cy", "pw", "janitor"); err == nil {
		t.Fatalf("unknown role accepted")
	}

	got, err := VerifyUser(ctx, dbh, "bo", "pw")
	if err != nil || got.ID != u.ID {
		t.Fatalf("verify: %v %#v", err, got)
	}
	if _, err := VerifyUser(ctx, dbh, "bo", "nope"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := VerifyUser(ctx, dbh, "ghost", "pw"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("unknown user: %v", err)
	}
}

func TestLoginHandler_JSON(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:authlogin?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	defer dbh.Close()
	if _, err := CreateUser(ctx, dbh, "dee", "pw", "viewer"); err != nil {
		t.Fatal(err)
	}
	a := NewAuthService("k", false)
	h := LoginHandler(a, dbh)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"dee","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var out map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	c, err := a.Parse(out["access_token"])
	if err != nil || c.Role != "viewer" || c.Name != "dee" {
		t.Fatalf("token: %v %#v", err, c)
	}
	if len(rr.Result().Cookies()) == 0 {
		t.Fatalf("cookie not set")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"dee","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("k", false)
	var sub, name, role string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub = SubjectFromContext(r.Context())
		name = UsernameFromContext(r.Context())
		role = rbac.RoleFromContext(r.Context())
	})

	tok, err := a.IssueJWT("u1", "una", "admin")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	rr := httptest.NewRecorder()
	JWTMiddleware(a, "")(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || sub != "u1" || name != "una" || role != "admin" {
		t.Fatalf("cookie auth: %d %q %q %q", rr.Code, sub, name, role)
	}

	// wrong key
	other, _ := NewAuthService("other", false).IssueJWT("u1", "una", "admin")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	rr = httptest.NewRecorder()
	JWTMiddleware(a, "")(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	// HTML routes bounce to the login page
	rr = httptest.NewRecorder()
	JWTMiddleware(a, "/login")(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/exams", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect, got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestParse_RejectsNoneAlg(t *testing.T) {
	a := NewAuthService("k", false)
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Sub: "u1", Role: "admin"})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Parse(s); err == nil {
		t.Fatalf("unsigned token accepted")
	}
}

func TestLogoutHandler_RunsHookForValidToken(t *testing.T) {
	a := NewAuthService("k", false)
	var cleared []string
	h := LogoutHandler(a, func(_ context.Context, sub string) error {
		cleared = append(cleared, sub)
		return nil
	})

	tok, _ := a.IssueJWT("u1", "una", "student")
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	rr := httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("unexpected logout response %d %q", rr.Code, rr.Header().Get("Location"))
	}

	// no token, or a forged one, never reaches the hook
	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))
	forged, _ := NewAuthService("other", false).IssueJWT("u2", "x", "student")
	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: forged})
	h(httptest.NewRecorder(), req)

	if len(cleared) != 1 || cleared[0] != "u1" {
		t.Fatalf("hook calls: %v", cleared)
	}
}

func TestUsernameFromContext_FallsBackToSubject(t *testing.T) {
	ctx := WithSubject(context.Background(), "u9")
	if got := UsernameFromContext(ctx); got != "u9" {
		t.Fatalf("got %q", got)
	}
	if got := UsernameFromContext(WithUsername(ctx, "nia")); got != "nia" {
		t.Fatalf("got %q", got)
	}
}
