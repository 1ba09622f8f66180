package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mind-engage/examplanner/internal/rbac"
)

const (
	CookieName = "examplanner_token"
	tokenTTL   = 8 * time.Hour
)

type AuthService struct {
	hmac         []byte
	secureCookie bool
}

func NewAuthService(secret string, secureCookie bool) *AuthService {
	return &AuthService{hmac: []byte(secret), secureCookie: secureCookie}
}

type Claims struct {
	Sub  string `json:"sub"`
	Name string `json:"name"` // username, for display
	Role string `json:"role"` // student|viewer|admin
	jwt.RegisteredClaims
}

func (a *AuthService) IssueJWT(sub, name, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:  sub,
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "examplanner",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return c, nil
}

func (a *AuthService) setCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(tokenTTL),
	})
}

// LoginHandler accepts JSON {username,password} or a form post from the login
// page. JSON callers get {"access_token"}; form callers are redirected to "/".
// Both get the session cookie.
func LoginHandler(a *AuthService, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isForm := !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if isForm {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "bad form", http.StatusBadRequest)
				return
			}
			req.Username, req.Password = r.PostFormValue("username"), r.PostFormValue("password")
		} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		u, err := VerifyUser(r.Context(), db, req.Username, req.Password)
		if err != nil {
			if !errors.Is(err, ErrBadCredentials) {
				log.Printf("login %q: %v", req.Username, err)
			}
			if isForm {
				http.Redirect(w, r, "/login?failed=1", http.StatusSeeOther)
				return
			}
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT(u.ID, u.Username, u.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		a.setCookie(w, tok)
		if isForm {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	}
}

// LogoutHandler drops the cookie. When the request still carries a valid
// token, onLogout (if set) runs for its subject first.
func LogoutHandler(a *AuthService, onLogout func(ctx context.Context, sub string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tok := tokenFrom(r); tok != "" && onLogout != nil {
			if c, err := a.Parse(tok); err == nil {
				if err := onLogout(r.Context(), c.Sub); err != nil {
					log.Printf("logout %s: %v", c.Sub, err)
				}
			}
		}
		http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: a.secureCookie})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// JWTMiddleware authenticates via bearer header or cookie and stores subject
// and role in the request context. A non-empty loginPath turns failures into
// a redirect instead of a 401, for the HTML tabs.
func JWTMiddleware(a *AuthService, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFrom(r)
			var claims *Claims
			var err error
			if tok == "" {
				err = errors.New("missing bearer")
			} else {
				claims, err = a.Parse(tok)
			}
			if err != nil {
				if loginPath != "" {
					http.Redirect(w, r, loginPath, http.StatusSeeOther)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := WithSubject(r.Context(), claims.Sub)
			ctx = WithUsername(ctx, claims.Name)
			ctx = rbac.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
