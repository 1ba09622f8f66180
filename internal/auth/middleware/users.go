package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/examplanner/internal/rbac"
)

var ErrBadCredentials = errors.New("invalid credentials")

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CreateUser stores a new account with a bcrypt hash of password.
func CreateUser(ctx context.Context, db *sql.DB, username, password, role string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, errors.New("username and password required")
	}
	if role == "" {
		role = "student"
	}
	if !rbac.KnownRole(role) {
		return User{}, fmt.Errorf("unknown role %q", role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u := User{ID: uuid.NewString(), Username: username, Role: role}
	_, err = db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1,$2,$3,$4,$5)`, u.ID, u.Username, string(hash), u.Role, time.Now().Unix())
	if err != nil {
		return User{}, fmt.Errorf("insert user %s: %w", username, err)
	}
	return u, nil
}

func VerifyUser(ctx context.Context, db *sql.DB, username, password string) (User, error) {
	var u User
	var hash string
	err := db.QueryRowContext(ctx, `SELECT id, username, role, password_hash FROM users WHERE username=$1`,
		strings.TrimSpace(username)).Scan(&u.ID, &u.Username, &u.Role, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrBadCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrBadCredentials
	}
	return u, nil
}
