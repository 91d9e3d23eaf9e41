// Package session persists signed-in users server side. The browser only
// ever holds a signed session ID; the backend token stays here.
package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/leonexus/site/api"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string
	Token     string
	User      api.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store keeps sessions in the Session table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// NewID returns a random 128-bit session ID.
func NewID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Create starts a session for u holding the backend token.
func (s *Store) Create(ctx context.Context, token string, u api.User, ttl time.Duration) (Session, error) {
	id, err := NewID()
	if err != nil {
		return Session{}, err
	}
	now := s.now().UTC()
	sess := Session{
		ID:        id,
		Token:     token,
		User:      u,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO Session
		(id, token, user_id, username, email, first_name, last_name, role, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Token, u.ID, u.Username, u.Email, u.FirstName, u.LastName, string(u.Role),
		sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Get returns a live session. Expired rows are reported as ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, token, user_id, username, email,
		first_name, last_name, role, created_at, expires_at
		FROM Session WHERE id = ?`, id)

	var sess Session
	var role string
	err := row.Scan(&sess.ID, &sess.Token, &sess.User.ID, &sess.User.Username, &sess.User.Email,
		&sess.User.FirstName, &sess.User.LastName, &role, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("select session: %w", err)
	}
	sess.User.Role = api.Role(role)

	if sess.Expired(s.now()) {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// UpdateUser refreshes the cached account details after a profile change.
func (s *Store) UpdateUser(ctx context.Context, id string, u api.User) error {
	_, err := s.db.ExecContext(ctx, `UPDATE Session
		SET username = ?, email = ?, first_name = ?, last_name = ?, role = ?
		WHERE id = ?`,
		u.Username, u.Email, u.FirstName, u.LastName, string(u.Role), id)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM Session WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes expired sessions and returns how many were removed.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM Session WHERE expires_at <= ?`, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
