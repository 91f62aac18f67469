package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/unclebandit/campaignhub-backend/internal/model"
)

// ErrSessionNotFound is deliberately distinct from the entity not-found
// errors: an unknown session is an auth condition, never a 404.
var ErrSessionNotFound = errors.New("session not found")

type SessionRepositoryInterface interface {
	Put(s *model.Session) error
	Get(id string) (*model.Session, error)
	Revoke(id string, at time.Time) error
}

type SessionRepository struct {
	DB *sql.DB
}

var _ SessionRepositoryInterface = (*SessionRepository)(nil)

func (r *SessionRepository) Put(s *model.Session) error {
	query := `
        INSERT INTO sessions (id, user_id, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.DB.Exec(query, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *SessionRepository) Get(id string) (*model.Session, error) {
	query := `SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id=$1`
	var s model.Session
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &s.RevokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Revoke(id string, at time.Time) error {
	res, err := r.DB.Exec(`UPDATE sessions SET revoked_at=$1 WHERE id=$2 AND revoked_at IS NULL`, at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
