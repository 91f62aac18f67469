package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
)

const issuer = "campaignhub"

// Manager issues and resolves session tokens. Tokens are HS256 JWTs
// whose ID points at a sessions row, so a token survives only as long
// as its row is unexpired and unrevoked.
type Manager struct {
	Sessions repository.SessionRepositoryInterface
	Secret   []byte
	TTL      time.Duration
	Now      func() time.Time
}

func NewManager(sessions repository.SessionRepositoryInterface, secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		Sessions: sessions,
		Secret:   secret,
		TTL:      ttl,
		Now:      time.Now,
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Issue creates a session row for the user and returns the signed token.
func (m *Manager) Issue(userID string) (string, *model.Session, error) {
	now := m.Now().UTC()
	s := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.TTL),
	}
	if err := m.Sessions.Put(s); err != nil {
		return "", nil, fmt.Errorf("put session: %w", err)
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		UserID: userID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, s, nil
}

// Resolve maps a bearer token to its session. A bad, expired or revoked
// token resolves to (nil, nil): the caller simply has no session.
func (m *Manager) Resolve(token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.Secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.Now),
	)
	if err != nil {
		return nil, nil
	}

	s, err := m.Sessions.Get(claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !s.Active(m.Now().UTC()) {
		return nil, nil
	}
	return s, nil
}

// Revoke invalidates the session. Revoking an already-gone session is
// not an error.
func (m *Manager) Revoke(id string) error {
	err := m.Sessions.Revoke(id, m.Now().UTC())
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil
	}
	return err
}
