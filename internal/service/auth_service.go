package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
	"github.com/unclebandit/campaignhub-backend/internal/session"
)

// ErrInvalidCredentials deliberately does not say whether the email or
// the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	UserRepo repository.UserRepositoryInterface
	Sessions *session.Manager
}

type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

func (s *AuthService) Register(p RegisterParams) (*model.User, error) {
	var msgs []string
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" || !strings.Contains(email, "@") {
		msgs = append(msgs, "email is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		msgs = append(msgs, "name is required")
	}
	if len(p.Password) < 8 {
		msgs = append(msgs, "password must be at least 8 characters")
	}
	if len(msgs) > 0 {
		return nil, &apperrors.ValidationError{Errors: msgs}
	}

	if _, err := s.UserRepo.GetByEmail(email); err == nil {
		return nil, apperrors.NewValidation("email is already registered")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         p.Name,
		PasswordHash: string(hash),
	}
	if err := s.UserRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	u, err := s.UserRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := s.Sessions.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Logout revokes the session.
func (s *AuthService) Logout(sessionID string) error {
	return s.Sessions.Revoke(sessionID)
}

// Current resolves the session's user.
func (s *AuthService) Current(sess *model.Session) (*model.User, error) {
	return s.UserRepo.GetByID(sess.UserID)
}
