package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
)

type UserRepositoryInterface interface {
	Create(u *model.User) error
	GetByID(id string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func (r *UserRepository) Create(u *model.User) error {
	u.CreatedAt = time.Now()
	query := `
        INSERT INTO users (id, email, name, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.DB.Exec(query, u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	return err
}

func (r *UserRepository) GetByID(id string) (*model.User, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.DB.QueryRow(query, id).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(id)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.DB.QueryRow(query, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(email)
		}
		return nil, err
	}
	return &u, nil
}
