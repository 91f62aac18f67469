package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
)

type SenderRepositoryInterface interface {
	Create(s *model.Sender) error
	GetByID(id int) (*model.Sender, error)
	ListAll() ([]model.Sender, error)
	UpdateStatus(id int, status string) error
}

type SenderRepository struct {
	DB *sql.DB
}

var _ SenderRepositoryInterface = (*SenderRepository)(nil)

func (r *SenderRepository) Create(s *model.Sender) error {
	s.CreatedAt = time.Now()
	if s.Status == "" {
		s.Status = model.SenderStatusActive
	}
	query := `
        INSERT INTO senders (label, address, channel, status, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, s.Label, s.Address, s.Channel, s.Status, s.CreatedAt).Scan(&s.ID)
}

func (r *SenderRepository) GetByID(id int) (*model.Sender, error) {
	query := `
        SELECT id, label, address, channel, status, created_at
        FROM senders WHERE id=$1
    `
	var s model.Sender
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.Label, &s.Address, &s.Channel, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewSenderNotFound(id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SenderRepository) ListAll() ([]model.Sender, error) {
	query := `
        SELECT id, label, address, channel, status, created_at
        FROM senders ORDER BY id
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	senders := []model.Sender{}
	for rows.Next() {
		var s model.Sender
		if err := rows.Scan(&s.ID, &s.Label, &s.Address, &s.Channel, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		senders = append(senders, s)
	}
	return senders, rows.Err()
}

func (r *SenderRepository) UpdateStatus(id int, status string) error {
	res, err := r.DB.Exec(`UPDATE senders SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewSenderNotFound(id)
	}
	return nil
}
