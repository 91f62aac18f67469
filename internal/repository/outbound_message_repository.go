package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
)

type OutboundMessageRepositoryInterface interface {
	GetOrCreate(campaignID, customerID int) (*model.OutboundMessage, error)
	GetByID(id int) (*model.OutboundMessage, error)
	UpdateContent(id int, content string) error
	UpdateStatus(id int, status, lastError string) error
	Update(msg *model.OutboundMessage) error
}

type OutboundMessageRepository struct {
	DB *sql.DB
}

var _ OutboundMessageRepositoryInterface = (*OutboundMessageRepository)(nil)

// GetOrCreate inserts a pending message for the campaign/customer pair,
// returning the existing row if one was already created. Sending the
// same campaign twice must not double-message anyone.
func (r *OutboundMessageRepository) GetOrCreate(campaignID, customerID int) (*model.OutboundMessage, error) {
	existing, err := r.getByPair(campaignID, customerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query := `
        INSERT INTO outbound_messages (campaign_id, customer_id, status, rendered_content, last_error, retry_count, created_at, updated_at)
        VALUES ($1, $2, $3, '', '', 0, NOW(), NOW())
        RETURNING id, status, retry_count, created_at, updated_at
    `
	var msg model.OutboundMessage
	err = r.DB.QueryRow(query, campaignID, customerID, model.MessageStatusPending).Scan(
		&msg.ID, &msg.Status, &msg.RetryCount, &msg.CreatedAt, &msg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	msg.CampaignID = campaignID
	msg.CustomerID = customerID
	return &msg, nil
}

func (r *OutboundMessageRepository) getByPair(campaignID, customerID int) (*model.OutboundMessage, error) {
	query := `
        SELECT id, campaign_id, customer_id, status, rendered_content, last_error, retry_count, created_at, updated_at
        FROM outbound_messages
        WHERE campaign_id=$1 AND customer_id=$2
    `
	var msg model.OutboundMessage
	err := r.DB.QueryRow(query, campaignID, customerID).Scan(
		&msg.ID, &msg.CampaignID, &msg.CustomerID, &msg.Status,
		&msg.RenderedContent, &msg.LastError, &msg.RetryCount,
		&msg.CreatedAt, &msg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *OutboundMessageRepository) GetByID(id int) (*model.OutboundMessage, error) {
	query := `
        SELECT id, campaign_id, customer_id, status, rendered_content, last_error, retry_count, created_at, updated_at
        FROM outbound_messages
        WHERE id=$1
    `
	var msg model.OutboundMessage
	err := r.DB.QueryRow(query, id).Scan(
		&msg.ID, &msg.CampaignID, &msg.CustomerID, &msg.Status,
		&msg.RenderedContent, &msg.LastError, &msg.RetryCount,
		&msg.CreatedAt, &msg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewMessageNotFound(id)
		}
		return nil, err
	}
	return &msg, nil
}

func (r *OutboundMessageRepository) UpdateContent(id int, content string) error {
	query := `UPDATE outbound_messages SET rendered_content=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.DB.Exec(query, content, id)
	return err
}

func (r *OutboundMessageRepository) UpdateStatus(id int, status, lastError string) error {
	query := `UPDATE outbound_messages SET status=$1, last_error=$2, retry_count=retry_count+1, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, status, lastError, id)
	return err
}

func (r *OutboundMessageRepository) Update(msg *model.OutboundMessage) error {
	msg.UpdatedAt = time.Now()
	query := `
        UPDATE outbound_messages
        SET status=$1, rendered_content=$2, last_error=$3, retry_count=$4, updated_at=$5
        WHERE id=$6
    `
	_, err := r.DB.Exec(query, msg.Status, msg.RenderedContent, msg.LastError, msg.RetryCount, msg.UpdatedAt, msg.ID)
	return err
}
