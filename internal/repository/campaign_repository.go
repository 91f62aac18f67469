package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error)
	Update(c *model.Campaign) error
	UpdateStatus(campaignID int, status string) error
	Delete(id int) error
	GetCampaignStats(campaignID int) (map[string]int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.CampaignStatusDraft
	}
	query := `
        INSERT INTO campaigns (name, channel, status, base_template, sender_id, scheduled_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.Name, c.Channel, c.Status, c.BaseTemplate, c.SenderID, c.ScheduledAt, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, name, channel, status, base_template, sender_id, scheduled_at, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Channel, &c.Status, &c.BaseTemplate, &c.SenderID, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT id, name, channel, status, base_template, sender_id, scheduled_at, created_at, updated_at FROM campaigns WHERE 1=1`
	args := []any{}
	argPos := 1

	if channel != "" {
		query += fmt.Sprintf(" AND channel=$%d", argPos)
		args = append(args, channel)
		argPos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Channel, &c.Status, &c.BaseTemplate, &c.SenderID, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	countArgs := []any{}
	countPos := 1
	if channel != "" {
		countQuery += fmt.Sprintf(" AND channel=$%d", countPos)
		countArgs = append(countArgs, channel)
		countPos++
	}
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", countPos)
		countArgs = append(countArgs, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET name=$1, base_template=$2, status=$3, sender_id=$4, scheduled_at=$5, updated_at=NOW()
        WHERE id=$6
    `
	res, err := r.DB.Exec(query, c.Name, c.BaseTemplate, c.Status, c.SenderID, c.ScheduledAt, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewCampaignNotFound(c.ID)
	}
	return nil
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=NOW() WHERE id=$2`
	res, err := r.DB.Exec(query, status, campaignID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewCampaignNotFound(campaignID)
	}
	return nil
}

func (r *CampaignRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewCampaignNotFound(id)
	}
	return nil
}

// GetCampaignStats counts outbound messages per status for a campaign.
func (r *CampaignRepository) GetCampaignStats(campaignID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM outbound_messages WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{
		model.MessageStatusPending: 0,
		model.MessageStatusSent:    0,
		model.MessageStatusFailed:  0,
	}
	total := 0
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
		total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	stats["total"] = total
	return stats, nil
}
