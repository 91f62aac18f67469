package model

import "time"

// Campaign status values.
const (
	CampaignStatusDraft     = "DRAFT"
	CampaignStatusScheduled = "SCHEDULED"
	CampaignStatusSending   = "SENDING"
	CampaignStatusCompleted = "COMPLETED"
)

// Campaign channel values.
const (
	ChannelSMS   = "SMS"
	ChannelEmail = "EMAIL"
)

type Campaign struct {
	ID           int        `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Channel      string     `db:"channel" json:"channel"`
	Status       string     `db:"status" json:"status"`
	BaseTemplate string     `db:"base_template" json:"base_template"`
	SenderID     *int       `db:"sender_id" json:"sender_id,omitempty"`
	ScheduledAt  *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
