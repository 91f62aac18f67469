package model

import "time"

// Sender status values.
const (
	SenderStatusActive   = "ACTIVE"
	SenderStatusDisabled = "DISABLED"
)

// Sender is an identity campaigns send from (a short code, phone number
// or email address registered with the delivery provider).
type Sender struct {
	ID        int       `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	Address   string    `db:"address" json:"address"`
	Channel   string    `db:"channel" json:"channel"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
