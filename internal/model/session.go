package model

import "time"

// Session is an authenticated login. A request may carry no session at
// all, in which case handlers see nil.
type Session struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

// Active reports whether the session is usable at the given time.
func (s *Session) Active(now time.Time) bool {
	if s == nil {
		return false
	}
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
