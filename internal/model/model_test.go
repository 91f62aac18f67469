package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Enum values are upper snake case on the wire.
func TestEnumValuesAreUpperSnake(t *testing.T) {
	upperSnake := regexp.MustCompile(`^[A-Z]+(_[A-Z]+)*$`)

	values := []string{
		CampaignStatusDraft,
		CampaignStatusScheduled,
		CampaignStatusSending,
		CampaignStatusCompleted,
		MessageStatusPending,
		MessageStatusSent,
		MessageStatusFailed,
		SenderStatusActive,
		SenderStatusDisabled,
		ChannelSMS,
		ChannelEmail,
	}

	for _, v := range values {
		assert.Regexp(t, upperSnake, v)
	}
}

func TestSessionActive(t *testing.T) {
	now := mustParse(t, "2026-08-26T12:00:00Z")

	s := Session{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, s.Active(now))

	expired := Session{ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.Active(now))

	revokedAt := now.Add(-time.Minute)
	revoked := Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}
	assert.False(t, revoked.Active(now))
}

func mustParse(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}
