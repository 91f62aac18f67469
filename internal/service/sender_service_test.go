package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/service"
	"github.com/unclebandit/campaignhub-backend/internal/testutil"
)

func TestCreateSender(t *testing.T) {
	svc := &service.SenderService{SenderRepo: testutil.NewSenderRepo()}

	s, err := svc.Create(service.CreateSenderParams{
		Label:   "Main shortcode",
		Address: "+254700000000",
		Channel: model.ChannelSMS,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SenderStatusActive, s.Status)
	assert.NotZero(t, s.ID)
}

func TestCreateSenderValidation(t *testing.T) {
	svc := &service.SenderService{SenderRepo: testutil.NewSenderRepo()}

	tests := []struct {
		name   string
		params service.CreateSenderParams
		want   string
	}{
		{
			name:   "sms sender needs E.164 address",
			params: service.CreateSenderParams{Label: "x", Address: "0700123456", Channel: model.ChannelSMS},
			want:   "E.164",
		},
		{
			name:   "email sender needs an email address",
			params: service.CreateSenderParams{Label: "x", Address: "not-an-email", Channel: model.ChannelEmail},
			want:   "email",
		},
		{
			name:   "channel must be known",
			params: service.CreateSenderParams{Label: "x", Address: "+254700000000", Channel: "PIGEON"},
			want:   "channel",
		},
		{
			name:   "label required",
			params: service.CreateSenderParams{Address: "+254700000000", Channel: model.ChannelSMS},
			want:   "label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.params)
			ve, ok := apperrors.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			found := false
			for _, m := range ve.Errors {
				if strings.Contains(strings.ToLower(m), strings.ToLower(tt.want)) {
					found = true
				}
			}
			assert.True(t, found, "expected %q in %v", tt.want, ve.Errors)
		})
	}
}

func TestDisableSender(t *testing.T) {
	repo := testutil.NewSenderRepo()
	svc := &service.SenderService{SenderRepo: repo}

	s, err := svc.Create(service.CreateSenderParams{
		Label:   "Main",
		Address: "+254700000000",
		Channel: model.ChannelSMS,
	})
	require.NoError(t, err)

	disabled, err := svc.Disable(s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SenderStatusDisabled, disabled.Status)

	_, err = svc.Disable(99)
	assert.True(t, apperrors.IsNotFound(err))
}
