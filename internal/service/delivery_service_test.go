package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/service"
	"github.com/unclebandit/campaignhub-backend/internal/testutil"
)

func newDeliveryService(send service.SendFunc) (*service.DeliveryService, *testutil.CampaignRepo, *testutil.OutboundRepo) {
	campaignRepo := testutil.NewCampaignRepo()
	outboundRepo := testutil.NewOutboundRepo()
	customerRepo := &testutil.CustomerRepo{Customers: map[int]*model.Customer{
		1: {ID: 1, Phone: "+254700000001", FirstName: "Alice", LastName: "Smith", Location: "Nairobi", PreferredProduct: "Shoes"},
	}}

	d := &service.DeliveryService{
		OutboundRepo: outboundRepo,
		CampaignRepo: campaignRepo,
		CustomerRepo: customerRepo,
		SenderRepo:   testutil.NewSenderRepo(),
		Send:         send,
		Log:          zap.NewNop(),
	}
	return d, campaignRepo, outboundRepo
}

func TestProcessDeliversAndMarksSent(t *testing.T) {
	var gotPhone, gotContent string
	d, campaigns, outbound := newDeliveryService(func(sender, phone, content string) error {
		gotPhone = phone
		gotContent = content
		return nil
	})

	campaigns.Create(&model.Campaign{
		Name:         "Promo",
		Status:       model.CampaignStatusSending,
		BaseTemplate: "Hi {first_name}!",
	})
	msg, err := outbound.GetOrCreate(1, 1)
	require.NoError(t, err)

	require.NoError(t, d.Process(msg.ID))

	assert.Equal(t, "+254700000001", gotPhone)
	assert.Equal(t, "Hi Alice!", gotContent)

	updated, err := outbound.GetByID(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusSent, updated.Status)
	assert.Equal(t, "Hi Alice!", updated.RenderedContent)
	assert.Empty(t, updated.LastError)
}

func TestProcessRecordsFailure(t *testing.T) {
	d, campaigns, outbound := newDeliveryService(func(sender, phone, content string) error {
		return errors.New("provider unavailable")
	})

	campaigns.Create(&model.Campaign{
		Name:         "Promo",
		Status:       model.CampaignStatusSending,
		BaseTemplate: "Hi!",
	})
	msg, err := outbound.GetOrCreate(1, 1)
	require.NoError(t, err)

	err = d.Process(msg.ID)
	require.Error(t, err, "failed delivery must return an error so the queue retries")

	updated, err := outbound.GetByID(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusFailed, updated.Status)
	assert.Contains(t, updated.LastError, "provider unavailable")
	assert.Equal(t, 1, updated.RetryCount)
}

func TestProcessSkipsAlreadySent(t *testing.T) {
	sends := 0
	d, campaigns, outbound := newDeliveryService(func(sender, phone, content string) error {
		sends++
		return nil
	})

	campaigns.Create(&model.Campaign{
		Name:         "Promo",
		Status:       model.CampaignStatusSending,
		BaseTemplate: "Hi!",
	})
	msg, err := outbound.GetOrCreate(1, 1)
	require.NoError(t, err)
	require.NoError(t, outbound.Update(&model.OutboundMessage{
		ID: msg.ID, CampaignID: 1, CustomerID: 1, Status: model.MessageStatusSent,
	}))

	require.NoError(t, d.Process(msg.ID))
	assert.Zero(t, sends, "redelivered jobs for sent messages must not re-send")
}

func TestProcessUsesCampaignSenderAddress(t *testing.T) {
	var gotSender string
	d, campaigns, outbound := newDeliveryService(func(sender, phone, content string) error {
		gotSender = sender
		return nil
	})

	require.NoError(t, d.SenderRepo.Create(&model.Sender{
		Label:   "Shortcode",
		Address: "+254711111111",
		Channel: model.ChannelSMS,
		Status:  model.SenderStatusActive,
	}))
	senderID := 1
	campaigns.Create(&model.Campaign{
		Name:         "Promo",
		Status:       model.CampaignStatusSending,
		BaseTemplate: "Hi!",
		SenderID:     &senderID,
	})
	msg, err := outbound.GetOrCreate(1, 1)
	require.NoError(t, err)

	require.NoError(t, d.Process(msg.ID))
	assert.Equal(t, "+254711111111", gotSender)
}
