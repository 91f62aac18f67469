package service

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/queue"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
)

// SendFunc hands a rendered message to the delivery provider. It
// returns an error when the provider rejects the message.
type SendFunc func(senderAddress, recipientPhone, content string) error

// DeliveryService processes queued outbound messages: it renders
// content when missing, calls the provider and records the outcome.
type DeliveryService struct {
	OutboundRepo repository.OutboundMessageRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
	CustomerRepo repository.CustomerRepositoryInterface
	SenderRepo   repository.SenderRepositoryInterface
	Send         SendFunc
	Log          *zap.Logger
}

// Process delivers one outbound message by ID. Returning an error
// signals the queue to retry.
func (d *DeliveryService) Process(msgID int) error {
	msg, err := d.OutboundRepo.GetByID(msgID)
	if err != nil {
		return err
	}
	if msg.Status == model.MessageStatusSent {
		// Already delivered, redelivered job. Ack and move on.
		return nil
	}

	campaign, err := d.CampaignRepo.GetByID(msg.CampaignID)
	if err != nil {
		return err
	}
	customer, err := d.CustomerRepo.GetByID(msg.CustomerID)
	if err != nil {
		return err
	}

	content := msg.RenderedContent
	if content == "" {
		content = RenderForCustomer(campaign.BaseTemplate, customer)
	}

	senderAddress := ""
	if campaign.SenderID != nil {
		sender, err := d.SenderRepo.GetByID(*campaign.SenderID)
		if err != nil {
			return err
		}
		senderAddress = sender.Address
	}

	if err := d.Send(senderAddress, customer.Phone, content); err != nil {
		if uerr := d.OutboundRepo.UpdateStatus(msg.ID, model.MessageStatusFailed, err.Error()); uerr != nil {
			d.Log.Error("failed to record delivery failure", zap.Int("message_id", msg.ID), zap.Error(uerr))
		}
		return fmt.Errorf("send message %d: %w", msg.ID, err)
	}

	msg.Status = model.MessageStatusSent
	msg.RenderedContent = content
	msg.LastError = ""
	return d.OutboundRepo.Update(msg)
}

// MockSender stands in for a real delivery provider with a 90%
// success rate. TODO: replace with the SMS/email provider client once
// credentials are provisioned.
func MockSender(senderAddress, recipientPhone, content string) error {
	if rand.Float64() < 0.9 {
		return nil
	}
	return fmt.Errorf("mock provider rejected message")
}

// SubscribeInMemory wires Process into an in-process queue. Production
// deploys run cmd/worker against RabbitMQ instead.
func SubscribeInMemory(q queue.Queue, topic string, d *DeliveryService) error {
	return q.Subscribe(topic, func(payload any) error {
		msgID, ok := payload.(int)
		if !ok {
			d.Log.Warn("invalid payload type on send queue", zap.Any("payload", payload))
			return nil
		}
		return d.Process(msgID)
	})
}
