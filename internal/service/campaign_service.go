package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/queue"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	CustomerRepo repository.CustomerRepositoryInterface
	SenderRepo   repository.SenderRepositoryInterface
	OutboundRepo repository.OutboundMessageRepositoryInterface
	Queue        queue.Publisher
	QueueName    string
	Log          *zap.Logger
}

// CreateCampaignParams groups the create parameters instead of a long
// positional argument list.
type CreateCampaignParams struct {
	Name         string
	Channel      string
	BaseTemplate string
	SenderID     *int
	ScheduledAt  *string // RFC3339
}

// Pagination describes a page of a list result.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// CampaignDetails is a campaign together with its delivery counters.
type CampaignDetails struct {
	model.Campaign
	Stats map[string]int `json:"stats"`
}

// SendCampaignResult reports what a send call queued.
type SendCampaignResult struct {
	CampaignID     int    `json:"campaign_id"`
	MessagesQueued int    `json:"messages_queued"`
	Status         string `json:"status"`
	MessageIDs     []int  `json:"message_ids"`
}

func (s *CampaignService) Create(p CreateCampaignParams) (*model.Campaign, error) {
	var msgs []string
	if strings.TrimSpace(p.Name) == "" {
		msgs = append(msgs, "name is required")
	}
	if p.Channel != model.ChannelSMS && p.Channel != model.ChannelEmail {
		msgs = append(msgs, fmt.Sprintf("channel must be %s or %s", model.ChannelSMS, model.ChannelEmail))
	}
	if strings.TrimSpace(p.BaseTemplate) == "" {
		msgs = append(msgs, "base_template is required")
	}

	var scheduledAt *time.Time
	if p.ScheduledAt != nil && *p.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, *p.ScheduledAt)
		if err != nil {
			msgs = append(msgs, "scheduled_at must be RFC3339")
		} else {
			scheduledAt = &t
		}
	}
	if len(msgs) > 0 {
		return nil, &apperrors.ValidationError{Errors: msgs}
	}

	if p.SenderID != nil {
		sender, err := s.SenderRepo.GetByID(*p.SenderID)
		if err != nil {
			return nil, err
		}
		if sender.Status != model.SenderStatusActive {
			return nil, apperrors.NewValidation("sender is disabled")
		}
		if sender.Channel != p.Channel {
			return nil, apperrors.NewValidation("sender channel does not match campaign channel")
		}
	}

	c := &model.Campaign{
		Name:         p.Name,
		Channel:      p.Channel,
		BaseTemplate: p.BaseTemplate,
		SenderID:     p.SenderID,
		Status:       model.CampaignStatusDraft,
		ScheduledAt:  scheduledAt,
	}
	if scheduledAt != nil {
		c.Status = model.CampaignStatusScheduled
	}

	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) Get(id int) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

// Details returns the campaign with its outbound message counters.
func (s *CampaignService) Details(id int) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	stats, err := s.CampaignRepo.GetCampaignStats(id)
	if err != nil {
		return nil, err
	}

	return &CampaignDetails{Campaign: *campaign, Stats: stats}, nil
}

// List fetches campaigns with pagination. Page bounds are clamped, not
// rejected.
func (s *CampaignService) List(page, pageSize int, channel, status string) ([]model.Campaign, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, channel, status)
	if err != nil {
		return nil, Pagination{}, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	pagination := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	return campaigns, pagination, nil
}

// UpdateCampaignParams carries the updatable campaign fields. Nil
// pointers leave the current value untouched.
type UpdateCampaignParams struct {
	ID           int
	Name         *string
	BaseTemplate *string
	SenderID     *int
	ScheduledAt  *string // RFC3339
}

func (s *CampaignService) Update(p UpdateCampaignParams) (*model.Campaign, error) {
	c, err := s.CampaignRepo.GetByID(p.ID)
	if err != nil {
		return nil, err
	}
	if c.Status != model.CampaignStatusDraft && c.Status != model.CampaignStatusScheduled {
		return nil, apperrors.NewValidation(fmt.Sprintf("campaign cannot be updated in status %s", c.Status))
	}

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, apperrors.NewValidation("name cannot be empty")
		}
		c.Name = *p.Name
	}
	if p.BaseTemplate != nil {
		if strings.TrimSpace(*p.BaseTemplate) == "" {
			return nil, apperrors.NewValidation("base_template cannot be empty")
		}
		c.BaseTemplate = *p.BaseTemplate
	}
	if p.SenderID != nil {
		sender, err := s.SenderRepo.GetByID(*p.SenderID)
		if err != nil {
			return nil, err
		}
		if sender.Status != model.SenderStatusActive {
			return nil, apperrors.NewValidation("sender is disabled")
		}
		if sender.Channel != c.Channel {
			return nil, apperrors.NewValidation("sender channel does not match campaign channel")
		}
		c.SenderID = p.SenderID
	}
	if p.ScheduledAt != nil {
		t, err := time.Parse(time.RFC3339, *p.ScheduledAt)
		if err != nil {
			return nil, apperrors.NewValidation("scheduled_at must be RFC3339")
		}
		c.ScheduledAt = &t
		c.Status = model.CampaignStatusScheduled
	}

	if err := s.CampaignRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a draft campaign. Anything past draft has delivery
// history and must be kept.
func (s *CampaignService) Delete(id int) error {
	c, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c.Status != model.CampaignStatusDraft {
		return apperrors.NewValidation(fmt.Sprintf("only %s campaigns can be deleted", model.CampaignStatusDraft))
	}
	return s.CampaignRepo.Delete(id)
}

// Preview renders a campaign template for one customer without sending.
func (s *CampaignService) Preview(campaignID, customerID int, overrideTemplate *string) (string, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return "", err
	}

	customer, err := s.CustomerRepo.GetByID(customerID)
	if err != nil {
		return "", err
	}

	template := campaign.BaseTemplate
	if overrideTemplate != nil && strings.TrimSpace(*overrideTemplate) != "" {
		template = *overrideTemplate
	}
	if strings.TrimSpace(template) == "" {
		return "", apperrors.NewValidation("template cannot be empty")
	}

	return RenderForCustomer(template, customer), nil
}

// Send queues one outbound message per customer. Creating the message
// row is idempotent, so resending a campaign never double-messages a
// customer.
func (s *CampaignService) Send(campaignID int, customerIDs []int) (*SendCampaignResult, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	switch campaign.Status {
	case model.CampaignStatusDraft, model.CampaignStatusScheduled, model.CampaignStatusSending:
	default:
		return nil, apperrors.NewValidation(fmt.Sprintf("campaign cannot be sent in status %s", campaign.Status))
	}

	if len(customerIDs) == 0 {
		return nil, apperrors.NewValidation("customer_ids is required")
	}

	result := &SendCampaignResult{
		CampaignID: campaignID,
		Status:     model.CampaignStatusSending,
		MessageIDs: []int{},
	}

	for _, customerID := range customerIDs {
		msg, err := s.OutboundRepo.GetOrCreate(campaignID, customerID)
		if err != nil {
			s.Log.Warn("failed to create outbound message",
				zap.Int("campaign_id", campaignID),
				zap.Int("customer_id", customerID),
				zap.Error(err))
			continue
		}

		if msg.RenderedContent == "" {
			rendered, err := s.Preview(campaignID, customerID, nil)
			if err != nil {
				s.Log.Warn("failed to render message",
					zap.Int("customer_id", customerID),
					zap.Error(err))
				continue
			}
			if err := s.OutboundRepo.UpdateContent(msg.ID, rendered); err != nil {
				s.Log.Warn("failed to store rendered content", zap.Error(err))
				continue
			}
			msg.RenderedContent = rendered
		}

		if err := s.Queue.Publish(s.QueueName, msg.ID); err != nil {
			s.Log.Warn("failed to enqueue message", zap.Int("message_id", msg.ID), zap.Error(err))
			continue
		}

		result.MessageIDs = append(result.MessageIDs, msg.ID)
		result.MessagesQueued++
	}

	if campaign.Status != model.CampaignStatusSending {
		if err := s.CampaignRepo.UpdateStatus(campaignID, model.CampaignStatusSending); err != nil {
			return result, err
		}
	}

	return result, nil
}
