package service

import (
	"fmt"
	"strings"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
)

type SenderService struct {
	SenderRepo repository.SenderRepositoryInterface
}

type CreateSenderParams struct {
	Label   string
	Address string
	Channel string
}

func (s *SenderService) Create(p CreateSenderParams) (*model.Sender, error) {
	var msgs []string
	if strings.TrimSpace(p.Label) == "" {
		msgs = append(msgs, "label is required")
	}
	if p.Channel != model.ChannelSMS && p.Channel != model.ChannelEmail {
		msgs = append(msgs, fmt.Sprintf("channel must be %s or %s", model.ChannelSMS, model.ChannelEmail))
	}
	switch {
	case strings.TrimSpace(p.Address) == "":
		msgs = append(msgs, "address is required")
	case p.Channel == model.ChannelSMS && !validPhone(p.Address):
		msgs = append(msgs, "address must be an E.164 phone number for SMS senders")
	case p.Channel == model.ChannelEmail && !strings.Contains(p.Address, "@"):
		msgs = append(msgs, "address must be an email address for EMAIL senders")
	}
	if len(msgs) > 0 {
		return nil, &apperrors.ValidationError{Errors: msgs}
	}

	sender := &model.Sender{
		Label:   p.Label,
		Address: p.Address,
		Channel: p.Channel,
		Status:  model.SenderStatusActive,
	}
	if err := s.SenderRepo.Create(sender); err != nil {
		return nil, err
	}
	return sender, nil
}

func (s *SenderService) Get(id int) (*model.Sender, error) {
	return s.SenderRepo.GetByID(id)
}

func (s *SenderService) List() ([]model.Sender, error) {
	return s.SenderRepo.ListAll()
}

// Disable takes a sender out of rotation. Campaigns already referencing
// it keep their history.
func (s *SenderService) Disable(id int) (*model.Sender, error) {
	if err := s.SenderRepo.UpdateStatus(id, model.SenderStatusDisabled); err != nil {
		return nil, err
	}
	return s.SenderRepo.GetByID(id)
}

func validPhone(s string) bool {
	if !strings.HasPrefix(s, "+") || len(s) < 8 || len(s) > 16 {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
