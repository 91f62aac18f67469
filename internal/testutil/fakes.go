// Package testutil provides in-memory repository implementations for
// tests across packages.
package testutil

import (
	"time"

	"github.com/unclebandit/campaignhub-backend/internal/apperrors"
	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/repository"
)

// CampaignRepo is an in-memory repository.CampaignRepositoryInterface.
type CampaignRepo struct {
	Campaigns map[int]*model.Campaign
	Stats     map[int]map[string]int
	nextID    int
}

var _ repository.CampaignRepositoryInterface = (*CampaignRepo)(nil)

func NewCampaignRepo() *CampaignRepo {
	return &CampaignRepo{Campaigns: map[int]*model.Campaign{}, Stats: map[int]map[string]int{}}
}

func (f *CampaignRepo) Create(c *model.Campaign) error {
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	cp := *c
	f.Campaigns[c.ID] = &cp
	return nil
}

func (f *CampaignRepo) GetByID(id int) (*model.Campaign, error) {
	c, ok := f.Campaigns[id]
	if !ok {
		return nil, apperrors.NewCampaignNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (f *CampaignRepo) ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error) {
	var filtered []*model.Campaign
	for i := 1; i <= f.nextID; i++ {
		c, ok := f.Campaigns[i]
		if !ok {
			continue
		}
		if channel != "" && c.Channel != channel {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		filtered = append(filtered, c)
	}
	total := len(filtered)
	if offset > total {
		return []*model.Campaign{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

func (f *CampaignRepo) Update(c *model.Campaign) error {
	if _, ok := f.Campaigns[c.ID]; !ok {
		return apperrors.NewCampaignNotFound(c.ID)
	}
	cp := *c
	f.Campaigns[c.ID] = &cp
	return nil
}

func (f *CampaignRepo) UpdateStatus(id int, status string) error {
	c, ok := f.Campaigns[id]
	if !ok {
		return apperrors.NewCampaignNotFound(id)
	}
	c.Status = status
	return nil
}

func (f *CampaignRepo) Delete(id int) error {
	if _, ok := f.Campaigns[id]; !ok {
		return apperrors.NewCampaignNotFound(id)
	}
	delete(f.Campaigns, id)
	return nil
}

func (f *CampaignRepo) GetCampaignStats(id int) (map[string]int, error) {
	if s, ok := f.Stats[id]; ok {
		return s, nil
	}
	return map[string]int{
		model.MessageStatusPending: 0,
		model.MessageStatusSent:    0,
		model.MessageStatusFailed:  0,
		"total":                    0,
	}, nil
}

// CustomerRepo is an in-memory repository.CustomerRepositoryInterface.
type CustomerRepo struct {
	Customers map[int]*model.Customer
}

var _ repository.CustomerRepositoryInterface = (*CustomerRepo)(nil)

func (f *CustomerRepo) GetByID(id int) (*model.Customer, error) {
	c, ok := f.Customers[id]
	if !ok {
		return nil, apperrors.NewCustomerNotFound(id)
	}
	return c, nil
}

func (f *CustomerRepo) ListAll() ([]model.Customer, error) {
	out := []model.Customer{}
	for _, c := range f.Customers {
		out = append(out, *c)
	}
	return out, nil
}

// SenderRepo is an in-memory repository.SenderRepositoryInterface.
type SenderRepo struct {
	Senders map[int]*model.Sender
	nextID  int
}

var _ repository.SenderRepositoryInterface = (*SenderRepo)(nil)

func NewSenderRepo() *SenderRepo {
	return &SenderRepo{Senders: map[int]*model.Sender{}}
}

func (f *SenderRepo) Create(s *model.Sender) error {
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	cp := *s
	f.Senders[s.ID] = &cp
	return nil
}

func (f *SenderRepo) GetByID(id int) (*model.Sender, error) {
	s, ok := f.Senders[id]
	if !ok {
		return nil, apperrors.NewSenderNotFound(id)
	}
	cp := *s
	return &cp, nil
}

func (f *SenderRepo) ListAll() ([]model.Sender, error) {
	out := []model.Sender{}
	for i := 1; i <= f.nextID; i++ {
		if s, ok := f.Senders[i]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *SenderRepo) UpdateStatus(id int, status string) error {
	s, ok := f.Senders[id]
	if !ok {
		return apperrors.NewSenderNotFound(id)
	}
	s.Status = status
	return nil
}

// OutboundRepo is an in-memory repository.OutboundMessageRepositoryInterface.
type OutboundRepo struct {
	ByID   map[int]*model.OutboundMessage
	byPair map[[2]int]int
	nextID int
}

var _ repository.OutboundMessageRepositoryInterface = (*OutboundRepo)(nil)

func NewOutboundRepo() *OutboundRepo {
	return &OutboundRepo{ByID: map[int]*model.OutboundMessage{}, byPair: map[[2]int]int{}}
}

func (f *OutboundRepo) GetOrCreate(campaignID, customerID int) (*model.OutboundMessage, error) {
	key := [2]int{campaignID, customerID}
	if id, ok := f.byPair[key]; ok {
		cp := *f.ByID[id]
		return &cp, nil
	}
	f.nextID++
	msg := &model.OutboundMessage{
		ID:         f.nextID,
		CampaignID: campaignID,
		CustomerID: customerID,
		Status:     model.MessageStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.ByID[msg.ID] = msg
	f.byPair[key] = msg.ID
	cp := *msg
	return &cp, nil
}

func (f *OutboundRepo) GetByID(id int) (*model.OutboundMessage, error) {
	msg, ok := f.ByID[id]
	if !ok {
		return nil, apperrors.NewMessageNotFound(id)
	}
	cp := *msg
	return &cp, nil
}

func (f *OutboundRepo) UpdateContent(id int, content string) error {
	msg, ok := f.ByID[id]
	if !ok {
		return apperrors.NewMessageNotFound(id)
	}
	msg.RenderedContent = content
	return nil
}

func (f *OutboundRepo) UpdateStatus(id int, status, lastError string) error {
	msg, ok := f.ByID[id]
	if !ok {
		return apperrors.NewMessageNotFound(id)
	}
	msg.Status = status
	msg.LastError = lastError
	msg.RetryCount++
	return nil
}

func (f *OutboundRepo) Update(msg *model.OutboundMessage) error {
	if _, ok := f.ByID[msg.ID]; !ok {
		return apperrors.NewMessageNotFound(msg.ID)
	}
	cp := *msg
	f.ByID[msg.ID] = &cp
	return nil
}

// UserRepo is an in-memory repository.UserRepositoryInterface.
type UserRepo struct {
	ByID    map[string]*model.User
	ByEmail map[string]*model.User
}

var _ repository.UserRepositoryInterface = (*UserRepo)(nil)

func NewUserRepo() *UserRepo {
	return &UserRepo{ByID: map[string]*model.User{}, ByEmail: map[string]*model.User{}}
}

func (f *UserRepo) Create(u *model.User) error {
	u.CreatedAt = time.Now()
	cp := *u
	f.ByID[u.ID] = &cp
	f.ByEmail[u.Email] = &cp
	return nil
}

func (f *UserRepo) GetByID(id string) (*model.User, error) {
	u, ok := f.ByID[id]
	if !ok {
		return nil, apperrors.NewUserNotFound(id)
	}
	return u, nil
}

func (f *UserRepo) GetByEmail(email string) (*model.User, error) {
	u, ok := f.ByEmail[email]
	if !ok {
		return nil, apperrors.NewUserNotFound(email)
	}
	return u, nil
}

// SessionRepo is an in-memory repository.SessionRepositoryInterface.
type SessionRepo struct {
	Sessions map[string]*model.Session
}

var _ repository.SessionRepositoryInterface = (*SessionRepo)(nil)

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{Sessions: map[string]*model.Session{}}
}

func (f *SessionRepo) Put(s *model.Session) error {
	cp := *s
	f.Sessions[s.ID] = &cp
	return nil
}

func (f *SessionRepo) Get(id string) (*model.Session, error) {
	s, ok := f.Sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *SessionRepo) Revoke(id string, at time.Time) error {
	s, ok := f.Sessions[id]
	if !ok || s.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	s.RevokedAt = &at
	return nil
}

// Publisher records published payloads.
type Publisher struct {
	Published []any
	Err       error
}

func (f *Publisher) Publish(topic string, payload any) error {
	if f.Err != nil {
		return f.Err
	}
	f.Published = append(f.Published, payload)
	return nil
}
