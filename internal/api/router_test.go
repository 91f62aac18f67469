package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/campaignhub-backend/internal/api"
	"github.com/unclebandit/campaignhub-backend/internal/model"
	"github.com/unclebandit/campaignhub-backend/internal/service"
	"github.com/unclebandit/campaignhub-backend/internal/session"
	"github.com/unclebandit/campaignhub-backend/internal/testutil"
)

type env struct {
	router    chi.Router
	campaigns *testutil.CampaignRepo
	sessions  *session.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()

	campaignRepo := testutil.NewCampaignRepo()
	senderRepo := testutil.NewSenderRepo()
	outboundRepo := testutil.NewOutboundRepo()
	customerRepo := &testutil.CustomerRepo{Customers: map[int]*model.Customer{
		1: {ID: 1, Phone: "+254700000001", FirstName: "Alice", LastName: "Smith", Location: "Nairobi", PreferredProduct: "Shoes"},
	}}
	sessions := session.NewManager(testutil.NewSessionRepo(), []byte("test-secret"), time.Hour)
	log := zap.NewNop()

	a := &api.API{
		Campaigns: &service.CampaignService{
			CampaignRepo: campaignRepo,
			CustomerRepo: customerRepo,
			SenderRepo:   senderRepo,
			OutboundRepo: outboundRepo,
			Queue:        &testutil.Publisher{},
			QueueName:    "campaign_sends",
			Log:          log,
		},
		Senders:   &service.SenderService{SenderRepo: senderRepo},
		Auth:      &service.AuthService{UserRepo: testutil.NewUserRepo(), Sessions: sessions},
		Customers: customerRepo,
		Sessions:  sessions,
		Log:       log,
	}

	return &env{
		router:    a.Router(api.NewRateLimiter(1000, 1000)),
		campaigns: campaignRepo,
		sessions:  sessions,
	}
}

func (e *env) post(t *testing.T, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) login(t *testing.T) string {
	t.Helper()
	token, _, err := e.sessions.Issue("user-1")
	require.NoError(t, err)
	return token
}

// Every API route must use POST, reads included, so that parameters
// travel in typed request bodies.
func TestEveryAPIRouteUsesPost(t *testing.T) {
	e := newEnv(t)

	routes := 0
	err := chi.Walk(e.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, "/api/") {
			return nil
		}
		routes++
		assert.Equal(t, http.MethodPost, method, "route %s must use POST", route)

		// Path shape: api/<resource>/<action>.
		parts := strings.Split(strings.Trim(route, "/"), "/")
		assert.Len(t, parts, 3, "route %s must follow api/<resource>/<action>", route)
		return nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, routes, 16, "expected the full route table to be registered")
}

func TestProtectedRoutesRejectMissingSession(t *testing.T) {
	e := newEnv(t)

	w := e.post(t, "/api/campaigns/list", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "authentication required", body.Message)
}

func TestGetCampaignNotFoundPayload(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	w := e.post(t, "/api/campaigns/get", token, map[string]any{"id": 42})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body, "message")
	assert.NotContains(t, body, "errors", "not-found responses carry no field errors")
}

func TestCreateCampaignValidationPayload(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	w := e.post(t, "/api/campaigns/create", token, map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "validation failed", body.Message)
	assert.Len(t, body.Errors, 3)
}

func TestCreateCampaignReturnsObjectDirectly(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	w := e.post(t, "/api/campaigns/create", token, map[string]any{
		"name":          "August Promo",
		"channel":       "SMS",
		"base_template": "Hi {first_name}!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Success responses return the created object itself: no wrapper,
	// no success flag.
	var c model.Campaign
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	assert.Equal(t, "August Promo", c.Name)
	assert.Equal(t, model.CampaignStatusDraft, c.Status)
	assert.NotZero(t, c.ID)
}

func TestUnknownBodyFieldRejected(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	w := e.post(t, "/api/campaigns/get", token, map[string]any{"campaign": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Message, "invalid request body")
}

func TestPreviewRoute(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	e.campaigns.Create(&model.Campaign{
		Name:         "Promo",
		Status:       model.CampaignStatusDraft,
		BaseTemplate: "Hi {first_name}, {preferred_product} in {location}!",
	})

	w := e.post(t, "/api/campaigns/preview", token, map[string]any{
		"campaign_id": 1,
		"customer_id": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		RenderedMessage string `json:"rendered_message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Hi Alice, Shoes in Nairobi!", body.RenderedMessage)
}

func TestSendRoute(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	e.campaigns.Create(&model.Campaign{
		Name:         "Promo",
		Status:       model.CampaignStatusDraft,
		BaseTemplate: "Hi {first_name}!",
	})

	w := e.post(t, "/api/campaigns/send", token, map[string]any{
		"campaign_id":  1,
		"customer_ids": []int{1},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result service.SendCampaignResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 1, result.MessagesQueued)
	assert.Equal(t, model.CampaignStatusSending, result.Status)
}

func TestListCampaignsRoute(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	for i := 0; i < 5; i++ {
		e.campaigns.Create(&model.Campaign{
			Name:    "Campaign",
			Channel: model.ChannelSMS,
			Status:  model.CampaignStatusDraft,
		})
	}

	w := e.post(t, "/api/campaigns/list", token, map[string]any{
		"page":      1,
		"page_size": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []model.Campaign   `json:"data"`
		Pagination service.Pagination `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 5, body.Pagination.TotalCount)
	assert.Equal(t, 3, body.Pagination.TotalPages)
}

func TestSenderLifecycleRoutes(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	w := e.post(t, "/api/senders/create", token, map[string]any{
		"label":   "Main shortcode",
		"address": "+254711111111",
		"channel": "SMS",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Sender
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, model.SenderStatusActive, created.Status)

	w = e.post(t, "/api/senders/disable", token, map[string]any{"id": created.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var disabled model.Sender
	require.NoError(t, json.NewDecoder(w.Body).Decode(&disabled))
	assert.Equal(t, model.SenderStatusDisabled, disabled.Status)
}

func TestHealthzStaysSessionless(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
