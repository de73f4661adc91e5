package controllers

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/instagram"
	"github.com/ManuelReschke/ConnectX/internal/pkg/session"
)

var connectNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type instagramHarness struct {
	app          *fiber.App
	authorizer   *fakeAuthorizer
	integrations *memoryIntegrations
}

func newInstagramHarness(t *testing.T, accounts *memoryAccounts) *instagramHarness {
	t.Helper()
	session.UseStore(fibersession.New())
	t.Cleanup(func() { session.UseStore(nil) })

	h := &instagramHarness{
		authorizer: &fakeAuthorizer{grant: &instagram.Grant{
			TokenResponse: instagram.TokenResponse{AccessToken: "long-lived", ExpiresIn: 5184000},
			UserID:        "17841400000000",
		}},
		integrations: &memoryIntegrations{},
	}
	ic := NewInstagramController(h.authorizer, accounts, h.integrations, fixedIdentity{identity: ada})
	ic.now = func() time.Time { return connectNow }

	h.app = fiber.New()
	h.app.Get("/integrations/instagram/connect", ic.HandleConnect)
	h.app.Get("/callback/instagram", ic.HandleCallback)
	return h
}

// connect starts the flow and returns the session cookie and issued state.
func (h *instagramHarness) connect(t *testing.T) (string, string) {
	t.Helper()
	resp, err := h.app.Test(httptest.NewRequest(fiber.MethodGet, "/integrations/instagram/connect", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	state := stateFromLocation(resp.Header.Get("Location"))
	require.NotEmpty(t, state)
	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)
	return cookie, state
}

func (h *instagramHarness) callback(t *testing.T, cookie, query string) string {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/callback/instagram?"+query, nil)
	req.Header.Set("Cookie", cookie)
	resp, err := h.app.Test(req)
	require.NoError(t, err)
	return resp.Header.Get("Location")
}

func adaAccount() *models.Account {
	return &models.Account{ID: 9, IdentityID: ada.ID, FirstName: "Ada", LastName: "Lovelace", Email: ada.PrimaryEmail}
}

func TestInstagramConnectAndCallback(t *testing.T) {
	h := newInstagramHarness(t, newMemoryAccounts(adaAccount()))

	cookie, state := h.connect(t)
	location := h.callback(t, cookie, "code=abc&state="+state)

	assert.Equal(t, "/dashboard", location)
	assert.Equal(t, []string{"abc"}, h.authorizer.codes)
	require.Len(t, h.integrations.saved, 1)
	saved := h.integrations.saved[0]
	assert.Equal(t, uint(9), saved.AccountID)
	assert.Equal(t, models.IntegrationInstagram, saved.Name)
	assert.Equal(t, "long-lived", saved.Token)
	assert.Equal(t, "17841400000000", saved.InstagramID)
	require.NotNil(t, saved.ExpiresAt)
	assert.Equal(t, connectNow.Add(60*24*time.Hour), *saved.ExpiresAt)
}

func TestInstagramCallback_StateIsSingleUse(t *testing.T) {
	h := newInstagramHarness(t, newMemoryAccounts(adaAccount()))

	cookie, state := h.connect(t)
	h.callback(t, cookie, "code=abc&state="+state)
	h.callback(t, cookie, "code=abc&state="+state)

	assert.Len(t, h.authorizer.codes, 1)
	assert.Len(t, h.integrations.saved, 1)
}

func TestInstagramCallback_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		query func(state string) string
	}{
		{"state mismatch", func(string) string { return "code=abc&state=forged" }},
		{"missing code", func(state string) string { return "state=" + state }},
		{"provider error", func(string) string { return "error=access_denied&error_description=denied" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newInstagramHarness(t, newMemoryAccounts(adaAccount()))

			cookie, state := h.connect(t)
			location := h.callback(t, cookie, tt.query(state))

			assert.Equal(t, "/dashboard", location)
			assert.Empty(t, h.authorizer.codes)
			assert.Empty(t, h.integrations.saved)
		})
	}
}

func TestInstagramCallback_NoPermissions(t *testing.T) {
	h := newInstagramHarness(t, newMemoryAccounts(adaAccount()))
	h.authorizer.err = instagram.ErrNoPermissions

	cookie, state := h.connect(t)
	location := h.callback(t, cookie, "code=abc&state="+state)

	assert.Equal(t, "/dashboard", location)
	assert.Empty(t, h.integrations.saved)
}

func TestInstagramCallback_AccountMissing(t *testing.T) {
	h := newInstagramHarness(t, newMemoryAccounts())

	cookie, state := h.connect(t)
	h.callback(t, cookie, "code=abc&state="+state)

	assert.Empty(t, h.authorizer.codes)
	assert.Empty(t, h.integrations.saved)
}

func TestInstagramCallback_StoreFailure(t *testing.T) {
	h := newInstagramHarness(t, newMemoryAccounts(adaAccount()))
	h.integrations.err = errors.New("duplicate key")

	cookie, state := h.connect(t)
	location := h.callback(t, cookie, "code=abc&state="+state)

	assert.Equal(t, "/dashboard", location)
	assert.Len(t, h.authorizer.codes, 1)
}

func TestInstagramConnect_NotConfigured(t *testing.T) {
	h := newInstagramHarness(t, newMemoryAccounts(adaAccount()))
	h.authorizer.notReady = true

	resp, err := h.app.Test(httptest.NewRequest(fiber.MethodGet, "/integrations/instagram/connect", nil))
	require.NoError(t, err)
	assertRedirect(t, resp, "/dashboard")
}
