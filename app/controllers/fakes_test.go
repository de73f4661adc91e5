package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/instagram"
	"github.com/ManuelReschke/ConnectX/internal/pkg/onboarding"
	"github.com/ManuelReschke/ConnectX/internal/pkg/usercontext"
)

type fixedIdentity struct {
	identity models.Identity
}

func (f fixedIdentity) CurrentIdentity(*fiber.Ctx) (models.Identity, error) {
	if f.identity.IsZero() {
		return models.Identity{}, usercontext.ErrUnauthenticated
	}
	return f.identity, nil
}

type memoryAccounts struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	findErr  error
	updates  int
}

func newMemoryAccounts(accounts ...*models.Account) *memoryAccounts {
	m := &memoryAccounts{accounts: map[string]*models.Account{}}
	for _, a := range accounts {
		m.accounts[a.IdentityID] = a
	}
	return m
}

func (m *memoryAccounts) FindByIdentityID(_ context.Context, identityID string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.accounts[identityID], nil
}

func (m *memoryAccounts) Create(_ context.Context, identityID, firstName, lastName, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := &models.Account{ID: uint(len(m.accounts) + 1), IdentityID: identityID, FirstName: firstName, LastName: lastName, Email: email}
	m.accounts[identityID] = a
	return a, nil
}

func (m *memoryAccounts) UpdateIntegrationToken(_ context.Context, integrationID, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	return nil
}

type memoryIntegrations struct {
	saved []models.Integration
	err   error
}

func (m *memoryIntegrations) UpsertForAccount(_ context.Context, integration *models.Integration) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, *integration)
	return nil
}

type staticExchanger struct {
	err error
}

func (s staticExchanger) Refresh(_ context.Context, oldToken string) (*onboarding.RefreshedToken, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &onboarding.RefreshedToken{AccessToken: "new-" + oldToken, ExpiresIn: 5184000}, nil
}

type fakeAuthorizer struct {
	grant    *instagram.Grant
	err      error
	codes    []string
	notReady bool
}

func (f *fakeAuthorizer) AuthorizeURLWithState(state string) (string, error) {
	if f.notReady {
		return "", errors.New("INSTAGRAM_CLIENT_ID is not configured")
	}
	return "https://www.instagram.com/oauth/authorize?state=" + state, nil
}

func (f *fakeAuthorizer) GenerateTokens(_ context.Context, code string) (*instagram.Grant, error) {
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, f.err
	}
	return f.grant, nil
}

func sessionCookie(resp *http.Response) string {
	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" {
			return ck.Name + "=" + ck.Value
		}
	}
	return ""
}

func stateFromLocation(location string) string {
	i := strings.Index(location, "state=")
	if i < 0 {
		return ""
	}
	return location[i+len("state="):]
}

// flash redirects use fiber's default status.
func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Contains(t, []int{fiber.StatusFound, fiber.StatusSeeOther}, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}
