package controllers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/onboarding"
)

var ada = models.Identity{ID: "google|1", FirstName: "Ada", LastName: "Lovelace", PrimaryEmail: "ada@example.com"}

func newOnboardingApp(accounts *memoryAccounts, exchanger onboarding.TokenExchanger, identity models.Identity) *fiber.App {
	oc := NewOnboardingController(onboarding.NewService(accounts, exchanger), fixedIdentity{identity: identity})

	app := fiber.New()
	app.Get("/dashboard", oc.HandleDashboard)
	app.Get("/dashboard/:slug", oc.HandleDashboardProfile)
	app.Post("/api/v1/onboarding", oc.HandleAPIOnboarding)
	app.Get("/api/v1/user", oc.HandleAPIUser)
	return app
}

func TestHandleDashboard_RedirectsToSlug(t *testing.T) {
	accounts := newMemoryAccounts()
	app := newOnboardingApp(accounts, staticExchanger{}, ada)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard/AdaLovelace", resp.Header.Get("Location"))
	assert.Len(t, accounts.accounts, 1)
}

func TestHandleDashboard_FailureGoesToSignIn(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	account := &models.Account{ID: 1, IdentityID: ada.ID, FirstName: "Ada", LastName: "Lovelace", Email: ada.PrimaryEmail,
		Integrations: []models.Integration{{ID: "i1", Token: "tok", ExpiresAt: &expired}}}
	app := newOnboardingApp(newMemoryAccounts(account), staticExchanger{err: errors.New("revoked")}, ada)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	assertRedirect(t, resp, "/sign-in")
}

func TestHandleDashboard_Anonymous(t *testing.T) {
	app := newOnboardingApp(newMemoryAccounts(), staticExchanger{}, models.Identity{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
}

func TestHandleAPIOnboarding(t *testing.T) {
	accounts := newMemoryAccounts()
	app := newOnboardingApp(accounts, staticExchanger{}, ada)

	for _, want := range []int{fiber.StatusCreated, fiber.StatusOK} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/onboarding", nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode)

		var body struct {
			Status int `json:"status"`
			Data   struct {
				FirstName string `json:"firstname"`
				LastName  string `json:"lastname"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, want, body.Status)
		assert.Equal(t, "Ada", body.Data.FirstName)
		assert.Equal(t, "Lovelace", body.Data.LastName)
	}
}

func TestHandleAPIOnboarding_StoreFailure(t *testing.T) {
	accounts := newMemoryAccounts()
	accounts.findErr = errors.New("db down")
	app := newOnboardingApp(accounts, staticExchanger{}, ada)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/onboarding", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 500, body["status"])
	assert.NotContains(t, body, "data")
}

func TestHandleAPIUser(t *testing.T) {
	t.Run("unknown identity", func(t *testing.T) {
		app := newOnboardingApp(newMemoryAccounts(), staticExchanger{}, ada)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/user", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("existing account hides tokens", func(t *testing.T) {
		expires := time.Now().Add(time.Hour)
		account := &models.Account{ID: 1, IdentityID: ada.ID, FirstName: "Ada", LastName: "Lovelace", Email: ada.PrimaryEmail,
			Integrations: []models.Integration{{ID: "i1", Name: models.IntegrationInstagram, Token: "secret-token", ExpiresAt: &expires}}}
		accounts := newMemoryAccounts(account)
		app := newOnboardingApp(accounts, staticExchanger{}, ada)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/user", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Status int            `json:"status"`
			Data   models.Account `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body.Data.Email)
		require.Len(t, body.Data.Integrations, 1)
		assert.Empty(t, body.Data.Integrations[0].Token)
		assert.Zero(t, accounts.updates)
	})

	t.Run("anonymous", func(t *testing.T) {
		app := newOnboardingApp(newMemoryAccounts(), staticExchanger{}, models.Identity{})

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/user", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestHandleDashboardProfile(t *testing.T) {
	account := &models.Account{ID: 1, IdentityID: ada.ID, FirstName: "Ada", LastName: "Lovelace", Email: ada.PrimaryEmail}
	app := newOnboardingApp(newMemoryAccounts(account), staticExchanger{}, ada)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard/AdaLovelace", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	app = newOnboardingApp(newMemoryAccounts(), staticExchanger{}, ada)
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard/AdaLovelace", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}
