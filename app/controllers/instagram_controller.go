package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/app/repository"
	"github.com/ManuelReschke/ConnectX/internal/pkg/constants"
	"github.com/ManuelReschke/ConnectX/internal/pkg/instagram"
	"github.com/ManuelReschke/ConnectX/internal/pkg/session"
	"github.com/ManuelReschke/ConnectX/internal/pkg/usercontext"
)

const instagramOAuthStateSessionKey = "instagram_oauth_state"

// InstagramAuthorizer is the part of the Instagram client the connect flow uses.
type InstagramAuthorizer interface {
	AuthorizeURLWithState(state string) (string, error)
	GenerateTokens(ctx context.Context, code string) (*instagram.Grant, error)
}

// InstagramController connects an Instagram account to the caller's account.
type InstagramController struct {
	client       InstagramAuthorizer
	accounts     repository.AccountRepository
	integrations repository.IntegrationRepository
	identities   usercontext.Resolver
	now          func() time.Time
}

func NewInstagramController(client InstagramAuthorizer, accounts repository.AccountRepository, integrations repository.IntegrationRepository, identities usercontext.Resolver) *InstagramController {
	return &InstagramController{
		client:       client,
		accounts:     accounts,
		integrations: integrations,
		identities:   identities,
		now:          time.Now,
	}
}

func (ic *InstagramController) HandleConnect(c *fiber.Ctx) error {
	if _, err := ic.identities.CurrentIdentity(c); err != nil {
		return c.Redirect(constants.SignInRoute, fiber.StatusSeeOther)
	}

	state, err := generateOAuthState(24)
	if err != nil {
		return redirectWithError(c, constants.DashboardRoute, "OAuth state could not be created")
	}
	if err := session.SetSessionValue(c, instagramOAuthStateSessionKey, state); err != nil {
		return redirectWithError(c, constants.DashboardRoute, "Session could not be saved")
	}

	authURL, err := ic.client.AuthorizeURLWithState(state)
	if err != nil {
		log.Errorf("[Instagram] %v", err)
		return redirectWithError(c, constants.DashboardRoute, "Instagram login is not configured")
	}

	return c.Redirect(authURL, fiber.StatusSeeOther)
}

func (ic *InstagramController) HandleCallback(c *fiber.Ctx) error {
	identity, err := ic.identities.CurrentIdentity(c)
	if err != nil {
		return c.Redirect(constants.SignInRoute, fiber.StatusSeeOther)
	}

	if oauthErr := strings.TrimSpace(c.Query("error")); oauthErr != "" {
		msg := c.Query("error_description", oauthErr)
		return redirectWithError(c, constants.DashboardRoute, "Instagram authorization failed: "+msg)
	}

	expectedState := session.PopSessionValue(c, instagramOAuthStateSessionKey)
	gotState := strings.TrimSpace(c.Query("state"))
	if expectedState == "" || gotState == "" || expectedState != gotState {
		return redirectWithError(c, constants.DashboardRoute, "Invalid OAuth state (state mismatch)")
	}

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return redirectWithError(c, constants.DashboardRoute, "OAuth code is missing")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 20*time.Second)
	defer cancel()

	account, err := ic.accounts.FindByIdentityID(ctx, identity.ID)
	if err != nil {
		log.Errorf("[Instagram] account lookup for %s failed: %v", identity.ID, err)
		return redirectWithError(c, constants.DashboardRoute, "Account could not be loaded")
	}
	if account == nil {
		return redirectWithError(c, constants.DashboardRoute, "Please finish onboarding before connecting Instagram")
	}

	grant, err := ic.client.GenerateTokens(ctx, code)
	if errors.Is(err, instagram.ErrNoPermissions) {
		return redirectWithError(c, constants.DashboardRoute, "No Instagram permissions were granted")
	}
	if err != nil {
		log.Errorf("[Instagram] token exchange for account %d failed: %v", account.ID, err)
		return redirectWithError(c, constants.DashboardRoute, "Token exchange with Instagram failed")
	}

	expiresAt := models.ExpiryFromLifetime(ic.now(), grant.ExpiresIn)
	integration := &models.Integration{
		AccountID:   account.ID,
		Name:        models.IntegrationInstagram,
		Token:       grant.AccessToken,
		ExpiresAt:   &expiresAt,
		InstagramID: grant.UserID,
	}
	if err := ic.integrations.UpsertForAccount(ctx, integration); err != nil {
		log.Errorf("[Instagram] storing integration for account %d failed: %v", account.ID, err)
		return redirectWithError(c, constants.DashboardRoute, "Instagram account could not be linked")
	}

	log.Infof("[Instagram] account %d connected instagram user %s", account.ID, grant.UserID)
	return redirectWithSuccess(c, constants.DashboardRoute, "Instagram connected")
}

var instagramController *InstagramController

// InitializeInstagramController initializes the global instagram controller
func InitializeInstagramController(client InstagramAuthorizer) {
	factory := repository.GetGlobalFactory()
	instagramController = NewInstagramController(client, factory.GetAccountRepository(), factory.GetIntegrationRepository(), usercontext.LocalsResolver{})
}

// GetInstagramController returns the global instagram controller instance
func GetInstagramController() *InstagramController {
	if instagramController == nil {
		panic("instagram controller not initialized")
	}
	return instagramController
}
