package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ConnectX/internal/pkg/constants"
	"github.com/ManuelReschke/ConnectX/internal/pkg/onboarding"
	"github.com/ManuelReschke/ConnectX/internal/pkg/usercontext"
)

const onboardingTimeout = 30 * time.Second

// OnboardingController serves the dashboard entry and the onboarding API.
type OnboardingController struct {
	service    *onboarding.Service
	identities usercontext.Resolver
}

func NewOnboardingController(service *onboarding.Service, identities usercontext.Resolver) *OnboardingController {
	return &OnboardingController{
		service:    service,
		identities: identities,
	}
}

// HandleDashboard onboards the caller and forwards to their personal
// dashboard. Any failure sends the caller back to sign-in.
func (oc *OnboardingController) HandleDashboard(c *fiber.Ctx) error {
	identity, err := oc.identities.CurrentIdentity(c)
	if err != nil {
		return c.Redirect(constants.SignInRoute, fiber.StatusSeeOther)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), onboardingTimeout)
	defer cancel()

	result := oc.service.OnboardUser(ctx, identity)
	if !result.OK() {
		return redirectWithError(c, constants.SignInRoute, "Your account could not be loaded, please sign in again")
	}

	return c.Redirect(dashboardPath(result.Data.Slug()), fiber.StatusSeeOther)
}

// HandleDashboardProfile returns the caller's account with its integrations.
func (oc *OnboardingController) HandleDashboardProfile(c *fiber.Ctx) error {
	identity, err := oc.identities.CurrentIdentity(c)
	if err != nil {
		return c.Redirect(constants.SignInRoute, fiber.StatusSeeOther)
	}

	result := oc.service.UserInfo(c.UserContext(), identity)
	if result.Status == fiber.StatusNotFound {
		return c.Redirect(constants.DashboardRoute, fiber.StatusSeeOther)
	}
	return c.Status(result.Status).JSON(result)
}

// HandleAPIOnboarding answers with the onboarding result; the HTTP status
// mirrors the result status.
func (oc *OnboardingController) HandleAPIOnboarding(c *fiber.Ctx) error {
	identity, err := oc.identities.CurrentIdentity(c)
	if err != nil {
		return unauthorized(c)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), onboardingTimeout)
	defer cancel()

	result := oc.service.OnboardUser(ctx, identity)
	return c.Status(result.Status).JSON(result)
}

func (oc *OnboardingController) HandleAPIUser(c *fiber.Ctx) error {
	identity, err := oc.identities.CurrentIdentity(c)
	if err != nil {
		return unauthorized(c)
	}

	result := oc.service.UserInfo(c.UserContext(), identity)
	return c.Status(result.Status).JSON(result)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "unauthorized",
		"message": "sign-in required",
	})
}

var onboardingController *OnboardingController

// InitializeOnboardingController initializes the global onboarding controller
func InitializeOnboardingController(service *onboarding.Service) {
	onboardingController = NewOnboardingController(service, usercontext.LocalsResolver{})
}

// GetOnboardingController returns the global onboarding controller instance
func GetOnboardingController() *OnboardingController {
	if onboardingController == nil {
		panic("onboarding controller not initialized")
	}
	return onboardingController
}
