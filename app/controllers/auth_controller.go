package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	gothfiber "github.com/shareed2k/goth_fiber"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/ConnectX/internal/pkg/constants"
	"github.com/ManuelReschke/ConnectX/internal/pkg/oauth"
	"github.com/ManuelReschke/ConnectX/internal/pkg/session"
	"github.com/ManuelReschke/ConnectX/internal/pkg/usercontext"
)

type signInProvider struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// HandleSignIn lists the sign-in providers.
func HandleSignIn(c *fiber.Ctx) error {
	providers := make([]signInProvider, 0, len(oauth.Providers))
	for _, p := range oauth.Providers {
		providers = append(providers, signInProvider{Name: p, URL: "/auth/" + p})
	}

	return c.JSON(fiber.Map{
		"providers": providers,
		"signed_in": usercontext.IsLoggedIn(c),
		"flash":     flash.Get(c),
	})
}

// HandleOAuthCallback completes the provider flow and signs the user in.
// Account creation happens on the dashboard through onboarding.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		log.Warnf("[Auth] provider sign-in failed: %v", err)
		return redirectWithError(c, constants.SignInRoute, "Sign-in failed, please try again")
	}

	identity := oauth.IdentityFromUser(u)
	if identity.IsZero() {
		return redirectWithError(c, constants.SignInRoute, "The provider did not return an account id")
	}

	if err := session.SetSessionValues(c, map[string]string{
		usercontext.KeyIdentityID:   identity.ID,
		usercontext.KeyFirstName:    identity.FirstName,
		usercontext.KeyLastName:     identity.LastName,
		usercontext.KeyPrimaryEmail: identity.PrimaryEmail,
	}); err != nil {
		log.Errorf("[Auth] session save failed: %v", err)
		return redirectWithError(c, constants.SignInRoute, "Session could not be saved")
	}

	return c.Redirect(constants.DashboardRoute, fiber.StatusSeeOther)
}

func HandleLogout(c *fiber.Ctx) error {
	if err := session.Destroy(c); err != nil {
		return redirectWithError(c, constants.SignInRoute, "Logout failed: "+err.Error())
	}
	return redirectWithSuccess(c, constants.SignInRoute, "Signed out")
}
