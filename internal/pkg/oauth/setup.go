package oauth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/cache"
	"github.com/ManuelReschke/ConnectX/internal/pkg/env"
)

// Providers lists the sign-in providers offered on /sign-in.
var Providers = []string{"google", "facebook"}

// Setup registers the sign-in providers and keeps their OAuth state in the
// cache server. Safe to call more than once.
func Setup() {
	base := BaseURL()

	goth.UseProviders(
		google.New(
			env.GetEnv("GOOGLE_KEY", ""),
			env.GetEnv("GOOGLE_SECRET", ""),
			base+"/auth/google/callback",
			"email", "profile",
		),
		facebook.New(
			env.GetEnv("FACEBOOK_KEY", ""),
			env.GetEnv("FACEBOOK_SECRET", ""),
			base+"/auth/facebook/callback",
			"email", "public_profile",
		),
	)

	gothfiber.SessionStore = session.New(session.Config{
		Storage:        cache.Storage(cache.DBOAuth),
		KeyLookup:      "cookie:" + gothic.SessionName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !env.IsDev(),
		Expiration:     1 * time.Hour,
	})
}

// BaseURL is the public origin used to build callback URLs.
func BaseURL() string {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}
	return base
}

// IdentityFromUser maps a completed provider sign-in onto the identity the
// rest of the application works with. Provider ids are namespaced so two
// providers can never collide.
func IdentityFromUser(u goth.User) models.Identity {
	first, last := strings.TrimSpace(u.FirstName), strings.TrimSpace(u.LastName)
	if first == "" && last == "" && strings.TrimSpace(u.Name) != "" {
		parts := strings.Fields(u.Name)
		first = parts[0]
		last = strings.Join(parts[1:], " ")
	}

	id := ""
	if strings.TrimSpace(u.UserID) != "" {
		id = u.Provider + "|" + strings.TrimSpace(u.UserID)
	}

	return models.Identity{
		ID:           id,
		FirstName:    first,
		LastName:     last,
		PrimaryEmail: strings.ToLower(strings.TrimSpace(u.Email)),
	}
}
