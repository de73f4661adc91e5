package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/session"
	"github.com/ManuelReschke/ConnectX/internal/pkg/usercontext"
)

// UserContextMiddleware loads the signed-in identity from the app session
// into the request's user context. Requests without a session stay anonymous.
func UserContextMiddleware(c *fiber.Ctx) error {
	// goth keeps its own session on /auth/*
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	store := session.GetSessionStore()
	if store == nil {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	sess, err := store.Get(c)
	if err != nil {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	identity := models.Identity{
		ID:           stringValue(sess.Get(usercontext.KeyIdentityID)),
		FirstName:    stringValue(sess.Get(usercontext.KeyFirstName)),
		LastName:     stringValue(sess.Get(usercontext.KeyLastName)),
		PrimaryEmail: stringValue(sess.Get(usercontext.KeyPrimaryEmail)),
	}
	usercontext.SetUserContext(c, usercontext.UserContext{
		Identity:   identity,
		IsLoggedIn: !identity.IsZero(),
	})
	c.Locals(usercontext.AuthKey, !identity.IsZero())

	return c.Next()
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}
