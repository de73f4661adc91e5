package usercontext

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ConnectX/app/models"
)

// ErrUnauthenticated is returned when the request carries no signed-in identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// UserContext represents the complete user context for a request
type UserContext struct {
	Identity   models.Identity `json:"identity"`
	IsLoggedIn bool            `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(KeyUserContext).(UserContext); ok {
		return ctx
	}
	return UserContext{IsLoggedIn: false}
}

// SetUserContext stores the request's user context in Locals.
func SetUserContext(c *fiber.Ctx, uc UserContext) {
	c.Locals(KeyUserContext, uc)
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// Resolver supplies the caller identity of a request.
type Resolver interface {
	CurrentIdentity(c *fiber.Ctx) (models.Identity, error)
}

// LocalsResolver reads the identity placed in Locals by the user context middleware.
type LocalsResolver struct{}

func (LocalsResolver) CurrentIdentity(c *fiber.Ctx) (models.Identity, error) {
	uc := GetUserContext(c)
	if !uc.IsLoggedIn || uc.Identity.IsZero() {
		return models.Identity{}, ErrUnauthenticated
	}
	return uc.Identity, nil
}
