package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ConnectX/internal/pkg/constants"
	"github.com/ManuelReschke/ConnectX/internal/pkg/usercontext"
)

// RequireAuth ensures a signed-in web session; redirects to /sign-in if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Redirect(constants.SignInRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPISessionAuth ensures a signed-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "sign-in required",
		})
	}
	return c.Next()
}
