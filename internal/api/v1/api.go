package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ConnectX/internal/pkg/middleware"
)

// Pong defines model for Pong.
type Pong struct {
	Ping string `json:"ping"`
}

// ServerInterface represents all server handlers of public/docs/v1/openapi.yml.
type ServerInterface interface {
	// (GET /ping)
	GetPing(c *fiber.Ctx) error
	// (POST /onboarding)
	PostOnboarding(c *fiber.Ctx) error
	// (GET /user)
	GetUser(c *fiber.Ctx) error
}

// RegisterHandlers mounts the v1 operations on router. Everything except
// ping requires a signed-in session.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	router.Get("/ping", si.GetPing)
	router.Post("/onboarding", middleware.RequireAPISessionAuth, si.PostOnboarding)
	router.Get("/user", middleware.RequireAPISessionAuth, si.GetUser)
}
