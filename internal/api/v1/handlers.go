package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/ManuelReschke/ConnectX/app/controllers"
)

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// PostOnboarding loads or creates the caller's account and refreshes
// integration tokens that are about to expire.
func (s *APIServer) PostOnboarding(c *fiber.Ctx) error {
	return controllers.GetOnboardingController().HandleAPIOnboarding(c)
}

// GetUser returns the caller's account without touching any token.
func (s *APIServer) GetUser(c *fiber.Ctx) error {
	return controllers.GetOnboardingController().HandleAPIUser(c)
}
