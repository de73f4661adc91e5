package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/ManuelReschke/ConnectX/app/controllers"
	"github.com/ManuelReschke/ConnectX/internal/pkg/constants"
	"github.com/ManuelReschke/ConnectX/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(constants.DashboardRoute, fiber.StatusSeeOther)
	})
	app.Get(constants.SignInRoute, controllers.HandleSignIn)

	// Auth
	app.Post(constants.LogoutRoute, middleware.RequireAuth, controllers.HandleLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}

func (h HttpRouter) registerProtectedRoutes(app *fiber.App) {
	oc := controllers.GetOnboardingController()
	app.Get(constants.DashboardRoute, middleware.RequireAuth, oc.HandleDashboard)
	app.Get(constants.DashboardRoute+"/:slug", middleware.RequireAuth, oc.HandleDashboardProfile)

	ic := controllers.GetInstagramController()
	app.Get(constants.InstagramConnectRoute, middleware.RequireAuth, ic.HandleConnect)
	app.Get(constants.InstagramCallbackRoute, middleware.RequireAuth, ic.HandleCallback)
}
