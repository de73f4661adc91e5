package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ConnectX/app/controllers"
	"github.com/ManuelReschke/ConnectX/app/repository"
	"github.com/ManuelReschke/ConnectX/internal/pkg/instagram"
	"github.com/ManuelReschke/ConnectX/internal/pkg/middleware"
	"github.com/ManuelReschke/ConnectX/internal/pkg/oauth"
	"github.com/ManuelReschke/ConnectX/internal/pkg/onboarding"
	"github.com/ManuelReschke/ConnectX/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	igClient := instagram.NewClientFromEnv()
	accounts := repository.GetGlobalFactory().GetAccountRepository()
	controllers.InitializeOnboardingController(onboarding.NewService(accounts, instagram.NewExchanger(igClient)))
	controllers.InitializeInstagramController(igClient)

	h.registerPublicRoutes(app)
	h.registerProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
