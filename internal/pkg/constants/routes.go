package constants

// Route constants shared by the router, controllers and redirect targets.
const (
	SignInRoute            = "/sign-in"
	LogoutRoute            = "/logout"
	DashboardRoute         = "/dashboard"
	InstagramConnectRoute  = "/integrations/instagram/connect"
	InstagramCallbackRoute = "/callback/instagram"
)
