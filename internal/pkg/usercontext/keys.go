package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey         = "authenticated"
	KeyIdentityID   = "identity_id"
	KeyFirstName    = "first_name"
	KeyLastName     = "last_name"
	KeyPrimaryEmail = "primary_email"
	KeyUserContext  = "USER_CONTEXT"
)
