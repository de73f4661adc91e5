package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/security"
)

// ErrNotFound is returned by write operations that matched no row.
var ErrNotFound = errors.New("record not found")

// AccountRepository defines the account store used by onboarding.
type AccountRepository interface {
	// FindByIdentityID returns the account with its integrations (tokens
	// decrypted), or nil and no error when the identity is unknown.
	FindByIdentityID(ctx context.Context, identityID string) (*models.Account, error)
	Create(ctx context.Context, identityID, firstName, lastName, email string) (*models.Account, error)
	// UpdateIntegrationToken replaces token and expiry in one statement.
	UpdateIntegrationToken(ctx context.Context, integrationID, token string, expiresAt time.Time) error
}

// IntegrationRepository defines the operations of the integration connect flow.
type IntegrationRepository interface {
	UpsertForAccount(ctx context.Context, integration *models.Integration) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Account     AccountRepository
	Integration IntegrationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB, tokens *security.TokenCipher) *Repositories {
	return &Repositories{
		Account:     NewAccountRepository(db, tokens),
		Integration: NewIntegrationRepository(db, tokens),
	}
}
