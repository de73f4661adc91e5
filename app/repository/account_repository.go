package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/security"
)

// accountRepository implements the AccountRepository interface
type accountRepository struct {
	db     *gorm.DB
	tokens *security.TokenCipher
}

// NewAccountRepository creates a new account repository instance
func NewAccountRepository(db *gorm.DB, tokens *security.TokenCipher) AccountRepository {
	return &accountRepository{db: db, tokens: tokens}
}

// FindByIdentityID loads an account and its integrations by provider identity
func (r *accountRepository) FindByIdentityID(ctx context.Context, identityID string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Preload("Integrations").
		Where("identity_id = ?", identityID).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := openIntegrationTokens(r.tokens, account.Integrations); err != nil {
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account without integrations
func (r *accountRepository) Create(ctx context.Context, identityID, firstName, lastName, email string) (*models.Account, error) {
	account, err := models.NewAccount(identityID, firstName, lastName, email)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateIntegrationToken overwrites the stored token and expiry of one integration
func (r *accountRepository) UpdateIntegrationToken(ctx context.Context, integrationID, token string, expiresAt time.Time) error {
	sealed, err := r.tokens.Seal(token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	res := r.db.WithContext(ctx).
		Model(&models.Integration{}).
		Where("id = ?", integrationID).
		Updates(map[string]interface{}{
			"token":      sealed,
			"expires_at": expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("integration %s: %w", integrationID, ErrNotFound)
	}
	return nil
}

func openIntegrationTokens(tokens *security.TokenCipher, integrations []models.Integration) error {
	for i := range integrations {
		plain, err := tokens.Open(integrations[i].TokenEnc)
		if err != nil {
			return fmt.Errorf("open token of integration %s: %w", integrations[i].ID, err)
		}
		integrations[i].Token = plain
	}
	return nil
}
