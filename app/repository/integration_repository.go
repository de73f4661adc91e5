package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/security"
)

type integrationRepository struct {
	db     *gorm.DB
	tokens *security.TokenCipher
}

// NewIntegrationRepository creates an integration repository backed by GORM.
func NewIntegrationRepository(db *gorm.DB, tokens *security.TokenCipher) IntegrationRepository {
	return &integrationRepository{db: db, tokens: tokens}
}

// UpsertForAccount links a provider credential to an account, replacing the
// previous credential of the same provider.
func (r *integrationRepository) UpsertForAccount(ctx context.Context, integration *models.Integration) error {
	sealed, err := r.tokens.Seal(integration.Token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	integration.TokenEnc = sealed

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "account_id"},
			{Name: "name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"token",
			"expires_at",
			"instagram_id",
			"updated_at",
		}),
	}).Create(integration).Error; err != nil {
		return err
	}

	// On conflict the stored row keeps its id, so re-read it by its natural key.
	var stored models.Integration
	if err := db.Where("account_id = ? AND name = ?", integration.AccountID, integration.Name).
		First(&stored).Error; err != nil {
		return err
	}
	stored.Token = integration.Token
	*integration = stored
	return nil
}
