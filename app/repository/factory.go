package repository

import (
	"sync"

	"gorm.io/gorm"

	"github.com/ManuelReschke/ConnectX/internal/pkg/security"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db     *gorm.DB
	tokens *security.TokenCipher
	repos  *Repositories
	once   sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB, tokens *security.TokenCipher) *Factory {
	return &Factory{
		db:     db,
		tokens: tokens,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db, f.tokens)
	})
	return f.repos
}

// GetAccountRepository returns the account repository instance
func (f *Factory) GetAccountRepository() AccountRepository {
	return f.GetRepositories().Account
}

// GetIntegrationRepository returns the integration repository instance
func (f *Factory) GetIntegrationRepository() IntegrationRepository {
	return f.GetRepositories().Integration
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB, tokens *security.TokenCipher) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db, tokens)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
