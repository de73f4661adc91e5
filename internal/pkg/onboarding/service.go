package onboarding

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/ConnectX/app/models"
	"github.com/ManuelReschke/ConnectX/internal/pkg/metrics"
)

// RefreshThresholdDays is the remaining lifetime, in days, below which an
// integration token is refreshed. Exactly five days left is not refreshed.
const RefreshThresholdDays = 5.0

// AccountStore is the persistence the procedure needs.
type AccountStore interface {
	// FindByIdentityID returns nil and no error when no account exists.
	FindByIdentityID(ctx context.Context, identityID string) (*models.Account, error)
	Create(ctx context.Context, identityID, firstName, lastName, email string) (*models.Account, error)
	UpdateIntegrationToken(ctx context.Context, integrationID, token string, expiresAt time.Time) error
}

// RefreshedToken is what the token exchange hands back.
type RefreshedToken struct {
	AccessToken string
	ExpiresIn   int64
}

// TokenExchanger trades an old integration token for a new one.
type TokenExchanger interface {
	Refresh(ctx context.Context, oldToken string) (*RefreshedToken, error)
}

// Service runs onboarding and the integration token lifecycle.
type Service struct {
	accounts  AccountStore
	exchanger TokenExchanger
	now       func() time.Time
}

// NewService wires the service to its store and token exchange, using the
// wall clock.
func NewService(accounts AccountStore, exchanger TokenExchanger) *Service {
	return &Service{
		accounts:  accounts,
		exchanger: exchanger,
		now:       time.Now,
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// OnboardUser loads or creates the account of identity. For an existing
// account it also calls EnsureFreshIntegrations, so this call may write
// refreshed tokens even though it looks like a read.
func (s *Service) OnboardUser(ctx context.Context, identity models.Identity) OnboardingResult {
	result := s.onboard(ctx, identity)
	metrics.ObserveOnboarding(result.Status)
	if result.Err != nil {
		log.Errorf("[Onboarding] identity=%s: %v", identity.ID, result.Err)
	}
	return result
}

func (s *Service) onboard(ctx context.Context, identity models.Identity) OnboardingResult {
	if identity.IsZero() {
		return failedOnboarding(fail("lookup", CauseValidation, errors.New("identity id is empty")))
	}

	account, err := s.accounts.FindByIdentityID(ctx, identity.ID)
	if err != nil {
		return failedOnboarding(fail("lookup", CauseStore, err))
	}

	if account != nil {
		if _, err := s.EnsureFreshIntegrations(ctx, account); err != nil {
			var oe *Error
			if !errors.As(err, &oe) {
				oe = fail("refresh", CauseStore, err)
			}
			return failedOnboarding(oe)
		}
		return OnboardingResult{Status: http.StatusOK, Data: profileOf(account)}
	}

	if _, err := models.NewAccount(identity.ID, identity.FirstName, identity.LastName, identity.PrimaryEmail); err != nil {
		return failedOnboarding(fail("create", CauseValidation, err))
	}
	created, err := s.accounts.Create(ctx, identity.ID, identity.FirstName, identity.LastName, identity.PrimaryEmail)
	if err != nil {
		return failedOnboarding(fail("create", CauseStore, err))
	}

	log.Infof("[Onboarding] created account %d for identity %s", created.ID, identity.ID)
	return OnboardingResult{Status: http.StatusCreated, Data: profileOf(created)}
}

// EnsureFreshIntegrations refreshes, in order, every integration of account
// that expires in less than RefreshThresholdDays and persists each new token
// right away. It stops at the first failure; tokens refreshed before that
// stay written. The account's integrations are updated in place. Returns the
// number of integrations refreshed.
func (s *Service) EnsureFreshIntegrations(ctx context.Context, account *models.Account) (int, error) {
	refreshed := 0
	for i := range account.Integrations {
		integration := &account.Integrations[i]
		now := s.now()
		if integration.DaysUntilExpiry(now) >= RefreshThresholdDays {
			continue
		}

		token, err := s.exchanger.Refresh(ctx, integration.Token)
		if err != nil {
			metrics.ObserveTokenRefresh(metrics.RefreshExchangeError)
			return refreshed, fail("refresh", CauseExchange, err)
		}

		expiresAt := models.ExpiryFromLifetime(now, token.ExpiresIn)
		if err := s.accounts.UpdateIntegrationToken(ctx, integration.ID, token.AccessToken, expiresAt); err != nil {
			metrics.ObserveTokenRefresh(metrics.RefreshStoreError)
			return refreshed, fail("persist token", CauseStore, err)
		}

		integration.Token = token.AccessToken
		integration.ExpiresAt = &expiresAt
		refreshed++
		metrics.ObserveTokenRefresh(metrics.RefreshOK)
		log.Infof("[Onboarding] refreshed %s integration %s, expires %s", integration.Name, integration.ID, expiresAt.UTC().Format(time.RFC3339))
	}
	return refreshed, nil
}

// UserInfo is the read-only account lookup; no token is touched.
func (s *Service) UserInfo(ctx context.Context, identity models.Identity) UserInfoResult {
	if identity.IsZero() {
		return UserInfoResult{Status: http.StatusInternalServerError, Err: fail("lookup", CauseValidation, errors.New("identity id is empty"))}
	}

	account, err := s.accounts.FindByIdentityID(ctx, identity.ID)
	if err != nil {
		log.Errorf("[Onboarding] user info identity=%s: %v", identity.ID, err)
		return UserInfoResult{Status: http.StatusInternalServerError, Err: fail("lookup", CauseStore, err)}
	}
	if account == nil {
		return UserInfoResult{Status: http.StatusNotFound}
	}
	return UserInfoResult{Status: http.StatusOK, Data: account}
}
