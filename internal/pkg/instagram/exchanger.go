package instagram

import (
	"context"

	"github.com/ManuelReschke/ConnectX/internal/pkg/onboarding"
)

// Exchanger adapts Client to the refresh contract of the onboarding service.
type Exchanger struct {
	Client *Client
}

// NewExchanger wraps client for use by onboarding.Service.
func NewExchanger(client *Client) *Exchanger {
	return &Exchanger{Client: client}
}

// Refresh calls RefreshToken once and hands back the new token and lifetime.
func (e *Exchanger) Refresh(ctx context.Context, oldToken string) (*onboarding.RefreshedToken, error) {
	resp, err := e.Client.RefreshToken(ctx, oldToken)
	if err != nil {
		return nil, err
	}
	return &onboarding.RefreshedToken{AccessToken: resp.AccessToken, ExpiresIn: resp.ExpiresIn}, nil
}

var _ onboarding.TokenExchanger = (*Exchanger)(nil)
