package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/ManuelReschke/ConnectX/internal/pkg/constants"
	"github.com/ManuelReschke/ConnectX/internal/pkg/env"
)

const (
	defaultBaseURL      = "https://graph.instagram.com"
	defaultTokenURL     = "https://api.instagram.com/oauth/access_token"
	defaultAuthorizeURL = "https://www.instagram.com/oauth/authorize"

	defaultRatePerSecond = 5
	defaultBurst         = 5
)

var DefaultScopes = []string{
	"instagram_business_basic",
	"instagram_business_manage_messages",
	"instagram_business_manage_comments",
	"instagram_business_content_publish",
}

// ErrNoPermissions is returned when the user authorized the app without
// granting any permission; no long-lived token is requested in that case.
var ErrNoPermissions = errors.New("instagram authorization granted no permissions")

// Client talks to the Instagram login, Graph token and messaging endpoints.
type Client struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	BaseURL      string
	TokenURL     string
	AuthorizeURL string
	Scopes       []string

	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// TokenResponse is the long-lived token payload of the Graph token endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ShortLivedToken is the result of the authorization code exchange.
type ShortLivedToken struct {
	AccessToken string
	UserID      string
	Permissions []string
}

// Grant is a connected Instagram account with its long-lived token.
type Grant struct {
	TokenResponse
	UserID string
}

// NewClientFromEnv builds a client from the INSTAGRAM_* settings. The
// redirect URI defaults to the public callback route.
func NewClientFromEnv() *Client {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	redirectURI := strings.TrimSpace(env.GetEnv("INSTAGRAM_REDIRECT_URI", ""))
	if redirectURI == "" && base != "" {
		redirectURI = base + constants.InstagramCallbackRoute
	}

	return &Client{
		ClientID:     strings.TrimSpace(env.GetEnv("INSTAGRAM_CLIENT_ID", "")),
		ClientSecret: strings.TrimSpace(env.GetEnv("INSTAGRAM_CLIENT_SECRET", "")),
		RedirectURI:  redirectURI,
		BaseURL:      strings.TrimSpace(env.GetEnv("INSTAGRAM_BASE_URL", defaultBaseURL)),
		TokenURL:     strings.TrimSpace(env.GetEnv("INSTAGRAM_TOKEN_URL", defaultTokenURL)),
		AuthorizeURL: strings.TrimSpace(env.GetEnv("INSTAGRAM_AUTHORIZE_URL", defaultAuthorizeURL)),
		Scopes:       DefaultScopes,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Limit(env.GetEnvFloat("INSTAGRAM_RATE_PER_SEC", defaultRatePerSecond)), defaultBurst),
	}
}

func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Scopes:       c.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthorizeURL,
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthorizeURLWithState returns the Instagram login URL carrying state.
func (c *Client) AuthorizeURLWithState(state string) (string, error) {
	if strings.TrimSpace(c.ClientID) == "" {
		return "", errors.New("INSTAGRAM_CLIENT_ID is not configured")
	}
	if strings.TrimSpace(c.RedirectURI) == "" {
		return "", errors.New("INSTAGRAM_REDIRECT_URI is not configured")
	}
	return c.oauthConfig().AuthCodeURL(state), nil
}

// RefreshToken trades a valid long-lived token for a fresh one. The call is
// made exactly once; callers decide what a failure means.
func (c *Client) RefreshToken(ctx context.Context, token string) (*TokenResponse, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("access token is required")
	}
	endpoint := fmt.Sprintf("%s/refresh_access_token?grant_type=ig_refresh_token&access_token=%s",
		strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(token))

	return c.getToken(ctx, endpoint, "refresh")
}

// ExchangeLongLived swaps a short-lived login token for a long-lived one.
func (c *Client) ExchangeLongLived(ctx context.Context, shortToken string) (*TokenResponse, error) {
	if strings.TrimSpace(c.ClientSecret) == "" {
		return nil, errors.New("INSTAGRAM_CLIENT_SECRET is not configured")
	}
	endpoint := fmt.Sprintf("%s/access_token?grant_type=ig_exchange_token&client_secret=%s&access_token=%s",
		strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(c.ClientSecret), url.QueryEscape(shortToken))

	return c.getToken(ctx, endpoint, "long-lived exchange")
}

// ExchangeCode completes the authorization code grant.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*ShortLivedToken, error) {
	if strings.TrimSpace(c.ClientID) == "" || strings.TrimSpace(c.ClientSecret) == "" {
		return nil, errors.New("INSTAGRAM_CLIENT_ID/INSTAGRAM_CLIENT_SECRET are not configured")
	}
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("oauth code is required")
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	if c.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
	}
	tok, err := c.oauthConfig().Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("instagram code exchange failed: %w", err)
	}

	return &ShortLivedToken{
		AccessToken: tok.AccessToken,
		UserID:      extraString(tok.Extra("user_id")),
		Permissions: extraList(tok.Extra("permissions")),
	}, nil
}

// GenerateTokens runs the full connect exchange: code → short-lived token →
// long-lived token. It stops with ErrNoPermissions when nothing was granted.
func (c *Client) GenerateTokens(ctx context.Context, code string) (*Grant, error) {
	short, err := c.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(short.Permissions) == 0 {
		return nil, ErrNoPermissions
	}

	long, err := c.ExchangeLongLived(ctx, short.AccessToken)
	if err != nil {
		return nil, err
	}
	return &Grant{TokenResponse: *long, UserID: short.UserID}, nil
}

func (c *Client) getToken(ctx context.Context, endpoint, op string) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := c.do(req, op, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do waits for the limiter, sends req once and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, op string, out interface{}) error {
	if err := c.wait(req.Context()); err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("instagram %s failed: status=%d body=%s", op, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("instagram %s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.Limiter == nil {
		return nil
	}
	return c.Limiter.Wait(ctx)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func extraString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// Instagram reports permissions either as a JSON array or a comma list.
func extraList(v interface{}) []string {
	var out []string
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
