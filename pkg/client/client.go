package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	defaultTimeout = 15 * time.Second

	// tokenSkew is how long before the recorded expiry the access token
	// is treated as stale and refreshed.
	tokenSkew = 30 * time.Second

	// fallbackTokenTTL is assumed when a token carries no exp claim.
	fallbackTokenTTL = 10 * time.Minute
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithSessionExpiredHandler sets the callback fired when the server
// rejects the session (401/403) or a token refresh fails. It runs at
// most once per sign-in, after the session has been cleared.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// Client is an API client with an authenticated transport. Every
// request through the secured transport carries a fresh access token;
// any 401 or 403 response clears the session and fires the configured
// expiry handler.
type Client struct {
	http *resty.Client // secured transport
	auth *resty.Client // bare transport for auth and public endpoints

	session          *Session
	cache            *queryCache
	onSessionExpired func()
	timeout          time.Duration

	refreshMu sync.Mutex
}

// New creates a Client for the given API base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		session: newSession(),
		cache:   newQueryCache(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	base := strings.TrimSuffix(baseURL, "/")

	c.auth = resty.New().
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetTimeout(c.timeout)

	c.http = resty.New().
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetTimeout(c.timeout)

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		token, err := c.freshAccessToken(req.Context())
		if err != nil {
			return err
		}
		req.SetHeader("Authorization", "Bearer "+token)
		return nil
	})

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
			c.expireSession()
		}
		return nil
	})

	return c
}

// Session returns the client's identity session.
func (c *Client) Session() *Session {
	return c.session
}

// freshAccessToken returns a usable access token, refreshing it first
// when it is within tokenSkew of expiry.
func (c *Client) freshAccessToken(ctx context.Context) (string, error) {
	access, refresh, expiry := c.session.tokens()
	if access == "" {
		return "", ErrNotSignedIn
	}
	if time.Until(expiry) > tokenSkew {
		return access, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another request may have refreshed while we waited for the lock.
	access, refresh, expiry = c.session.tokens()
	if access == "" {
		return "", ErrNotSignedIn
	}
	if time.Until(expiry) > tokenSkew {
		return access, nil
	}

	var result authResponse
	var apiErr apiErrorBody
	resp, err := c.auth.R().
		SetContext(ctx).
		SetBody(map[string]string{"refresh_token": refresh}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/auth/refresh")
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	if resp.IsError() || result.AccessToken == "" {
		c.expireSession()
		return "", ErrSessionExpired
	}

	c.session.setAccessToken(result.AccessToken, tokenExpiry(result.AccessToken))
	return result.AccessToken, nil
}

// expireSession clears the session, drops cached queries and fires the
// expiry handler. Only the call that actually cleared the session fires
// the handler.
func (c *Client) expireSession() {
	if !c.session.end() {
		return
	}
	c.cache.Clear()
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client only needs it for refresh scheduling.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(fallbackTokenTTL)
}
