package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// authResponse mirrors the server's authentication payload.
type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// do runs one request on the given transport and decodes either the
// result or the structured API error.
func do[T any](ctx context.Context, transport *resty.Client, method, path string, body any, query map[string]string) (T, error) {
	var result T
	var zero T
	var apiErr apiErrorBody

	req := transport.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return zero, errorFromResponse(resp, &apiErr)
	}
	return result, nil
}

// RegisterInput is the account registration payload. HR registrations
// must carry a company name.
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	PhotoURL    string `json:"photoURL,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	CompanyLogo string `json:"companyLogo,omitempty"`
}

// Register creates a new account. It does not sign in.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, error) {
	user, err := do[User](ctx, c.auth, http.MethodPost, "/users", in, nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn authenticates and installs the session. Any previously cached
// queries are dropped.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	result, err := do[authResponse](ctx, c.auth, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, nil)
	if err != nil {
		return nil, err
	}
	if result.User == nil || result.AccessToken == "" {
		return nil, fmt.Errorf("sign in: malformed server response")
	}

	ident := Identity{
		Email: result.User.Email,
		Name:  result.User.Name,
		Role:  result.User.Role,
	}
	c.cache.Clear()
	c.session.begin(ident, result.AccessToken, result.RefreshToken, tokenExpiry(result.AccessToken))
	return &ident, nil
}

// SignOut revokes the refresh token and clears the session. An explicit
// sign-out never fires the expiry handler.
func (c *Client) SignOut(ctx context.Context) error {
	_, refresh, _ := c.session.tokens()
	c.session.end()
	c.cache.Clear()

	if refresh == "" {
		return nil
	}
	if _, err := do[map[string]string](ctx, c.auth, http.MethodPost, "/auth/logout",
		map[string]string{"refresh_token": refresh}, nil); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// Packages lists the subscription tiers, cheapest first.
func (c *Client) Packages(ctx context.Context) ([]Package, error) {
	return cached(c, "packages", []string{tagPackages}, func() ([]Package, error) {
		return do[[]Package](ctx, c.auth, http.MethodGet, "/packages", nil, nil)
	})
}

// Profile fetches a profile record. Non-HR callers may only fetch their
// own.
func (c *Client) Profile(ctx context.Context, email string) (*User, error) {
	user, err := cached(c, "user:"+email, []string{tagProfile}, func() (User, error) {
		return do[User](ctx, c.http, http.MethodGet, "/users/"+email, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MyProfile fetches the signed-in account's profile record.
func (c *Client) MyProfile(ctx context.Context) (*User, error) {
	ident := c.session.Current()
	if ident == nil {
		return nil, ErrNotSignedIn
	}
	return c.Profile(ctx, ident.Email)
}

// Users lists every account. HR only.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	return do[[]User](ctx, c.http, http.MethodGet, "/users", nil, nil)
}
