package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "test@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"message": map[string]string{"error": message, "code": code},
	})
}

// registerLogin wires a login handler that issues the given token for
// the given user.
func registerLogin(mux *http.ServeMux, token string, user User) {
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  token,
			"refresh_token": "refresh-abc",
			"user":          user,
		})
	})
}

func signIn(t *testing.T, c *Client) *Identity {
	t.Helper()
	ident, err := c.SignIn(context.Background(), "test@example.com", "password123")
	assert.NoError(t, err)
	return ident
}

func TestClient_SignIn(t *testing.T) {
	mux := http.NewServeMux()
	registerLogin(mux, signTestToken(t, time.Hour), User{
		Name:  "Test HR",
		Email: "test@example.com",
		Role:  RoleHR,
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)

	var observed []*Identity
	c.Session().Subscribe(func(ident *Identity) {
		observed = append(observed, ident)
	})

	ident := signIn(t, c)
	assert.Equal(t, "test@example.com", ident.Email)
	assert.Equal(t, RoleHR, ident.Role)
	assert.True(t, c.Session().Authenticated())

	if assert.Len(t, observed, 1) {
		assert.NotNil(t, observed[0])
		assert.Equal(t, "test@example.com", observed[0].Email)
	}
}

func TestClient_SignIn_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SignIn(context.Background(), "test@example.com", "wrong")

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.False(t, c.Session().Authenticated())
}

func TestClient_UnauthorizedResponseSignsOut(t *testing.T) {
	mux := http.NewServeMux()
	registerLogin(mux, signTestToken(t, time.Hour), User{Email: "test@example.com", Role: RoleHR})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var expiries atomic.Int32
	c := New(srv.URL, WithSessionExpiredHandler(func() {
		expiries.Add(1)
	}))
	signIn(t, c)

	_, err := c.Profile(context.Background(), "test@example.com")
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	// The interceptor cleared the session and ran the handler once.
	assert.False(t, c.Session().Authenticated())
	assert.Equal(t, int32(1), expiries.Load())

	// Further authenticated calls fail fast without reviving the handler.
	_, err = c.Profile(context.Background(), "test@example.com")
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.Equal(t, int32(1), expiries.Load())
}

func TestClient_ForbiddenResponseSignsOut(t *testing.T) {
	mux := http.NewServeMux()
	registerLogin(mux, signTestToken(t, time.Hour), User{Email: "test@example.com", Role: RoleEmployee})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var expired bool
	c := New(srv.URL, WithSessionExpiredHandler(func() { expired = true }))
	signIn(t, c)

	_, err := c.Users(context.Background())
	assert.Error(t, err)
	assert.False(t, c.Session().Authenticated())
	assert.True(t, expired)
}

func TestClient_SignOutDoesNotFireExpiryHandler(t *testing.T) {
	mux := http.NewServeMux()
	registerLogin(mux, signTestToken(t, time.Hour), User{Email: "test@example.com", Role: RoleHR})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var expired bool
	c := New(srv.URL, WithSessionExpiredHandler(func() { expired = true }))
	signIn(t, c)

	var observed []*Identity
	c.Session().Subscribe(func(ident *Identity) {
		observed = append(observed, ident)
	})

	assert.NoError(t, c.SignOut(context.Background()))
	assert.False(t, c.Session().Authenticated())
	assert.False(t, expired)

	if assert.Len(t, observed, 1) {
		assert.Nil(t, observed[0])
	}
}

func TestClient_RefreshesStaleToken(t *testing.T) {
	staleToken := signTestToken(t, 5*time.Second) // inside the skew window
	freshToken := signTestToken(t, time.Hour)

	var refreshes atomic.Int32
	var authHeader atomic.Value

	mux := http.NewServeMux()
	registerLogin(mux, staleToken, User{Email: "test@example.com", Role: RoleHR})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "refresh-abc", body["refresh_token"])
		refreshes.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{"access_token": freshToken})
	})
	mux.HandleFunc("/affiliations/hr", func(w http.ResponseWriter, r *http.Request) {
		authHeader.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, Roster{Limit: 5})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	signIn(t, c)

	_, err := c.Roster(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, "Bearer "+freshToken, authHeader.Load())
}

func TestClient_FailedRefreshExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	registerLogin(mux, signTestToken(t, 5*time.Second), User{Email: "test@example.com", Role: RoleHR})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "invalid or expired refresh token")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var expired bool
	c := New(srv.URL, WithSessionExpiredHandler(func() { expired = true }))
	signIn(t, c)

	_, err := c.Roster(context.Background())
	assert.True(t, errors.Is(err, ErrSessionExpired))
	assert.False(t, c.Session().Authenticated())
	assert.True(t, expired)
}
