package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	hr := &Identity{Email: "hr@example.com", Role: RoleHR}
	employee := &Identity{Email: "employee@example.com", Role: RoleEmployee}

	tests := []struct {
		name     string
		view     View
		ident    *Identity
		target   string
		expected Decision
	}{
		{
			name:     "public view admits anyone",
			view:     PublicView("packages"),
			ident:    nil,
			expected: Decision{Kind: DecisionGranted},
		},
		{
			name:     "unauthenticated caller is redirected with target preserved",
			view:     AuthenticatedView("dashboard"),
			ident:    nil,
			target:   "/dashboard/myAssets",
			expected: Decision{Kind: DecisionRedirectToLogin, RedirectTarget: "/dashboard/myAssets"},
		},
		{
			name:     "any authenticated role passes a plain auth view",
			view:     AuthenticatedView("profile"),
			ident:    employee,
			expected: Decision{Kind: DecisionGranted},
		},
		{
			name:     "hr passes an hr view",
			view:     HRView("assetList"),
			ident:    hr,
			expected: Decision{Kind: DecisionGranted},
		},
		{
			name:     "employee on an hr view is forbidden, not redirected",
			view:     HRView("assetList"),
			ident:    employee,
			target:   "/dashboard/assetList",
			expected: Decision{Kind: DecisionForbidden},
		},
		{
			name:     "hr on an employee view is forbidden",
			view:     EmployeeView("requestAsset"),
			ident:    hr,
			expected: Decision{Kind: DecisionForbidden},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanAccess(tt.view, tt.ident, tt.target))
		})
	}
}

func TestRoleResolver(t *testing.T) {
	mux := http.NewServeMux()
	registerLogin(mux, signTestToken(t, time.Hour), User{Email: "test@example.com", Role: RoleHR})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, User{Email: "test@example.com", Role: RoleHR})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	resolver := NewRoleResolver(c)

	// Unauthenticated: redirect regardless of resolution state.
	decision := resolver.Guard(HRView("assetList"), "/dashboard/assetList")
	assert.Equal(t, DecisionRedirectToLogin, decision.Kind)
	assert.Equal(t, "/dashboard/assetList", decision.RedirectTarget)

	signIn(t, c)

	// Signed in but unresolved: a role-gated view must not guess.
	decision = resolver.Guard(HRView("assetList"), "/dashboard/assetList")
	assert.Equal(t, DecisionPending, decision.Kind)

	// A view without a role requirement needs no resolution.
	decision = resolver.Guard(AuthenticatedView("profile"), "/dashboard/profile")
	assert.Equal(t, DecisionGranted, decision.Kind)

	role, err := resolver.Resolve(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, RoleHR, role)
	assert.True(t, resolver.Resolved())

	decision = resolver.Guard(HRView("assetList"), "/dashboard/assetList")
	assert.Equal(t, DecisionGranted, decision.Kind)

	decision = resolver.Guard(EmployeeView("requestAsset"), "/dashboard/requestAsset")
	assert.Equal(t, DecisionForbidden, decision.Kind)

	// Sign-out discards the resolved role.
	assert.NoError(t, c.SignOut(context.Background()))
	assert.False(t, resolver.Resolved())
	decision = resolver.Guard(HRView("assetList"), "/dashboard/assetList")
	assert.Equal(t, DecisionRedirectToLogin, decision.Kind)
}
