package client

import (
	"context"
	"sync"
)

// View describes an access-controlled destination.
type View struct {
	Name         string
	RequiresAuth bool
	RequiredRole Role // empty means any authenticated role
}

// PublicView is reachable by anyone.
func PublicView(name string) View {
	return View{Name: name}
}

// AuthenticatedView needs a signed-in account of any role.
func AuthenticatedView(name string) View {
	return View{Name: name, RequiresAuth: true}
}

// HRView needs a signed-in HR.
func HRView(name string) View {
	return View{Name: name, RequiresAuth: true, RequiredRole: RoleHR}
}

// EmployeeView needs a signed-in employee.
func EmployeeView(name string) View {
	return View{Name: name, RequiresAuth: true, RequiredRole: RoleEmployee}
}

// DecisionKind tags an access decision.
type DecisionKind int

const (
	// DecisionGranted admits the caller.
	DecisionGranted DecisionKind = iota
	// DecisionRedirectToLogin sends an unauthenticated caller to sign
	// in; RedirectTarget preserves where they were headed.
	DecisionRedirectToLogin
	// DecisionForbidden rejects an authenticated caller whose role does
	// not match. No redirect: the role will not change by signing in
	// again.
	DecisionForbidden
	// DecisionPending means the role is not resolved yet; callers must
	// wait rather than guess.
	DecisionPending
)

// Decision is the outcome of an access check.
type Decision struct {
	Kind           DecisionKind
	RedirectTarget string
}

// CanAccess is the single capability check all guards consume. target
// is the caller's intended destination, preserved on redirect.
func CanAccess(view View, ident *Identity, target string) Decision {
	if !view.RequiresAuth {
		return Decision{Kind: DecisionGranted}
	}
	if ident == nil {
		return Decision{Kind: DecisionRedirectToLogin, RedirectTarget: target}
	}
	if view.RequiredRole == "" || ident.Role == view.RequiredRole {
		return Decision{Kind: DecisionGranted}
	}
	return Decision{Kind: DecisionForbidden}
}

// RoleResolver resolves the signed-in account's role from its profile
// record. Until the first Resolve completes, role-gated checks through
// Guard answer Pending instead of granting or refusing on a guess.
type RoleResolver struct {
	c *Client

	mu       sync.Mutex
	role     Role
	resolved bool
}

// NewRoleResolver creates a resolver bound to the client's session; a
// session change discards the resolved role.
func NewRoleResolver(c *Client) *RoleResolver {
	r := &RoleResolver{c: c}
	c.session.Subscribe(func(*Identity) {
		r.mu.Lock()
		r.role = ""
		r.resolved = false
		r.mu.Unlock()
	})
	return r
}

// Resolve fetches the role once and caches it for the session.
func (r *RoleResolver) Resolve(ctx context.Context) (Role, error) {
	r.mu.Lock()
	if r.resolved {
		role := r.role
		r.mu.Unlock()
		return role, nil
	}
	r.mu.Unlock()

	ident := r.c.session.Current()
	if ident == nil {
		return "", ErrNotSignedIn
	}
	profile, err := r.c.Profile(ctx, ident.Email)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.role = profile.Role
	r.resolved = true
	r.mu.Unlock()
	return profile.Role, nil
}

// Resolved reports whether the role is known.
func (r *RoleResolver) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// Guard checks access to a view using the resolved role. An
// unauthenticated caller is redirected regardless of resolution state;
// a role-gated view with an unresolved role answers Pending.
func (r *RoleResolver) Guard(view View, target string) Decision {
	ident := r.c.session.Current()
	if ident == nil || !view.RequiresAuth {
		return CanAccess(view, ident, target)
	}
	if view.RequiredRole == "" {
		return Decision{Kind: DecisionGranted}
	}

	r.mu.Lock()
	resolved, role := r.resolved, r.role
	r.mu.Unlock()
	if !resolved {
		return Decision{Kind: DecisionPending}
	}

	checked := *ident
	checked.Role = role
	return CanAccess(view, &checked, target)
}
