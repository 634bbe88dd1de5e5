package client

import (
	"context"
	"net/http"
)

// Roster lists the calling HR's affiliated employees with package
// usage.
func (c *Client) Roster(ctx context.Context) (*Roster, error) {
	roster, err := cached(c, "roster", []string{tagRoster}, func() (Roster, error) {
		return do[Roster](ctx, c.http, http.MethodGet, "/affiliations/hr", nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return &roster, nil
}

// RemoveAffiliate drops an employee from the calling HR's company,
// freeing one package slot. The employee keeps their account.
func (c *Client) RemoveAffiliate(ctx context.Context, employeeEmail string) error {
	if _, err := do[map[string]string](ctx, c.http, http.MethodPatch,
		"/affiliations/remove/"+employeeEmail, nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(tagRoster, tagProfile, tagDirectory)
	return nil
}
