package client

import (
	"context"
	"net/http"
)

// SubmitRequest asks for one unit of an asset. Employee only.
func (c *Client) SubmitRequest(ctx context.Context, assetID, note string) (*Request, error) {
	body := map[string]string{"assetId": assetID}
	if note != "" {
		body["note"] = note
	}
	request, err := do[Request](ctx, c.http, http.MethodPost, "/requests", body, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(tagRequests, tagHRQueue)
	return &request, nil
}

// MyRequests lists the calling employee's requests, optionally filtered
// by status.
func (c *Client) MyRequests(ctx context.Context, status string) ([]Request, error) {
	return cached(c, "requests?status="+status, []string{tagRequests}, func() ([]Request, error) {
		var query map[string]string
		if status != "" {
			query = map[string]string{"status": status}
		}
		return do[[]Request](ctx, c.http, http.MethodGet, "/requests", nil, query)
	})
}

// CompanyRequests lists every request addressed to the calling HR.
func (c *Client) CompanyRequests(ctx context.Context) ([]Request, error) {
	return cached(c, "requests:hr", []string{tagHRQueue}, func() ([]Request, error) {
		return do[[]Request](ctx, c.http, http.MethodGet, "/requests/hr", nil, nil)
	})
}

// ApproveRequest approves a pending request. Before firing the
// mutation it checks the package limit against the roster: approving a
// not-yet-affiliated employee at a full roster would only fail
// server-side, so the caller gets ErrUpgradeRequired up front and can
// offer an upgrade instead. The server still enforces the limit; a
// race lost against a concurrent approval surfaces as the same error.
func (c *Client) ApproveRequest(ctx context.Context, requestID string) (*Request, error) {
	if err := c.checkApprovalCapacity(ctx, requestID); err != nil {
		return nil, err
	}
	return c.decideRequest(ctx, requestID, RequestStatusApproved)
}

// RejectRequest rejects a pending request.
func (c *Client) RejectRequest(ctx context.Context, requestID string) (*Request, error) {
	return c.decideRequest(ctx, requestID, RequestStatusRejected)
}

func (c *Client) decideRequest(ctx context.Context, requestID, action string) (*Request, error) {
	request, err := do[Request](ctx, c.http, http.MethodPatch, "/requests/"+requestID,
		map[string]string{"action": action}, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(tagRequests, tagHRQueue, tagAssets, tagDirectory, tagRoster, tagProfile)
	return &request, nil
}

// checkApprovalCapacity returns ErrUpgradeRequired when the roster is
// full and the requester would need a new slot. An already-affiliated
// requester never needs one. If the request cannot be found locally the
// check is skipped and the server decides.
func (c *Client) checkApprovalCapacity(ctx context.Context, requestID string) error {
	requests, err := c.CompanyRequests(ctx)
	if err != nil {
		return err
	}
	var requesterEmail string
	for _, req := range requests {
		if req.ID == requestID {
			requesterEmail = req.RequesterEmail
			break
		}
	}
	if requesterEmail == "" {
		return nil
	}

	roster, err := c.Roster(ctx)
	if err != nil {
		return err
	}
	if roster.Used < roster.Limit {
		return nil
	}
	for _, member := range roster.Employees {
		if member.EmployeeEmail == requesterEmail {
			return nil
		}
	}
	return ErrUpgradeRequired
}
