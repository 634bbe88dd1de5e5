package client

import (
	"context"
	"net/http"
)

// CreateCheckoutSession starts a package upgrade. Price and limit are
// resolved server-side from the tier name; the returned URL carries the
// tracking ID to hand back to FinalizePayment.
func (c *Client) CreateCheckoutSession(ctx context.Context, packageName string) (*CheckoutSession, error) {
	session, err := do[CheckoutSession](ctx, c.http, http.MethodPost, "/create-checkout-session",
		map[string]string{"packageName": packageName}, nil)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FinalizePayment completes a checkout: the purchased tier becomes the
// account's active package. Invalid, foreign or expired tracking IDs
// fail with a conflict.
func (c *Client) FinalizePayment(ctx context.Context, trackingID string) (*Payment, error) {
	payment, err := do[Payment](ctx, c.http, http.MethodPost, "/payments",
		map[string]string{"trackingId": trackingID}, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(tagPayments, tagProfile, tagRoster)
	return &payment, nil
}

// PaymentHistory lists the calling HR's completed payments.
func (c *Client) PaymentHistory(ctx context.Context) ([]Payment, error) {
	return cached(c, "payments", []string{tagPayments}, func() ([]Payment, error) {
		return do[[]Payment](ctx, c.http, http.MethodGet, "/payments/history", nil, nil)
	})
}

// DowngradeToFree switches the account back to the free tier. Calling
// it while already on the free tier is a no-op.
func (c *Client) DowngradeToFree(ctx context.Context) (*ActivePackage, error) {
	pkg, err := do[ActivePackage](ctx, c.http, http.MethodPost, "/downgrade-to-free", nil, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(tagProfile, tagRoster)
	return &pkg, nil
}
