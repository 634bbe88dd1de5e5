package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"assetverse/internal/errors"
	"assetverse/internal/service"
)

// PaymentHandler handles checkout and payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateCheckoutRequest names the tier being purchased. Price and limit
// are looked up server-side.
type CreateCheckoutRequest struct {
	PackageName string `json:"packageName" validate:"required"`
}

// FinalizePaymentRequest carries the tracking ID from the checkout
// redirect back to the server.
type FinalizePaymentRequest struct {
	TrackingID string `json:"trackingId" validate:"required"`
}

// CreateCheckoutSession godoc
// @Summary Start a package upgrade checkout
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCheckoutRequest true "Tier"
// @Success 200 {object} service.CheckoutSessionResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /create-checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	result, err := h.paymentService.CreateCheckoutSession(c.Request().Context(), claims.Email, req.PackageName)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, result)
}

// FinalizePayment godoc
// @Summary Finalize a checkout and activate the purchased package
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FinalizePaymentRequest true "Tracking ID"
// @Success 201 {object} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) FinalizePayment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req FinalizePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	payment, err := h.paymentService.FinalizePayment(c.Request().Context(), claims.Email, req.TrackingID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, payment)
}

// History godoc
// @Summary List the calling HR's payment history
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Payment
// @Failure 401 {object} errors.ErrorResponse
// @Router /payments/history [get]
func (h *PaymentHandler) History(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	payments, err := h.paymentService.History(c.Request().Context(), claims.Email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, payments)
}

// DowngradeToFree godoc
// @Summary Switch back to the free tier
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ActivePackage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /downgrade-to-free [post]
func (h *PaymentHandler) DowngradeToFree(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	pkg, err := h.paymentService.DowngradeToFree(c.Request().Context(), claims.Email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, pkg)
}
