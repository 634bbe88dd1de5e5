package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"assetverse/internal/errors"
	"assetverse/internal/service"
)

// AffiliationHandler handles roster endpoints.
type AffiliationHandler struct {
	affiliationService service.AffiliationService
}

// NewAffiliationHandler creates a new affiliation handler.
func NewAffiliationHandler(affiliationService service.AffiliationService) *AffiliationHandler {
	return &AffiliationHandler{affiliationService: affiliationService}
}

// Roster godoc
// @Summary List the calling HR's affiliated employees with package usage
// @Tags affiliations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Roster
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /affiliations/hr [get]
func (h *AffiliationHandler) Roster(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	roster, err := h.affiliationService.RosterForHR(c.Request().Context(), claims.Email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, roster)
}

// Remove godoc
// @Summary Remove an employee from the calling HR's company
// @Tags affiliations
// @Produce json
// @Security BearerAuth
// @Param email path string true "Employee email"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /affiliations/remove/{email} [patch]
func (h *AffiliationHandler) Remove(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	if err := h.affiliationService.Remove(c.Request().Context(), claims.Email, c.Param("email")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "employee removed"})
}
