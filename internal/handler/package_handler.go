package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"assetverse/internal/errors"
	"assetverse/internal/service"
)

// PackageHandler handles subscription tier endpoints.
type PackageHandler struct {
	packageService service.PackageService
}

// NewPackageHandler creates a new package handler.
func NewPackageHandler(packageService service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// ListPackages godoc
// @Summary List subscription tiers
// @Tags packages
// @Produce json
// @Success 200 {array} model.Package
// @Failure 500 {object} errors.ErrorResponse
// @Router /packages [get]
func (h *PackageHandler) ListPackages(c echo.Context) error {
	packages, err := h.packageService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, packages)
}
