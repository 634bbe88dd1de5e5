package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"assetverse/internal/errors"
	"assetverse/internal/model"
	"assetverse/internal/service"
)

// AssetHandler handles inventory and directory endpoints.
type AssetHandler struct {
	assetService service.AssetService
	userService  service.UserService
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(assetService service.AssetService, userService service.UserService) *AssetHandler {
	return &AssetHandler{assetService: assetService, userService: userService}
}

// CreateAssetRequest represents a new asset posting.
type CreateAssetRequest struct {
	ProductName     string `json:"productName" validate:"required,min=2"`
	ProductImage    string `json:"productImage" validate:"required,url"`
	ProductType     string `json:"productType" validate:"required,oneof=returnable non-returnable"`
	ProductQuantity int    `json:"productQuantity" validate:"required,gt=0"`
	ProductDetails  string `json:"productDetails" validate:"required"`
}

// UpdateAssetRequest represents a partial asset edit.
type UpdateAssetRequest struct {
	ProductName       *string `json:"productName" validate:"omitempty,min=2"`
	ProductImage      *string `json:"productImage" validate:"omitempty,url"`
	ProductType       *string `json:"productType" validate:"omitempty,oneof=returnable non-returnable"`
	ProductQuantity   *int    `json:"productQuantity" validate:"omitempty,gt=0"`
	AvailableQuantity *int    `json:"availableQuantity" validate:"omitempty,gte=0"`
	ProductDetails    *string `json:"productDetails"`
}

// AssignAssetRequest selects the affiliated employee receiving a unit.
type AssignAssetRequest struct {
	EmployeeEmail string `json:"employeeEmail" validate:"required,email"`
}

// CreateAsset godoc
// @Summary Post a new asset
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAssetRequest true "Asset data"
// @Success 201 {object} model.Asset
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /assets [post]
func (h *AssetHandler) CreateAsset(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateAssetRequest
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

	hr, err := h.userService.GetByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	asset, err := h.assetService.Create(c.Request().Context(), hr, service.CreateAssetInput{
		ProductName:     req.ProductName,
		ProductImage:    req.ProductImage,
		ProductType:     model.AssetType(req.ProductType),
		ProductQuantity: req.ProductQuantity,
		ProductDetails:  req.ProductDetails,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, asset)
}

// UpdateAsset godoc
// @Summary Edit an asset
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Param request body UpdateAssetRequest true "Fields to change"
// @Success 200 {object} model.Asset
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /assets/{id} [patch]
func (h *AssetHandler) UpdateAsset(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid asset id",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateAssetRequest
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

	input := service.UpdateAssetInput{
		ProductName:       req.ProductName,
		ProductImage:      req.ProductImage,
		ProductQuantity:   req.ProductQuantity,
		AvailableQuantity: req.AvailableQuantity,
		ProductDetails:    req.ProductDetails,
	}
	if req.ProductType != nil {
		productType := model.AssetType(*req.ProductType)
		input.ProductType = &productType
	}

	asset, err := h.assetService.Update(c.Request().Context(), claims.Email, id, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, asset)
}

// DeleteAsset godoc
// @Summary Delete an asset
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid asset id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.assetService.Delete(c.Request().Context(), claims.Email, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "asset deleted"})
}

// AssignAsset godoc
// @Summary Assign one unit of an asset to an affiliated employee
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Param request body AssignAssetRequest true "Assignment target"
// @Success 200 {object} model.Asset
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /assets/assign/{id} [patch]
func (h *AssetHandler) AssignAsset(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid asset id",
			Code:  "INVALID_UUID",
		})
	}

	var req AssignAssetRequest
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

	asset, err := h.assetService.Assign(c.Request().Context(), claims.Email, id, req.EmployeeEmail)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, asset)
}

// ListMyAssets godoc
// @Summary List the calling HR's asset inventory
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.AssetPage
// @Failure 401 {object} errors.ErrorResponse
// @Router /assets [get]
func (h *AssetHandler) ListMyAssets(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.assetService.ListByHR(c.Request().Context(), claims.Email, page, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, result)
}

// Directory godoc
// @Summary Browse the asset directory
// @Description Paginated, searchable list. Affiliated employees are scoped to their company's assets.
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param search query string false "Product name substring"
// @Param type query string false "returnable or non-returnable"
// @Success 200 {object} service.AssetPage
// @Failure 401 {object} errors.ErrorResponse
// @Router /assigned-assets [get]
func (h *AssetHandler) Directory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))

	query := service.DirectoryQuery{
		Search: c.QueryParam("search"),
		Type:   model.AssetType(c.QueryParam("type")),
		Page:   page,
	}

	requesterEmail := ""
	if claims.Role == model.RoleEmployee {
		requesterEmail = claims.Email
	}

	result, err := h.assetService.Directory(c.Request().Context(), requesterEmail, query)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, result)
}
