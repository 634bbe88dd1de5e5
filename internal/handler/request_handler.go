package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"assetverse/internal/errors"
	"assetverse/internal/model"
	"assetverse/internal/service"
)

// RequestHandler handles request lifecycle endpoints.
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// SubmitRequestRequest represents an employee's asset request.
type SubmitRequestRequest struct {
	AssetID string `json:"assetId" validate:"required,uuid"`
	Note    string `json:"note"`
}

// DecideRequestRequest carries the HR's decision.
type DecideRequestRequest struct {
	Action string `json:"action" validate:"required,oneof=approved rejected"`
}

// SubmitRequest godoc
// @Summary Submit an asset request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRequestRequest true "Request data"
// @Success 201 {object} model.Request
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /requests [post]
func (h *RequestHandler) SubmitRequest(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SubmitRequestRequest
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

	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid asset id",
			Code:  "INVALID_UUID",
		})
	}

	requester := &model.User{Name: claims.Name, Email: claims.Email, Role: claims.Role}
	request, err := h.requestService.Submit(c.Request().Context(), requester, service.SubmitRequestInput{
		AssetID: assetID,
		Note:    req.Note,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, request)
}

// ListMyRequests godoc
// @Summary List the calling employee's requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Success 200 {array} model.Request
// @Failure 401 {object} errors.ErrorResponse
// @Router /requests [get]
func (h *RequestHandler) ListMyRequests(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	status := model.RequestStatus(c.QueryParam("status"))
	requests, err := h.requestService.ListForRequester(c.Request().Context(), claims.Email, status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, requests)
}

// ListHRRequests godoc
// @Summary List all requests addressed to the calling HR
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Request
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /requests/hr [get]
func (h *RequestHandler) ListHRRequests(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	requests, err := h.requestService.ListForHR(c.Request().Context(), claims.Email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, requests)
}

// DecideRequest godoc
// @Summary Approve or reject a pending request
// @Description Approval re-checks availability and the package employee limit server-side; a stale client pre-check cannot bypass either.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body DecideRequestRequest true "Decision"
// @Success 200 {object} model.Request
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /requests/{id} [patch]
func (h *RequestHandler) DecideRequest(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request id",
			Code:  "INVALID_UUID",
		})
	}

	var req DecideRequestRequest
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

	request, err := h.requestService.Decide(c.Request().Context(), claims.Email, id, model.RequestStatus(req.Action))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, request)
}
