package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user profile is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrAssetNotFound is returned when an asset is not found.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrRequestNotFound is returned when a request is not found.
	ErrRequestNotFound = errors.New("request not found")
	// ErrAffiliationNotFound is returned when an affiliation is not found.
	ErrAffiliationNotFound = errors.New("affiliation not found")
	// ErrPackageNotFound is returned when a subscription package is not found.
	ErrPackageNotFound = errors.New("package not found")
	// ErrAssetUnavailable is returned when an asset has no units left.
	ErrAssetUnavailable = errors.New("asset has no available quantity")
	// ErrInvalidQuantity is returned when asset quantities violate
	// 0 <= available <= total.
	ErrInvalidQuantity = errors.New("available quantity must be between zero and total quantity")
	// ErrRequestNotPending is returned when deciding a request that has
	// already reached a terminal status.
	ErrRequestNotPending = errors.New("request is not pending")
	// ErrEmployeeLimitReached is returned when approving would exceed the
	// HR's package employee limit.
	ErrEmployeeLimitReached = errors.New("employee limit reached for the active package")
	// ErrEmployeeNotAffiliated is returned when assigning an asset to an
	// employee outside the HR's company.
	ErrEmployeeNotAffiliated = errors.New("employee is not affiliated with this company")
	// ErrCheckoutSessionInvalid is returned when finalizing a payment with
	// an unknown, already-used, or expired tracking ID.
	ErrCheckoutSessionInvalid = errors.New("checkout session is invalid or expired")
	// ErrForbidden is returned when the caller's role does not grant the
	// operation.
	ErrForbidden = errors.New("forbidden")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Business-rule
// conflicts map to 409 with a machine code so clients can tell them
// apart from the 401/403 family, which force a sign-out.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrAssetNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrAffiliationNotFound),
		errors.Is(err, ErrPackageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrAssetUnavailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "ASSET_UNAVAILABLE")
	case errors.Is(err, ErrEmployeeLimitReached):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMPLOYEE_LIMIT_REACHED")
	case errors.Is(err, ErrRequestNotPending):
		return NewHTTPError(http.StatusConflict, err.Error(), "REQUEST_NOT_PENDING")
	case errors.Is(err, ErrCheckoutSessionInvalid):
		return NewHTTPError(http.StatusConflict, err.Error(), "CHECKOUT_SESSION_INVALID")
	case errors.Is(err, ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	case errors.Is(err, ErrEmployeeNotAffiliated):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPLOYEE_NOT_AFFILIATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
