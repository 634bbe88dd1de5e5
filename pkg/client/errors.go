package client

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Sentinel errors surfaced by client operations.
var (
	// ErrNotSignedIn means the operation needs an authenticated session
	// and none is active.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrSessionExpired means the access token could not be refreshed;
	// the session has been cleared.
	ErrSessionExpired = errors.New("session expired")

	// ErrUpgradeRequired means the HR's package limit blocks the action.
	// Callers should offer an upgrade instead of retrying.
	ErrUpgradeRequired = errors.New("employee limit reached, package upgrade required")
)

// API error codes the client gives special treatment.
const (
	codeEmployeeLimitReached = "EMPLOYEE_LIMIT_REACHED"
)

// APIError is a structured error response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%s message=%s", e.Status, e.Code, e.Message)
}

// Is lets a server-reported limit conflict match ErrUpgradeRequired,
// so a race lost against another approval behaves like the pre-check.
func (e *APIError) Is(target error) bool {
	return target == ErrUpgradeRequired && e.Code == codeEmployeeLimitReached
}

// apiErrorBody mirrors the server's error payload. Echo wraps handler
// error payloads in a "message" envelope, so both shapes are accepted.
type apiErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	} `json:"message"`
}

// errorFromResponse builds an APIError from a failed response.
func errorFromResponse(resp *resty.Response, body *apiErrorBody) error {
	apiErr := &APIError{Status: resp.StatusCode()}
	if body != nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
		if apiErr.Code == "" {
			apiErr.Code = body.Message.Code
		}
		if apiErr.Message == "" {
			apiErr.Message = body.Message.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status()
	}
	return apiErr
}
