package domain

import "errors"

// Sentinel errors for API operations
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrServerUnavailable indicates the API is unreachable or failing
	ErrServerUnavailable = errors.New("api server is unavailable")

	// ErrUnexpectedStatus indicates a non-2xx status other than 404 or 5xx
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrDecode indicates the response body could not be decoded
	ErrDecode = errors.New("failed to decode response")
)
