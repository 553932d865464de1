package types

import (
	"errors"
	"time"
)

const (
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "simplefin-go/1.0.0"
)

// Common errors
var (
	// ErrAccessURLMissing is returned when no access URL is configured
	ErrAccessURLMissing = errors.New("access URL not configured")

	// ErrAccessURLMalformed is returned when the access URL lacks embedded credentials
	ErrAccessURLMalformed = errors.New("access URL malformed")

	// ErrAuthenticationFailed is returned on HTTP 403 from the upstream API
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSubscriptionRequired is returned on HTTP 402 from the upstream API
	ErrSubscriptionRequired = errors.New("subscription required")

	// ErrNetworkFailure is returned on connection or timeout failures
	ErrNetworkFailure = errors.New("network failure")

	// ErrInvalidSetupToken is returned when a setup token cannot be decoded
	ErrInvalidSetupToken = errors.New("invalid setup token")

	// ErrClaimFailed is returned when the claim endpoint rejects a setup token
	ErrClaimFailed = errors.New("claim failed")

	// ErrInvalidDate is returned when a date argument is not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date")

	// ErrAccountNotFound is returned when an account ID is absent from the response
	ErrAccountNotFound = errors.New("account not found")
)
