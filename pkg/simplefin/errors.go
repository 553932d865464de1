package simplefin

import (
	internalTypes "github.com/simplefin-mcp/simplefin-go/internal/types"
)

// Sentinel errors for errors.Is checks. Every error returned by this package
// wraps one of these alongside an actionable message.
var (
	// ErrAccessURLMissing is returned when no access URL is configured
	ErrAccessURLMissing = internalTypes.ErrAccessURLMissing

	// ErrAccessURLMalformed is returned when the access URL lacks embedded credentials
	ErrAccessURLMalformed = internalTypes.ErrAccessURLMalformed

	// ErrAuthenticationFailed is returned on HTTP 403 from the SimpleFIN API
	ErrAuthenticationFailed = internalTypes.ErrAuthenticationFailed

	// ErrSubscriptionRequired is returned on HTTP 402 from the SimpleFIN API
	ErrSubscriptionRequired = internalTypes.ErrSubscriptionRequired

	// ErrNetworkFailure is returned on connection or timeout failures
	ErrNetworkFailure = internalTypes.ErrNetworkFailure

	// ErrInvalidSetupToken is returned when a setup token cannot be decoded
	ErrInvalidSetupToken = internalTypes.ErrInvalidSetupToken

	// ErrClaimFailed is returned when the claim endpoint rejects a setup token
	ErrClaimFailed = internalTypes.ErrClaimFailed

	// ErrInvalidDate is returned when a date argument is not YYYY-MM-DD
	ErrInvalidDate = internalTypes.ErrInvalidDate

	// ErrAccountNotFound is returned when an account ID is absent from the response
	ErrAccountNotFound = internalTypes.ErrAccountNotFound
)

// Error is the coded error type surfaced by the client. The Code identifies
// the failure class; Message carries remediation guidance for the caller.
type Error = internalTypes.Error
