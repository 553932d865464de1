package types

import "fmt"

// Error codes used across the transport and services.
const (
	CodeAccessURLMissing     = "ACCESS_URL_MISSING"
	CodeAccessURLMalformed   = "ACCESS_URL_MALFORMED"
	CodeAuthenticationFailed = "AUTH_FAILED"
	CodeSubscriptionRequired = "SUBSCRIPTION_REQUIRED"
	CodeHTTPError            = "HTTP_ERROR"
	CodeNetworkError         = "NETWORK_ERROR"
	CodeInvalidSetupToken    = "INVALID_SETUP_TOKEN"
	CodeClaimFailed          = "CLAIM_FAILED"
	CodeClaimNetworkError    = "CLAIM_NETWORK_ERROR"
	CodeInvalidDate          = "INVALID_DATE"
	CodeAccountNotFound      = "ACCOUNT_NOT_FOUND"
)

// Error represents an API error
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Body       string `json:"body,omitempty"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("error: %s", e.Code)
}

// Unwrap returns the wrapped sentinel, enabling errors.Is checks
func (e *Error) Unwrap() error {
	return e.Err
}
