package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/simplefin-mcp/simplefin-go/internal/types"
)

const (
	requestIDHeader = "X-Request-Id"
	contentType     = "application/json"
)

// Credential is a resolved SimpleFIN access credential: the API base URL with
// the Basic auth pair that was embedded in the access URL.
type Credential struct {
	BaseURL  string
	Username string
	Password string
}

// CredentialFunc resolves the access credential for a single request. It is
// invoked on every call so that configuration changes take effect immediately.
type CredentialFunc func() (*Credential, error)

// RESTTransport handles authenticated communication with the SimpleFIN API
type RESTTransport struct {
	credentials CredentialFunc
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	logger      types.Logger
	hooks       *types.Hooks
}

// Options for the REST transport
type Options struct {
	Credentials CredentialFunc
	HTTPClient  *http.Client
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// NewRESTTransport creates a new SimpleFIN REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	// Create retry client if configured; the default is a single request per call
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		}
	}

	headers := map[string]string{
		"Accept":     contentType,
		"User-Agent": types.UserAgent,
	}

	// Merge custom headers
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		credentials: opts.Credentials,
		httpClient:  opts.HTTPClient,
		retryClient: retryClient,
		headers:     headers,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Get performs an authenticated GET against the SimpleFIN API and unmarshals
// the JSON response into result. The access credential is re-resolved on every
// call; it is never cached across requests.
func (t *RESTTransport) Get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if t.credentials == nil {
		return &types.Error{
			Code:    types.CodeAccessURLMissing,
			Message: "no credential source configured",
			Err:     types.ErrAccessURLMissing,
		}
	}

	cred, err := t.credentials()
	if err != nil {
		return err
	}

	reqURL := cred.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	httpReq.SetBasicAuth(cred.Username, cred.Password)

	respBody, statusCode, err := t.send(ctx, httpReq)
	if err != nil {
		return &types.Error{
			Code:    types.CodeNetworkError,
			Message: fmt.Sprintf("Network error calling SimpleFIN: %v. Check connectivity and try again.", err),
			Err:     types.ErrNetworkFailure,
		}
	}

	if statusCode == http.StatusForbidden || statusCode == http.StatusPaymentRequired {
		return t.handleAccessError(statusCode)
	}
	if statusCode < 200 || statusCode > 299 {
		return &types.Error{
			Code:       types.CodeHTTPError,
			Message:    fmt.Sprintf("HTTP %d: %s", statusCode, strings.TrimSpace(string(respBody))),
			StatusCode: statusCode,
			Body:       string(respBody),
		}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrap(err, "failed to parse response")
		}
	}

	return nil
}

// Claim performs the one-time, unauthenticated POST that exchanges a decoded
// setup token for an access URL. Returns the response body with surrounding
// whitespace trimmed.
func (t *RESTTransport) Claim(ctx context.Context, claimURL string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, claimURL, nil)
	if err != nil {
		return "", &types.Error{
			Code:    types.CodeClaimNetworkError,
			Message: fmt.Sprintf("Invalid claim URL: %v", err),
			Err:     types.ErrClaimFailed,
		}
	}

	respBody, statusCode, err := t.send(ctx, httpReq)
	if err != nil {
		return "", &types.Error{
			Code:    types.CodeClaimNetworkError,
			Message: fmt.Sprintf("Network error claiming token: %v", err),
			Err:     types.ErrNetworkFailure,
		}
	}

	if statusCode < 200 || statusCode > 299 {
		return "", &types.Error{
			Code: types.CodeClaimFailed,
			Message: fmt.Sprintf(
				"Failed to claim token (HTTP %d). The token may have already been claimed - "+
					"each token can only be used once. Generate a new one at https://simplefin.org.",
				statusCode),
			StatusCode: statusCode,
			Err:        types.ErrClaimFailed,
		}
	}

	return strings.TrimSpace(string(respBody)), nil
}

// send executes a single HTTP exchange and returns the body and status code.
// A non-nil error means the exchange itself failed (connection, timeout).
func (t *RESTTransport) send(ctx context.Context, httpReq *http.Request) ([]byte, int, error) {
	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	requestID := uuid.New().String()
	httpReq.Header.Set(requestIDHeader, requestID)

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}

	if t.logger != nil {
		t.logger.Debug("SimpleFIN request",
			"method", httpReq.Method, "url", redactURL(httpReq.URL), "request_id", requestID)
	}

	start := time.Now()
	resp, err := t.doRequest(httpReq)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read response")
	}

	if t.logger != nil {
		t.logger.Debug("SimpleFIN response",
			"status", resp.StatusCode, "duration", duration, "size", len(respBody), "request_id", requestID)
	}

	return respBody, resp.StatusCode, nil
}

// doRequest executes the HTTP request with retry if configured
func (t *RESTTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

// handleAccessError maps the two status codes SimpleFIN uses for credential
// problems to actionable errors.
func (t *RESTTransport) handleAccessError(statusCode int) error {
	switch statusCode {
	case http.StatusForbidden:
		return &types.Error{
			Code: types.CodeAuthenticationFailed,
			Message: "Authentication failed (HTTP 403). Your access URL may be invalid - " +
				"try claiming a new setup token.",
			StatusCode: statusCode,
			Err:        types.ErrAuthenticationFailed,
		}
	default:
		return &types.Error{
			Code: types.CodeSubscriptionRequired,
			Message: "Payment required (HTTP 402). Your SimpleFIN subscription may need " +
				"renewal at https://simplefin.org.",
			StatusCode: statusCode,
			Err:        types.ErrSubscriptionRequired,
		}
	}
}

// redactURL strips any userinfo before a URL reaches the logs
func redactURL(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}
	clean := *u
	clean.User = nil
	return clean.String()
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
