package simplefin

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/simplefin-mcp/simplefin-go/internal/transport"
	internalTypes "github.com/simplefin-mcp/simplefin-go/internal/types"
)

const (
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// EnvAccessURL is the environment variable holding the access URL
	EnvAccessURL = "SIMPLEFIN_ACCESS_URL"

	// UserAgent is the user agent string
	UserAgent = "simplefin-go/1.0.0"

	accountsEndpoint = "/accounts"
)

// Client is the main SimpleFIN API client
type Client struct {
	// Service interfaces
	Accounts     AccountService
	Transactions TransactionService
	NetWorth     NetWorthService
	Setup        SetupService

	// Internal fields
	httpClient *http.Client
	transport  Transport
	options    *ClientOptions
}

// ClientOptions configures the client
type ClientOptions struct {
	// AccessURL is a fixed access URL, overriding AccessURLSource
	AccessURL string

	// AccessURLSource returns the raw access URL for each request. The
	// default reads SIMPLEFIN_ACCESS_URL from the environment on every
	// call, so configuration changes between calls take effect.
	AccessURLSource func() string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior; nil means one request per call
	RetryConfig *internalTypes.RetryConfig

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Transport handles HTTP communication with the SimpleFIN API
type Transport interface {
	Get(ctx context.Context, path string, params url.Values, result interface{}) error
	Claim(ctx context.Context, claimURL string) (string, error)
}

// NewClient creates a new SimpleFIN client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.AccessURLSource == nil {
		opts.AccessURLSource = func() string {
			return os.Getenv(EnvAccessURL)
		}
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	c := &Client{
		httpClient: opts.HTTPClient,
		options:    opts,
	}

	// Create transport using the internal package. Credentials are resolved
	// per request, never cached.
	c.transport = transport.NewRESTTransport(&transport.Options{
		Credentials: c.resolveCredential,
		HTTPClient:  opts.HTTPClient,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})

	c.initServices()

	return c, nil
}

// NewClientWithAccessURL creates a client bound to a fixed access URL
func NewClientWithAccessURL(accessURL string) (*Client, error) {
	return NewClient(&ClientOptions{
		AccessURL: accessURL,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Accounts = &accountService{client: c}
	c.Transactions = &transactionService{client: c}
	c.NetWorth = &netWorthService{client: c}
	c.Setup = &setupService{client: c}
}

// resolveCredential derives the access credential for one request
func (c *Client) resolveCredential() (*transport.Credential, error) {
	raw := c.options.AccessURL
	if raw == "" {
		raw = c.options.AccessURLSource()
	}

	cred, err := ParseAccessURL(raw)
	if err != nil {
		return nil, err
	}

	return &transport.Credential{
		BaseURL:  cred.BaseURL,
		Username: cred.Username,
		Password: cred.Password,
	}, nil
}

// get executes an authenticated GET against the SimpleFIN API
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	start := time.Now()
	err := c.transport.Get(ctx, path, params, result)
	duration := time.Since(start)

	if err != nil {
		captureError(ctx, err, map[string]interface{}{
			"endpoint": path,
			"duration": duration.String(),
		})
	}

	return err
}

// claim executes the unauthenticated claim POST
func (c *Client) claim(ctx context.Context, claimURL string) (string, error) {
	start := time.Now()
	accessURL, err := c.transport.Claim(ctx, claimURL)
	duration := time.Since(start)

	if err != nil {
		captureError(ctx, err, map[string]interface{}{
			"endpoint": "claim",
			"duration": duration.String(),
		})
	}

	return accessURL, err
}

// captureError reports an upstream failure to Sentry when it is enabled
func captureError(ctx context.Context, err error, data map[string]interface{}) {
	record := func(scope *sentry.Scope) {
		scope.SetContext("simplefin", data)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			record(scope)
			hub.CaptureException(err)
		})
	} else {
		sentry.WithScope(func(scope *sentry.Scope) {
			record(scope)
			sentry.CaptureException(err)
		})
	}
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}
