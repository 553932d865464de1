package simplefin

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransport is a mock implementation of the Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Get(ctx context.Context, path string, params url.Values, result interface{}) error {
	args := m.Called(ctx, path, params, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockTransport) Claim(ctx context.Context, claimURL string) (string, error) {
	args := m.Called(ctx, claimURL)
	return args.String(0), args.Error(1)
}

func newTestClient(transport Transport) *Client {
	c := &Client{
		transport: transport,
		options:   &ClientOptions{},
	}
	c.initServices()
	return c
}

func TestAccountService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"errors": [],
		"accounts": [
			{
				"id": "ACT-1",
				"name": "Checking",
				"currency": "USD",
				"balance": "1500.50",
				"available-balance": "1400.00",
				"balance-date": 1706745600,
				"org": {"name": "Example Bank", "domain": "bank.example.com"}
			},
			{
				"id": "ACT-2",
				"name": "Savings",
				"currency": "USD",
				"balance": "5000.00"
			}
		]
	}`

	mockTransport.On("Get",
		mock.Anything,
		"/accounts",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("balances-only") == "1"
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	list, err := client.Accounts.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list.Accounts, 2)

	first := list.Accounts[0]
	assert.Equal(t, "ACT-1", first.ID)
	assert.Equal(t, "Checking", *first.Name)
	assert.Equal(t, "Example Bank", *first.Org)
	assert.Equal(t, "1500.50", *first.Balance)
	assert.Equal(t, "1400.00", *first.AvailableBalance)
	assert.Equal(t, int64(1706745600), *first.BalanceDate)

	// Fields absent upstream stay nil, never an error
	second := list.Accounts[1]
	assert.Equal(t, "ACT-2", second.ID)
	assert.Nil(t, second.Org)
	assert.Nil(t, second.AvailableBalance)
	assert.Nil(t, second.BalanceDate)

	assert.Empty(t, list.Warnings)
	mockTransport.AssertExpectations(t)
}

func TestAccountService_List_WarningsAreNotFatal(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"errors": ["Connection to Example Bank may need attention"],
		"accounts": [
			{"id": "ACT-1", "name": "Checking", "balance": "10.00"}
		]
	}`

	mockTransport.On("Get", mock.Anything, "/accounts", mock.Anything, mock.Anything).
		Return(mockResponse, nil)

	list, err := client.Accounts.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, list.Accounts, 1)
	assert.Equal(t, []string{"Connection to Example Bank may need attention"}, list.Warnings)
}

func TestAccountService_List_TransportError(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Get", mock.Anything, "/accounts", mock.Anything, mock.Anything).
		Return(nil, &Error{Code: "AUTH_FAILED", Message: "Authentication failed (HTTP 403).", Err: ErrAuthenticationFailed})

	list, err := client.Accounts.List(context.Background())

	require.Error(t, err)
	assert.Nil(t, list)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
