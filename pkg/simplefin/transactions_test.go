package simplefin

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const transactionsResponse = `{
	"errors": [],
	"accounts": [
		{
			"id": "ACT-1",
			"name": "Checking",
			"currency": "USD",
			"balance": "1500.50",
			"transactions": [
				{"id": "TXN-old", "posted": 1706745600, "amount": "-10.00", "description": "Coffee"},
				{"id": "TXN-unposted", "amount": "-99.00", "description": "Pending hold", "pending": true},
				{"id": "TXN-new", "posted": 1709251200, "amount": "-25.00", "description": "Groceries"},
				{"id": "TXN-mid", "posted": 1707955200, "amount": "2000.00", "description": "Payroll", "payee": "Employer"}
			]
		}
	]
}`

func TestTransactionService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Get",
		mock.Anything,
		"/accounts",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("account") == "ACT-1" &&
				params.Get("start-date") == "1706745600" &&
				params.Get("end-date") == "1709251200" &&
				params.Get("pending") == "1"
		}),
		mock.Anything,
	).Return(transactionsResponse, nil)

	list, err := client.Transactions.List(context.Background(), &TransactionQuery{
		AccountID:      "ACT-1",
		StartDate:      "2024-02-01",
		EndDate:        "2024-03-01",
		IncludePending: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "ACT-1", list.AccountID)
	assert.Equal(t, "Checking", *list.AccountName)
	assert.Equal(t, 4, list.Count)
	require.Len(t, list.Transactions, 4)

	// Sorted by posted descending; the unposted transaction sorts last
	assert.Equal(t, "TXN-new", list.Transactions[0].ID)
	assert.Equal(t, "TXN-mid", list.Transactions[1].ID)
	assert.Equal(t, "TXN-old", list.Transactions[2].ID)
	assert.Equal(t, "TXN-unposted", list.Transactions[3].ID)
	assert.Nil(t, list.Transactions[3].Posted)

	for i := 0; i < len(list.Transactions)-1; i++ {
		assert.GreaterOrEqual(t,
			postedOrZero(list.Transactions[i]),
			postedOrZero(list.Transactions[i+1]),
			"posted values must be non-increasing")
	}

	mockTransport.AssertExpectations(t)
}

func TestTransactionService_List_ExcludePending(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Get",
		mock.Anything,
		"/accounts",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("pending") == "0"
		}),
		mock.Anything,
	).Return(transactionsResponse, nil)

	_, err := client.Transactions.List(context.Background(), &TransactionQuery{
		AccountID:      "ACT-1",
		StartDate:      "2024-02-01",
		EndDate:        "2024-03-01",
		IncludePending: false,
	})

	require.NoError(t, err)
	mockTransport.AssertExpectations(t)
}

func TestTransactionService_List_InvalidDates(t *testing.T) {
	client := newTestClient(new(MockTransport))

	// Start date is checked first, even when both are invalid
	_, err := client.Transactions.List(context.Background(), &TransactionQuery{
		AccountID: "ACT-1",
		StartDate: "2024-13-40",
		EndDate:   "not-a-date",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), "start_date")
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, err = client.Transactions.List(context.Background(), &TransactionQuery{
		AccountID: "ACT-1",
		StartDate: "2024-02-01",
		EndDate:   "not-a-date",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), "end_date")
}

func TestTransactionService_List_EndBeforeStart(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	// An inverted range is not an error here; the upstream API decides
	// whether any rows come back
	mockTransport.On("Get",
		mock.Anything,
		"/accounts",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("start-date") == "1706745600" &&
				params.Get("end-date") == "1704067200"
		}),
		mock.Anything,
	).Return(`{"accounts": [{"id": "ACT-1", "name": "Checking", "transactions": []}]}`, nil)

	list, err := client.Transactions.List(context.Background(), &TransactionQuery{
		AccountID:      "ACT-1",
		StartDate:      "2024-02-01",
		EndDate:        "2024-01-01",
		IncludePending: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)
}

func TestTransactionService_List_AccountNotFound(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Get", mock.Anything, "/accounts", mock.Anything, mock.Anything).
		Return(transactionsResponse, nil)

	_, err := client.Transactions.List(context.Background(), &TransactionQuery{
		AccountID:      "ACT-unknown",
		StartDate:      "2024-02-01",
		EndDate:        "2024-03-01",
		IncludePending: true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Contains(t, err.Error(), "ACT-unknown")
	assert.Contains(t, err.Error(), "get_accounts")
}
