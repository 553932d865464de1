package simplefin

import (
	"context"
)

// AccountService handles account listing
type AccountService interface {
	// List retrieves all accounts with balances (no transaction payloads)
	List(ctx context.Context) (*AccountList, error)
}

// TransactionService handles transaction queries
type TransactionService interface {
	// List retrieves transactions for one account within a date range,
	// sorted by posted time descending
	List(ctx context.Context, query *TransactionQuery) (*TransactionList, error)
}

// NetWorthService aggregates balances across accounts
type NetWorthService interface {
	// Calculate sums account balances grouped by currency
	Calculate(ctx context.Context) (*NetWorth, error)
}

// SetupService handles the one-time setup token exchange
type SetupService interface {
	// ClaimToken decodes a base64 setup token and claims the durable access URL
	ClaimToken(ctx context.Context, setupToken string) (*ClaimResult, error)
}
