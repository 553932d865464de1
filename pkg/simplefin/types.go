package simplefin

import (
	"github.com/shopspring/decimal"
)

// accountSet is the top-level document returned by the SimpleFIN /accounts
// endpoint. The errors array carries advisory messages from the bridge (for
// example an institution that needs reconnecting); it never makes the call
// a failure.
type accountSet struct {
	Errors   []string           `json:"errors"`
	Accounts []*upstreamAccount `json:"accounts"`
}

// upstreamAccount mirrors the SimpleFIN wire shape. Balances are decimal
// strings and stay that way; balance-date is a Unix timestamp.
type upstreamAccount struct {
	ID               string                 `json:"id"`
	Name             *string                `json:"name"`
	Currency         *string                `json:"currency"`
	Balance          *string                `json:"balance"`
	AvailableBalance *string                `json:"available-balance"`
	BalanceDate      *int64                 `json:"balance-date"`
	Org              *Org                   `json:"org"`
	Transactions     []*upstreamTransaction `json:"transactions"`
}

// Org identifies the institution behind an account
type Org struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Domain string `json:"domain,omitempty"`
	URL    string `json:"url,omitempty"`
}

// upstreamTransaction mirrors the SimpleFIN wire shape for one transaction
type upstreamTransaction struct {
	ID           string  `json:"id"`
	Posted       *int64  `json:"posted"`
	Amount       *string `json:"amount"`
	Description  *string `json:"description"`
	Payee        *string `json:"payee"`
	Memo         *string `json:"memo"`
	Pending      *bool   `json:"pending"`
	TransactedAt *int64  `json:"transacted_at"`
}

// Account is the flattened projection of an upstream account. Fields the
// bridge omitted are nil, never an error.
type Account struct {
	ID               string  `json:"id"`
	Name             *string `json:"name"`
	Org              *string `json:"org"`
	Currency         *string `json:"currency"`
	Balance          *string `json:"balance"`
	AvailableBalance *string `json:"available_balance"`
	BalanceDate      *int64  `json:"balance_date"`
}

// AccountList is the result of listing accounts. Warnings are the upstream
// errors array, passed through verbatim.
type AccountList struct {
	Accounts []*Account `json:"accounts"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Transaction is the flattened projection of an upstream transaction
type Transaction struct {
	ID           string  `json:"id"`
	Posted       *int64  `json:"posted"`
	Amount       *string `json:"amount"`
	Description  *string `json:"description"`
	Payee        *string `json:"payee"`
	Memo         *string `json:"memo"`
	Pending      *bool   `json:"pending"`
	TransactedAt *int64  `json:"transacted_at"`
}

// TransactionQuery scopes a transaction listing to one account and date range.
// Dates are YYYY-MM-DD; the upstream API supports ranges of roughly 60 days
// per call, a constraint this layer passes through without enforcing.
type TransactionQuery struct {
	AccountID      string
	StartDate      string
	EndDate        string
	IncludePending bool
}

// TransactionList is the result of a transaction query, sorted most-recent-first
type TransactionList struct {
	AccountID    string         `json:"account_id"`
	AccountName  *string        `json:"account_name"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Transactions []*Transaction `json:"transactions"`
	Count        int            `json:"count"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// NetWorthAccount echoes one account that contributed to a net worth total
type NetWorthAccount struct {
	Name     *string         `json:"name"`
	Org      *string         `json:"org"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

// NetWorth holds per-currency balance totals. Each total is rounded once,
// after summation, using banker's rounding to 2 decimal places. Accounts
// without a balance contribute to neither the totals nor the echo list.
type NetWorth struct {
	Totals   map[string]decimal.Decimal `json:"net_worth"`
	Accounts []*NetWorthAccount         `json:"accounts"`
	Warnings []string                   `json:"warnings,omitempty"`
}

// ClaimResult is the outcome of exchanging a setup token for an access URL
type ClaimResult struct {
	AccessURL    string `json:"access_url"`
	Instructions string `json:"instructions"`
}
