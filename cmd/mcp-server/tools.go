package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/simplefin-mcp/simplefin-go/pkg/simplefin"
)

// simplefinTools holds the SimpleFIN client and implements all tool handlers.
// Every output carries a success flag; domain failures become
// {success: false, error: ...} results, never protocol-level errors.
type simplefinTools struct {
	client *simplefin.Client
}

// ClaimSetupToken tool - one-time exchange of a setup token for an access URL
type ClaimSetupTokenInput struct {
	SetupToken string `json:"setup_token" jsonschema:"Base64-encoded setup token from SimpleFIN"`
}

type ClaimSetupTokenOutput struct {
	Success      bool   `json:"success" jsonschema:"Whether the claim succeeded"`
	AccessURL    string `json:"access_url,omitempty" jsonschema:"The claimed access URL - store it as SIMPLEFIN_ACCESS_URL"`
	Instructions string `json:"instructions,omitempty" jsonschema:"How to persist the access URL"`
	Error        string `json:"error,omitempty" jsonschema:"Error message when success is false"`
}

func (t *simplefinTools) ClaimSetupToken(ctx context.Context, req *mcp.CallToolRequest, input ClaimSetupTokenInput) (*mcp.CallToolResult, ClaimSetupTokenOutput, error) {
	result, err := t.client.Setup.ClaimToken(ctx, input.SetupToken)
	if err != nil {
		return nil, ClaimSetupTokenOutput{Error: err.Error()}, nil
	}

	return nil, ClaimSetupTokenOutput{
		Success:      true,
		AccessURL:    result.AccessURL,
		Instructions: result.Instructions,
	}, nil
}

// GetAccounts tool - lists all accounts with balances
type GetAccountsInput struct {
	// No input parameters needed
}

type AccountEntry struct {
	ID               string  `json:"id" jsonschema:"Account ID"`
	Name             *string `json:"name" jsonschema:"Account display name"`
	Org              *string `json:"org" jsonschema:"Institution name"`
	Currency         *string `json:"currency" jsonschema:"Currency code"`
	Balance          *string `json:"balance" jsonschema:"Current balance as a decimal string"`
	AvailableBalance *string `json:"available_balance" jsonschema:"Available balance as a decimal string"`
	BalanceDate      *int64  `json:"balance_date" jsonschema:"Unix timestamp of the balance"`
}

type GetAccountsOutput struct {
	Success  bool           `json:"success" jsonschema:"Whether the call succeeded"`
	Accounts []AccountEntry `json:"accounts,omitempty" jsonschema:"List of all accounts"`
	Errors   []string       `json:"errors,omitempty" jsonschema:"Advisory warnings from the SimpleFIN bridge"`
	Error    string         `json:"error,omitempty" jsonschema:"Error message when success is false"`
}

func (t *simplefinTools) GetAccounts(ctx context.Context, req *mcp.CallToolRequest, input GetAccountsInput) (*mcp.CallToolResult, GetAccountsOutput, error) {
	list, err := t.client.Accounts.List(ctx)
	if err != nil {
		return nil, GetAccountsOutput{Error: err.Error()}, nil
	}

	entries := make([]AccountEntry, 0, len(list.Accounts))
	for _, acct := range list.Accounts {
		entries = append(entries, AccountEntry{
			ID:               acct.ID,
			Name:             acct.Name,
			Org:              acct.Org,
			Currency:         acct.Currency,
			Balance:          acct.Balance,
			AvailableBalance: acct.AvailableBalance,
			BalanceDate:      acct.BalanceDate,
		})
	}

	return nil, GetAccountsOutput{
		Success:  true,
		Accounts: entries,
		Errors:   list.Warnings,
	}, nil
}

// GetTransactions tool - transactions for one account within a date range
type GetTransactionsInput struct {
	AccountID      string `json:"account_id" jsonschema:"Account ID from get_accounts"`
	StartDate      string `json:"start_date" jsonschema:"Start date in YYYY-MM-DD format"`
	EndDate        string `json:"end_date" jsonschema:"End date in YYYY-MM-DD format"`
	IncludePending *bool  `json:"include_pending,omitempty" jsonschema:"Include pending transactions (default: true)"`
}

type TransactionEntry struct {
	ID           string  `json:"id" jsonschema:"Transaction ID"`
	Posted       *int64  `json:"posted" jsonschema:"Unix timestamp when the transaction posted"`
	Amount       *string `json:"amount" jsonschema:"Amount as a decimal string (negative for expenses)"`
	Description  *string `json:"description" jsonschema:"Transaction description"`
	Payee        *string `json:"payee" jsonschema:"Payee name"`
	Memo         *string `json:"memo" jsonschema:"Transaction memo"`
	Pending      *bool   `json:"pending" jsonschema:"Whether the transaction is pending"`
	TransactedAt *int64  `json:"transacted_at" jsonschema:"Unix timestamp when the transaction occurred"`
}

type GetTransactionsOutput struct {
	Success          bool               `json:"success" jsonschema:"Whether the call succeeded"`
	AccountID        string             `json:"account_id,omitempty" jsonschema:"The queried account ID"`
	AccountName      *string            `json:"account_name,omitempty" jsonschema:"The queried account name"`
	StartDate        string             `json:"start_date,omitempty" jsonschema:"Start of the queried range"`
	EndDate          string             `json:"end_date,omitempty" jsonschema:"End of the queried range"`
	TransactionCount int                `json:"transaction_count" jsonschema:"Number of transactions returned"`
	Transactions     []TransactionEntry `json:"transactions,omitempty" jsonschema:"Transactions sorted most-recent-first"`
	Errors           []string           `json:"errors,omitempty" jsonschema:"Advisory warnings from the SimpleFIN bridge"`
	Error            string             `json:"error,omitempty" jsonschema:"Error message when success is false"`
}

func (t *simplefinTools) GetTransactions(ctx context.Context, req *mcp.CallToolRequest, input GetTransactionsInput) (*mcp.CallToolResult, GetTransactionsOutput, error) {
	includePending := true
	if input.IncludePending != nil {
		includePending = *input.IncludePending
	}

	list, err := t.client.Transactions.List(ctx, &simplefin.TransactionQuery{
		AccountID:      input.AccountID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		IncludePending: includePending,
	})
	if err != nil {
		return nil, GetTransactionsOutput{Error: err.Error()}, nil
	}

	entries := make([]TransactionEntry, 0, len(list.Transactions))
	for _, txn := range list.Transactions {
		entries = append(entries, TransactionEntry{
			ID:           txn.ID,
			Posted:       txn.Posted,
			Amount:       txn.Amount,
			Description:  txn.Description,
			Payee:        txn.Payee,
			Memo:         txn.Memo,
			Pending:      txn.Pending,
			TransactedAt: txn.TransactedAt,
		})
	}

	return nil, GetTransactionsOutput{
		Success:          true,
		AccountID:        list.AccountID,
		AccountName:      list.AccountName,
		StartDate:        list.StartDate,
		EndDate:          list.EndDate,
		TransactionCount: list.Count,
		Transactions:     entries,
		Errors:           list.Warnings,
	}, nil
}

// GetNetWorth tool - per-currency balance totals across all accounts
type GetNetWorthInput struct {
	// No input parameters needed
}

type NetWorthAccountEntry struct {
	Name     *string `json:"name" jsonschema:"Account display name"`
	Org      *string `json:"org" jsonschema:"Institution name"`
	Currency string  `json:"currency" jsonschema:"Currency code"`
	Balance  float64 `json:"balance" jsonschema:"Account balance"`
}

type GetNetWorthOutput struct {
	Success  bool                   `json:"success" jsonschema:"Whether the call succeeded"`
	NetWorth map[string]float64     `json:"net_worth,omitempty" jsonschema:"Total balance per currency, rounded to 2 decimals"`
	Accounts []NetWorthAccountEntry `json:"accounts,omitempty" jsonschema:"Accounts that contributed to the totals"`
	Errors   []string               `json:"errors,omitempty" jsonschema:"Advisory warnings from the SimpleFIN bridge"`
	Error    string                 `json:"error,omitempty" jsonschema:"Error message when success is false"`
}

func (t *simplefinTools) GetNetWorth(ctx context.Context, req *mcp.CallToolRequest, input GetNetWorthInput) (*mcp.CallToolResult, GetNetWorthOutput, error) {
	netWorth, err := t.client.NetWorth.Calculate(ctx)
	if err != nil {
		return nil, GetNetWorthOutput{Error: err.Error()}, nil
	}

	totals := make(map[string]float64, len(netWorth.Totals))
	for currency, total := range netWorth.Totals {
		totals[currency] = total.InexactFloat64()
	}

	entries := make([]NetWorthAccountEntry, 0, len(netWorth.Accounts))
	for _, acct := range netWorth.Accounts {
		entries = append(entries, NetWorthAccountEntry{
			Name:     acct.Name,
			Org:      acct.Org,
			Currency: acct.Currency,
			Balance:  acct.Balance.InexactFloat64(),
		})
	}

	return nil, GetNetWorthOutput{
		Success:  true,
		NetWorth: totals,
		Accounts: entries,
		Errors:   netWorth.Warnings,
	}, nil
}

// ListResources tool - resource discovery for tool-only clients
type ListResourcesInput struct {
	// No input parameters needed
}

type ResourceInfo struct {
	URI         string `json:"uri" jsonschema:"Resource URI"`
	Name        string `json:"name" jsonschema:"Resource name"`
	Description string `json:"description" jsonschema:"Resource description"`
	MIMEType    string `json:"mime_type" jsonschema:"Resource MIME type"`
}

type ListResourcesOutput struct {
	Resources []ResourceInfo `json:"resources" jsonschema:"Available resources"`
}

func (t *simplefinTools) ListResources(ctx context.Context, req *mcp.CallToolRequest, input ListResourcesInput) (*mcp.CallToolResult, ListResourcesOutput, error) {
	return nil, ListResourcesOutput{Resources: resourceIndex()}, nil
}

// ReadResource tool - resource passthrough for tool-only clients
type ReadResourceInput struct {
	URI string `json:"uri" jsonschema:"Resource URI from list_resources"`
}

type ReadResourceOutput struct {
	Success  bool          `json:"success" jsonschema:"Whether the resource was found"`
	Resource *ResourceInfo `json:"resource,omitempty" jsonschema:"Resource metadata"`
	Content  string        `json:"content,omitempty" jsonschema:"Resource content"`
	Error    string        `json:"error,omitempty" jsonschema:"Error message when success is false"`
}

func (t *simplefinTools) ReadResource(ctx context.Context, req *mcp.CallToolRequest, input ReadResourceInput) (*mcp.CallToolResult, ReadResourceOutput, error) {
	for _, info := range resourceIndex() {
		if info.URI == input.URI {
			resource := info
			return nil, ReadResourceOutput{
				Success:  true,
				Resource: &resource,
				Content:  resourceContent(info.URI),
			}, nil
		}
	}
	return nil, ReadResourceOutput{Error: fmt.Sprintf("Unknown resource URI: %s", input.URI)}, nil
}

func registerTools(server *mcp.Server, client *simplefin.Client) {
	tools := &simplefinTools{client: client}

	mcp.AddTool(server, &mcp.Tool{
		Name: "claim_setup_token",
		Description: "One-time setup: claim a SimpleFIN setup token to obtain an access URL. " +
			"The setup token is a base64-encoded URL provided by SimpleFIN when you create a " +
			"connection. This tool decodes it, claims the access URL, and returns it. Store the " +
			"returned access URL as the SIMPLEFIN_ACCESS_URL environment variable.",
	}, tools.ClaimSetupToken)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_accounts",
		Description: "List all connected financial accounts with current balances. Returns account " +
			"names, institutions, currencies, and balances. Call this first to discover available " +
			"accounts before fetching transactions.",
	}, tools.GetAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_transactions",
		Description: "Get transactions for a specific account within a date range. Dates should be " +
			"in YYYY-MM-DD format. The API supports roughly 60-day ranges. Returns transactions " +
			"sorted most-recent-first.",
	}, tools.GetTransactions)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_net_worth",
		Description: "Calculate total net worth across all connected accounts. Sums balances " +
			"grouped by currency. Useful for a quick financial overview.",
	}, tools.GetNetWorth)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_resources",
		Description: "List available MCP resources for tool-only clients.",
	}, tools.ListResources)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_resource",
		Description: "Read an MCP resource by URI for tool-only clients.",
	}, tools.ReadResource)
}
