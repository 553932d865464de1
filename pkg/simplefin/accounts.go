package simplefin

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// List retrieves all accounts with balances. Transaction payloads are
// excluded (balances-only) to keep the response small.
func (s *accountService) List(ctx context.Context) (*AccountList, error) {
	set, err := s.client.fetchAccountSet(ctx, url.Values{
		"balances-only": {"1"},
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*Account, 0, len(set.Accounts))
	for _, acct := range set.Accounts {
		accounts = append(accounts, projectAccount(acct))
	}

	return &AccountList{
		Accounts: accounts,
		Warnings: set.Errors,
	}, nil
}

// fetchAccountSet performs the /accounts call shared by the account,
// transaction and net worth services.
func (c *Client) fetchAccountSet(ctx context.Context, params url.Values) (*accountSet, error) {
	var set accountSet
	if err := c.get(ctx, accountsEndpoint, params, &set); err != nil {
		return nil, errors.Wrap(err, "failed to fetch accounts")
	}
	return &set, nil
}

// projectAccount flattens an upstream account into the caller-facing shape.
// Fields the bridge omitted stay nil.
func projectAccount(acct *upstreamAccount) *Account {
	out := &Account{
		ID:               acct.ID,
		Name:             acct.Name,
		Currency:         acct.Currency,
		Balance:          acct.Balance,
		AvailableBalance: acct.AvailableBalance,
		BalanceDate:      acct.BalanceDate,
	}
	if acct.Org != nil && acct.Org.Name != "" {
		name := acct.Org.Name
		out.Org = &name
	}
	return out
}
