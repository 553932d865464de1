package simplefin

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed when the bridge omits an account's currency
const DefaultCurrency = "USD"

// netWorthService implements the NetWorthService interface
type netWorthService struct {
	client *Client
}

// Calculate sums balances across all accounts, grouped by currency. Balances
// stay fixed-point decimals end to end; each currency total is rounded once,
// after summation, with banker's rounding to 2 decimal places. Accounts
// without a balance are skipped entirely.
func (s *netWorthService) Calculate(ctx context.Context) (*NetWorth, error) {
	set, err := s.client.fetchAccountSet(ctx, url.Values{
		"balances-only": {"1"},
	})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	accounts := make([]*NetWorthAccount, 0, len(set.Accounts))

	for _, acct := range set.Accounts {
		if acct.Balance == nil {
			continue
		}

		balance, err := decimal.NewFromString(*acct.Balance)
		if err != nil {
			return nil, errors.Wrapf(err, "unparseable balance %q for account %s", *acct.Balance, acct.ID)
		}

		currency := DefaultCurrency
		if acct.Currency != nil && *acct.Currency != "" {
			currency = *acct.Currency
		}

		totals[currency] = totals[currency].Add(balance)

		entry := &NetWorthAccount{
			Name:     acct.Name,
			Currency: currency,
			Balance:  balance,
		}
		if acct.Org != nil && acct.Org.Name != "" {
			name := acct.Org.Name
			entry.Org = &name
		}
		accounts = append(accounts, entry)
	}

	for currency, total := range totals {
		totals[currency] = total.RoundBank(2)
	}

	return &NetWorth{
		Totals:   totals,
		Accounts: accounts,
		Warnings: set.Errors,
	}, nil
}
