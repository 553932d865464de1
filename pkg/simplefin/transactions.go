package simplefin

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	internalTypes "github.com/simplefin-mcp/simplefin-go/internal/types"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// List retrieves transactions for one account within a date range. Results
// are sorted by posted time descending; transactions the bridge has not
// posted yet sort last.
func (s *transactionService) List(ctx context.Context, query *TransactionQuery) (*TransactionList, error) {
	startTS, err := DateToUnix(query.StartDate)
	if err != nil {
		return nil, invalidDate("start_date", query.StartDate)
	}

	endTS, err := DateToUnix(query.EndDate)
	if err != nil {
		return nil, invalidDate("end_date", query.EndDate)
	}

	pending := "0"
	if query.IncludePending {
		pending = "1"
	}

	set, err := s.client.fetchAccountSet(ctx, url.Values{
		"account":    {query.AccountID},
		"start-date": {strconv.FormatInt(startTS, 10)},
		"end-date":   {strconv.FormatInt(endTS, 10)},
		"pending":    {pending},
	})
	if err != nil {
		return nil, err
	}

	var target *upstreamAccount
	for _, acct := range set.Accounts {
		if acct.ID == query.AccountID {
			target = acct
			break
		}
	}

	if target == nil {
		return nil, &Error{
			Code: internalTypes.CodeAccountNotFound,
			Message: fmt.Sprintf("Account %s not found in response. "+
				"Verify the account ID with get_accounts.", query.AccountID),
			Err: ErrAccountNotFound,
		}
	}

	transactions := make([]*Transaction, 0, len(target.Transactions))
	for _, txn := range target.Transactions {
		transactions = append(transactions, &Transaction{
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

	sortByPostedDesc(transactions)

	return &TransactionList{
		AccountID:    query.AccountID,
		AccountName:  target.Name,
		StartDate:    query.StartDate,
		EndDate:      query.EndDate,
		Transactions: transactions,
		Count:        len(transactions),
		Warnings:     set.Errors,
	}, nil
}

// sortByPostedDesc orders transactions most-recent-first. A missing posted
// value sorts as zero, placing the transaction after every posted one.
func sortByPostedDesc(transactions []*Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return postedOrZero(transactions[i]) > postedOrZero(transactions[j])
	})
}

func postedOrZero(txn *Transaction) int64 {
	if txn.Posted == nil {
		return 0
	}
	return *txn.Posted
}

func invalidDate(field, value string) error {
	return &Error{
		Code:    internalTypes.CodeInvalidDate,
		Message: fmt.Sprintf("Invalid %s format: %s. Use YYYY-MM-DD.", field, value),
		Err:     ErrInvalidDate,
	}
}
