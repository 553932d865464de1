package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/simplefin-mcp/simplefin-go/pkg/simplefin"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "simplefin",
		Short: "Query the SimpleFIN API from the command line",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(claimCmd(), accountsCmd(), transactionsCmd(), netWorthCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() (*simplefin.Client, error) {
	return simplefin.NewClient(&simplefin.ClientOptions{
		SentryDSN: os.Getenv("SENTRY_DSN"),
	})
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func claimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <setup-token>",
		Short: "Claim a setup token and print the access URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.Setup.ClaimToken(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts with current balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := client.Accounts.List(context.Background())
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}
}

func transactionsCmd() *cobra.Command {
	var startDate, endDate string
	var includePending bool

	cmd := &cobra.Command{
		Use:   "transactions <account-id>",
		Short: "List transactions for an account within a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			list, err := client.Transactions.List(context.Background(), &simplefin.TransactionQuery{
				AccountID:      args[0],
				StartDate:      startDate,
				EndDate:        endDate,
				IncludePending: includePending,
			})
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&includePending, "pending", true, "include pending transactions")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func netWorthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networth",
		Short: "Sum balances across all accounts, grouped by currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			netWorth, err := client.NetWorth.Calculate(context.Background())
			if err != nil {
				return err
			}
			return printJSON(netWorth)
		},
	}
}
