package cli

import (
	"context"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/code-payments/interact-dapp/pkg/interact"
	"github.com/code-payments/interact-dapp/pkg/solana"
)

const lamportDecimals = 9

func newBalanceCommand(a *app) *cobra.Command {
	var decimals uint8

	cmd := &cobra.Command{
		Use:   "balance [mint...]",
		Short: "Show the payer's SOL balance, or its token balances for the given mints",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				lamports, err := a.invoker.Balance(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s SOL\n", interact.FromBaseUnits(lamports, lamportDecimals))
				return nil
			}

			mints, err := solana.PublicKeysFromBase58(args)
			if err != nil {
				return err
			}

			for _, mint := range mints {
				balance, err := a.invoker.TokenBalance(cmd.Context(), mint)
				if err != nil {
					return err
				}

				line := fmt.Sprintf("%s: %s", base58.Encode(mint), interact.FromBaseUnits(balance.Amount, decimals))
				if !balance.Exists {
					line += " (no token account)"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().Uint8VarP(&decimals, "decimals", "d", 0, "decimals to render token balances in (0 for base units)")
	return cmd
}

func newAirdropCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "airdrop <sol>",
		Short: "Fund the payer from the devnet faucet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lamports, err := interact.ToBaseUnits(args[0], lamportDecimals)
			if err != nil {
				return err
			}

			return a.invoke(cmd, func(ctx context.Context) (*interact.Invocation, error) {
				return a.invoker.Airdrop(ctx, lamports)
			})
		},
	}
}
