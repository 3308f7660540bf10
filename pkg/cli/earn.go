package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/code-payments/interact-dapp/pkg/interact"
	"github.com/code-payments/interact-dapp/pkg/solana"
)

func newEarnCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "earn",
		Short: "Jupiter Lend earn deposits and withdrawals",
	}

	var decimals uint8
	cmd.PersistentFlags().Uint8VarP(&decimals, "decimals", "d", 0, "mint decimals the amount is expressed in (0 for base units)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "deposit <mint> <amount>",
			Short: "Deposit underlying tokens for fTokens",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				mint, err := solana.PublicKeyFromBase58(args[0])
				if err != nil {
					return err
				}
				amount, err := interact.ToBaseUnits(args[1], decimals)
				if err != nil {
					return err
				}

				return a.invoke(cmd, func(ctx context.Context) (*interact.Invocation, error) {
					return a.invoker.DepositEarn(ctx, mint, amount)
				})
			},
		},
		&cobra.Command{
			Use:   "withdraw <mint> <amount>",
			Short: "Withdraw underlying tokens by burning fTokens",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				mint, err := solana.PublicKeyFromBase58(args[0])
				if err != nil {
					return err
				}
				assets, err := interact.ToBaseUnits(args[1], decimals)
				if err != nil {
					return err
				}

				return a.invoke(cmd, func(ctx context.Context) (*interact.Invocation, error) {
					return a.invoker.WithdrawEarn(ctx, mint, assets)
				})
			},
		},
	)

	return cmd
}
