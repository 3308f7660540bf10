package cli

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/interact-dapp/pkg/interact"
	"github.com/code-payments/interact-dapp/pkg/solana/vaults"
)

type vaultFlags struct {
	accountsPath string
	decimals     uint8
	transferType string
}

func newVaultCommand(a *app) *cobra.Command {
	var flags vaultFlags

	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Jupiter Vaults positions",
	}
	cmd.PersistentFlags().StringVarP(&flags.accountsPath, "accounts", "a", "", "vault account set JSON file")
	cmd.PersistentFlags().Uint8VarP(&flags.decimals, "decimals", "d", 0, "mint decimals amounts are expressed in (0 for base units)")
	cmd.PersistentFlags().StringVar(&flags.transferType, "transfer-type", "", "withdraw/borrow transfer type (normal or claim)")
	_ = cmd.MarkPersistentFlagRequired("accounts")

	// run loads the account set and parses amount arguments before handing
	// off to the invoker
	run := func(call func(ctx context.Context, set *vaults.AccountSet, amounts []uint64, transferType *vaults.TransferType) (*interact.Invocation, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			set, err := vaults.LoadAccountSet(flags.accountsPath)
			if err != nil {
				return err
			}

			amounts := make([]uint64, len(args))
			for i, arg := range args {
				if amounts[i], err = parseVaultAmount(arg, flags.decimals); err != nil {
					return err
				}
			}

			transferType, err := parseTransferType(flags.transferType)
			if err != nil {
				return err
			}

			return a.invoke(cmd, func(ctx context.Context) (*interact.Invocation, error) {
				return call(ctx, set, amounts, transferType)
			})
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init-position",
			Short: "Open the account set's next position",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, set *vaults.AccountSet, _ []uint64, _ *vaults.TransferType) (*interact.Invocation, error) {
				return a.invoker.InitPosition(ctx, set)
			}),
		},
		&cobra.Command{
			Use:   "deposit <amount>",
			Short: "Add collateral",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, set *vaults.AccountSet, amounts []uint64, _ *vaults.TransferType) (*interact.Invocation, error) {
				return a.invoker.Deposit(ctx, set, amounts[0])
			}),
		},
		&cobra.Command{
			Use:   "withdraw <amount|max>",
			Short: "Remove collateral",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, set *vaults.AccountSet, amounts []uint64, transferType *vaults.TransferType) (*interact.Invocation, error) {
				return a.invoker.Withdraw(ctx, set, amounts[0], transferType)
			}),
		},
		&cobra.Command{
			Use:   "borrow <amount>",
			Short: "Take on debt",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, set *vaults.AccountSet, amounts []uint64, transferType *vaults.TransferType) (*interact.Invocation, error) {
				return a.invoker.Borrow(ctx, set, amounts[0], transferType)
			}),
		},
		&cobra.Command{
			Use:   "payback <amount|max>",
			Short: "Repay debt",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, set *vaults.AccountSet, amounts []uint64, _ *vaults.TransferType) (*interact.Invocation, error) {
				return a.invoker.Payback(ctx, set, amounts[0])
			}),
		},
		&cobra.Command{
			Use:   "deposit-borrow <deposit> <borrow>",
			Short: "Add collateral and take on debt in one call",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, set *vaults.AccountSet, amounts []uint64, transferType *vaults.TransferType) (*interact.Invocation, error) {
				return a.invoker.DepositAndBorrow(ctx, set, amounts[0], amounts[1], transferType)
			}),
		},
		&cobra.Command{
			Use:   "payback-withdraw <payback|max> <withdraw|max>",
			Short: "Repay debt and remove collateral in one call",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(ctx context.Context, set *vaults.AccountSet, amounts []uint64, transferType *vaults.TransferType) (*interact.Invocation, error) {
				return a.invoker.PaybackAndWithdraw(ctx, set, amounts[0], amounts[1], transferType)
			}),
		},
	)

	return cmd
}

func parseVaultAmount(arg string, decimals uint8) (uint64, error) {
	if strings.EqualFold(arg, "max") {
		return vaults.MaxAmount, nil
	}
	return interact.ToBaseUnits(arg, decimals)
}

func parseTransferType(v string) (*vaults.TransferType, error) {
	switch strings.ToLower(v) {
	case "":
		return nil, nil
	case vaults.TransferTypeNormal.String():
		return vaults.TransferTypeNormal.Ptr(), nil
	case vaults.TransferTypeClaim.String():
		return vaults.TransferTypeClaim.Ptr(), nil
	default:
		return nil, errors.Errorf("unknown transfer type %q", v)
	}
}
