package cli

import (
	"context"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/code-payments/interact-dapp/pkg/interact"
	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

func newSwapCommand(a *app) *cobra.Command {
	var (
		decimals       uint8
		threshold      string
		exactOut       bool
		sqrtPriceLimit string
		tickArrayCount int
		wrapNative     bool
	)

	cmd := &cobra.Command{
		Use:   "swap <pool> <input-mint> <amount>",
		Short: "Swap through a Raydium CLMM pool",
		Long: "Swap through a Raydium CLMM pool. The amount is the exact input, or the exact\n" +
			"output with --exact-out. --threshold is the minimum output (or maximum input).",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return err
			}
			inputMint, err := solana.PublicKeyFromBase58(args[1])
			if err != nil {
				return err
			}
			amount, err := interact.ToBaseUnits(args[2], decimals)
			if err != nil {
				return err
			}

			swapArgs := &interact.SwapArgs{
				Pool:           pool,
				InputMint:      inputMint,
				Amount:         amount,
				IsBaseInput:    !exactOut,
				TickArrayCount: tickArrayCount,
				WrapNative:     wrapNative,
			}
			if len(threshold) > 0 {
				if swapArgs.OtherAmountThreshold, err = interact.ToBaseUnits(threshold, 0); err != nil {
					return err
				}
			}
			if len(sqrtPriceLimit) > 0 {
				if swapArgs.SqrtPriceLimitX64, err = binary.Uint128FromString(sqrtPriceLimit); err != nil {
					return err
				}
			}

			return a.invoke(cmd, func(ctx context.Context) (*interact.Invocation, error) {
				return a.invoker.Swap(ctx, swapArgs)
			})
		},
	}

	cmd.Flags().Uint8VarP(&decimals, "decimals", "d", 0, "decimals the amount is expressed in (0 for base units)")
	cmd.Flags().StringVar(&threshold, "threshold", "", "minimum output, or maximum input with --exact-out, in base units")
	cmd.Flags().BoolVar(&exactOut, "exact-out", false, "treat the amount as the exact output")
	cmd.Flags().StringVar(&sqrtPriceLimit, "sqrt-price-limit", "", "Q64.64 sqrt price limit (defaults to the widest for the direction)")
	cmd.Flags().IntVar(&tickArrayCount, "tick-arrays", 0, "tick arrays to pass along the swap direction")
	cmd.Flags().BoolVar(&wrapNative, "wrap-native", false, "wrap and unwrap SOL around the swap when a side is the native mint")

	return cmd
}

func newPoolCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pool <pool>",
		Short: "Show a Raydium CLMM pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return err
			}

			state, err := a.invoker.GetPoolState(cmd.Context(), pool)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "amm_config:   %s\n", base58.Encode(state.AmmConfig))
			fmt.Fprintf(out, "token_mint_0: %s (%d decimals)\n", base58.Encode(state.TokenMint0), state.MintDecimals0)
			fmt.Fprintf(out, "token_mint_1: %s (%d decimals)\n", base58.Encode(state.TokenMint1), state.MintDecimals1)
			fmt.Fprintf(out, "tick_spacing: %d\n", state.TickSpacing)
			fmt.Fprintf(out, "tick_current: %d\n", state.TickCurrent)
			fmt.Fprintf(out, "liquidity:    %s\n", state.Liquidity)
			fmt.Fprintf(out, "sqrt_price:   %s\n", state.SqrtPriceX64)
			fmt.Fprintf(out, "status:       %d\n", state.Status)
			return nil
		},
	}
}
