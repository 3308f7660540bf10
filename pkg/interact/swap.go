package interact

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
	"github.com/code-payments/interact-dapp/pkg/solana/interactdapp"
	"github.com/code-payments/interact-dapp/pkg/solana/raydiumclmm"
	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

type SwapArgs struct {
	Pool      ed25519.PublicKey
	InputMint ed25519.PublicKey

	// Exact input when IsBaseInput, otherwise exact output
	Amount               uint64
	OtherAmountThreshold uint64
	IsBaseInput          bool

	// Zero selects the widest limit for the swap direction
	SqrtPriceLimitX64 binary.Uint128

	// Zero uses raydiumclmm.DefaultTickArrayCount
	TickArrayCount int

	// WrapNative funds a native mint input from the payer's lamports and
	// closes the wrapped SOL accounts back to the payer after the swap
	WrapNative bool
}

// Swap trades through a single Raydium CLMM pool. The payer's associated
// token accounts are used on both sides, and the output account is created
// if it doesn't exist.
func (i *Invoker) Swap(ctx context.Context, args *SwapArgs) (*Invocation, error) {
	fields := logrus.Fields{
		"pool":          base58.Encode(args.Pool),
		"input_mint":    base58.Encode(args.InputMint),
		"amount":        args.Amount,
		"threshold":     args.OtherAmountThreshold,
		"is_base_input": args.IsBaseInput,
		"wrap_native":   args.WrapNative,
	}

	return i.invokeWrapped(ctx, protocolClmm, "Swap", i.mode(ctx), ErrSwapFailed, fields, func(mode Mode) ([]solana.Instruction, error) {
		if args.Amount == 0 {
			return nil, errors.Wrap(ErrInvalidAmount, "amount must be positive")
		}

		pool, err := i.GetPoolState(ctx, args.Pool)
		if err != nil {
			return nil, err
		}

		outputMint := pool.TokenMint1
		if bytes.Equal(args.InputMint, pool.TokenMint1) {
			outputMint = pool.TokenMint0
		}

		payer := i.Payer()
		createOutputTokenAccount, outputTokenAccount, err := token.CreateAssociatedTokenAccountIdempotent(payer, payer, outputMint)
		if err != nil {
			return nil, errors.Wrap(err, "error deriving output token account")
		}
		ixns := []solana.Instruction{createOutputTokenAccount}

		var inputTokenAccount ed25519.PublicKey
		wrapInput := args.WrapNative && isNativeMint(args.InputMint)
		if wrapInput {
			// Exact output swaps spend at most the threshold
			lamports := args.Amount
			if !args.IsBaseInput {
				lamports = args.OtherAmountThreshold
			}

			var wrap []solana.Instruction
			wrap, inputTokenAccount, err = wrapNative(payer, lamports)
			if err != nil {
				return nil, err
			}
			ixns = append(ixns, wrap...)
		} else {
			inputTokenAccount, err = token.GetAssociatedAccount(payer, args.InputMint)
			if err != nil {
				return nil, errors.Wrap(err, "error deriving input token account")
			}
		}

		swap, err := raydiumclmm.SwapAccountsFromPool(i.clmmProgram, pool, &raydiumclmm.SwapAccountsFromPoolArgs{
			Pool:               args.Pool,
			Payer:              payer,
			InputMint:          args.InputMint,
			InputTokenAccount:  inputTokenAccount,
			OutputTokenAccount: outputTokenAccount,
			TickArrayCount:     args.TickArrayCount,
		})
		if err != nil {
			return nil, err
		}

		swapArgs := raydiumclmm.SwapV2InstructionArgs{
			Amount:               args.Amount,
			OtherAmountThreshold: args.OtherAmountThreshold,
			SqrtPriceLimitX64:    raydiumclmm.DefaultSqrtPriceLimit(args.SqrtPriceLimitX64, swap.ZeroForOne),
			IsBaseInput:          args.IsBaseInput,
		}

		var swapIxn solana.Instruction
		if mode == ModeProxy {
			proxyArgs := interactdapp.ProxySwapInstructionArgs(swapArgs)
			swapIxn = interactdapp.NewProxySwapInstruction(
				&interactdapp.ProxySwapInstructionAccounts{
					ClmmProgram:               i.clmmProgram,
					SwapV2InstructionAccounts: *swap.Instruction,
				},
				&proxyArgs,
			)
		} else {
			swapIxn = raydiumclmm.NewSwapV2Instruction(i.clmmProgram, swap.Instruction, &swapArgs)
		}

		ixns = append(ixns, swapIxn)
		if wrapInput {
			ixns = append(ixns, unwrapNative(payer, inputTokenAccount))
		}
		if args.WrapNative && isNativeMint(outputMint) {
			ixns = append(ixns, unwrapNative(payer, outputTokenAccount))
		}
		return ixns, nil
	})
}

// GetPoolState loads and decodes a CLMM pool owned by the cluster's CLMM
// program
func (i *Invoker) GetPoolState(ctx context.Context, pool ed25519.PublicKey) (*raydiumclmm.PoolState, error) {
	info, err := i.client.GetAccountInfo(pool, i.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, errors.Wrapf(err, "pool %s not found", base58.Encode(pool))
	} else if err != nil {
		return nil, errors.Wrap(err, "error getting pool state")
	}

	if !bytes.Equal(info.Owner, i.clmmProgram) {
		return nil, errors.Wrapf(raydiumclmm.ErrInvalidAccountData, "pool %s is not owned by %s", base58.Encode(pool), base58.Encode(i.clmmProgram))
	}

	var state raydiumclmm.PoolState
	if err := state.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrapf(err, "invalid pool %s", base58.Encode(pool))
	}
	return &state, nil
}
