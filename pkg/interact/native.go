package interact

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/system"
	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

func isNativeMint(mint ed25519.PublicKey) bool {
	return bytes.Equal(mint, token.WrappedSolMintKey)
}

// wrapNative moves lamports from the payer into its wrapped SOL account,
// creating the account if needed
func wrapNative(payer ed25519.PublicKey, lamports uint64) ([]solana.Instruction, ed25519.PublicKey, error) {
	if lamports == 0 {
		return nil, nil, errors.Wrap(ErrInvalidAmount, "nothing to wrap")
	}

	create, account, err := token.CreateAssociatedTokenAccountIdempotent(payer, payer, token.WrappedSolMintKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error deriving wrapped sol account")
	}

	return []solana.Instruction{
		create,
		system.Transfer(payer, account, lamports),
		token.SyncNative(account),
	}, account, nil
}

// unwrapNative closes the payer's wrapped SOL account, returning its full
// balance to the payer as lamports
func unwrapNative(payer, account ed25519.PublicKey) solana.Instruction {
	return token.CloseAccount(account, payer, payer)
}
