package token

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/system"
)

var AssociatedTokenAccountProgramKey = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

const commandCreateIdempotent byte = 1

// GetAssociatedAccount derives the canonical token account of wallet for a
// mint owned by the legacy token program
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return GetAssociatedAccountWithProgram(wallet, mint, ProgramKey)
}

// GetAssociatedAccountWithProgram is GetAssociatedAccount for mints owned by
// tokenProgram, which is either ProgramKey or Token2022ProgramKey.
func GetAssociatedAccountWithProgram(wallet, mint, tokenProgram ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(AssociatedTokenAccountProgramKey, wallet, tokenProgram, mint)
}

// CreateAssociatedTokenAccountIdempotent creates the associated account of
// wallet for mint, succeeding when the account already exists.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/0639953c7dd0f5228c3ceda3ba68fece3b46ff1d/associated-token-account/program/src/lib.rs#L54
func CreateAssociatedTokenAccountIdempotent(subsidizer, wallet, mint ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error) {
	return CreateAssociatedTokenAccountIdempotentWithProgram(subsidizer, wallet, mint, ProgramKey)
}

// CreateAssociatedTokenAccountIdempotentWithProgram creates the account for a
// mint owned by tokenProgram.
func CreateAssociatedTokenAccountIdempotentWithProgram(subsidizer, wallet, mint, tokenProgram ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error) {
	account, err := GetAssociatedAccountWithProgram(wallet, mint, tokenProgram)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	accounts := []solana.AccountMeta{
		solana.NewAccountMeta(subsidizer, true),
		solana.NewAccountMeta(account, false),
	}
	for _, readonly := range []ed25519.PublicKey{wallet, mint, system.ProgramID, tokenProgram} {
		accounts = append(accounts, solana.NewReadonlyAccountMeta(readonly, false))
	}

	ixn := solana.NewInstruction(AssociatedTokenAccountProgramKey, []byte{commandCreateIdempotent}, accounts...)
	return ixn, account, nil
}
