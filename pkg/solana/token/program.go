package token

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
)

// ProgramKey is the address of the token program that should be used.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172, 28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169}

// Token2022ProgramKey is the address of the token extensions program
//
// Current key: TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb
var Token2022ProgramKey = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

// WrappedSolMintKey is the native mint
var WrappedSolMintKey = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

type Command byte

const (
	CommandCloseAccount Command = 9
	CommandSyncNative   Command = 17
)

// SyncNative updates the token amount of a wrapped SOL account to match its
// lamport balance.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L389-L398
func SyncNative(account ed25519.PublicKey) solana.Instruction {
	//   0. `[writable]`  The native token account to sync with its underlying lamports.
	return solana.NewInstruction(
		ProgramKey,
		[]byte{byte(CommandSyncNative)},
		solana.NewAccountMeta(account, false),
	)
}

// CloseAccount transfers all of account's lamports to dest. Non-native
// accounts can only be closed with a zero token balance.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L183-L197
func CloseAccount(account, dest, owner ed25519.PublicKey) solana.Instruction {
	//   0. `[writable]` The account to close.
	//   1. `[writable]` The destination account.
	//   2. `[signer]` The account's owner.
	return solana.NewInstruction(
		ProgramKey,
		[]byte{byte(CommandCloseAccount)},
		solana.NewAccountMeta(account, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}
