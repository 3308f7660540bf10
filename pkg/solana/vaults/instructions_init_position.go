package vaults

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

const (
	InitPositionInstructionArgsSize = (2 + // vault_id
		4) // next_position_id
)

type InitPositionInstructionArgs struct {
	VaultID        uint16
	NextPositionID uint32
}

type InitPositionInstructionAccounts struct {
	Signer               ed25519.PublicKey
	VaultAdmin           ed25519.PublicKey
	VaultState           ed25519.PublicKey
	Position             ed25519.PublicKey
	PositionMint         ed25519.PublicKey
	PositionTokenAccount ed25519.PublicKey
}

func NewInitPositionInstruction(
	program ed25519.PublicKey,
	accounts *InitPositionInstructionAccounts,
	args *InitPositionInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(initPositionInstructionDiscriminator)+InitPositionInstructionArgsSize)

	putDiscriminator(data, initPositionInstructionDiscriminator, &offset)
	binary.PutUint16(data[offset:], args.VaultID, &offset)
	binary.PutUint32(data[offset:], args.NextPositionID, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Signer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.VaultAdmin,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.VaultState,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Position,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PositionMint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PositionTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
