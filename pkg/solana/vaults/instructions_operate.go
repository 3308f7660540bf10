package vaults

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

// RemainingAccountsIndicesLength is the number of entries operate requires in
// its remaining accounts index list
const RemainingAccountsIndicesLength = 3

type OperateInstructionArgs struct {
	NewCol  binary.Int128
	NewDebt binary.Int128

	TransferType *TransferType

	// Where each group of remaining accounts starts
	RemainingAccountsIndices []uint8
}

type OperateInstructionAccounts struct {
	Signer                         ed25519.PublicKey
	SignerSupplyTokenAccount       ed25519.PublicKey
	SignerBorrowTokenAccount       ed25519.PublicKey
	Recipient                      ed25519.PublicKey
	RecipientBorrowTokenAccount    ed25519.PublicKey
	RecipientSupplyTokenAccount    ed25519.PublicKey
	VaultConfig                    ed25519.PublicKey
	VaultState                     ed25519.PublicKey
	SupplyToken                    ed25519.PublicKey
	BorrowToken                    ed25519.PublicKey
	Oracle                         ed25519.PublicKey
	Position                       ed25519.PublicKey
	PositionTokenAccount           ed25519.PublicKey
	CurrentPositionTick            ed25519.PublicKey
	FinalPositionTick              ed25519.PublicKey
	CurrentPositionTickID          ed25519.PublicKey
	FinalPositionTickID            ed25519.PublicKey
	NewBranch                      ed25519.PublicKey
	SupplyTokenReservesLiquidity   ed25519.PublicKey
	BorrowTokenReservesLiquidity   ed25519.PublicKey
	VaultSupplyPositionOnLiquidity ed25519.PublicKey
	VaultBorrowPositionOnLiquidity ed25519.PublicKey
	SupplyRateModel                ed25519.PublicKey
	BorrowRateModel                ed25519.PublicKey
	VaultSupplyTokenAccount        ed25519.PublicKey
	VaultBorrowTokenAccount        ed25519.PublicKey

	// Optional, nil when the position has no pending claim for the token
	SupplyTokenClaimAccount ed25519.PublicKey
	BorrowTokenClaimAccount ed25519.PublicKey

	Liquidity          ed25519.PublicKey
	LiquidityProgram   ed25519.PublicKey
	OracleProgram      ed25519.PublicKey
	SupplyTokenProgram ed25519.PublicKey
	BorrowTokenProgram ed25519.PublicKey

	// Oracle sources, ticks and branches the program walks through
	RemainingAccounts []ed25519.PublicKey
}

func operateInstructionArgsSize(args *OperateInstructionArgs) int {
	size := 2*binary.Int128Size + binary.OptionSize + binary.VecLengthSize + len(args.RemainingAccountsIndices)
	if args.TransferType != nil {
		size += 1
	}
	return size
}

// NewOperateInstruction builds a vault operate call. An absent claim account
// is passed as the vaults program itself, which Anchor reads as None.
func NewOperateInstruction(
	program ed25519.PublicKey,
	accounts *OperateInstructionAccounts,
	args *OperateInstructionArgs,
) (solana.Instruction, error) {
	if len(args.RemainingAccountsIndices) != RemainingAccountsIndicesLength {
		return solana.Instruction{}, ErrInvalidRemainingAccountsIndices
	}
	if args.TransferType != nil && *args.TransferType == TransferTypeClaim &&
		len(accounts.SupplyTokenClaimAccount) == 0 && len(accounts.BorrowTokenClaimAccount) == 0 {
		return solana.Instruction{}, ErrMissingClaimAccount
	}

	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(operateInstructionDiscriminator)+operateInstructionArgsSize(args))

	putDiscriminator(data, operateInstructionDiscriminator, &offset)
	binary.PutInt128(data[offset:], args.NewCol, &offset)
	binary.PutInt128(data[offset:], args.NewDebt, &offset)
	putTransferType(data, args.TransferType, &offset)
	binary.PutBytes(data[offset:], args.RemainingAccountsIndices, &offset)

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.Signer,
			IsWritable: true,
			IsSigner:   true,
		},
		writable(accounts.SignerSupplyTokenAccount),
		writable(accounts.SignerBorrowTokenAccount),
		readonly(accounts.Recipient),
		writable(accounts.RecipientBorrowTokenAccount),
		writable(accounts.RecipientSupplyTokenAccount),
		writable(accounts.VaultConfig),
		writable(accounts.VaultState),
		readonly(accounts.SupplyToken),
		readonly(accounts.BorrowToken),
		readonly(accounts.Oracle),
		writable(accounts.Position),
		readonly(accounts.PositionTokenAccount),
		writable(accounts.CurrentPositionTick),
		writable(accounts.FinalPositionTick),
		writable(accounts.CurrentPositionTickID),
		writable(accounts.FinalPositionTickID),
		writable(accounts.NewBranch),
		writable(accounts.SupplyTokenReservesLiquidity),
		writable(accounts.BorrowTokenReservesLiquidity),
		writable(accounts.VaultSupplyPositionOnLiquidity),
		writable(accounts.VaultBorrowPositionOnLiquidity),
		writable(accounts.SupplyRateModel),
		writable(accounts.BorrowRateModel),
		writable(accounts.VaultSupplyTokenAccount),
		writable(accounts.VaultBorrowTokenAccount),
		optionalClaimAccount(program, accounts.SupplyTokenClaimAccount),
		optionalClaimAccount(program, accounts.BorrowTokenClaimAccount),
		writable(accounts.Liquidity),
		writable(accounts.LiquidityProgram),
		readonly(accounts.OracleProgram),
		readonly(orDefault(accounts.SupplyTokenProgram, SPL_TOKEN_PROGRAM_ID)),
		readonly(orDefault(accounts.BorrowTokenProgram, SPL_TOKEN_PROGRAM_ID)),
		readonly(ASSOCIATED_TOKEN_PROGRAM_ID),
		readonly(SYSTEM_PROGRAM_ID),
	}
	for _, remaining := range accounts.RemainingAccounts {
		metas = append(metas, writable(remaining))
	}

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: metas,
	}, nil
}

func optionalClaimAccount(program, claim ed25519.PublicKey) solana.AccountMeta {
	if len(claim) == 0 {
		return readonly(program)
	}
	return writable(claim)
}
