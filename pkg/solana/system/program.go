package system

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/code-payments/interact-dapp/pkg/solana"
)

// ProgramKey is the address of the system program
var ProgramKey [32]byte

// ProgramID is ProgramKey as a slice for building account metas
var ProgramID ed25519.PublicKey = ProgramKey[:]

const commandTransfer uint32 = 2

// Transfer moves lamports between two system owned accounts. It's also used
// to fund a wrapped SOL token account before syncing it.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L87-L91
func Transfer(from, to ed25519.PublicKey, lamports uint64) solana.Instruction {
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, commandTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(to, false),
	)
}
