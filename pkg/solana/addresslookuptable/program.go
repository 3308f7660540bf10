package address_lookup_table

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/system"
)

// ProgramKey is the address lookup table program
//
// Reference: https://github.com/solana-program/address-lookup-table/blob/main/program/src/instruction.rs
var ProgramKey = solana.MustPublicKeyFromBase58("AddressLookupTab1e1111111111111111111111111")

const (
	commandCreateLookupTable uint32 = 0
	commandExtendLookupTable uint32 = 2
)

// GetAddress derives the table authority creates at recentSlot, along with
// the bump Create expects
func GetAddress(authority ed25519.PublicKey, recentSlot uint64) (ed25519.PublicKey, uint8, error) {
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, recentSlot)
	return solana.FindProgramAddressAndBump(ProgramKey, authority, seed)
}

// Create initializes the table at alt, which must be GetAddress(authority,
// recentSlot). Payer funds the rent.
func Create(alt, authority, payer ed25519.PublicKey, recentSlot uint64, bump uint8) solana.Instruction {
	data := make([]byte, 4+8+1)
	binary.LittleEndian.PutUint32(data, commandCreateLookupTable)
	binary.LittleEndian.PutUint64(data[4:], recentSlot)
	data[12] = bump

	return newInstruction(data, alt, authority, payer)
}

// Extend appends addresses to alt. Payer funds the extra rent.
func Extend(alt, authority, payer ed25519.PublicKey, addresses ...ed25519.PublicKey) solana.Instruction {
	data := make([]byte, 4+8, 4+8+len(addresses)*ed25519.PublicKeySize)
	binary.LittleEndian.PutUint32(data, commandExtendLookupTable)
	binary.LittleEndian.PutUint64(data[4:], uint64(len(addresses)))
	for _, address := range addresses {
		data = append(data, address...)
	}

	return newInstruction(data, alt, authority, payer)
}

func newInstruction(data []byte, alt, authority, payer ed25519.PublicKey) solana.Instruction {
	//   0. [WRITE] Lookup table
	//   1. [SIGNER] Authority
	//   2. [WRITE, SIGNER] Payer
	//   3. [] System program
	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(alt, false),
		solana.NewReadonlyAccountMeta(authority, true),
		solana.NewAccountMeta(payer, true),
		solana.NewReadonlyAccountMeta(system.ProgramID, false),
	)
}
