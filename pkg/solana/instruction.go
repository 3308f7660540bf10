package solana

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// AccountMeta is an account referenced by an instruction
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	isPayer    bool
	isProgram  bool
}

// NewAccountMeta references a writable account
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta references an account the instruction only reads
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

// accountLess orders accounts the way messages lay them out: the payer, then
// signers, then writable accounts, with invoked programs after other
// readonly accounts and keys breaking ties
func accountLess(a, b AccountMeta) bool {
	switch {
	case a.isPayer != b.isPayer:
		return a.isPayer
	case a.IsSigner != b.IsSigner:
		return a.IsSigner
	case a.IsWritable != b.IsWritable:
		return a.IsWritable
	case a.isProgram != b.isProgram:
		return b.isProgram
	}
	return bytes.Compare(a.PublicKey, b.PublicKey) < 0
}

// Instruction invokes Program with Data over Accounts
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// CompiledInstruction is an instruction with its program and accounts
// replaced by message account indexes
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}

// String renders the instruction in a form suitable for debug logging
func (i Instruction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "program=%s data=%x\n", base58.Encode(i.Program), i.Data)
	for idx, a := range i.Accounts {
		fmt.Fprintf(&sb, "  %d: %s writable=%t signer=%t\n", idx, base58.Encode(a.PublicKey), a.IsWritable, a.IsSigner)
	}
	return sb.String()
}
