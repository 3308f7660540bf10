package compute_budget

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
)

// ProgramKey is the address of the compute budget program
var ProgramKey = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

const (
	commandSetComputeUnitLimit uint8 = 2
	commandSetComputeUnitPrice uint8 = 3
)

// MaxComputeUnitLimit is the most a single transaction may request
const MaxComputeUnitLimit = 1_400_000

var ErrInvalidInstructionData = errors.New("invalid compute budget instruction data")

func SetComputeUnitLimit(limit uint32) solana.Instruction {
	data := make([]byte, 1+4)
	data[0] = commandSetComputeUnitLimit
	binary.LittleEndian.PutUint32(data[1:], limit)
	return solana.NewInstruction(ProgramKey, data)
}

// SetComputeUnitPrice sets the priority fee in micro-lamports per compute unit
func SetComputeUnitPrice(microLamports uint64) solana.Instruction {
	data := make([]byte, 1+8)
	data[0] = commandSetComputeUnitPrice
	binary.LittleEndian.PutUint64(data[1:], microLamports)
	return solana.NewInstruction(ProgramKey, data)
}

func ParseSetComputeUnitLimitIxnData(data []byte) (uint32, error) {
	if err := checkCommand(data, commandSetComputeUnitLimit, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data[1:]), nil
}

func ParseSetComputeUnitPriceIxnData(data []byte) (uint64, error) {
	if err := checkCommand(data, commandSetComputeUnitPrice, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data[1:]), nil
}

func checkCommand(data []byte, command uint8, argSize int) error {
	if len(data) != 1+argSize || data[0] != command {
		return errors.Wrapf(ErrInvalidInstructionData, "expected command %d with %d bytes of arguments", command, argSize)
	}
	return nil
}
