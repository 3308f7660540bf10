package raydiumclmm

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

const (
	TickArraySize = 60

	MinTick = -443636
	MaxTick = 443636
)

// TickCount is the number of ticks covered by a single tick array
func TickCount(tickSpacing uint16) int32 {
	return int32(tickSpacing) * TickArraySize
}

// GetTickArrayStartIndex returns the start index of the tick array containing
// tick. Negative ticks round towards negative infinity.
func GetTickArrayStartIndex(tick int32, tickSpacing uint16) int32 {
	count := TickCount(tickSpacing)
	start := tick / count
	if tick < 0 && tick%count != 0 {
		start--
	}
	return start * count
}

// GetTickArrayStartIndices returns up to n consecutive tick array start
// indices beginning with the array containing tick. zeroForOne walks towards
// lower ticks. Arrays entirely outside the valid tick range are skipped.
func GetTickArrayStartIndices(tick int32, tickSpacing uint16, zeroForOne bool, n int) []int32 {
	count := TickCount(tickSpacing)
	minStart := GetTickArrayStartIndex(MinTick, tickSpacing)
	maxStart := GetTickArrayStartIndex(MaxTick, tickSpacing)

	var res []int32
	start := GetTickArrayStartIndex(tick, tickSpacing)
	for len(res) < n && start >= minStart && start <= maxStart {
		res = append(res, start)
		if zeroForOne {
			start -= count
		} else {
			start += count
		}
	}
	return res
}

// GetTickArrayAddresses derives the tick array accounts a swap starting at
// tick will traverse
func GetTickArrayAddresses(program, pool ed25519.PublicKey, tick int32, tickSpacing uint16, zeroForOne bool, n int) ([]ed25519.PublicKey, error) {
	if tickSpacing == 0 {
		return nil, errors.New("tick spacing cannot be zero")
	}

	starts := GetTickArrayStartIndices(tick, tickSpacing, zeroForOne, n)

	res := make([]ed25519.PublicKey, len(starts))
	for i, start := range starts {
		address, _, err := GetTickArrayAddress(program, &GetTickArrayAddressArgs{
			Pool:       pool,
			StartIndex: start,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "error deriving tick array %d", start)
		}
		res[i] = address
	}
	return res, nil
}
