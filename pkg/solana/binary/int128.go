package binary

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrInt128Overflow = errors.New("value overflows 128 bits")

	two64  = new(big.Int).Lsh(big.NewInt(1), 64)
	two128 = new(big.Int).Lsh(big.NewInt(1), 128)

	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Int128 is a two's complement signed 128-bit integer split into its high and
// low words.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Uint128 is an unsigned 128-bit integer split into its high and low words.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// MinInt128 is the smallest representable Int128
var MinInt128 = Int128{Hi: math.MinInt64, Lo: 0}

// MaxInt128 is the largest representable Int128
var MaxInt128 = Int128{Hi: math.MaxInt64, Lo: math.MaxUint64}

// Int128FromInt64 sign extends v into an Int128
func Int128FromInt64(v int64) Int128 {
	if v < 0 {
		return Int128{Hi: -1, Lo: uint64(v)}
	}
	return Int128{Lo: uint64(v)}
}

// Int128FromUint64 zero extends v into an Int128
func Int128FromUint64(v uint64) Int128 {
	return Int128{Lo: v}
}

// NegUint64 returns -v as an Int128
func NegUint64(v uint64) Int128 {
	return Int128FromUint64(v).Neg()
}

// Neg returns the two's complement negation. Negating MinInt128 wraps to itself.
func (i Int128) Neg() Int128 {
	lo := ^i.Lo + 1
	hi := ^i.Hi
	if lo == 0 {
		hi++
	}
	return Int128{Hi: hi, Lo: lo}
}

func (i Int128) IsZero() bool {
	return i.Hi == 0 && i.Lo == 0
}

func (i Int128) Sign() int {
	switch {
	case i.Hi < 0:
		return -1
	case i.IsZero():
		return 0
	default:
		return 1
	}
}

// BigInt converts the value into a big.Int
func (i Int128) BigInt() *big.Int {
	v := new(big.Int).SetUint64(uint64(i.Hi))
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(i.Lo))
	if i.Hi < 0 {
		v.Sub(v, two128)
	}
	return v
}

func (i Int128) String() string {
	return i.BigInt().String()
}

// Int128FromBig converts a big.Int into an Int128, failing if it doesn't fit
func Int128FromBig(v *big.Int) (Int128, error) {
	if v.Cmp(maxInt128) > 0 || v.Cmp(minInt128) < 0 {
		return Int128{}, ErrInt128Overflow
	}

	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, two128)
	}

	lo := new(big.Int).Mod(u, two64).Uint64()
	hi := new(big.Int).Rsh(u, 64).Uint64()
	return Int128{Hi: int64(hi), Lo: lo}, nil
}

// Uint128FromUint64 zero extends v into a Uint128
func Uint128FromUint64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

func (u Uint128) BigInt() *big.Int {
	v := new(big.Int).SetUint64(u.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	return u.BigInt().String()
}

// Uint128FromBig converts a big.Int into a Uint128, failing if it doesn't fit
func Uint128FromBig(v *big.Int) (Uint128, error) {
	if v.Sign() < 0 || v.Cmp(two128) >= 0 {
		return Uint128{}, ErrInt128Overflow
	}

	lo := new(big.Int).Mod(v, two64).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	return Uint128{Hi: hi, Lo: lo}, nil
}

// Uint128FromString parses a base 10 string into a Uint128
func Uint128FromString(s string) (Uint128, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Uint128{}, errors.Errorf("invalid u128 value: %s", s)
	}
	return Uint128FromBig(v)
}
