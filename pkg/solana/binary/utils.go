package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

const (
	// OptionSize is the size of a Borsh Option tag
	OptionSize = 1

	// VecLengthSize is the size of a Borsh Vec length prefix
	VecLengthSize = 4

	Int128Size = 16
)

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst, src)
	*offset += ed25519.PublicKeySize
}

func PutOptionalKey32(dst []byte, src []byte, offset *int, optionSize int) {
	if len(src) > 0 {
		dst[0] = 1
		copy(dst[optionSize:], src)
	}

	*offset += optionSize + ed25519.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst, v)
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst, v)
	*offset += 4
}

func PutInt32(dst []byte, v int32, offset *int) {
	PutUint32(dst, uint32(v), offset)
}

func PutUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst, v)
	*offset += 2
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[0] = v
	*offset += 1
}

func PutBool(dst []byte, v bool, offset *int) {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
	*offset += 1
}

func PutInt128(dst []byte, v Int128, offset *int) {
	binary.LittleEndian.PutUint64(dst, v.Lo)
	binary.LittleEndian.PutUint64(dst[8:], uint64(v.Hi))
	*offset += Int128Size
}

func PutUint128(dst []byte, v Uint128, offset *int) {
	binary.LittleEndian.PutUint64(dst, v.Lo)
	binary.LittleEndian.PutUint64(dst[8:], v.Hi)
	*offset += Int128Size
}

func PutOptionalUint8(dst []byte, v *uint8, offset *int) {
	if v == nil {
		dst[0] = 0
		*offset += OptionSize
		return
	}

	dst[0] = 1
	dst[OptionSize] = *v
	*offset += OptionSize + 1
}

// PutBytes writes a Borsh Vec<u8>: a u32 length prefix followed by the raw bytes
func PutBytes(dst []byte, v []byte, offset *int) {
	binary.LittleEndian.PutUint32(dst, uint32(len(v)))
	copy(dst[VecLengthSize:], v)
	*offset += VecLengthSize + len(v)
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src)
	*offset += ed25519.PublicKeySize
}

func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int, optionSize int) {
	if src[0] == 1 {
		*dst = make([]byte, ed25519.PublicKeySize)
		copy(*dst, src[optionSize:])
	}
	*offset += optionSize + ed25519.PublicKeySize
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src)
	*offset += 8
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src)
	*offset += 4
}

func GetInt32(src []byte, dst *int32, offset *int) {
	*dst = int32(binary.LittleEndian.Uint32(src))
	*offset += 4
}

func GetUint16(src []byte, dst *uint16, offset *int) {
	*dst = binary.LittleEndian.Uint16(src)
	*offset += 2
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[0]
	*offset += 1
}

func GetBool(src []byte, dst *bool, offset *int) {
	*dst = src[0] != 0
	*offset += 1
}

func GetInt128(src []byte, dst *Int128, offset *int) {
	dst.Lo = binary.LittleEndian.Uint64(src)
	dst.Hi = int64(binary.LittleEndian.Uint64(src[8:]))
	*offset += Int128Size
}

func GetUint128(src []byte, dst *Uint128, offset *int) {
	dst.Lo = binary.LittleEndian.Uint64(src)
	dst.Hi = binary.LittleEndian.Uint64(src[8:])
	*offset += Int128Size
}

func GetOptionalUint8(src []byte, dst **uint8, offset *int) {
	if src[0] == 0 {
		*dst = nil
		*offset += OptionSize
		return
	}

	val := src[OptionSize]
	*dst = &val
	*offset += OptionSize + 1
}

