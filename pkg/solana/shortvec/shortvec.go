package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

const maxEncodedBytes = 3

var (
	ErrLenTooLarge     = errors.New("len exceeds max u16")
	ErrInvalidEncoding = errors.New("invalid shortvec encoding")
)

// EncodeLen writes len using the compact-u16 encoding: 7 bits per byte, with
// the high bit set while more bytes follow.
func EncodeLen(w io.Writer, len int) (n int, err error) {
	if len > math.MaxUint16 {
		return 0, ErrLenTooLarge
	}

	var buf [maxEncodedBytes]byte
	for {
		buf[n] = byte(len & 0x7f)
		len >>= 7
		if len == 0 {
			n++
			break
		}

		buf[n] |= 0x80
		n++
	}

	return w.Write(buf[:n])
}

// DecodeLen reads a compact-u16 encoded len.
func DecodeLen(r io.Reader) (val int, err error) {
	var b [1]byte
	for i := 0; ; i++ {
		if i == maxEncodedBytes {
			return 0, errors.Wrapf(ErrInvalidEncoding, "more than %d bytes", maxEncodedBytes)
		}

		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}

		val |= int(b[0]&0x7f) << (i * 7)
		if b[0]&0x80 == 0 {
			break
		}
	}

	return val, nil
}
