package address_lookup_table

import (
	"crypto/ed25519"
	"fmt"
	"math"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

var (
	ErrInvalidAccountSize = errors.New("invalid address lookup table account size")
	ErrInvalidAccountType = errors.New("invalid account type")
)

const (
	lookupTableAccountType uint32 = 1

	// type, deactivation slot, last extended slot, start index, optional
	// authority, padding
	metadataSize = 56
	maxAddresses = 256
)

// AddressLookupTableAccount is the on-chain state of a lookup table
type AddressLookupTableAccount struct {
	DeactivationSlot           uint64
	LastExtendedSlot           uint64
	LastExtendedSlotStartIndex uint8
	Authority                  ed25519.PublicKey
	Addresses                  []ed25519.PublicKey
}

func addressCount(size int) (int, error) {
	if size < metadataSize {
		return 0, ErrInvalidAccountSize
	}

	remaining := size - metadataSize
	if remaining%ed25519.PublicKeySize != 0 || remaining/ed25519.PublicKeySize > maxAddresses {
		return 0, ErrInvalidAccountSize
	}
	return remaining / ed25519.PublicKeySize, nil
}

func (obj *AddressLookupTableAccount) Unmarshal(data []byte) error {
	count, err := addressCount(len(data))
	if err != nil {
		return err
	}

	var offset int
	var accountType uint32
	binary.GetUint32(data, &accountType, &offset)
	if accountType != lookupTableAccountType {
		return ErrInvalidAccountType
	}

	binary.GetUint64(data[offset:], &obj.DeactivationSlot, &offset)
	binary.GetUint64(data[offset:], &obj.LastExtendedSlot, &offset)
	binary.GetUint8(data[offset:], &obj.LastExtendedSlotStartIndex, &offset)
	binary.GetOptionalKey32(data[offset:], &obj.Authority, &offset, 1)

	obj.Addresses = make([]ed25519.PublicKey, count)
	offset = metadataSize
	for i := range obj.Addresses {
		binary.GetKey32(data[offset:], &obj.Addresses[i], &offset)
	}
	return nil
}

func (obj *AddressLookupTableAccount) Marshal() []byte {
	data := make([]byte, metadataSize+len(obj.Addresses)*ed25519.PublicKeySize)

	var offset int
	binary.PutUint32(data, lookupTableAccountType, &offset)
	binary.PutUint64(data[offset:], obj.DeactivationSlot, &offset)
	binary.PutUint64(data[offset:], obj.LastExtendedSlot, &offset)
	binary.PutUint8(data[offset:], obj.LastExtendedSlotStartIndex, &offset)
	binary.PutOptionalKey32(data[offset:], obj.Authority, &offset, 1)

	offset = metadataSize
	for _, address := range obj.Addresses {
		binary.PutKey32(data[offset:], address, &offset)
	}
	return data
}

// IsActive reports whether the table can still be referenced by new
// transactions
func (obj *AddressLookupTableAccount) IsActive() bool {
	return obj.DeactivationSlot == math.MaxUint64
}

// ToLookupTable converts the account state at address into the form consumed
// when compiling v0 transactions
func (obj *AddressLookupTableAccount) ToLookupTable(address ed25519.PublicKey) solana.AddressLookupTable {
	return solana.AddressLookupTable{
		PublicKey: address,
		Addresses: obj.Addresses,
	}
}

func (obj *AddressLookupTableAccount) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "AddressLookupTable{authority=%s,active=%t,last_extended_slot=%d,addresses=[",
		base58.Encode(obj.Authority), obj.IsActive(), obj.LastExtendedSlot)
	for i, address := range obj.Addresses {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(base58.Encode(address))
	}
	sb.WriteString("]}")
	return sb.String()
}
