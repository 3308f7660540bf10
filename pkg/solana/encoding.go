package solana

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana/shortvec"
)

const versionPrefixMask = 0x80

// wireWriter appends wire-format fields to a buffer. Writes to a
// bytes.Buffer can't fail, and lengths are bounded by the size checks done
// when building transactions.
type wireWriter struct {
	bytes.Buffer
}

func (w *wireWriter) vec(b []byte) {
	_, _ = shortvec.EncodeLen(w, len(b))
	_, _ = w.Write(b)
}

func (t Transaction) Marshal() []byte {
	var w wireWriter
	_, _ = shortvec.EncodeLen(&w, len(t.Signatures))
	for _, sig := range t.Signatures {
		_, _ = w.Write(sig[:])
	}
	_, _ = w.Write(t.Message.Marshal())
	return w.Bytes()
}

func (m Message) Marshal() []byte {
	var w wireWriter

	switch m.Version {
	case MessageVersionLegacy:
	case MessageVersion0:
		_ = w.WriteByte(versionPrefixMask | byte(m.Version-1))
	default:
		panic("unsupported message version")
	}

	_, _ = w.Write([]byte{m.Header.NumSignatures, m.Header.NumReadonlySigned, m.Header.NumReadOnly})

	_, _ = shortvec.EncodeLen(&w, len(m.Accounts))
	for _, account := range m.Accounts {
		_, _ = w.Write(account)
	}
	_, _ = w.Write(m.RecentBlockhash[:])

	_, _ = shortvec.EncodeLen(&w, len(m.Instructions))
	for _, ixn := range m.Instructions {
		_ = w.WriteByte(ixn.ProgramIndex)
		w.vec(ixn.Accounts)
		w.vec(ixn.Data)
	}

	if m.Version == MessageVersion0 {
		_, _ = shortvec.EncodeLen(&w, len(m.AddressTableLookups))
		for _, lookup := range m.AddressTableLookups {
			_, _ = w.Write(lookup.PublicKey)
			w.vec(lookup.WritableIndexes)
			w.vec(lookup.ReadonlyIndexes)
		}
	}

	return w.Bytes()
}

// wireReader consumes wire-format fields, keeping the first error so
// callers can check once after a group of reads
type wireReader struct {
	r   *bytes.Reader
	err error
}

func (r *wireReader) fail(err error, field string) {
	if r.err == nil && err != nil {
		r.err = errors.Wrapf(err, "failed to read %s", field)
	}
}

func (r *wireReader) readByte(field string) byte {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	r.fail(err, field)
	return b
}

func (r *wireReader) readLen(field string) int {
	if r.err != nil {
		return 0
	}
	n, err := shortvec.DecodeLen(r.r)
	r.fail(err, field+" len")
	return n
}

func (r *wireReader) fixed(dst []byte, field string) {
	if r.err != nil {
		return
	}
	_, err := io.ReadFull(r.r, dst)
	r.fail(err, field)
}

func (r *wireReader) key(field string) ed25519.PublicKey {
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	r.fixed(key, field)
	return key
}

func (r *wireReader) vec(field string) []byte {
	b := make([]byte, r.readLen(field))
	r.fixed(b, field)
	return b
}

func (t *Transaction) Unmarshal(b []byte) error {
	r := &wireReader{r: bytes.NewReader(b)}

	t.Signatures = make([]Signature, r.readLen("signatures"))
	for i := range t.Signatures {
		r.fixed(t.Signatures[i][:], "signature")
	}
	if r.err != nil {
		return r.err
	}

	return t.Message.unmarshal(r)
}

func (m *Message) unmarshal(r *wireReader) error {
	if r.r.Len() == 0 {
		return errors.New("empty message")
	}

	m.Version = MessageVersionLegacy
	if prefix := r.readByte("prefix"); prefix&versionPrefixMask != 0 {
		if version := prefix &^ versionPrefixMask; version != 0 {
			return errors.Errorf("unsupported message version: %d", version)
		}
		m.Version = MessageVersion0
	} else {
		_ = r.r.UnreadByte()
	}

	m.Header.NumSignatures = r.readByte("num signatures")
	m.Header.NumReadonlySigned = r.readByte("num readonly signatures")
	m.Header.NumReadOnly = r.readByte("num readonly")

	m.Accounts = make([]ed25519.PublicKey, r.readLen("accounts"))
	for i := range m.Accounts {
		m.Accounts[i] = r.key("account")
	}
	r.fixed(m.RecentBlockhash[:], "recent blockhash")

	m.Instructions = make([]CompiledInstruction, r.readLen("instructions"))
	for i := range m.Instructions {
		m.Instructions[i] = CompiledInstruction{
			ProgramIndex: r.readByte("program index"),
			Accounts:     r.vec("instruction accounts"),
			Data:         r.vec("instruction data"),
		}
	}

	m.AddressTableLookups = nil
	if m.Version == MessageVersion0 {
		m.AddressTableLookups = make([]MessageAddressTableLookup, r.readLen("address table lookups"))
		for i := range m.AddressTableLookups {
			m.AddressTableLookups[i] = MessageAddressTableLookup{
				PublicKey:       r.key("address table"),
				WritableIndexes: r.vec("writable indexes"),
				ReadonlyIndexes: r.vec("readonly indexes"),
			}
		}
	}

	if r.err != nil {
		return r.err
	}
	return m.checkIndexes()
}

// checkIndexes verifies every compiled instruction references accounts the
// message can resolve. Loaded accounts follow the static ones.
func (m *Message) checkIndexes() error {
	total := len(m.Accounts)
	for _, lookup := range m.AddressTableLookups {
		total += len(lookup.WritableIndexes) + len(lookup.ReadonlyIndexes)
	}

	for i, ixn := range m.Instructions {
		if int(ixn.ProgramIndex) >= len(m.Accounts) {
			return errors.Errorf("instruction %d: program index %d out of range", i, ixn.ProgramIndex)
		}
		for _, index := range ixn.Accounts {
			if int(index) >= total {
				return errors.Errorf("instruction %d: account index %d out of range", i, index)
			}
		}
	}
	return nil
}
