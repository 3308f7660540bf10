package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

var (
	ErrTransactionTooLarge = errors.New("transaction exceeds max size")
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

type MessageVersion uint8

const (
	MessageVersionLegacy MessageVersion = iota
	MessageVersion0
)

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

type MessageAddressTableLookup struct {
	PublicKey       ed25519.PublicKey
	WritableIndexes []byte
	ReadonlyIndexes []byte
}

type Message struct {
	Version             MessageVersion
	Header              Header
	Accounts            []ed25519.PublicKey
	RecentBlockhash     Blockhash
	Instructions        []CompiledInstruction
	AddressTableLookups []MessageAddressTableLookup
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewLegacyTransaction compiles the instructions into a legacy transaction
// where every account is statically referenced.
func NewLegacyTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	return newTransaction(MessageVersionLegacy, payer, nil, instructions)
}

// NewV0Transaction compiles the instructions into a versioned transaction,
// loading every eligible account through the provided address lookup tables.
func NewV0Transaction(payer ed25519.PublicKey, addressLookupTables []AddressLookupTable, instructions []Instruction) Transaction {
	return newTransaction(MessageVersion0, payer, addressLookupTables, instructions)
}

func newTransaction(version MessageVersion, payer ed25519.PublicKey, addressLookupTables []AddressLookupTable, instructions []Instruction) Transaction {
	accounts := collectAccounts(payer, instructions)

	tables := sortLookupTables(addressLookupTables)
	lookups := newLookupIndex(tables)
	writable := make([][]byte, len(tables))
	readonly := make([][]byte, len(tables))

	m := Message{
		Version: version,
	}
	for _, account := range accounts {
		entry, ok := lookups.find(account)
		if !ok {
			m.addStaticAccount(account)
			continue
		}

		if account.IsWritable {
			writable[entry.table] = append(writable[entry.table], entry.index)
		} else {
			readonly[entry.table] = append(readonly[entry.table], entry.index)
		}
	}

	// Compiled instructions index the static accounts, then every loaded
	// writable account, then every loaded readonly account
	keys := append([]ed25519.PublicKey{}, m.Accounts...)
	keys = appendLoaded(keys, tables, writable)
	keys = appendLoaded(keys, tables, readonly)

	for _, ixn := range instructions {
		compiled := CompiledInstruction{
			ProgramIndex: byte(indexOf(keys, ixn.Program)),
			Data:         ixn.Data,
		}
		for _, meta := range ixn.Accounts {
			compiled.Accounts = append(compiled.Accounts, byte(indexOf(keys, meta.PublicKey)))
		}
		m.Instructions = append(m.Instructions, compiled)
	}

	for i, table := range tables {
		if len(writable[i]) == 0 && len(readonly[i]) == 0 {
			continue
		}

		m.AddressTableLookups = append(m.AddressTableLookups, MessageAddressTableLookup{
			PublicKey:       table.PublicKey,
			WritableIndexes: writable[i],
			ReadonlyIndexes: readonly[i],
		})
	}

	// Empty keys are encoded as the zero address
	for i := range m.Accounts {
		if len(m.Accounts[i]) == 0 {
			m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		}
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// collectAccounts returns every account referenced by the instructions in
// message order:
//  1. Payer
//  2. Signers before non-signers
//  3. Writable before read-only
//  4. Invoked programs last within their group
func collectAccounts(payer ed25519.PublicKey, instructions []Instruction) []AccountMeta {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}
	for _, ixn := range instructions {
		accounts = append(accounts, AccountMeta{
			PublicKey: ixn.Program,
			isProgram: true,
		})
		accounts = append(accounts, ixn.Accounts...)
	}

	accounts = mergeDuplicates(accounts)
	sort.SliceStable(accounts, func(i, j int) bool {
		return accountLess(accounts[i], accounts[j])
	})
	return accounts
}

// mergeDuplicates keeps the first occurrence of every key, with the union of
// the permissions of all its occurrences
func mergeDuplicates(accounts []AccountMeta) []AccountMeta {
	positions := make(map[string]int, len(accounts))
	merged := make([]AccountMeta, 0, len(accounts))

	for _, account := range accounts {
		i, ok := positions[string(account.PublicKey)]
		if !ok {
			positions[string(account.PublicKey)] = len(merged)
			merged = append(merged, account)
			continue
		}

		merged[i].IsSigner = merged[i].IsSigner || account.IsSigner
		merged[i].IsWritable = merged[i].IsWritable || account.IsWritable
		merged[i].isPayer = merged[i].isPayer || account.isPayer
		merged[i].isProgram = merged[i].isProgram || account.isProgram
	}

	return merged
}

func (m *Message) addStaticAccount(account AccountMeta) {
	m.Accounts = append(m.Accounts, account.PublicKey)

	switch {
	case account.IsSigner:
		m.Header.NumSignatures++
		if !account.IsWritable {
			m.Header.NumReadonlySigned++
		}
	case !account.IsWritable:
		m.Header.NumReadOnly++
	}
}

func appendLoaded(keys []ed25519.PublicKey, tables []AddressLookupTable, indexes [][]byte) []ed25519.PublicKey {
	for table, positions := range indexes {
		for _, position := range positions {
			keys = append(keys, tables[table].Addresses[position])
		}
	}
	return keys
}

func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

// Size returns the wire size of the transaction
func (t *Transaction) Size() int {
	return len(t.Marshal())
}

// CheckSize returns ErrTransactionTooLarge if the transaction can't fit in a
// single packet
func (t *Transaction) CheckSize() error {
	if size := t.Size(); size > MaxTransactionSize {
		return errors.Wrapf(ErrTransactionTooLarge, "%d > %d bytes", size, MaxTransactionSize)
	}
	return nil
}

func (t *Transaction) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "signatures:\n")
	for i, sig := range t.Signatures {
		fmt.Fprintf(&sb, "  %d: %s\n", i, base58.Encode(sig[:]))
	}

	m := t.Message
	fmt.Fprintf(&sb, "message (%s):\n", m.Version)
	fmt.Fprintf(&sb, "  header: signatures=%d readonly_signed=%d readonly=%d\n", m.Header.NumSignatures, m.Header.NumReadonlySigned, m.Header.NumReadOnly)
	fmt.Fprintf(&sb, "  blockhash: %s\n", base58.Encode(m.RecentBlockhash[:]))
	for i, account := range m.Accounts {
		fmt.Fprintf(&sb, "  account %d: %s\n", i, base58.Encode(account))
	}
	for i, ixn := range m.Instructions {
		fmt.Fprintf(&sb, "  instruction %d: program=%d accounts=%v data=%x\n", i, ixn.ProgramIndex, ixn.Accounts, ixn.Data)
	}
	for _, lookup := range m.AddressTableLookups {
		fmt.Fprintf(&sb, "  lookup %s: writable=%v readonly=%v\n", base58.Encode(lookup.PublicKey), lookup.WritableIndexes, lookup.ReadonlyIndexes)
	}

	return sb.String()
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

// IsFullySigned reports whether every required signature slot is populated
func (t *Transaction) IsFullySigned() bool {
	for _, sig := range t.Signatures {
		if sig == (Signature{}) {
			return false
		}
	}
	return len(t.Signatures) > 0
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}

	return -1
}

func (v MessageVersion) String() string {
	switch v {
	case MessageVersionLegacy:
		return "legacy"
	case MessageVersion0:
		return "v0"
	}
	return "unknown"
}
