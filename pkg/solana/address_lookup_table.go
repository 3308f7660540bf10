package solana

import (
	"bytes"
	"crypto/ed25519"
	"math"
	"sort"
)

// AddressLookupTable is an on-chain address list that v0 messages can load
// accounts from by index
type AddressLookupTable struct {
	PublicKey ed25519.PublicKey
	Addresses []ed25519.PublicKey
}

type lookupEntry struct {
	table int
	index byte
}

// lookupIndex maps each loadable address to the first table, in address
// order, and the first position it appears at
type lookupIndex map[string]lookupEntry

func sortLookupTables(tables []AddressLookupTable) []AddressLookupTable {
	sorted := make([]AddressLookupTable, len(tables))
	copy(sorted, tables)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].PublicKey, sorted[j].PublicKey) < 0
	})
	return sorted
}

func newLookupIndex(sorted []AddressLookupTable) lookupIndex {
	index := make(lookupIndex)
	for t, table := range sorted {
		for i, address := range table.Addresses {
			if i > math.MaxUint8 {
				break
			}
			if _, ok := index[string(address)]; !ok {
				index[string(address)] = lookupEntry{table: t, index: byte(i)}
			}
		}
	}
	return index
}

// find locates account in the tables. Payers, signers and invoked programs
// are always static.
func (l lookupIndex) find(account AccountMeta) (lookupEntry, bool) {
	if account.isPayer || account.IsSigner || account.isProgram {
		return lookupEntry{}, false
	}

	entry, ok := l[string(account.PublicKey)]
	return entry, ok
}
