package interact

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/interact-dapp/pkg/solana"
	address_lookup_table "github.com/code-payments/interact-dapp/pkg/solana/addresslookuptable"
	"github.com/code-payments/interact-dapp/pkg/solana/vaults"
)

const (
	protocolLookupTable = "address_lookup_table"

	// Keeps each extend transaction within the packet limit without a table
	maxLookupTableExtendBatch = 20
)

var ErrLookupTableFailed = errors.New("lookup table operation failed")

// LookupTable is the outcome of CreateLookupTable
type LookupTable struct {
	Address     ed25519.PublicKey
	Invocations []*Invocation
}

func (t *LookupTable) AddressString() string {
	return base58.Encode(t.Address)
}

// CreateLookupTable creates a lookup table with the payer as authority and
// extends it with addresses. Duplicate addresses are stored once.
func (i *Invoker) CreateLookupTable(ctx context.Context, addresses []ed25519.PublicKey) (*LookupTable, error) {
	payer := i.Payer()

	addresses = dedupeKeys(addresses)
	if len(addresses) == 0 {
		return nil, errors.Wrap(ErrLookupTableFailed, "no addresses")
	}

	recentSlot, err := i.client.GetSlot(i.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "error getting recent slot")
	}

	address, bump, err := address_lookup_table.GetAddress(payer, recentSlot)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving lookup table address")
	}

	fields := logrus.Fields{
		"lookup_table": base58.Encode(address),
		"recent_slot":  recentSlot,
		"addresses":    len(addresses),
	}

	res := &LookupTable{Address: address}
	for start := 0; start < len(addresses); start += maxLookupTableExtendBatch {
		end := start + maxLookupTableExtendBatch
		if end > len(addresses) {
			end = len(addresses)
		}
		batch := addresses[start:end]
		isFirst := start == 0

		operation := "ExtendLookupTable"
		if isFirst {
			operation = "CreateLookupTable"
		}

		invocation, err := i.invokeWrapped(ctx, protocolLookupTable, operation, ModeDirect, ErrLookupTableFailed, fields, func(_ Mode) ([]solana.Instruction, error) {
			var ixns []solana.Instruction
			if isFirst {
				ixns = append(ixns, address_lookup_table.Create(address, payer, payer, recentSlot, bump))
			}
			return append(ixns, address_lookup_table.Extend(address, payer, payer, batch...)), nil
		})
		if err != nil {
			return res, err
		}
		res.Invocations = append(res.Invocations, invocation)
	}

	return res, nil
}

// VaultLookupTableAddresses returns the operate accounts of set that can be
// loaded from a lookup table. The payer and the program itself are excluded.
func (i *Invoker) VaultLookupTableAddresses(set *vaults.AccountSet) ([]ed25519.PublicKey, error) {
	program, err := i.getVaultsProgram()
	if err != nil {
		return nil, err
	}

	signer := i.Payer()
	accounts, err := set.OperateAccounts(signer)
	if err != nil {
		return nil, err
	}

	ixn, err := vaults.NewOperateInstruction(program, accounts, vaults.DepositArgs(1, set.RemainingAccountsIndices))
	if err != nil {
		return nil, err
	}

	var res []ed25519.PublicKey
	for _, meta := range ixn.Accounts {
		if meta.IsSigner || bytes.Equal(meta.PublicKey, signer) || bytes.Equal(meta.PublicKey, program) {
			continue
		}
		res = append(res, meta.PublicKey)
	}
	return dedupeKeys(res), nil
}

func dedupeKeys(keys []ed25519.PublicKey) []ed25519.PublicKey {
	seen := make(map[string]struct{}, len(keys))
	res := make([]ed25519.PublicKey, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[string(key)]; ok {
			continue
		}
		seen[string(key)] = struct{}{}
		res = append(res, key)
	}
	return res
}
