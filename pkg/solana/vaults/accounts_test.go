package vaults

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/interact-dapp/pkg/solana/token"
	"github.com/code-payments/interact-dapp/pkg/testutil"
)

func TestAccountSet_OperateAccounts(t *testing.T) {
	set := generateAccountSet(t)
	path := writeAccountSet(t, set)

	loaded, err := LoadAccountSet(path)
	require.NoError(t, err)
	assert.Equal(t, set, loaded)

	signer := testutil.GenerateSolanaKey(t)
	accounts, err := loaded.OperateAccounts(signer)
	require.NoError(t, err)

	assert.Equal(t, signer, accounts.Signer)
	assert.Equal(t, signer, accounts.Recipient)
	assert.Equal(t, set.VaultConfig, base58.Encode(accounts.VaultConfig))
	assert.Nil(t, accounts.SupplyTokenClaimAccount)
	assert.Len(t, accounts.RemainingAccounts, 2)

	positionMint, err := base58.Decode(set.PositionMint)
	require.NoError(t, err)
	expectedPositionTokenAccount, err := token.GetAssociatedAccount(signer, positionMint)
	require.NoError(t, err)
	assert.Equal(t, expectedPositionTokenAccount, accounts.PositionTokenAccount)
	assert.Equal(t, accounts.SignerSupplyTokenAccount, accounts.RecipientSupplyTokenAccount)

	ixn, err := NewOperateInstruction(MAINNET_PROGRAM_ID, accounts, DepositArgs(1, loaded.RemainingAccountsIndices))
	require.NoError(t, err)
	assert.Len(t, ixn.Accounts, 37)
}

func TestAccountSet_OperateAccountsTokenPrograms(t *testing.T) {
	signer := testutil.GenerateSolanaKey(t)

	set := generateAccountSet(t)
	supplyMint, err := base58.Decode(set.SupplyToken)
	require.NoError(t, err)
	borrowMint, err := base58.Decode(set.BorrowToken)
	require.NoError(t, err)

	accounts, err := set.OperateAccounts(signer)
	require.NoError(t, err)
	assert.Nil(t, accounts.SupplyTokenProgram)
	assert.Nil(t, accounts.BorrowTokenProgram)

	expected, err := token.GetAssociatedAccountWithProgram(signer, supplyMint, token.ProgramKey)
	require.NoError(t, err)
	assert.Equal(t, expected, accounts.SignerSupplyTokenAccount)

	set.SupplyTokenProgram = base58.Encode(token.Token2022ProgramKey)
	loaded, err := LoadAccountSet(writeAccountSet(t, set))
	require.NoError(t, err)
	assert.Equal(t, set.SupplyTokenProgram, loaded.SupplyTokenProgram)

	accounts, err = loaded.OperateAccounts(signer)
	require.NoError(t, err)
	assert.EqualValues(t, token.Token2022ProgramKey, accounts.SupplyTokenProgram)
	assert.Nil(t, accounts.BorrowTokenProgram)

	expected, err = token.GetAssociatedAccountWithProgram(signer, supplyMint, token.Token2022ProgramKey)
	require.NoError(t, err)
	assert.Equal(t, expected, accounts.SignerSupplyTokenAccount)
	assert.Equal(t, expected, accounts.RecipientSupplyTokenAccount)

	expected, err = token.GetAssociatedAccount(signer, borrowMint)
	require.NoError(t, err)
	assert.Equal(t, expected, accounts.SignerBorrowTokenAccount)

	ixn, err := NewOperateInstruction(MAINNET_PROGRAM_ID, accounts, DepositArgs(1, set.RemainingAccountsIndices))
	require.NoError(t, err)
	var found bool
	for _, meta := range ixn.Accounts {
		found = found || bytes.Equal(meta.PublicKey, token.Token2022ProgramKey)
	}
	assert.True(t, found)

	set.BorrowTokenProgram = "not-base58-0OIl"
	_, err = set.OperateAccounts(signer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "borrow_token_program")
}

func TestAccountSet_InitPositionAccounts(t *testing.T) {
	set := generateAccountSet(t)
	signer := testutil.GenerateSolanaKey(t)

	accounts, err := set.InitPositionAccounts(signer)
	require.NoError(t, err)
	assert.Equal(t, set.Position, base58.Encode(accounts.Position))
	assert.NotEmpty(t, accounts.PositionTokenAccount)
}

func TestAccountSet_Invalid(t *testing.T) {
	signer := testutil.GenerateSolanaKey(t)

	set := generateAccountSet(t)
	set.Oracle = ""
	_, err := set.OperateAccounts(signer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing oracle")

	set = generateAccountSet(t)
	set.RemainingAccounts[1] = "not-base58-0OIl"
	_, err = set.OperateAccounts(signer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remaining_accounts[1]")

	_, err = LoadAccountSet(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func generateAccountSet(t *testing.T) *AccountSet {
	key := func() string {
		return base58.Encode(testutil.GenerateSolanaKey(t))
	}

	return &AccountSet{
		VaultID:                        1,
		NextPositionID:                 42,
		VaultAdmin:                     key(),
		VaultConfig:                    key(),
		VaultState:                     key(),
		Position:                       key(),
		PositionMint:                   key(),
		SupplyToken:                    key(),
		BorrowToken:                    key(),
		Oracle:                         key(),
		OracleProgram:                  key(),
		CurrentPositionTick:            key(),
		FinalPositionTick:              key(),
		CurrentPositionTickID:          key(),
		FinalPositionTickID:            key(),
		NewBranch:                      key(),
		SupplyTokenReservesLiquidity:   key(),
		BorrowTokenReservesLiquidity:   key(),
		VaultSupplyPositionOnLiquidity: key(),
		VaultBorrowPositionOnLiquidity: key(),
		SupplyRateModel:                key(),
		BorrowRateModel:                key(),
		VaultSupplyTokenAccount:        key(),
		VaultBorrowTokenAccount:        key(),
		Liquidity:                      key(),
		LiquidityProgram:               key(),
		RemainingAccounts:              []string{key(), key()},
		RemainingAccountsIndices:       []uint8{0, 1, 2},
	}
}

func writeAccountSet(t *testing.T, set *AccountSet) string {
	raw, err := json.Marshal(set)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "vault.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}
