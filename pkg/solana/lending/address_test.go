package lending

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/interact-dapp/pkg/testutil"
)

func TestResolveEarnAccounts_MatchesSolanaGo(t *testing.T) {
	signer := testutil.GenerateSolanaKey(t)
	mint := testutil.GenerateSolanaKey(t)

	accounts, err := ResolveEarnAccounts(DevnetPrograms, signer, mint)
	require.NoError(t, err)

	lendingProgram := solanago.PublicKeyFromBytes(DevnetPrograms.Lending)
	liquidityProgram := solanago.PublicKeyFromBytes(DevnetPrograms.Liquidity)

	find := func(program solanago.PublicKey, seeds ...[]byte) []byte {
		addr, _, err := solanago.FindProgramAddress(seeds, program)
		require.NoError(t, err)
		return addr.Bytes()
	}

	fTokenMint := find(lendingProgram, []byte("f_token_mint"), mint)
	lending := find(lendingProgram, []byte("lending"), mint, fTokenMint)
	liquidity := find(liquidityProgram, []byte("liquidity"))

	assert.EqualValues(t, find(lendingProgram, []byte("lending_admin")), accounts.LendingAdmin)
	assert.EqualValues(t, fTokenMint, accounts.FTokenMint)
	assert.EqualValues(t, lending, accounts.Lending)
	assert.EqualValues(t, find(lendingProgram, []byte("lending_rewards_rate_model"), mint), accounts.RewardsRateModel)
	assert.EqualValues(t, liquidity, accounts.Liquidity)
	assert.EqualValues(t, find(liquidityProgram, []byte("reserve"), mint), accounts.TokenReserve)
	assert.EqualValues(t, find(liquidityProgram, []byte("user_supply_position"), mint, lending), accounts.SupplyPosition)
	assert.EqualValues(t, find(liquidityProgram, []byte("rate_model"), mint), accounts.RateModel)
	assert.EqualValues(t, find(liquidityProgram, []byte("user_claim"), signer, mint), accounts.ClaimAccount)

	vault, _, err := solanago.FindAssociatedTokenAddress(solanago.PublicKeyFromBytes(liquidity), solanago.PublicKeyFromBytes(mint))
	require.NoError(t, err)
	assert.EqualValues(t, vault.Bytes(), accounts.Vault)

	underlying, _, err := solanago.FindAssociatedTokenAddress(solanago.PublicKeyFromBytes(signer), solanago.PublicKeyFromBytes(mint))
	require.NoError(t, err)
	assert.EqualValues(t, underlying.Bytes(), accounts.UnderlyingTokenAccount)

	fTokenAccount, _, err := solanago.FindAssociatedTokenAddress(solanago.PublicKeyFromBytes(signer), solanago.PublicKeyFromBytes(fTokenMint))
	require.NoError(t, err)
	assert.EqualValues(t, fTokenAccount.Bytes(), accounts.FTokenAccount)
}
