package raydiumclmm

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/interact-dapp/pkg/solana/anchor"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

const (
	PoolStateAccountSize = 1544

	poolStateDecodedSize = (8 + // discriminator
		1 + // bump
		32 + // amm_config
		32 + // owner
		32 + // token_mint_0
		32 + // token_mint_1
		32 + // token_vault_0
		32 + // token_vault_1
		32 + // observation_key
		1 + // mint_decimals_0
		1 + // mint_decimals_1
		2 + // tick_spacing
		16 + // liquidity
		16 + // sqrt_price_x64
		4 + // tick_current
		2 + // padding3
		2 + // padding4
		16 + // fee_growth_global_0_x64
		16 + // fee_growth_global_1_x64
		8 + // protocol_fees_token_0
		8 + // protocol_fees_token_1
		16 + // swap_in_amount_token_0
		16 + // swap_out_amount_token_1
		16 + // swap_in_amount_token_1
		16 + // swap_out_amount_token_0
		1) // status
)

// PoolState is the leading portion of a CLMM pool account. Reward and bitmap
// state that follows isn't needed to route a swap.
type PoolState struct {
	Bump           uint8
	AmmConfig      ed25519.PublicKey
	Owner          ed25519.PublicKey
	TokenMint0     ed25519.PublicKey
	TokenMint1     ed25519.PublicKey
	TokenVault0    ed25519.PublicKey
	TokenVault1    ed25519.PublicKey
	ObservationKey ed25519.PublicKey
	MintDecimals0  uint8
	MintDecimals1  uint8
	TickSpacing    uint16
	Liquidity      binary.Uint128
	SqrtPriceX64   binary.Uint128
	TickCurrent    int32
	Status         uint8
}

func (obj *PoolState) Unmarshal(data []byte) error {
	if len(data) < poolStateDecodedSize {
		return ErrInvalidAccountData
	}
	if err := anchor.CheckAccountDiscriminator(data, poolStateAccountDiscriminator); err != nil {
		return ErrInvalidAccountData
	}

	offset := anchor.DiscriminatorSize

	binary.GetUint8(data[offset:], &obj.Bump, &offset)
	binary.GetKey32(data[offset:], &obj.AmmConfig, &offset)
	binary.GetKey32(data[offset:], &obj.Owner, &offset)
	binary.GetKey32(data[offset:], &obj.TokenMint0, &offset)
	binary.GetKey32(data[offset:], &obj.TokenMint1, &offset)
	binary.GetKey32(data[offset:], &obj.TokenVault0, &offset)
	binary.GetKey32(data[offset:], &obj.TokenVault1, &offset)
	binary.GetKey32(data[offset:], &obj.ObservationKey, &offset)
	binary.GetUint8(data[offset:], &obj.MintDecimals0, &offset)
	binary.GetUint8(data[offset:], &obj.MintDecimals1, &offset)
	binary.GetUint16(data[offset:], &obj.TickSpacing, &offset)
	binary.GetUint128(data[offset:], &obj.Liquidity, &offset)
	binary.GetUint128(data[offset:], &obj.SqrtPriceX64, &offset)
	binary.GetInt32(data[offset:], &obj.TickCurrent, &offset)
	offset += 2 + 2             // padding
	offset += 16 + 16 + 8 + 8   // fee growth and protocol fees
	offset += 16 + 16 + 16 + 16 // swap volume
	binary.GetUint8(data[offset:], &obj.Status, &offset)

	return nil
}

func (obj *PoolState) Marshal() []byte {
	data := make([]byte, PoolStateAccountSize)

	var offset int
	copy(data, poolStateAccountDiscriminator[:])
	offset += anchor.DiscriminatorSize

	binary.PutUint8(data[offset:], obj.Bump, &offset)
	binary.PutKey32(data[offset:], obj.AmmConfig, &offset)
	binary.PutKey32(data[offset:], obj.Owner, &offset)
	binary.PutKey32(data[offset:], obj.TokenMint0, &offset)
	binary.PutKey32(data[offset:], obj.TokenMint1, &offset)
	binary.PutKey32(data[offset:], obj.TokenVault0, &offset)
	binary.PutKey32(data[offset:], obj.TokenVault1, &offset)
	binary.PutKey32(data[offset:], obj.ObservationKey, &offset)
	binary.PutUint8(data[offset:], obj.MintDecimals0, &offset)
	binary.PutUint8(data[offset:], obj.MintDecimals1, &offset)
	binary.PutUint16(data[offset:], obj.TickSpacing, &offset)
	binary.PutUint128(data[offset:], obj.Liquidity, &offset)
	binary.PutUint128(data[offset:], obj.SqrtPriceX64, &offset)
	binary.PutInt32(data[offset:], obj.TickCurrent, &offset)
	offset += 2 + 2
	offset += 16 + 16 + 8 + 8
	offset += 16 + 16 + 16 + 16
	binary.PutUint8(data[offset:], obj.Status, &offset)

	return data
}

func (obj *PoolState) String() string {
	return fmt.Sprintf(
		"PoolState{amm_config=%s,token_mint_0=%s,token_mint_1=%s,token_vault_0=%s,token_vault_1=%s,observation_key=%s,tick_spacing=%d,liquidity=%s,sqrt_price_x64=%s,tick_current=%d,status=%d}",
		base58.Encode(obj.AmmConfig),
		base58.Encode(obj.TokenMint0),
		base58.Encode(obj.TokenMint1),
		base58.Encode(obj.TokenVault0),
		base58.Encode(obj.TokenVault1),
		base58.Encode(obj.ObservationKey),
		obj.TickSpacing,
		obj.Liquidity,
		obj.SqrtPriceX64,
		obj.TickCurrent,
		obj.Status,
	)
}
