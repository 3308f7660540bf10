package vaults

import (
	"crypto/ed25519"
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

// AccountSet is the vault side of an operate or init_position call, as
// published by the vault's frontend or indexer. Keys are base58.
type AccountSet struct {
	VaultID        uint16 `json:"vault_id"`
	NextPositionID uint32 `json:"next_position_id"`

	VaultAdmin   string `json:"vault_admin"`
	VaultConfig  string `json:"vault_config"`
	VaultState   string `json:"vault_state"`
	Position     string `json:"position"`
	PositionMint string `json:"position_mint"`

	SupplyToken string `json:"supply_token"`
	BorrowToken string `json:"borrow_token"`

	// Token programs owning the supply and borrow mints. Unset means SPL Token.
	SupplyTokenProgram string `json:"supply_token_program,omitempty"`
	BorrowTokenProgram string `json:"borrow_token_program,omitempty"`

	Oracle        string `json:"oracle"`
	OracleProgram string `json:"oracle_program"`

	CurrentPositionTick   string `json:"current_position_tick"`
	FinalPositionTick     string `json:"final_position_tick"`
	CurrentPositionTickID string `json:"current_position_tick_id"`
	FinalPositionTickID   string `json:"final_position_tick_id"`
	NewBranch             string `json:"new_branch"`

	SupplyTokenReservesLiquidity   string `json:"supply_token_reserves_liquidity"`
	BorrowTokenReservesLiquidity   string `json:"borrow_token_reserves_liquidity"`
	VaultSupplyPositionOnLiquidity string `json:"vault_supply_position_on_liquidity"`
	VaultBorrowPositionOnLiquidity string `json:"vault_borrow_position_on_liquidity"`
	SupplyRateModel                string `json:"supply_rate_model"`
	BorrowRateModel                string `json:"borrow_rate_model"`
	VaultSupplyTokenAccount        string `json:"vault_supply_token_account"`
	VaultBorrowTokenAccount        string `json:"vault_borrow_token_account"`
	SupplyTokenClaimAccount        string `json:"supply_token_claim_account,omitempty"`
	BorrowTokenClaimAccount        string `json:"borrow_token_claim_account,omitempty"`

	Liquidity        string `json:"liquidity"`
	LiquidityProgram string `json:"liquidity_program"`

	RemainingAccounts        []string `json:"remaining_accounts"`
	RemainingAccountsIndices []uint8  `json:"remaining_accounts_indices"`
}

// LoadAccountSet reads an AccountSet from a JSON file
func LoadAccountSet(path string) (*AccountSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading account set")
	}

	var set AccountSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, errors.Wrap(err, "error parsing account set")
	}
	return &set, nil
}

type keyParser struct {
	err error
}

func (p *keyParser) required(name, v string) ed25519.PublicKey {
	if p.err != nil {
		return nil
	}
	if v == "" {
		p.err = errors.Errorf("account set is missing %s", name)
		return nil
	}

	key, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		p.err = errors.Wrapf(err, "invalid %s", name)
	}
	return key
}

func (p *keyParser) optional(name, v string) ed25519.PublicKey {
	if v == "" {
		return nil
	}
	return p.required(name, v)
}

// InitPositionAccounts resolves the init_position accounts for signer. The
// position token account is the signer's associated account for the position
// mint.
func (s *AccountSet) InitPositionAccounts(signer ed25519.PublicKey) (*InitPositionInstructionAccounts, error) {
	var p keyParser
	accounts := &InitPositionInstructionAccounts{
		Signer:       signer,
		VaultAdmin:   p.required("vault_admin", s.VaultAdmin),
		VaultState:   p.required("vault_state", s.VaultState),
		Position:     p.required("position", s.Position),
		PositionMint: p.required("position_mint", s.PositionMint),
	}
	if p.err != nil {
		return nil, p.err
	}

	var err error
	accounts.PositionTokenAccount, err = token.GetAssociatedAccount(signer, accounts.PositionMint)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving position token account")
	}
	return accounts, nil
}

// OperateAccounts resolves the operate accounts for signer, who is also the
// recipient. Signer and recipient token accounts are associated accounts.
func (s *AccountSet) OperateAccounts(signer ed25519.PublicKey) (*OperateInstructionAccounts, error) {
	var p keyParser
	accounts := &OperateInstructionAccounts{
		Signer:                         signer,
		Recipient:                      signer,
		VaultConfig:                    p.required("vault_config", s.VaultConfig),
		VaultState:                     p.required("vault_state", s.VaultState),
		SupplyToken:                    p.required("supply_token", s.SupplyToken),
		BorrowToken:                    p.required("borrow_token", s.BorrowToken),
		Oracle:                         p.required("oracle", s.Oracle),
		Position:                       p.required("position", s.Position),
		CurrentPositionTick:            p.required("current_position_tick", s.CurrentPositionTick),
		FinalPositionTick:              p.required("final_position_tick", s.FinalPositionTick),
		CurrentPositionTickID:          p.required("current_position_tick_id", s.CurrentPositionTickID),
		FinalPositionTickID:            p.required("final_position_tick_id", s.FinalPositionTickID),
		NewBranch:                      p.required("new_branch", s.NewBranch),
		SupplyTokenReservesLiquidity:   p.required("supply_token_reserves_liquidity", s.SupplyTokenReservesLiquidity),
		BorrowTokenReservesLiquidity:   p.required("borrow_token_reserves_liquidity", s.BorrowTokenReservesLiquidity),
		VaultSupplyPositionOnLiquidity: p.required("vault_supply_position_on_liquidity", s.VaultSupplyPositionOnLiquidity),
		VaultBorrowPositionOnLiquidity: p.required("vault_borrow_position_on_liquidity", s.VaultBorrowPositionOnLiquidity),
		SupplyRateModel:                p.required("supply_rate_model", s.SupplyRateModel),
		BorrowRateModel:                p.required("borrow_rate_model", s.BorrowRateModel),
		VaultSupplyTokenAccount:        p.required("vault_supply_token_account", s.VaultSupplyTokenAccount),
		VaultBorrowTokenAccount:        p.required("vault_borrow_token_account", s.VaultBorrowTokenAccount),
		SupplyTokenClaimAccount:        p.optional("supply_token_claim_account", s.SupplyTokenClaimAccount),
		BorrowTokenClaimAccount:        p.optional("borrow_token_claim_account", s.BorrowTokenClaimAccount),
		Liquidity:                      p.required("liquidity", s.Liquidity),
		LiquidityProgram:               p.required("liquidity_program", s.LiquidityProgram),
		OracleProgram:                  p.required("oracle_program", s.OracleProgram),
		SupplyTokenProgram:             p.optional("supply_token_program", s.SupplyTokenProgram),
		BorrowTokenProgram:             p.optional("borrow_token_program", s.BorrowTokenProgram),
	}
	positionMint := p.required("position_mint", s.PositionMint)
	for i, remaining := range s.RemainingAccounts {
		accounts.RemainingAccounts = append(accounts.RemainingAccounts, p.required(fmtIndexed("remaining_accounts", i), remaining))
	}
	if p.err != nil {
		return nil, p.err
	}

	var err error
	if accounts.PositionTokenAccount, err = token.GetAssociatedAccount(signer, positionMint); err != nil {
		return nil, errors.Wrap(err, "error deriving position token account")
	}
	if accounts.SignerSupplyTokenAccount, err = token.GetAssociatedAccountWithProgram(signer, accounts.SupplyToken, orDefault(accounts.SupplyTokenProgram, SPL_TOKEN_PROGRAM_ID)); err != nil {
		return nil, errors.Wrap(err, "error deriving supply token account")
	}
	if accounts.SignerBorrowTokenAccount, err = token.GetAssociatedAccountWithProgram(signer, accounts.BorrowToken, orDefault(accounts.BorrowTokenProgram, SPL_TOKEN_PROGRAM_ID)); err != nil {
		return nil, errors.Wrap(err, "error deriving borrow token account")
	}
	accounts.RecipientSupplyTokenAccount = accounts.SignerSupplyTokenAccount
	accounts.RecipientBorrowTokenAccount = accounts.SignerBorrowTokenAccount

	return accounts, nil
}

func fmtIndexed(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}
