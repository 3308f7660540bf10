package interact

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/interact-dapp/pkg/metrics"
	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

var ErrAirdropUnavailable = errors.New("airdrops are only available on devnet")

// TokenBalance is the payer's balance of a mint in base units
type TokenBalance struct {
	Mint    ed25519.PublicKey
	Account ed25519.PublicKey
	Amount  uint64
	Slot    uint64

	// Exists is false when the associated token account hasn't been created
	Exists bool
}

// Balance returns the payer's lamport balance
func (i *Invoker) Balance(ctx context.Context) (uint64, error) {
	lamports, err := i.client.GetBalance(i.Payer())
	if err == solana.ErrNoBalance {
		return 0, nil
	} else if err != nil {
		return 0, errors.Wrap(err, "error getting balance")
	}
	return lamports, nil
}

// TokenBalance returns the balance of the payer's associated token account
// for mint
func (i *Invoker) TokenBalance(ctx context.Context, mint ed25519.PublicKey) (*TokenBalance, error) {
	account, err := token.GetAssociatedAccount(i.Payer(), mint)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving token account")
	}

	res := &TokenBalance{
		Mint:    mint,
		Account: account,
	}

	amount, slot, err := i.client.GetTokenAccountBalance(account)
	if err == solana.ErrNoBalance {
		return res, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "error getting balance of %s", base58.Encode(account))
	}

	res.Amount = amount
	res.Slot = slot
	res.Exists = true
	return res, nil
}

// Airdrop funds the payer from the devnet faucet and waits for the airdrop
// to reach the configured commitment
func (i *Invoker) Airdrop(ctx context.Context, lamports uint64) (*Invocation, error) {
	log := i.log.WithFields(logrus.Fields{
		"method":   "Airdrop",
		"payer":    base58.Encode(i.Payer()),
		"lamports": lamports,
	})

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Airdrop")
	defer tracer.End()

	if i.cluster != solana.ClusterDevnet {
		return nil, errors.Wrapf(ErrAirdropUnavailable, "cluster is %s", i.cluster)
	}
	if lamports == 0 {
		return nil, errors.Wrap(ErrInvalidAmount, "lamports must be positive")
	}

	sig, err := i.client.RequestAirdrop(i.Payer(), lamports, i.commitment)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "error requesting airdrop")
	}
	log = log.WithField("signature", base58.Encode(sig[:]))

	status, err := i.waitForConfirmation(ctx, sig)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}
	if status.ErrorResult != nil {
		tracer.OnError(status.ErrorResult)
		return nil, errors.Wrap(status.ErrorResult, "airdrop failed")
	}

	log.WithField("slot", status.Slot).Debug("airdrop confirmed")

	return &Invocation{
		Signature: sig,
		Slot:      status.Slot,
	}, nil
}
