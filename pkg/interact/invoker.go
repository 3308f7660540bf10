package interact

import (
	"context"
	"crypto/ed25519"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	xrate "golang.org/x/time/rate"

	"github.com/code-payments/interact-dapp/pkg/cache"
	"github.com/code-payments/interact-dapp/pkg/rate"
	"github.com/code-payments/interact-dapp/pkg/retry"
	"github.com/code-payments/interact-dapp/pkg/retry/backoff"
	"github.com/code-payments/interact-dapp/pkg/solana"
	address_lookup_table "github.com/code-payments/interact-dapp/pkg/solana/addresslookuptable"
	compute_budget "github.com/code-payments/interact-dapp/pkg/solana/computebudget"
	"github.com/code-payments/interact-dapp/pkg/solana/lending"
	"github.com/code-payments/interact-dapp/pkg/solana/raydiumclmm"
	"github.com/code-payments/interact-dapp/pkg/solana/vaults"
	sync_util "github.com/code-payments/interact-dapp/pkg/sync"
)

const (
	payerLockStripes = 64

	lookupTableCacheBudget = 256
)

// Invocation is the result of a confirmed transaction
type Invocation struct {
	Signature     solana.Signature
	Slot          uint64
	UnitsConsumed uint64
	Logs          []string
}

func (i *Invocation) SignatureString() string {
	return base58.Encode(i.Signature[:])
}

// SimulationError carries the program logs of a failed simulation
type SimulationError struct {
	Err  *solana.TransactionError
	Logs []string
}

func (e *SimulationError) Error() string {
	return "simulation failed: " + e.Err.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Err
}

// Invoker compiles, signs and executes instructions on behalf of a payer
type Invoker struct {
	log    *logrus.Entry
	conf   *conf
	client solana.Client
	payer  ed25519.PrivateKey

	cluster         solana.Cluster
	commitment      solana.Commitment
	lendingPrograms lending.Programs
	clmmProgram     ed25519.PublicKey
	vaultsProgram   ed25519.PublicKey
	vaultsErr       error

	payerLocks   *sync_util.StripedLock
	limiter      rate.Limiter
	lookupTables cache.Cache[solana.AddressLookupTable]
}

// NewInvoker returns an Invoker that pays for and signs transactions with payer
func NewInvoker(client solana.Client, payer ed25519.PrivateKey, configProvider ConfigProvider) (*Invoker, error) {
	conf := configProvider()
	ctx := context.Background()

	cluster, err := solana.ParseCluster(conf.cluster.Get(ctx))
	if err != nil {
		return nil, err
	}

	commitment, err := solana.CommitmentFromString(conf.commitment.Get(ctx))
	if err != nil {
		return nil, err
	}

	lendingPrograms, err := lending.ProgramsForCluster(cluster)
	if err != nil {
		return nil, err
	}

	clmmProgram, err := raydiumclmm.ProgramForCluster(cluster)
	if err != nil {
		return nil, err
	}

	var vaultsOverride ed25519.PublicKey
	if encoded := conf.vaultsProgram.Get(ctx); len(encoded) > 0 {
		vaultsOverride, err = solana.PublicKeyFromBase58(encoded)
		if err != nil {
			return nil, errors.Wrap(err, "invalid vaults program")
		}
	}

	// Vault operations fail at call time with vaultsErr on clusters without
	// a deployment
	vaultsProgram, vaultsErr := vaults.ProgramForCluster(cluster, vaultsOverride)

	var limiter rate.Limiter = rate.NoLimiter{}
	if submitRate := conf.submitRate.Get(ctx); submitRate > 0 {
		limiter = rate.NewLocalRateLimiter(xrate.Limit(submitRate))
	}

	return &Invoker{
		log:    logrus.StandardLogger().WithField("type", "interact/invoker"),
		conf:   conf,
		client: client,
		payer:  payer,

		cluster:         cluster,
		commitment:      commitment,
		lendingPrograms: lendingPrograms,
		clmmProgram:     clmmProgram,
		vaultsProgram:   vaultsProgram,
		vaultsErr:       vaultsErr,

		payerLocks:   sync_util.NewStripedLock(payerLockStripes),
		limiter:      limiter,
		lookupTables: cache.NewCache[solana.AddressLookupTable](lookupTableCacheBudget),
	}, nil
}

// Payer is the fee payer and default signer of every invocation
func (i *Invoker) Payer() ed25519.PublicKey {
	return i.payer.Public().(ed25519.PublicKey)
}

func (i *Invoker) Cluster() solana.Cluster {
	return i.cluster
}

// Invoke executes the instructions in a single transaction and waits for it
// to reach the configured commitment
func (i *Invoker) Invoke(ctx context.Context, instructions []solana.Instruction, extraSigners ...ed25519.PrivateKey) (*Invocation, error) {
	return i.invoke(ctx, i.computeBudgetInstructions(ctx), instructions, extraSigners)
}

// invoke is Invoke with the compute budget instructions already chosen, so
// callers know where their instructions land in the transaction
func (i *Invoker) invoke(ctx context.Context, budget, instructions []solana.Instruction, extraSigners []ed25519.PrivateKey) (*Invocation, error) {
	payer := i.Payer()

	log := i.log.WithFields(logrus.Fields{
		"method": "Invoke",
		"payer":  base58.Encode(payer),
	})

	if len(instructions) == 0 {
		return nil, errors.New("no instructions to invoke")
	}

	if err := i.limiter.Wait(ctx, string(payer)); err != nil {
		return nil, errors.Wrap(err, "rate limited")
	}

	lock := i.payerLocks.Get(payer)
	lock.Lock()
	defer lock.Unlock()

	txn, err := i.buildTransaction(ctx, budget, instructions, extraSigners)
	if err != nil {
		return nil, err
	}

	log = log.WithField("signature", base58.Encode(txn.Signature()))
	if log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		log.WithField("size", txn.Size()).Trace(txn.String())
	}

	var simulation *solana.SimulationResult
	if i.conf.simulateBeforeSubmit.Get(ctx) {
		simulation, err = i.client.SimulateTransaction(txn, i.commitment)
		if err != nil {
			return nil, errors.Wrap(err, "error simulating transaction")
		}

		if simulation.Err != nil {
			log.WithError(simulation.Err).WithField("logs", simulation.Logs).Debug("simulation failed")
			return nil, &SimulationError{Err: simulation.Err, Logs: simulation.Logs}
		}
	}

	sig, err := i.client.SubmitTransaction(txn, i.commitment)
	if err != nil {
		log.WithError(err).Debug("submission failed")
		return nil, errors.Wrap(err, "error submitting transaction")
	}

	status, err := i.waitForConfirmation(ctx, sig)
	if err != nil {
		return nil, err
	}
	if status.ErrorResult != nil {
		log.WithError(status.ErrorResult).Debug("transaction failed")
		return nil, errors.Wrap(status.ErrorResult, "transaction failed")
	}

	invocation := &Invocation{
		Signature: sig,
		Slot:      status.Slot,
	}
	if simulation != nil {
		invocation.UnitsConsumed = simulation.UnitsConsumed
		invocation.Logs = simulation.Logs
	}

	log.WithField("slot", status.Slot).Debug("transaction confirmed")

	return invocation, nil
}

// Simulate builds and signs the transaction Invoke would submit, but only
// simulates it
func (i *Invoker) Simulate(ctx context.Context, instructions []solana.Instruction, extraSigners ...ed25519.PrivateKey) (*solana.SimulationResult, error) {
	txn, err := i.buildTransaction(ctx, i.computeBudgetInstructions(ctx), instructions, extraSigners)
	if err != nil {
		return nil, err
	}

	res, err := i.client.SimulateTransaction(txn, i.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "error simulating transaction")
	}
	return res, nil
}

func (i *Invoker) computeBudgetInstructions(ctx context.Context) []solana.Instruction {
	var ixns []solana.Instruction
	if limit := i.conf.computeUnitLimit.Get(ctx); limit > 0 {
		if limit > compute_budget.MaxComputeUnitLimit {
			limit = compute_budget.MaxComputeUnitLimit
		}
		ixns = append(ixns, compute_budget.SetComputeUnitLimit(uint32(limit)))
	}
	if price := i.conf.computeUnitPrice.Get(ctx); price > 0 {
		ixns = append(ixns, compute_budget.SetComputeUnitPrice(price))
	}
	return ixns
}

func (i *Invoker) buildTransaction(ctx context.Context, budget, instructions []solana.Instruction, extraSigners []ed25519.PrivateKey) (solana.Transaction, error) {
	payer := i.Payer()

	ixns := make([]solana.Instruction, 0, len(budget)+len(instructions))
	ixns = append(ixns, budget...)
	ixns = append(ixns, instructions...)

	alts, err := i.getLookupTables(ctx)
	if err != nil {
		return solana.Transaction{}, err
	}

	var txn solana.Transaction
	if len(alts) == 0 {
		txn = solana.NewLegacyTransaction(payer, ixns...)
	} else {
		txn = solana.NewV0Transaction(payer, alts, ixns)
	}

	blockhash, err := i.client.GetLatestBlockhash()
	if err != nil {
		return solana.Transaction{}, errors.Wrap(err, "error getting latest blockhash")
	}
	txn.SetBlockhash(blockhash)

	signers := append([]ed25519.PrivateKey{i.payer}, extraSigners...)
	if err := txn.Sign(signers...); err != nil {
		return solana.Transaction{}, errors.Wrap(err, "error signing transaction")
	}

	if err := txn.CheckSize(); err != nil {
		return solana.Transaction{}, err
	}

	return txn, nil
}

func (i *Invoker) waitForConfirmation(ctx context.Context, sig solana.Signature) (*solana.SignatureStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, i.conf.confirmationTimeout.Get(ctx))
	defer cancel()

	var status *solana.SignatureStatus
	_, err := retry.Retry(
		func() error {
			var err error
			status, err = i.client.GetSignatureStatus(sig, i.commitment)
			return err
		},
		retry.Context(ctx),
		retry.Backoff(backoff.Constant(solana.PollRate), solana.PollRate),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ErrConfirmationTimeout, err.Error())
		}
		return nil, errors.Wrap(err, "error getting signature status")
	}
	return status, nil
}

// getLookupTables loads the configured address lookup tables, serving
// previously fetched tables from cache
func (i *Invoker) getLookupTables(ctx context.Context) ([]solana.AddressLookupTable, error) {
	configured := i.conf.lookupTables.Get(ctx)
	if len(strings.TrimSpace(configured)) == 0 {
		return nil, nil
	}

	var addresses []string
	for _, address := range strings.Split(configured, ",") {
		if address = strings.TrimSpace(address); len(address) > 0 {
			addresses = append(addresses, address)
		}
	}

	keys, err := solana.PublicKeysFromBase58(addresses)
	if err != nil {
		return nil, errors.Wrap(err, "invalid lookup table address")
	}

	res := make([]solana.AddressLookupTable, len(keys))
	var missing []int
	for idx, key := range keys {
		cached, ok := i.lookupTables.Retrieve(string(key))
		if !ok {
			missing = append(missing, idx)
			continue
		}
		res[idx] = cached
	}

	if len(missing) == 0 {
		return res, nil
	}

	toFetch := make([]ed25519.PublicKey, len(missing))
	for j, idx := range missing {
		toFetch[j] = keys[idx]
	}

	start := time.Now()
	infos, err := i.client.GetMultipleAccounts(toFetch, i.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "error getting lookup tables")
	}
	i.log.WithFields(logrus.Fields{
		"method":  "getLookupTables",
		"fetched": len(toFetch),
		"elapsed": time.Since(start),
	}).Trace("fetched lookup tables")

	for j, idx := range missing {
		if j >= len(infos) || infos[j] == nil {
			return nil, errors.Wrapf(solana.ErrNoAccountInfo, "lookup table %s", addresses[idx])
		}

		var account address_lookup_table.AddressLookupTableAccount
		if err := account.Unmarshal(infos[j].Data); err != nil {
			return nil, errors.Wrapf(err, "invalid lookup table %s", addresses[idx])
		}
		if !account.IsActive() {
			return nil, errors.Errorf("lookup table %s is deactivated", addresses[idx])
		}

		res[idx] = account.ToLookupTable(keys[idx])

		err := i.lookupTables.Insert(string(keys[idx]), res[idx], 1)
		if err != nil && err != cache.ErrKeyExists {
			return nil, errors.Wrap(err, "error caching lookup table")
		}
	}

	return res, nil
}
