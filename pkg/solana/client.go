package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/code-payments/interact-dapp/pkg/retry"
	"github.com/code-payments/interact-dapp/pkg/retry/backoff"
)

const (
	ticksPerSec  = 160
	ticksPerSlot = 64
	slotsPerSec  = ticksPerSec / ticksPerSlot

	// PollRate is ~2x the slot rate
	PollRate = (time.Second / slotsPerSec) / 2

	// ~32 slots at PollRate
	sigStatusPollLimit = 2 * 32

	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005

	invalidParamCode = -32602

	maxMultipleAccounts = 100

	blockhashRefreshInterval = 2 * time.Second
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusProcessed = "processed"
	confirmationStatusConfirmed = "confirmed"
	confirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: confirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: confirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}
)

// CommitmentFromString parses a commitment level name
func CommitmentFromString(s string) (Commitment, error) {
	switch s {
	case confirmationStatusProcessed:
		return CommitmentProcessed, nil
	case confirmationStatusConfirmed:
		return CommitmentConfirmed, nil
	case confirmationStatusFinalized:
		return CommitmentFinalized, nil
	}
	return Commitment{}, errors.Errorf("unknown commitment: %s", s)
}

var (
	ErrNoAccountInfo     = errors.New("no account info")
	ErrSignatureNotFound = errors.New("signature not found")
	ErrNoBalance         = errors.New("no balance")

	errConfirmationsNotReached = errors.New("confirmations not reached")
	errRateLimited             = errors.New("rate limited")
	errServiceError            = errors.New("service error")
)

// AccountInfo is a raw on-chain account
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

type SignatureStatus struct {
	Slot        uint64
	ErrorResult *TransactionError

	// Confirmations is nil once the transaction is rooted
	Confirmations      *int
	ConfirmationStatus string
}

func (s SignatureStatus) Confirmed() bool {
	if s.Finalized() || s.ConfirmationStatus == confirmationStatusConfirmed {
		return true
	}
	return *s.Confirmations >= 1
}

func (s SignatureStatus) Finalized() bool {
	return s.Confirmations == nil || s.ConfirmationStatus == confirmationStatusFinalized
}

// Reached reports whether the transaction has reached commitment. A failed
// transaction is final at any commitment.
func (s SignatureStatus) Reached(commitment Commitment) bool {
	if s.ErrorResult != nil {
		return true
	}

	switch commitment {
	case CommitmentConfirmed:
		return s.Confirmed()
	case CommitmentFinalized:
		return s.Finalized()
	default:
		return true
	}
}

// SimulationResult is the outcome of a simulateTransaction call
type SimulationResult struct {
	Slot          uint64
	Err           *TransactionError
	Logs          []string
	UnitsConsumed uint64
}

// Client is the subset of the Solana JSON RPC API used to build, submit and
// confirm transactions.
//
// Reference: https://solana.com/docs/rpc
type Client interface {
	GetAccountInfo(ed25519.PublicKey, Commitment) (AccountInfo, error)
	GetMultipleAccounts([]ed25519.PublicKey, Commitment) ([]*AccountInfo, error)
	GetBalance(ed25519.PublicKey) (uint64, error)
	GetLatestBlockhash() (Blockhash, error)
	GetSignatureStatus(Signature, Commitment) (*SignatureStatus, error)
	GetSlot(Commitment) (uint64, error)
	GetTokenAccountBalance(ed25519.PublicKey) (uint64, uint64, error)
	RequestAirdrop(ed25519.PublicKey, uint64, Commitment) (Signature, error)
	SimulateTransaction(Transaction, Commitment) (*SimulationResult, error)
	SubmitTransaction(Transaction, Commitment) (Signature, error)
}

type accountConfig struct {
	Commitment string `json:"commitment"`
	Encoding   string `json:"encoding"`
}

func base64AccountConfig(commitment Commitment) accountConfig {
	return accountConfig{Commitment: commitment.Commitment, Encoding: "base64"}
}

type rpcAccount struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
}

func (a *rpcAccount) toAccountInfo() (*AccountInfo, error) {
	owner, err := base58.Decode(a.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base58 encoded owner")
	}

	if len(a.Data) == 0 {
		return nil, errors.New("missing account data")
	}
	data, err := base64.StdEncoding.DecodeString(a.Data[0])
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 encoded data")
	}

	return &AccountInfo{
		Data:       data,
		Owner:      owner,
		Lamports:   a.Lamports,
		Executable: a.Executable,
	}, nil
}

type client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	retrier retry.Retrier

	blockMu   sync.RWMutex
	blockhash Blockhash
	lastWrite time.Time
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:    logrus.StandardLogger().WithField("type", "solana/client"),
		client: jsonrpc.NewClientWithOpts(endpoint, opts),
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
			retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), 10*time.Second, 0.1),
		),
	}
}

// call retries rate limiting and node failures. Other errors are returned
// as reported by the RPC client.
func (c *client) call(out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(func() error {
		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}
		return c.classifyError(method, err)
	})
	return err
}

func (c *client) classifyError(method string, err error) error {
	var code int
	switch t := err.(type) {
	case *jsonrpc.HTTPError:
		code = t.Code
	case *jsonrpc.RPCError:
		if t.Code == rpcNodeUnhealthyCode {
			return errServiceError
		}
		code = t.Code
	default:
		return err
	}

	switch {
	case code == 429:
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	case code >= 500:
		return errServiceError
	default:
		return err
	}
}

func isInvalidParam(err error) bool {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	return ok && rpcErr.Code == invalidParamCode
}

func (c *client) GetSlot(commitment Commitment) (slot uint64, err error) {
	// The commitment has to be wrapped in a list for the node to accept it
	if err := c.call(&slot, "getSlot", []interface{}{commitment}); err != nil {
		return 0, errors.Wrap(err, "getSlot() failed to send request")
	}
	return slot, nil
}

// GetLatestBlockhash serves a cached finalized blockhash for a jittered
// window before asking the node again
func (c *client) GetLatestBlockhash() (hash Blockhash, err error) {
	window := time.Duration(float64(blockhashRefreshInterval) * (0.8 + rand.Float64()))

	c.blockMu.RLock()
	if time.Since(c.lastWrite) < window {
		hash = c.blockhash
	}
	c.blockMu.RUnlock()

	if hash != (Blockhash{}) {
		return hash, nil
	}

	var resp struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getLatestBlockhash", []interface{}{CommitmentFinalized}); err != nil {
		return hash, errors.Wrap(err, "getLatestBlockhash() failed to send request")
	}

	hashBytes, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return hash, errors.Wrap(err, "invalid base58 encoded hash in response")
	}
	if len(hashBytes) != len(hash) {
		return hash, errors.Errorf("invalid blockhash length: %d", len(hashBytes))
	}
	copy(hash[:], hashBytes)

	c.blockMu.Lock()
	c.blockhash = hash
	c.lastWrite = time.Now()
	c.blockMu.Unlock()

	return hash, nil
}

// GetBalance returns the lamport balance of account
func (c *client) GetBalance(account ed25519.PublicKey) (uint64, error) {
	var resp struct {
		Value uint64 `json:"value"`
	}
	if err := c.call(&resp, "getBalance", base58.Encode(account), CommitmentProcessed); err != nil {
		if isInvalidParam(err) {
			return 0, ErrNoBalance
		}
		return 0, errors.Wrap(err, "getBalance() failed to send request")
	}
	return resp.Value, nil
}

// GetTokenAccountBalance returns the balance of a token account in base
// units, along with the slot it was observed at
func (c *client) GetTokenAccountBalance(account ed25519.PublicKey) (uint64, uint64, error) {
	var resp struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Amount string `json:"amount"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getTokenAccountBalance", base58.Encode(account), CommitmentConfirmed); err != nil {
		if isInvalidParam(err) {
			return 0, 0, ErrNoBalance
		}
		return 0, 0, errors.Wrap(err, "getTokenAccountBalance() failed to send request")
	}

	amount, err := strconv.ParseUint(resp.Value.Amount, 10, 64)
	if err != nil {
		return 0, 0, errors.Errorf("invalid amount in response: %q", resp.Value.Amount)
	}
	return amount, resp.Context.Slot, nil
}

func (c *client) SimulateTransaction(txn Transaction, commitment Commitment) (*SimulationResult, error) {
	config := struct {
		Encoding   string `json:"encoding"`
		Commitment string `json:"commitment"`
		SigVerify  bool   `json:"sigVerify"`
	}{
		Encoding:   "base64",
		Commitment: commitment.Commitment,
	}

	var resp struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Err           json.RawMessage `json:"err"`
			Logs          []string        `json:"logs"`
			UnitsConsumed *uint64         `json:"unitsConsumed"`
		} `json:"value"`
	}

	encoded := base64.StdEncoding.EncodeToString(txn.Marshal())
	if err := c.call(&resp, "simulateTransaction", encoded, config); err != nil {
		return nil, errors.Wrap(err, "simulateTransaction() failed to send request")
	}

	result := &SimulationResult{
		Slot: resp.Context.Slot,
		Logs: resp.Value.Logs,
	}
	if resp.Value.UnitsConsumed != nil {
		result.UnitsConsumed = *resp.Value.UnitsConsumed
	}

	txErr, err := decodeTransactionError(resp.Value.Err)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse simulation error")
	}
	result.Err = txErr

	return result, nil
}

// SubmitTransaction sends txn without preflight. A rejection that carries a
// transaction error is returned as a *TransactionError.
func (c *client) SubmitTransaction(txn Transaction, commitment Commitment) (Signature, error) {
	sig := txn.Signatures[0]

	config := struct {
		Encoding            string `json:"encoding"`
		SkipPreflight       bool   `json:"skipPreflight"`
		PreflightCommitment string `json:"preflightCommitment"`
	}{
		Encoding:            "base64",
		SkipPreflight:       true,
		PreflightCommitment: commitment.Commitment,
	}

	var sigStr string
	err := c.call(&sigStr, "sendTransaction", base64.StdEncoding.EncodeToString(txn.Marshal()), config)
	if err == nil {
		return sig, nil
	}

	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return sig, errors.Wrap(err, "sendTransaction() failed to send request")
	}

	txErr, parseErr := ParseRPCError(rpcErr)
	if parseErr != nil || txErr == nil {
		return sig, err
	}

	c.log.WithFields(logrus.Fields{
		"method":    "SubmitTransaction",
		"signature": base58.Encode(sig[:]),
	}).WithError(txErr).Debug("transaction rejected")

	return sig, txErr
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error) {
	var resp struct {
		Value *rpcAccount `json:"value"`
	}
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), base64AccountConfig(commitment)); err != nil {
		return AccountInfo{}, errors.Wrap(err, "getAccountInfo() failed to send request")
	}

	if resp.Value == nil {
		return AccountInfo{}, ErrNoAccountInfo
	}

	info, err := resp.Value.toAccountInfo()
	if err != nil {
		return AccountInfo{}, err
	}
	return *info, nil
}

// GetMultipleAccounts returns account info in the same order as the
// requested keys. Missing accounts are returned as nil entries.
func (c *client) GetMultipleAccounts(accounts []ed25519.PublicKey, commitment Commitment) ([]*AccountInfo, error) {
	result := make([]*AccountInfo, 0, len(accounts))

	for start := 0; start < len(accounts); start += maxMultipleAccounts {
		end := start + maxMultipleAccounts
		if end > len(accounts) {
			end = len(accounts)
		}

		encoded := make([]string, 0, end-start)
		for _, account := range accounts[start:end] {
			encoded = append(encoded, base58.Encode(account))
		}

		var resp struct {
			Value []*rpcAccount `json:"value"`
		}
		if err := c.call(&resp, "getMultipleAccounts", encoded, base64AccountConfig(commitment)); err != nil {
			return nil, errors.Wrap(err, "getMultipleAccounts() failed to send request")
		}
		if len(resp.Value) != end-start {
			return nil, errors.Errorf("unexpected number of accounts in response: %d", len(resp.Value))
		}

		for _, v := range resp.Value {
			if v == nil {
				result = append(result, nil)
				continue
			}

			info, err := v.toAccountInfo()
			if err != nil {
				return nil, err
			}
			result = append(result, info)
		}
	}

	return result, nil
}

// RequestAirdrop asks the cluster faucet for lamports. Only devnet and test
// validators serve airdrops.
func (c *client) RequestAirdrop(account ed25519.PublicKey, lamports uint64, commitment Commitment) (Signature, error) {
	var sigStr string
	if err := c.call(&sigStr, "requestAirdrop", base58.Encode(account), lamports, commitment); err != nil {
		return Signature{}, errors.Wrap(err, "requestAirdrop() failed to send request")
	}

	sigBytes, err := base58.Decode(sigStr)
	if err != nil {
		return Signature{}, errors.Wrap(err, "invalid signature in response")
	}

	var sig Signature
	if len(sigBytes) != len(sig) {
		return Signature{}, errors.Errorf("invalid signature length: %d", len(sigBytes))
	}
	copy(sig[:], sigBytes)

	return sig, nil
}

// GetSignatureStatus polls until sig is visible and has reached commitment,
// for roughly 32 slots.
func (c *client) GetSignatureStatus(sig Signature, commitment Commitment) (*SignatureStatus, error) {
	var status *SignatureStatus
	_, err := retry.Retry(
		func() error {
			var err error
			status, err = c.getSignatureStatus(sig)
			if err != nil {
				return err
			}
			if status == nil {
				return ErrSignatureNotFound
			}
			if !status.Reached(commitment) {
				return errConfirmationsNotReached
			}
			return nil
		},
		retry.RetriableErrors(ErrSignatureNotFound, errConfirmationsNotReached),
		retry.Limit(sigStatusPollLimit),
		retry.Backoff(backoff.Constant(PollRate), PollRate),
	)
	return status, err
}

func (c *client) getSignatureStatus(sig Signature) (*SignatureStatus, error) {
	config := struct {
		SearchTransactionHistory bool `json:"searchTransactionHistory"`
	}{
		SearchTransactionHistory: true,
	}

	var resp struct {
		Value []*struct {
			Slot               uint64          `json:"slot"`
			Confirmations      *int            `json:"confirmations"`
			ConfirmationStatus string          `json:"confirmationStatus"`
			Err                json.RawMessage `json:"err"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getSignatureStatuses", []string{base58.Encode(sig[:])}, config); err != nil {
		return nil, errors.Wrap(err, "getSignatureStatuses() failed to send request")
	}
	if len(resp.Value) == 0 || resp.Value[0] == nil {
		return nil, nil
	}

	v := resp.Value[0]
	txErr, err := decodeTransactionError(v.Err)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse transaction result")
	}

	return &SignatureStatus{
		Slot:               v.Slot,
		Confirmations:      v.Confirmations,
		ConfirmationStatus: v.ConfirmationStatus,
		ErrorResult:        txErr,
	}, nil
}

func decodeTransactionError(raw json.RawMessage) (*TransactionError, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var txError interface{}
	d := json.NewDecoder(bytes.NewBuffer(raw))
	d.UseNumber()
	if err := d.Decode(&txError); err != nil {
		return nil, err
	}

	return ParseTransactionError(txError)
}
