package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureStatus(t *testing.T) {
	zero, one := 0, 1

	testCases := []struct {
		s         SignatureStatus
		confirmed bool
		finalized bool
	}{
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "random",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusProcessed,
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &one,
				ConfirmationStatus: "",
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusConfirmed,
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusFinalized,
			},
			confirmed: true,
			finalized: true,
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.confirmed, tc.s.Confirmed())
		assert.Equal(t, tc.finalized, tc.s.Finalized())
	}
}

type rpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func newTestRPCServer(t *testing.T, handler func(req rpcRequest) (interface{}, interface{})) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handler(req)

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      0,
		}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestClient_SimulateTransaction(t *testing.T) {
	server := newTestRPCServer(t, func(req rpcRequest) (interface{}, interface{}) {
		assert.Equal(t, "simulateTransaction", req.Method)
		require.Len(t, req.Params, 2)

		var config map[string]interface{}
		require.NoError(t, json.Unmarshal(req.Params[1], &config))
		assert.Equal(t, "base64", config["encoding"])

		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 42},
			"value": map[string]interface{}{
				"err":           map[string]interface{}{"InstructionError": []interface{}{2, map[string]interface{}{"Custom": 6002}}},
				"logs":          []string{"Program log: failed"},
				"unitsConsumed": 1234,
			},
		}, nil
	})
	defer server.Close()

	keys := generateKeys(t, 2)
	txn := NewLegacyTransaction(public(keys[0]), NewInstruction(public(keys[1]), []byte{1}))

	result, err := New(server.URL).SimulateTransaction(txn, CommitmentConfirmed)
	require.NoError(t, err)

	assert.EqualValues(t, 42, result.Slot)
	assert.EqualValues(t, 1234, result.UnitsConsumed)
	assert.Equal(t, []string{"Program log: failed"}, result.Logs)
	require.NotNil(t, result.Err)
	require.NotNil(t, result.Err.CustomError())
	assert.Equal(t, CustomError(6002), *result.Err.CustomError())
}

func TestClient_SubmitTransaction_InstructionError(t *testing.T) {
	server := newTestRPCServer(t, func(req rpcRequest) (interface{}, interface{}) {
		assert.Equal(t, "sendTransaction", req.Method)
		return nil, map[string]interface{}{
			"code":    -32002,
			"message": "Transaction simulation failed",
			"data": map[string]interface{}{
				"err": map[string]interface{}{"InstructionError": []interface{}{0, map[string]interface{}{"Custom": 6000}}},
			},
		}
	})
	defer server.Close()

	keys := generateKeys(t, 2)
	txn := NewLegacyTransaction(public(keys[0]), NewInstruction(public(keys[1]), []byte{1}))
	require.NoError(t, txn.Sign(keys[0]))

	sig, err := New(server.URL).SubmitTransaction(txn, CommitmentConfirmed)
	require.Error(t, err)
	assert.Equal(t, txn.Signatures[0], sig)

	txErr, ok := err.(*TransactionError)
	require.True(t, ok)
	require.NotNil(t, txErr.CustomError())
	assert.Equal(t, CustomError(6000), *txErr.CustomError())
}

func TestClient_GetMultipleAccounts(t *testing.T) {
	keys := generateKeys(t, 3)
	owner := public(keys[2])

	server := newTestRPCServer(t, func(req rpcRequest) (interface{}, interface{}) {
		assert.Equal(t, "getMultipleAccounts", req.Method)

		var requested []string
		require.NoError(t, json.Unmarshal(req.Params[0], &requested))
		assert.Len(t, requested, 2)

		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 1},
			"value": []interface{}{
				map[string]interface{}{
					"lamports":   10,
					"owner":      base58.Encode(owner),
					"data":       []string{base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), "base64"},
					"executable": false,
				},
				nil,
			},
		}, nil
	})
	defer server.Close()

	accounts, err := New(server.URL).GetMultipleAccounts([]ed25519.PublicKey{public(keys[0]), public(keys[1])}, CommitmentConfirmed)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	require.NotNil(t, accounts[0])
	assert.Equal(t, []byte{1, 2, 3}, accounts[0].Data)
	assert.Equal(t, owner, accounts[0].Owner)
	assert.EqualValues(t, 10, accounts[0].Lamports)
	assert.Nil(t, accounts[1])
}

func TestClient_GetAccountInfo_NotFound(t *testing.T) {
	server := newTestRPCServer(t, func(req rpcRequest) (interface{}, interface{}) {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 1},
			"value":   nil,
		}, nil
	})
	defer server.Close()

	keys := generateKeys(t, 1)
	_, err := New(server.URL).GetAccountInfo(public(keys[0]), CommitmentConfirmed)
	assert.Equal(t, ErrNoAccountInfo, err)
}

func TestClient_GetLatestBlockhash_Cached(t *testing.T) {
	var expected Blockhash
	expected[0] = 7

	var calls int
	server := newTestRPCServer(t, func(req rpcRequest) (interface{}, interface{}) {
		calls++
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 1},
			"value": map[string]interface{}{
				"blockhash":            base58.Encode(expected[:]),
				"lastValidBlockHeight": 100,
			},
		}, nil
	})
	defer server.Close()

	c := New(server.URL)
	for i := 0; i < 3; i++ {
		actual, err := c.GetLatestBlockhash()
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
	assert.Equal(t, 1, calls)
}

func TestSignatureStatus_Reached(t *testing.T) {
	zero := 0

	processed := SignatureStatus{Confirmations: &zero, ConfirmationStatus: confirmationStatusProcessed}
	assert.True(t, processed.Reached(CommitmentProcessed))
	assert.False(t, processed.Reached(CommitmentConfirmed))
	assert.False(t, processed.Reached(CommitmentFinalized))

	confirmed := SignatureStatus{Confirmations: &zero, ConfirmationStatus: confirmationStatusConfirmed}
	assert.True(t, confirmed.Reached(CommitmentConfirmed))
	assert.False(t, confirmed.Reached(CommitmentFinalized))

	finalized := SignatureStatus{ConfirmationStatus: confirmationStatusFinalized}
	assert.True(t, finalized.Reached(CommitmentFinalized))

	failed := SignatureStatus{Confirmations: &zero, ErrorResult: NewTransactionError(TransactionErrorAccountInUse)}
	assert.True(t, failed.Reached(CommitmentFinalized))
}

func TestClient_Balances(t *testing.T) {
	keys := generateKeys(t, 3)
	funded, tokenAccount, missing := public(keys[0]), public(keys[1]), public(keys[2])

	server := newTestRPCServer(t, func(req rpcRequest) (interface{}, interface{}) {
		var account string
		require.NoError(t, json.Unmarshal(req.Params[0], &account))

		if account == base58.Encode(missing) {
			return nil, map[string]interface{}{"code": invalidParamCode, "message": "could not find account"}
		}

		switch req.Method {
		case "getBalance":
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 3},
				"value":   2_000_000_000,
			}, nil
		case "getTokenAccountBalance":
			return map[string]interface{}{
				"context": map[string]interface{}{"slot": 4},
				"value": map[string]interface{}{
					"amount":   "1500000",
					"decimals": 6,
				},
			}, nil
		}
		return nil, map[string]interface{}{"code": -32601, "message": "method not found"}
	})
	defer server.Close()

	c := New(server.URL)

	lamports, err := c.GetBalance(funded)
	require.NoError(t, err)
	assert.EqualValues(t, 2_000_000_000, lamports)

	_, err = c.GetBalance(missing)
	assert.Equal(t, ErrNoBalance, err)

	amount, slot, err := c.GetTokenAccountBalance(tokenAccount)
	require.NoError(t, err)
	assert.EqualValues(t, 1_500_000, amount)
	assert.EqualValues(t, 4, slot)

	_, _, err = c.GetTokenAccountBalance(missing)
	assert.Equal(t, ErrNoBalance, err)
}

func TestClient_RequestAirdrop(t *testing.T) {
	var expected Signature
	expected[0] = 9

	server := newTestRPCServer(t, func(req rpcRequest) (interface{}, interface{}) {
		assert.Equal(t, "requestAirdrop", req.Method)

		var lamports uint64
		require.NoError(t, json.Unmarshal(req.Params[1], &lamports))
		if lamports == 0 {
			return base58.Encode([]byte{1, 2, 3}), nil
		}
		return base58.Encode(expected[:]), nil
	})
	defer server.Close()

	keys := generateKeys(t, 1)
	c := New(server.URL)

	sig, err := c.RequestAirdrop(public(keys[0]), 1_000, CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, expected, sig)

	_, err = c.RequestAirdrop(public(keys[0]), 0, CommitmentConfirmed)
	assert.Error(t, err)
}

func TestCommitmentFromString(t *testing.T) {
	for _, c := range []Commitment{CommitmentProcessed, CommitmentConfirmed, CommitmentFinalized} {
		actual, err := CommitmentFromString(c.Commitment)
		require.NoError(t, err)
		assert.Equal(t, c, actual)
	}

	_, err := CommitmentFromString("max")
	assert.Error(t, err)
}
