package solana

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc"
)

func decodeJSON(t *testing.T, s string) interface{} {
	d := json.NewDecoder(bytes.NewBufferString(s))
	d.UseNumber()

	var raw interface{}
	require.NoError(t, d.Decode(&raw))
	return raw
}

func TestParseTransactionError(t *testing.T) {
	for _, tc := range []struct {
		raw            string
		key            TransactionErrorKey
		index          int
		instructionKey InstructionErrorKey
		custom         *CustomError
	}{
		{`{"InstructionError":[2,{"Custom":6001}]}`, TransactionErrorInstructionError, 2, InstructionErrorCustom, customErrorPtr(6001)},
		{`{"InstructionError":[0,"InvalidArgument"]}`, TransactionErrorInstructionError, 0, InstructionErrorInvalidArgument, nil},
		{`{"InstructionError":["3","MissingAccount"]}`, TransactionErrorInstructionError, 3, InstructionErrorMissingAccount, nil},
		{`"BlockhashNotFound"`, TransactionErrorBlockhashNotFound, 0, "", nil},
		{`{"InsufficientFundsForRent":{"account_index":1}}`, "InsufficientFundsForRent", 0, "", nil},
	} {
		e, err := ParseTransactionError(decodeJSON(t, tc.raw))
		require.NoError(t, err, tc.raw)

		assert.Equal(t, tc.key, e.ErrorKey(), tc.raw)
		assert.Equal(t, tc.custom, e.CustomError(), tc.raw)

		if tc.instructionKey == "" {
			assert.Nil(t, e.InstructionError(), tc.raw)
			continue
		}
		require.NotNil(t, e.InstructionError(), tc.raw)
		assert.Equal(t, tc.index, e.InstructionError().Index, tc.raw)
		assert.Equal(t, tc.instructionKey, e.InstructionError().ErrorKey(), tc.raw)
	}
}

func TestParseTransactionError_Invalid(t *testing.T) {
	e, err := ParseTransactionError(nil)
	assert.NoError(t, err)
	assert.Nil(t, e)

	_, err = ParseTransactionError(decodeJSON(t, `{"a":1,"b":2}`))
	assert.Error(t, err)

	_, err = ParseTransactionError(decodeJSON(t, `{"InstructionError":[0]}`))
	assert.Error(t, err)

	_, err = ParseTransactionError(decodeJSON(t, `42`))
	assert.Error(t, err)
}

func TestParseRPCError(t *testing.T) {
	e, err := ParseRPCError(&jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed",
		Data: map[string]interface{}{
			"err":  decodeJSON(t, `{"InstructionError":[1,{"Custom":6000}]}`),
			"logs": []interface{}{"Program log: AnchorError"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, CustomError(6000), *e.CustomError())

	e, err = ParseRPCError(&jsonrpc.RPCError{Data: map[string]interface{}{"err": nil}})
	assert.NoError(t, err)
	assert.Nil(t, e)

	_, err = ParseRPCError(&jsonrpc.RPCError{Data: "nope"})
	assert.Error(t, err)
}

func TestTransactionError_JSONRoundTrip(t *testing.T) {
	for _, e := range []*TransactionError{
		NewTransactionError(TransactionErrorDuplicateSignature),
		mustInstructionTxError(t, &InstructionError{Index: 0, Err: errors.New(string(InstructionErrorInvalidArgument))}),
		mustInstructionTxError(t, &InstructionError{Index: 2, Err: CustomError(3)}),
	} {
		encoded, err := e.JSONString()
		require.NoError(t, err)

		parsed, err := ParseTransactionError(decodeJSON(t, encoded))
		require.NoError(t, err)
		assert.Equal(t, e.Error(), parsed.Error())
		assert.Equal(t, e.ErrorKey(), parsed.ErrorKey())
	}

	_, err := TransactionErrorFromInstructionError(&InstructionError{Index: 1})
	assert.Error(t, err)
}

func TestTransactionError_Unwrap(t *testing.T) {
	txErr := mustInstructionTxError(t, &InstructionError{Index: 1, Err: CustomError(6001)})

	var wrapped error = errors.Wrap(txErr, "submit failed")

	var custom CustomError
	require.True(t, errors.As(wrapped, &custom))
	assert.Equal(t, CustomError(6001), custom)
	assert.Equal(t, "custom program error: 0x1771", custom.Error())

	var ixnErr InstructionError
	require.True(t, errors.As(wrapped, &ixnErr))
	assert.Equal(t, 1, ixnErr.Index)
	assert.Equal(t, `[1,{"Custom":6001}]`, ixnErr.JSONString())

	assert.Nil(t, NewTransactionError(TransactionErrorAccountInUse).CustomError())
}

func TestParseJSONNumber(t *testing.T) {
	for _, v := range []interface{}{"7", 7.0, json.Number("7")} {
		n, err := parseJSONNumber(v)
		require.NoError(t, err)
		assert.Equal(t, 7, n)
	}

	_, err := parseJSONNumber(true)
	assert.Error(t, err)
}

func customErrorPtr(code int) *CustomError {
	ce := CustomError(code)
	return &ce
}

func mustInstructionTxError(t *testing.T, ixnErr *InstructionError) *TransactionError {
	e, err := TransactionErrorFromInstructionError(ixnErr)
	require.NoError(t, err)
	return e
}
