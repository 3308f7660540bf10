package solana

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ybbus/jsonrpc"
)

// TransactionErrorKey is the name of a transaction level error as reported
// by the RPC "err" field.
type TransactionErrorKey string

const (
	TransactionErrorAccountInUse                   TransactionErrorKey = "AccountInUse"
	TransactionErrorAccountNotFound                TransactionErrorKey = "AccountNotFound"
	TransactionErrorBlockhashNotFound              TransactionErrorKey = "BlockhashNotFound"
	TransactionErrorDuplicateSignature             TransactionErrorKey = "DuplicateSignature"
	TransactionErrorInstructionError               TransactionErrorKey = "InstructionError"
	TransactionErrorInsufficientFundsForFee        TransactionErrorKey = "InsufficientFundsForFee"
	TransactionErrorAddressLookupTableNotFound     TransactionErrorKey = "AddressLookupTableNotFound"
	TransactionErrorInvalidAddressLookupTableIndex TransactionErrorKey = "InvalidAddressLookupTableIndex"
)

// InstructionErrorKey is the name of an instruction level error. Program
// specific failures are reported as InstructionErrorCustom with a code.
type InstructionErrorKey string

const (
	InstructionErrorCustom               InstructionErrorKey = "Custom"
	InstructionErrorInvalidArgument      InstructionErrorKey = "InvalidArgument"
	InstructionErrorInvalidAccountData   InstructionErrorKey = "InvalidAccountData"
	InstructionErrorInsufficientFunds    InstructionErrorKey = "InsufficientFunds"
	InstructionErrorIncorrectProgramID   InstructionErrorKey = "IncorrectProgramId"
	InstructionErrorMissingAccount       InstructionErrorKey = "MissingAccount"
	InstructionErrorNotEnoughAccountKeys InstructionErrorKey = "NotEnoughAccountKeys"
)

// CustomError is the numerical error returned by a non-system program.
type CustomError int

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: 0x%x", int(c))
}

// InstructionError is the failure of the instruction at Index.
type InstructionError struct {
	Index int
	Err   error
}

func (i InstructionError) Error() string {
	return fmt.Sprintf("Error processing Instruction %d: %v", i.Index, i.Err)
}

func (i InstructionError) Unwrap() error {
	return i.Err
}

func (i InstructionError) ErrorKey() InstructionErrorKey {
	switch i.Err.(type) {
	case nil:
		return ""
	case CustomError:
		return InstructionErrorCustom
	default:
		return InstructionErrorKey(i.Err.Error())
	}
}

func (i InstructionError) CustomError() *CustomError {
	if ce, ok := i.Err.(CustomError); ok {
		return &ce
	}
	return nil
}

// rawValue is the JSON shape the RPC uses for the error:
// [index, "Key"] or [index, {"Custom": code}]
func (i InstructionError) rawValue() []interface{} {
	if ce, ok := i.Err.(CustomError); ok {
		return []interface{}{float64(i.Index), map[string]interface{}{string(InstructionErrorCustom): float64(ce)}}
	}
	return []interface{}{float64(i.Index), i.Err.Error()}
}

func (i InstructionError) JSONString() string {
	b, _ := json.Marshal(i.rawValue())
	return string(b)
}

func parseInstructionError(v interface{}) (InstructionError, error) {
	var res InstructionError

	tuple, ok := v.([]interface{})
	if !ok || len(tuple) != 2 {
		return res, errors.Errorf("unexpected InstructionError tuple: %v", v)
	}

	index, err := parseJSONNumber(tuple[0])
	if err != nil {
		return res, err
	}
	res.Index = index

	switch t := tuple[1].(type) {
	case string:
		res.Err = errors.New(t)
	case map[string]interface{}:
		key, value, err := singleEntry(t)
		if err != nil {
			res.Err = errors.New("unhandled InstructionError")
			return res, err
		}
		if key != string(InstructionErrorCustom) {
			res.Err = errors.New(key)
			break
		}

		code, err := parseJSONNumber(value)
		if err != nil {
			res.Err = errors.New("unhandled CustomError")
			break
		}
		res.Err = CustomError(code)
	default:
		res.Err = errors.New("unhandled InstructionError")
	}

	return res, nil
}

// TransactionError is a failed transaction as reported by simulation,
// submission or signature status.
type TransactionError struct {
	key              TransactionErrorKey
	instructionError *InstructionError
	raw              interface{}
}

// ParseRPCError extracts the transaction error from the data of a preflight
// failure. A nil result means err carried no transaction error.
func ParseRPCError(err *jsonrpc.RPCError) (*TransactionError, error) {
	if err == nil {
		return nil, nil
	}

	data, ok := err.Data.(map[string]interface{})
	if !ok {
		return nil, errors.New("expected map type")
	}

	if txErr, ok := data["err"]; ok && txErr != nil {
		return ParseTransactionError(txErr)
	}
	return nil, nil
}

// ParseTransactionError parses the decoded "err" field of RPC responses.
func ParseTransactionError(raw interface{}) (*TransactionError, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return &TransactionError{key: TransactionErrorKey(t), raw: raw}, nil
	case map[string]interface{}:
		key, value, err := singleEntry(t)
		if err != nil {
			return &TransactionError{key: "unhandled transaction error", raw: raw}, err
		}
		if key != string(TransactionErrorInstructionError) {
			return &TransactionError{key: TransactionErrorKey(key), raw: raw}, nil
		}

		instructionErr, err := parseInstructionError(value)
		if err != nil {
			return &TransactionError{key: "unhandled transaction error", raw: raw}, errors.Wrap(err, "failed to parse instruction error")
		}
		return &TransactionError{
			key:              TransactionErrorInstructionError,
			instructionError: &instructionErr,
			raw:              raw,
		}, nil
	default:
		return nil, errors.Errorf("unhandled error type %T", raw)
	}
}

func NewTransactionError(key TransactionErrorKey) *TransactionError {
	return &TransactionError{key: key, raw: string(key)}
}

func TransactionErrorFromInstructionError(err *InstructionError) (*TransactionError, error) {
	if err == nil || err.Err == nil {
		return nil, errors.New("instruction error is required")
	}

	return &TransactionError{
		key:              TransactionErrorInstructionError,
		instructionError: err,
		raw: map[string]interface{}{
			string(TransactionErrorInstructionError): err.rawValue(),
		},
	}, nil
}

func (t TransactionError) Error() string {
	if t.instructionError != nil {
		return t.instructionError.Error()
	}
	return string(t.key)
}

func (t TransactionError) Unwrap() error {
	if t.instructionError != nil {
		return *t.instructionError
	}
	return nil
}

func (t TransactionError) ErrorKey() TransactionErrorKey {
	return t.key
}

func (t TransactionError) InstructionError() *InstructionError {
	return t.instructionError
}

// CustomError returns the program specific error code, if the transaction
// failed with one
func (t TransactionError) CustomError() *CustomError {
	if t.instructionError == nil {
		return nil
	}
	return t.instructionError.CustomError()
}

func (t TransactionError) JSONString() (string, error) {
	b, err := json.Marshal(t.raw)
	return string(b), err
}

func singleEntry(m map[string]interface{}) (string, interface{}, error) {
	if len(m) != 1 {
		return "", nil, errors.Errorf("expected a single entry, got %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, nil
}

func parseJSONNumber(v interface{}) (int, error) {
	switch t := v.(type) {
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, errors.Errorf("non int64 value: %v", v)
		}
		return int(n), nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, errors.Errorf("non numeric value: %v", v)
		}
		return int(n), nil
	case float64:
		return int(t), nil
	default:
		return 0, errors.Errorf("non numeric value: %v", v)
	}
}
