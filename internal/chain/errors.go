package chain

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrTxReverted is returned when a mined transaction has status 0.
var ErrTxReverted = errors.New("transaction reverted")

var revertSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

// CallError is a failed eth_call or gas estimation with the revert decoded
// against the target ABI when possible.
type CallError struct {
	Method string
	// Reason is the Error(string) revert message.
	Reason string
	// ErrorName is the matched custom error, with ErrorArgs its decoded inputs.
	ErrorName string
	ErrorArgs []interface{}
	Data      []byte
	Err       error
}

func (e *CallError) Error() string {
	switch {
	case e.ErrorName != "":
		return fmt.Sprintf("%s reverted: %s", e.Method, e.ErrorName)
	case e.Reason != "":
		return fmt.Sprintf("%s reverted: %s", e.Method, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Method, e.Err)
	default:
		return fmt.Sprintf("%s failed", e.Method)
	}
}

func (e *CallError) Unwrap() error { return e.Err }

// NewCallError wraps err and decodes any revert data it carries.
func NewCallError(parsed abi.ABI, method string, err error) *CallError {
	callErr := &CallError{Method: method, Err: err}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		callErr.Data = revertData(dataErr.ErrorData())
	}
	if len(callErr.Data) >= 4 {
		decodeRevert(parsed, callErr)
	} else if callErr.Err != nil {
		msg := callErr.Err.Error()
		if i := strings.Index(msg, "execution reverted: "); i >= 0 {
			callErr.Reason = strings.TrimSpace(msg[i+len("execution reverted: "):])
		}
	}
	return callErr
}

func revertData(raw interface{}) []byte {
	switch v := raw.(type) {
	case string:
		data, err := hexutil.Decode(v)
		if err != nil {
			return nil
		}
		return data
	case []byte:
		return v
	default:
		return nil
	}
}

func decodeRevert(parsed abi.ABI, callErr *CallError) {
	if bytes.Equal(callErr.Data[:4], revertSelector) {
		if reason, err := abi.UnpackRevert(callErr.Data); err == nil {
			callErr.Reason = reason
		}
		return
	}
	for name, def := range parsed.Errors {
		if !bytes.Equal(def.ID[:4], callErr.Data[:4]) {
			continue
		}
		callErr.ErrorName = name
		if args, err := def.Inputs.Unpack(callErr.Data[4:]); err == nil {
			callErr.ErrorArgs = args
		}
		return
	}
}
