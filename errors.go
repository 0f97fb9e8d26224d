// Copyright (c) 2026 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/gasless
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gasless

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind represents the category of a failure in the transaction workflow.
// All kinds are recoverable by retrying; none of them is fatal to the node.
type ErrorKind int

const (
	// ValidationError is caused by invalid input (no connected wallet, empty
	// message). It is detected locally and never reaches network code.
	ValidationError ErrorKind = iota

	// AgentError is caused by the signing agent, when connecting to it or when
	// signing was rejected by the user or the agent.
	AgentError

	// SubmissionError is caused by the relay or the network node rejecting
	// the signed transaction.
	SubmissionError

	// ConfirmationError is caused by the transaction failing on-chain or the
	// confirmation wait timing out.
	ConfirmationError

	// InternalError is caused due to unintended behavior in the node software.
	InternalError
)

// String implements the stringer interface for ErrorKind.
func (k ErrorKind) String() string {
	return [...]string{
		"validation",
		"agent",
		"submission",
		"confirmation",
		"internal",
	}[k]
}

// MarshalText encodes the kind as its string representation.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Messages shown to the user.
const (
	MsgWalletNotConnected = "wallet not connected"
	MsgEmptyMessage       = "empty message"
	MsgConnectSuperseded  = "connection request was superseded"

	unknownErrorMessage = "unknown error"
)

// Sentinel errors.
var (
	ErrSubmitInProgress = errors.New("a transaction is already in flight")
	ErrUnknownAgent     = errors.New("no signing agent with the specified name")
	ErrAgentNotReady    = errors.New("signing agent is not ready")
)

// TxError is a failure in the transaction workflow, normalized into a kind and a
// display message. The underlying error, if any, is retained for inspection.
type TxError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *TxError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TxError) Unwrap() error {
	return e.Err
}

// NewTxError returns an error of the given kind with the message.
func NewTxError(kind ErrorKind, message string) error {
	return errors.WithStack(&TxError{Kind: kind, Message: message})
}

// WrapTxError converts err into an error of the given kind, using the normalized
// message of err as display message. It returns nil if err is nil.
func WrapTxError(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&TxError{Kind: kind, Message: ErrorMessage(err), Err: err})
}

// KindOf returns the kind of the error. Errors that were not normalized into a
// TxError are reported as InternalError.
func KindOf(err error) ErrorKind {
	var txErr *TxError
	if errors.As(err, &txErr) {
		return txErr.Kind
	}
	return InternalError
}

// messager is implemented by structured errors that carry a message field.
type messager interface {
	Message() string
}

// ErrorMessage coerces any failure value into a single display string. Structured
// messages are preferred; otherwise the value is stringified directly.
// It never panics.
func ErrorMessage(v interface{}) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = unknownErrorMessage
		}
		if msg == "" {
			msg = unknownErrorMessage
		}
	}()

	switch val := v.(type) {
	case nil:
		return unknownErrorMessage
	case string:
		return val
	case error:
		var txErr *TxError
		if errors.As(val, &txErr) && txErr != nil {
			return txErr.Message
		}
		var m messager
		if errors.As(val, &m) {
			if s := m.Message(); s != "" {
				return s
			}
		}
		return val.Error()
	case messager:
		return val.Message()
	case fmt.Stringer:
		return val.String()
	}

	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
