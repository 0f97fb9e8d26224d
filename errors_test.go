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

package gasless_test

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/direct-state-transfer/gasless"
)

type structuredErr struct{ msg string }

func (e structuredErr) Error() string   { return "structured: " + e.msg }
func (e structuredErr) Message() string { return e.msg }

type panickyStringer struct{}

func (panickyStringer) String() string { panic("boom") }

func Test_ErrorMessage(t *testing.T) {
	var nilTxErr *gasless.TxError

	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"tx_error", gasless.NewTxError(gasless.AgentError, "user rejected"), "user rejected"},
		{"wrapped_tx_error", errors.WithMessage(gasless.NewTxError(gasless.SubmissionError, "relay down"), "ctx"),
			"relay down"},
		{"structured_message", structuredErr{msg: "insufficient quota"}, "insufficient quota"},
		{"plain_error", errors.New("plain failure"), "plain failure"},
		{"string", "just a string", "just a string"},
		{"stringer", gasless.Confirmed, "confirmed"},
		{"map", map[string]int{"code": 4001}, `{"code":4001}`},
		{"number", 42, "42"},
		{"unencodable", make(chan int), ""},
		{"nil", nil, "unknown error"},
		{"nil_tx_error", error(nilTxErr), "unknown error"},
		{"panicking_stringer", panickyStringer{}, "unknown error"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var got string
			assert.NotPanics(t, func() { got = gasless.ErrorMessage(tc.input) })
			if tc.want == "" {
				assert.NotEmpty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_KindOf(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		err := gasless.WrapTxError(gasless.ConfirmationError, errors.New("reverted"))
		assert.Equal(t, gasless.ConfirmationError, gasless.KindOf(errors.WithMessage(err, "waiting")))
	})
	t.Run("not_normalized", func(t *testing.T) {
		assert.Equal(t, gasless.InternalError, gasless.KindOf(errors.New("oops")))
	})
	t.Run("wrap_nil", func(t *testing.T) {
		assert.NoError(t, gasless.WrapTxError(gasless.AgentError, nil))
	})
}

func Test_WrapTxError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := gasless.WrapTxError(gasless.AgentError, cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "cause", err.Error())
}

func Test_ErrorKind_String(t *testing.T) {
	assert.Equal(t, "validation", gasless.ValidationError.String())
	assert.Equal(t, "agent", gasless.AgentError.String())
	assert.Equal(t, "submission", gasless.SubmissionError.String())
	assert.Equal(t, "confirmation", gasless.ConfirmationError.String())
	assert.Equal(t, "internal", gasless.InternalError.String())
	assert.Equal(t, "confirmation", fmt.Sprint(gasless.ConfirmationError))
}
