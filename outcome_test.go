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
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless"
)

func Test_ExplorerTxURL(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		got := gasless.ExplorerTxURL("https://explorer.local/", "0xabc", gasless.Testnet)
		assert.Equal(t, "https://explorer.local/txn/0xabc?network=testnet", got)
	})
	t.Run("no_explorer", func(t *testing.T) {
		assert.Empty(t, gasless.ExplorerTxURL("", "0xabc", gasless.Testnet))
	})
}

func Test_Outcome(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		o := gasless.PendingOutcome()
		assert.False(t, o.IsTerminal())
	})
	t.Run("confirmed", func(t *testing.T) {
		o := gasless.ConfirmedOutcome("0x01", "https://explorer.local/txn/0x01?network=local")
		assert.True(t, o.IsTerminal())
		assert.Empty(t, o.Message)
	})
	t.Run("failed", func(t *testing.T) {
		o := gasless.FailedOutcome(gasless.NewTxError(gasless.ValidationError, gasless.MsgEmptyMessage))
		assert.True(t, o.IsTerminal())
		assert.Equal(t, gasless.MsgEmptyMessage, o.Message)
		assert.Equal(t, "validation", o.ErrorKind)
	})
	t.Run("failed_unknown_kind", func(t *testing.T) {
		o := gasless.FailedOutcome(errors.New("boom"))
		assert.Equal(t, "internal", o.ErrorKind)
	})
}

func Test_Outcome_JSON(t *testing.T) {
	b, err := json.Marshal(gasless.ConfirmedOutcome("0x01", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"confirmed","hash":"0x01"}`, string(b))

	var o gasless.Outcome
	require.NoError(t, json.Unmarshal(b, &o))
	assert.Equal(t, gasless.Confirmed, o.Kind)
}

func Test_ParseNetwork(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		n, err := gasless.ParseNetwork(" TestNet ")
		require.NoError(t, err)
		assert.Equal(t, gasless.Testnet, n)
	})
	t.Run("error_unknown", func(t *testing.T) {
		_, err := gasless.ParseNetwork("moonnet")
		assert.Error(t, err)
	})
}

func Test_Session(t *testing.T) {
	s := gasless.Session{Status: gasless.Connected, Account: "0xABC"}
	assert.True(t, s.IsConnected())
	assert.False(t, gasless.Session{}.IsConnected())

	b, err := json.Marshal(s)
	require.NoError(t, err)
	var got gasless.Session
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, gasless.Connected, got.Status)
}

func Test_NewTxRequest_CopiesArgs(t *testing.T) {
	args := []interface{}{"a", "b"}
	req := gasless.NewTxRequest("0x1::billboard::send_message", args...)
	args[0] = "changed"
	assert.Equal(t, "a", req.Args[0])
}
