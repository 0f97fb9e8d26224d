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

package implementation_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum/ethereumtest"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum/internal/implementation"
)

const relayAPIKey = "test-api-key"

func Test_GasStationSubmitter(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	chain := ethereumtest.NewChainSetup(t, rng)
	chain.AutoCommit(t)
	relay := ethereumtest.NewRelay(t, chain, relayAPIKey)

	// The account holds no funds; the relay pays for the transaction.
	ks := ethereumtest.NewKeystoreSetup(t, 1, "test-password")
	agent := ethereumtest.NewKeystoreAgent("Petra", ks.Path, ks.Password)
	account, err := agent.Connect(context.Background())
	require.NoError(t, err)

	signTx := func(t *testing.T, client gasless.ChainClient) []byte {
		ctx, cancel := context.WithTimeout(context.Background(), ethereumtest.DefaultTxTimeout)
		defer cancel()
		utx, err := client.BuildTx(ctx, account, newBillboardRequest("sponsored hello"))
		require.NoError(t, err)
		signed, err := agent.SignTx(ctx, utx)
		require.NoError(t, err)
		return signed
	}

	t.Run("happy", func(t *testing.T) {
		client := chain.NewClient(relay.NewSubmitter(t, relayAPIKey))
		assert.True(t, client.Sponsored())
		ctx, cancel := context.WithTimeout(context.Background(), ethereumtest.DefaultTxTimeout)
		defer cancel()

		hash, err := client.Submitter().Submit(ctx, signTx(t, client))
		require.NoError(t, err)
		assert.Contains(t, relay.Sponsored(), hash)

		receipt, err := client.WaitForTransaction(ctx, hash)
		require.NoError(t, err)
		assert.Equal(t, hash, receipt.Hash)
	})
	t.Run("error_rejected_by_relay", func(t *testing.T) {
		client := chain.NewClient(relay.NewSubmitter(t, relayAPIKey))
		relay.RejectWith("sponsorship quota exceeded")
		defer relay.RejectWith("")

		_, err := client.Submitter().Submit(context.Background(), signTx(t, client))
		require.Error(t, err)
		assert.Equal(t, gasless.SubmissionError, gasless.KindOf(err))
		assert.Equal(t, "sponsorship quota exceeded", gasless.ErrorMessage(err))
	})
	t.Run("error_invalid_credential", func(t *testing.T) {
		client := chain.NewClient(relay.NewSubmitter(t, "invalid-key"))

		_, err := client.Submitter().Submit(context.Background(), signTx(t, client))
		require.Error(t, err)
		assert.Equal(t, gasless.SubmissionError, gasless.KindOf(err))
		t.Log(err)
	})
	t.Run("error_rate_limited", func(t *testing.T) {
		s, err := implementation.NewGasStationSubmitter(context.Background(), relay.URL, gasless.Local, relayAPIKey, 0.001)
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, gasless.Local, s.Network())

		// First request uses the burst, even if the relay rejects it.
		_, _ = s.Submit(context.Background(), []byte{0x01})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err = s.Submit(ctx, []byte{0x01})
		require.Error(t, err)
		assert.Equal(t, gasless.SubmissionError, gasless.KindOf(err))
	})
}

func Test_NewGasStationSubmitter_Errors(t *testing.T) {
	t.Run("error_missing_relay_url", func(t *testing.T) {
		_, err := implementation.NewGasStationSubmitter(context.Background(), "", gasless.Devnet, relayAPIKey, 0)
		assert.Error(t, err)
	})
	t.Run("error_missing_credential", func(t *testing.T) {
		_, err := implementation.NewGasStationSubmitter(context.Background(), "http://localhost:8545",
			gasless.Devnet, "", 0)
		assert.Error(t, err)
	})
	t.Run("error_unsupported_scheme", func(t *testing.T) {
		_, err := implementation.NewGasStationSubmitter(context.Background(), "ftp://localhost",
			gasless.Devnet, relayAPIKey, 0)
		assert.Error(t, err)
	})
}

func Test_DirectSubmitter_InvalidTx(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	chain := ethereumtest.NewChainSetup(t, rng)
	s := implementation.NewDirectSubmitter(chain.Client)

	_, err := s.Submit(context.Background(), []byte{0x01, 0x02})
	require.Error(t, err)
	assert.Equal(t, gasless.SubmissionError, gasless.KindOf(err))
}
