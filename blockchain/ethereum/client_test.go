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

package ethereum_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum"
)

// Dialing over http does not connect, so the client can be built without a node.
const unreachableURL = "http://127.0.0.1:1"

func hasEntry(hook *logtest.Hook, level logrus.Level, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

func Test_BuildClient(t *testing.T) {
	ctx := context.Background()

	t.Run("happy_unsponsored", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		client, err := ethereum.BuildClient(ctx, ethereum.ChainConfig{
			Network: gasless.Devnet,
			URL:     unreachableURL,
		}, logger)
		require.NoError(t, err)
		defer client.Close()

		assert.False(t, client.Sponsored())
		assert.Equal(t, gasless.Devnet, client.Network())
		assert.True(t, hasEntry(hook, logrus.WarnLevel,
			"Gas station API key not found. Transactions will not be sponsored."))
		assert.True(t, hasEntry(hook, logrus.InfoLevel,
			"API key not found. Requests to the chain node use the anonymous quota."))
	})
	t.Run("happy_sponsored", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		client, err := ethereum.BuildClient(ctx, ethereum.ChainConfig{
			Network:     gasless.Testnet,
			URL:         unreachableURL,
			APIKey:      "node-key",
			Sponsorship: gasless.SponsorshipConfig{Credential: "gas-station-key"},
			RelayURL:    unreachableURL,
		}, logger)
		require.NoError(t, err)
		defer client.Close()

		assert.True(t, client.Sponsored())
		assert.Equal(t, gasless.Testnet, client.Network())
		assert.Empty(t, hook.AllEntries())
	})
	t.Run("independent_clients", func(t *testing.T) {
		logger, _ := logtest.NewNullLogger()
		cfg := ethereum.ChainConfig{Network: gasless.Local, URL: unreachableURL}
		c1, err := ethereum.BuildClient(ctx, cfg, logger)
		require.NoError(t, err)
		c2, err := ethereum.BuildClient(ctx, cfg, logger)
		require.NoError(t, err)
		assert.NotSame(t, c1, c2)
		c1.Close()
		c2.Close()
	})
	t.Run("error_missing_url", func(t *testing.T) {
		logger, _ := logtest.NewNullLogger()
		_, err := ethereum.BuildClient(ctx, ethereum.ChainConfig{Network: gasless.Local}, logger)
		assert.Error(t, err)
	})
	t.Run("error_sponsored_without_relay", func(t *testing.T) {
		logger, _ := logtest.NewNullLogger()
		_, err := ethereum.BuildClient(ctx, ethereum.ChainConfig{
			Network:     gasless.Devnet,
			URL:         unreachableURL,
			Sponsorship: gasless.SponsorshipConfig{Credential: "gas-station-key"},
		}, logger)
		assert.Error(t, err)
	})
}

func Test_NewAgent(t *testing.T) {
	t.Run("happy_keystore", func(t *testing.T) {
		agent, err := ethereum.NewAgent(gasless.AgentConfig{
			Name: "Petra", Type: ethereum.KeystoreAgentType, KeystorePath: t.TempDir(), Password: "pwd",
		})
		require.NoError(t, err)
		assert.Equal(t, "Petra", agent.Name())
		assert.False(t, agent.Ready())
	})
	t.Run("happy_mnemonic", func(t *testing.T) {
		agent, err := ethereum.NewAgent(gasless.AgentConfig{
			Name:     "Solflare",
			Type:     ethereum.MnemonicAgentType,
			Mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		})
		require.NoError(t, err)
		assert.Equal(t, "Solflare", agent.Name())
		assert.True(t, agent.Ready())
	})
	t.Run("error_missing_name", func(t *testing.T) {
		_, err := ethereum.NewAgent(gasless.AgentConfig{Type: ethereum.MnemonicAgentType})
		assert.Error(t, err)
	})
	t.Run("error_unsupported_type", func(t *testing.T) {
		_, err := ethereum.NewAgent(gasless.AgentConfig{Name: "Nightly", Type: "ledger"})
		assert.Error(t, err)
	})
}

func Test_ParseAddr(t *testing.T) {
	addr, err := ethereum.ParseAddr("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", addr)

	_, err = ethereum.ParseAddr("0xabc")
	assert.Error(t, err)
}

func Test_ValidateFunctionID(t *testing.T) {
	assert.NoError(t, ethereum.ValidateFunctionID("0x24051bca580d28e80a340a17f87c99def0cc0bde::billboard::send_message"))
	assert.Error(t, ethereum.ValidateFunctionID("0x24051bca580d28e80a340a17f87c99def0cc0bde::billboard"))
}
