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

package node_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum/ethereumtest"
	"github.com/direct-state-transfer/gasless/node"
)

const gasStationKey = "test-gas-station-key"

func nodeConfig(rng *rand.Rand, agents ...gasless.AgentConfig) gasless.NodeConfig {
	contract := ethereumtest.NewRandomAddress(rng)
	return gasless.NodeConfig{
		LogLevel:    "debug",
		Network:     "local",
		ChainURL:    "http://127.0.0.1:1",
		ExplorerURL: "http://localhost:4000",
		Contract:    contract,
		Function:    contract + "::billboard::send_message",
		Agents:      agents,
	}
}

func Test_Node_Sponsored(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	chain := ethereumtest.NewChainSetup(t, rng)
	chain.AutoCommit(t)
	relay := ethereumtest.NewRelay(t, chain, gasStationKey)

	mnemonic := ethereumtest.NewMnemonic(t, rng)
	cfg := nodeConfig(rng, gasless.AgentConfig{Name: "Solflare", Type: ethereum.MnemonicAgentType, Mnemonic: mnemonic})
	cfg.AutoConnect = true
	cfg.LastAgent = "Solflare"

	n, err := node.NewWithClient(cfg, chain.NewClient(relay.NewSubmitter(t, gasStationKey)))
	require.NoError(t, err)
	defer n.Close()
	assert.True(t, n.Sponsored())
	assert.Equal(t, gasless.Local, n.Network())

	n.Mount()
	session := n.Provider.Session()
	require.True(t, session.IsConnected())
	assert.Equal(t, ethereumtest.MnemonicAddress(t, mnemonic), session.Account)

	n.Orchestrator.SetMessage("gm from the test")
	result, err := n.Submit()
	require.NoError(t, err)
	outcome := <-result

	require.Equal(t, gasless.Confirmed, outcome.Kind, outcome.Message)
	assert.Contains(t, relay.Sponsored(), outcome.Hash)
	assert.Equal(t, "http://localhost:4000/txn/"+outcome.Hash+"?network=local", outcome.ExplorerURL)
	assert.True(t, outcome.Sponsored)
	assert.NotEmpty(t, outcome.Fee)
	assert.Empty(t, n.Orchestrator.Message())
}

func Test_Node_Unsponsored(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	ks := ethereumtest.NewKeystoreSetup(t, 1, "petra-password")
	chain := ethereumtest.NewChainSetup(t, rng, ks.Addrs[0])
	chain.AutoCommit(t)

	// Standard scrypt parameters take a while to unlock, so the keystore is read
	// through a weak-parameter agent registered at runtime.
	cfg := nodeConfig(rng)
	n, err := node.NewWithClient(cfg, chain.NewClient(nil))
	require.NoError(t, err)
	defer n.Close()
	assert.False(t, n.Sponsored())

	n.Provider.AddAgent(ethereumtest.NewKeystoreAgent("Petra", ks.Path, ks.Password))
	require.NoError(t, n.Provider.Connect(context.Background(), "Petra"))

	n.Orchestrator.SetMessage("paying my own way")
	result, err := n.Submit()
	require.NoError(t, err)
	outcome := <-result
	require.Equal(t, gasless.Confirmed, outcome.Kind, outcome.Message)
	assert.False(t, outcome.Sponsored)
}

func Test_Node_SubmitWithoutWallet(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	chain := ethereumtest.NewChainSetup(t, rng)
	n, err := node.NewWithClient(nodeConfig(rng), chain.NewClient(nil))
	require.NoError(t, err)
	defer n.Close()

	n.Orchestrator.SetMessage("hello")
	result, err := n.Submit()
	require.NoError(t, err)
	outcome := <-result
	assert.Equal(t, gasless.Failed, outcome.Kind)
	assert.Equal(t, gasless.MsgWalletNotConnected, outcome.Message)
}

func Test_Node_Close(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))
	chain := ethereumtest.NewChainSetup(t, rng)
	n, err := node.NewWithClient(nodeConfig(rng), chain.NewClient(nil))
	require.NoError(t, err)

	assert.NotPanics(t, n.Close)
	assert.NotPanics(t, n.Close)
}

func Test_New(t *testing.T) {
	rng := rand.New(rand.NewSource(1729))

	t.Run("happy", func(t *testing.T) {
		cfg := nodeConfig(rng, gasless.AgentConfig{Name: "Petra", Type: "keystore", KeystorePath: t.TempDir()})
		n, err := node.New(cfg)
		require.NoError(t, err)
		defer n.Close()

		assert.False(t, n.Sponsored())
		assert.Equal(t, []gasless.AgentInfo{{Name: "Petra", IsReady: false}}, n.Provider.ListAgents())
		assert.Equal(t, cfg.Contract, n.GetConfig().Contract)
	})
	t.Run("error_invalid_config", func(t *testing.T) {
		cfg := nodeConfig(rng)
		cfg.Network = "moonnet"
		_, err := node.New(cfg)
		assert.Error(t, err)
	})
	t.Run("error_no_explorer_on_testnet", func(t *testing.T) {
		cfg := nodeConfig(rng)
		cfg.Network = "testnet"
		cfg.ExplorerURL = ""
		_, err := node.New(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "explorerurl")
	})
	t.Run("error_invalid_log_level", func(t *testing.T) {
		cfg := nodeConfig(rng)
		cfg.LogLevel = "loud"
		_, err := node.New(cfg)
		assert.Error(t, err)
	})
	t.Run("error_unsupported_agent", func(t *testing.T) {
		cfg := nodeConfig(rng, gasless.AgentConfig{Name: "Ledger", Type: "hardware"})
		_, err := node.New(cfg)
		assert.Error(t, err)
	})
	t.Run("error_sponsored_without_relay", func(t *testing.T) {
		cfg := nodeConfig(rng)
		cfg.GasStationAPIKey = gasStationKey
		_, err := node.New(cfg)
		assert.Error(t, err)
	})
}
