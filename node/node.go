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

// Package node wires the chain client, the signing agents, the wallet session
// and the transaction workflow of a node from its configuration.
package node

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum"
	"github.com/direct-state-transfer/gasless/log"
	"github.com/direct-state-transfer/gasless/wallet"
	"github.com/direct-state-transfer/gasless/workflow"
)

// Node owns the single wallet session and transaction workflow of the process.
type Node struct {
	log.Logger

	cfg    gasless.NodeConfig
	client gasless.ChainClient
	agents []gasless.Agent

	Provider     *wallet.Provider
	Orchestrator *workflow.Orchestrator
	Registry     *prometheus.Registry

	// ctx is the lifetime context of the node. Transaction attempts are bound
	// to it and it is cancelled when the node is closed.
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

// New initializes the logger and builds a node with a chain client for the
// configured network.
func New(cfg gasless.NodeConfig) (*Node, error) {
	if err := log.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, errors.WithMessage(err, "initializing logger for node")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, errors.WithMessage(err, "invalid config")
	}
	network, _ := gasless.ParseNetwork(cfg.Network)

	client, err := ethereum.BuildClient(context.Background(), ethereum.ChainConfig{
		Network:        network,
		URL:            cfg.ChainURL,
		APIKey:         cfg.APIKey,
		Sponsorship:    gasless.SponsorshipConfig{Credential: cfg.GasStationAPIKey},
		RelayURL:       cfg.RelayURL,
		RelayRateLimit: cfg.RelayRateLimit,
		TxTimeout:      cfg.TxTimeout,
		PollInterval:   cfg.PollInterval,
	}, log.NewLoggerWithField("network", network))
	if err != nil {
		return nil, errors.WithMessage(err, "building chain client")
	}
	n, err := NewWithClient(cfg, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	return n, nil
}

// NewWithClient builds a node using the given chain client. The client is
// closed when the node is closed.
func NewWithClient(cfg gasless.NodeConfig, client gasless.ChainClient) (*Node, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, errors.WithMessage(err, "invalid config")
	}
	contract, _ := ethereum.ParseAddr(cfg.Contract)

	agents := make([]gasless.Agent, 0, len(cfg.Agents))
	for _, agentCfg := range cfg.Agents {
		a, err := ethereum.NewAgent(agentCfg)
		if err != nil {
			return nil, errors.WithMessage(err, "initializing signing agent")
		}
		agents = append(agents, a)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, cancel := context.WithCancel(context.Background())
	n := &Node{
		Logger:   log.NewLoggerWithField("node", client.Network()),
		cfg:      cfg,
		client:   client,
		agents:   agents,
		Registry: registry,
		ctx:      ctx,
		cancel:   cancel,
	}
	n.Provider = wallet.NewProvider(wallet.ProviderConfig{
		AutoConnect: cfg.AutoConnect,
		LastAgent:   cfg.LastAgent,
		Network:     client.Network(),
		Submitter:   client.Submitter(),
		OnError:     n.onWalletError,
	}, client, agents...)
	n.Orchestrator = workflow.New(workflow.Config{
		FunctionID:  cfg.Function,
		Target:      contract,
		ExplorerURL: explorerURL(cfg),
		Network:     client.Network(),
		Sponsored:   client.Sponsored(),
		Registerer:  registry,
	}, n.Provider, n.Provider, client)

	n.Logger.Infof("Connected to %s, sponsored transactions: %t", client.Network(), client.Sponsored())
	return n, nil
}

func (n *Node) onWalletError(err error) {
	n.Logger.Errorf("Wallet error: %s", gasless.ErrorMessage(err))
}

// Mount initializes the wallet session, reconnecting to the last agent if
// auto connect is enabled.
func (n *Node) Mount() {
	n.Logger.Debug("Received request: node.Mount")
	n.Provider.Mount(n.ctx)
}

// Submit starts a transaction attempt with the current message. The attempt
// is bound to the lifetime of the node.
func (n *Node) Submit() (<-chan gasless.Outcome, error) {
	n.Logger.Debug("Received request: node.Submit")
	return n.Orchestrator.Start(n.ctx)
}

// Network returns the network the node is bound to.
func (n *Node) Network() gasless.Network {
	return n.client.Network()
}

// Sponsored reports if transactions are submitted through the gas station relay.
func (n *Node) Sponsored() bool {
	return n.client.Sponsored()
}

// GetConfig returns the configuration of the node with credentials redacted.
func (n *Node) GetConfig() gasless.NodeConfig {
	n.Logger.Debug("Received request: node.GetConfig")
	return Redact(n.cfg)
}

// Close cancels transaction attempts in flight, disconnects the wallet
// session and closes the chain client. It is safe to call more than once.
func (n *Node) Close() {
	n.closeOnce.Do(func() {
		n.cancel()
		n.Provider.Disconnect()
		for _, a := range n.agents {
			if c, ok := a.(interface{ Close() }); ok {
				c.Close()
			}
		}
		n.client.Close()
		n.Logger.Info("Node closed")
	})
}
