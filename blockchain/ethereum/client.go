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

package ethereum

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum/internal/implementation"
	"github.com/direct-state-transfer/gasless/log"
)

// Default timing parameters for waiting on transactions.
const (
	DefaultTxTimeout    = 60 * time.Second
	DefaultPollInterval = time.Second
)

// ChainConfig holds the parameters for building a chain client. It is
// constructed once at startup and passed explicitly to BuildClient.
type ChainConfig struct {
	Network gasless.Network
	URL     string
	APIKey  string // Optional. Sent to the chain node for a higher request quota.

	Sponsorship    gasless.SponsorshipConfig
	RelayURL       string
	RelayRateLimit float64

	TxTimeout    time.Duration
	PollInterval time.Duration
}

// BuildClient returns a client bound to the configured network.
//
// If the sponsorship credential is absent, a warning is logged and the client
// submits transactions directly, with the sender paying the fees. Otherwise a
// gas station submitter bound to the network and the credential is installed
// as the submission strategy; errors in constructing it are returned.
//
// Each call returns an independent client.
func BuildClient(ctx context.Context, cfg ChainConfig, logger log.Logger) (gasless.ChainClient, error) {
	if cfg.URL == "" {
		return nil, errors.New("chain url is required")
	}
	opts := []rpc.ClientOption{}
	if cfg.APIKey != "" {
		opts = append(opts, rpc.WithHeader("Authorization", "Bearer "+cfg.APIKey))
	} else {
		logger.Info("API key not found. Requests to the chain node use the anonymous quota.")
	}
	rpcClient, err := rpc.DialOptions(ctx, cfg.URL, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to chain node")
	}
	backend := ethclient.NewClient(rpcClient)

	var submitter gasless.TxSubmitter
	var gasStation *implementation.GasStationSubmitter
	if !cfg.Sponsorship.Sponsored() {
		logger.Warn("Gas station API key not found. Transactions will not be sponsored.")
	} else {
		gasStation, err = implementation.NewGasStationSubmitter(ctx, cfg.RelayURL, cfg.Network,
			cfg.Sponsorship.Credential, cfg.RelayRateLimit)
		if err != nil {
			backend.Close()
			return nil, err
		}
		submitter = gasStation
	}

	client := implementation.NewClient(backend, submitter, clientConfig(cfg))
	client.OnClose(backend.Close)
	if gasStation != nil {
		client.OnClose(gasStation.Close)
	}
	return client, nil
}

func clientConfig(cfg ChainConfig) implementation.ClientConfig {
	c := implementation.ClientConfig{
		Network:      cfg.Network,
		TxTimeout:    cfg.TxTimeout,
		PollInterval: cfg.PollInterval,
	}
	if c.TxTimeout <= 0 {
		c.TxTimeout = DefaultTxTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	return c
}
