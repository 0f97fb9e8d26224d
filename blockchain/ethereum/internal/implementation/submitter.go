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

package implementation

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/direct-state-transfer/gasless"
)

// Relay protocol constants.
const (
	SponsorMethod = "gasstation_sponsorTransaction"
	NetworkHeader = "X-Network"
)

// DirectSubmitter sends signed transactions to the backend. The sender pays the fees.
type DirectSubmitter struct {
	backend Backend
}

// NewDirectSubmitter returns a submitter sending transactions to the backend.
func NewDirectSubmitter(backend Backend) *DirectSubmitter {
	return &DirectSubmitter{backend: backend}
}

// Submit decodes the signed transaction and sends it to the backend.
func (s *DirectSubmitter) Submit(ctx context.Context, signedTx []byte) (string, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(signedTx); err != nil {
		return "", gasless.WrapTxError(gasless.SubmissionError, errors.Wrap(err, "decoding signed transaction"))
	}
	if err := s.backend.SendTransaction(ctx, tx); err != nil {
		return "", gasless.WrapTxError(gasless.SubmissionError, err)
	}
	return tx.Hash().Hex(), nil
}

// GasStationSubmitter forwards signed transactions to a gas station relay, which
// pays the network fees and broadcasts them.
type GasStationSubmitter struct {
	client  *rpc.Client
	network gasless.Network
	limiter *rate.Limiter
}

// NewGasStationSubmitter returns a submitter bound to the relay at relayURL for the
// network, authenticating with the credential. Requests to the relay are limited to
// rateLimit per second; zero or negative disables limiting.
func NewGasStationSubmitter(ctx context.Context, relayURL string, network gasless.Network,
	credential string, rateLimit float64) (*GasStationSubmitter, error) {
	if relayURL == "" {
		return nil, errors.New("relay url is required for sponsored transactions")
	}
	if credential == "" {
		return nil, errors.New("gas station credential is required for sponsored transactions")
	}
	client, err := rpc.DialOptions(ctx, relayURL,
		rpc.WithHeader("Authorization", "Bearer "+credential),
		rpc.WithHeader(NetworkHeader, network.String()))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to gas station relay")
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), 1)
	}
	return &GasStationSubmitter{
		client:  client,
		network: network,
		limiter: limiter,
	}, nil
}

// Submit forwards the signed transaction to the relay and returns the hash reported by it.
func (s *GasStationSubmitter) Submit(ctx context.Context, signedTx []byte) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", gasless.WrapTxError(gasless.SubmissionError, errors.Wrap(err, "waiting for relay quota"))
	}
	var hash common.Hash
	if err := s.client.CallContext(ctx, &hash, SponsorMethod, hexutil.Bytes(signedTx)); err != nil {
		return "", gasless.WrapTxError(gasless.SubmissionError, err)
	}
	return hash.Hex(), nil
}

// Network returns the network the submitter is bound to.
func (s *GasStationSubmitter) Network() gasless.Network {
	return s.network
}

// Close closes the connection to the relay.
func (s *GasStationSubmitter) Close() {
	s.client.Close()
}
