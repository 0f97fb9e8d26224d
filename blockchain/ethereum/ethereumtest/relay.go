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

package ethereumtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum/internal/implementation"
)

// Relay is a gas station relay served over JSON-RPC for tests. For each
// sponsored transaction, it transfers the transaction cost to the sender from
// the funded account of the chain and then broadcasts the transaction.
type Relay struct {
	URL    string
	APIKey string

	chain *ChainSetup

	mu        sync.Mutex
	rejectMsg string
	sponsored []string
}

// NewRelay starts a relay accepting requests authenticated with apiKey. It is
// stopped when the test ends.
func NewRelay(t *testing.T, chain *ChainSetup, apiKey string) *Relay {
	r := &Relay{APIKey: apiKey, chain: chain}

	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("gasstation", &relayService{relay: r}))
	httpServer := httptest.NewServer(r.authenticate(server))
	r.URL = httpServer.URL

	t.Cleanup(func() {
		httpServer.Close()
		server.Stop()
	})
	return r
}

func (r *Relay) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer "+r.APIKey {
			http.Error(w, "invalid api key", http.StatusUnauthorized)
			return
		}
		if req.Header.Get(implementation.NetworkHeader) == "" {
			http.Error(w, "network header is required", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// RejectWith makes the relay reject all further requests with the message.
// An empty message makes the relay accept requests again.
func (r *Relay) RejectWith(msg string) {
	r.mu.Lock()
	r.rejectMsg = msg
	r.mu.Unlock()
}

// Sponsored returns the hashes of the transactions sponsored so far.
func (r *Relay) Sponsored() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sponsored...)
}

// NewSubmitter returns a gas station submitter bound to the relay that
// authenticates with the credential.
func (r *Relay) NewSubmitter(t *testing.T, credential string) gasless.TxSubmitter {
	s, err := implementation.NewGasStationSubmitter(context.Background(), r.URL, gasless.Local, credential, 0)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

type relayService struct {
	relay *Relay
}

// SponsorTransaction funds the sender of the transaction and broadcasts it.
func (s *relayService) SponsorTransaction(ctx context.Context, raw hexutil.Bytes) (common.Hash, error) {
	r := s.relay
	r.mu.Lock()
	rejectMsg := r.rejectMsg
	r.mu.Unlock()
	if rejectMsg != "" {
		return common.Hash{}, errors.New(rejectMsg)
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, errors.Wrap(err, "decoding transaction")
	}
	sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "recovering sender")
	}
	if _, err = r.chain.SendFromFunder(ctx, &sender, tx.Cost(), nil, 21000); err != nil {
		return common.Hash{}, errors.WithMessage(err, "funding sender")
	}
	if err = r.chain.Client.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, err
	}

	r.mu.Lock()
	r.sponsored = append(r.sponsored, tx.Hash().Hex())
	r.mu.Unlock()
	return tx.Hash(), nil
}
