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

// Package ethereumtest provides test helpers for the ethereum chain client and
// signing agents, backed by the go-ethereum simulated backend.
package ethereumtest

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum/internal/implementation"
	"github.com/direct-state-transfer/gasless/currency"
)

// Timing parameters used in tests.
const (
	DefaultTxTimeout    = 5 * time.Second
	DefaultPollInterval = 10 * time.Millisecond
	autoCommitInterval  = 20 * time.Millisecond
)

// FundAmount is the balance of every funded account at genesis.
var FundAmount, _ = currency.NewParser(currency.ETH).Parse("1000")

// revertingContractCode is the init code of a contract whose runtime code reverts on every call.
var revertingContractCode = common.FromHex("6460006000fd6000526005601bf3")

// ChainSetup is a simulated chain with a funded account, that mines a block
// whenever Commit is called and, if enabled, periodically in the background.
type ChainSetup struct {
	Backend *simulated.Backend
	Client  simulated.Client
	Funder  *ecdsa.PrivateKey

	commitMu sync.Mutex
	sendMu   sync.Mutex
}

// NewChainSetup starts a simulated chain where the funder and each of the given
// addresses hold FundAmount.
func NewChainSetup(t *testing.T, rng *rand.Rand, funded ...string) *ChainSetup {
	funder, err := ecdsa.GenerateKey(crypto.S256(), rng)
	require.NoError(t, err)

	alloc := types.GenesisAlloc{crypto.PubkeyToAddress(funder.PublicKey): {Balance: FundAmount}}
	for _, addr := range funded {
		require.True(t, common.IsHexAddress(addr), "invalid address to fund: %s", addr)
		alloc[common.HexToAddress(addr)] = types.Account{Balance: FundAmount}
	}
	backend := simulated.NewBackend(alloc)
	t.Cleanup(func() {
		if err := backend.Close(); err != nil {
			t.Log("Error in test cleanup: closing simulated backend -", err)
		}
	})
	return &ChainSetup{
		Backend: backend,
		Client:  backend.Client(),
		Funder:  funder,
	}
}

// Commit mines a block with the pending transactions.
func (s *ChainSetup) Commit() {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	s.Backend.Commit()
}

// AutoCommit mines blocks in the background until the test ends.
func (s *ChainSetup) AutoCommit(t *testing.T) {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(autoCommitInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		close(done)
		<-stopped
	})
}

// FunderAddr returns the address of the funded account.
func (s *ChainSetup) FunderAddr() common.Address {
	return crypto.PubkeyToAddress(s.Funder.PublicKey)
}

// SendFromFunder sends a transaction from the funded account, mines it and
// returns its receipt.
func (s *ChainSetup) SendFromFunder(ctx context.Context, to *common.Address, value *big.Int, data []byte,
	gas uint64) (*types.Receipt, error) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	chainID, err := s.Client.ChainID(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	nonce, err := s.Client.PendingNonceAt(ctx, s.FunderAddr())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	gasPrice, err := s.Client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       to,
		Value:    value,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.Funder)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err = s.Client.SendTransaction(ctx, signed); err != nil {
		return nil, errors.WithStack(err)
	}
	s.Commit()
	receipt, err := s.Client.TransactionReceipt(ctx, signed.Hash())
	return receipt, errors.WithStack(err)
}

// Fund transfers the amount from the funded account to the address.
func (s *ChainSetup) Fund(t *testing.T, addr string, amount *big.Int) {
	to := common.HexToAddress(addr)
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTxTimeout)
	defer cancel()
	_, err := s.SendFromFunder(ctx, &to, amount, nil, 21000)
	require.NoError(t, err)
}

// DeployRevertingContract deploys a contract that reverts on every call and
// returns its address.
func (s *ChainSetup) DeployRevertingContract(t *testing.T) string {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTxTimeout)
	defer cancel()
	receipt, err := s.SendFromFunder(ctx, nil, big.NewInt(0), revertingContractCode, 100000)
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	return receipt.ContractAddress.Hex()
}

// NewClient returns a chain client bound to the simulated chain. If the
// submitter is nil, transactions are sent directly to the simulated chain.
func (s *ChainSetup) NewClient(submitter gasless.TxSubmitter) gasless.ChainClient {
	return s.NewClientWithTimeout(submitter, DefaultTxTimeout)
}

// NewClientWithTimeout is like NewClient with a custom confirmation timeout.
func (s *ChainSetup) NewClientWithTimeout(submitter gasless.TxSubmitter, txTimeout time.Duration) gasless.ChainClient {
	return implementation.NewClient(s.Client, submitter, implementation.ClientConfig{
		Network:      gasless.Local,
		TxTimeout:    txTimeout,
		PollInterval: DefaultPollInterval,
	})
}

// NewRandomAddress returns a random address.
func NewRandomAddress(rng *rand.Rand) string {
	var a common.Address
	rng.Read(a[:])
	return a.Hex()
}
