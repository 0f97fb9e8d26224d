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
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/log"
)

// Backend is the subset of the ethereum node API used by the client. It is
// satisfied by both *ethclient.Client and the simulated backend client.
type Backend interface {
	ethereum.ChainIDReader
	ethereum.PendingStateReader
	ethereum.GasEstimator
	ethereum.GasPricer
	ethereum.TransactionReader
	ethereum.TransactionSender
}

// ClientConfig holds the parameters of a client that do not depend on the backend.
type ClientConfig struct {
	Network      gasless.Network
	TxTimeout    time.Duration // Max duration to wait for a transaction to be included.
	PollInterval time.Duration // Interval between two receipt queries.
}

// Client provides the ethereum specific chain functionality: building
// transactions, submitting them via the configured strategy and waiting for
// their confirmation.
type Client struct {
	log.Logger

	cfg       ClientConfig
	backend   Backend
	submitter gasless.TxSubmitter
	sponsored bool

	closers []func()
}

// NewClient returns a client for the backend that submits transactions using
// the given submitter. If the submitter is nil, transactions are sent directly
// to the backend.
func NewClient(backend Backend, submitter gasless.TxSubmitter, cfg ClientConfig) *Client {
	c := &Client{
		Logger:  log.NewLoggerWithField("network", cfg.Network),
		cfg:     cfg,
		backend: backend,
	}
	if submitter == nil {
		c.submitter = NewDirectSubmitter(backend)
	} else {
		c.submitter = submitter
		_, c.sponsored = submitter.(*GasStationSubmitter)
	}
	return c
}

// OnClose registers a function to be called when the client is closed.
func (c *Client) OnClose(f func()) {
	c.closers = append(c.closers, f)
}

// Close releases the connections held by the client.
func (c *Client) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Network returns the network the client is bound to.
func (c *Client) Network() gasless.Network {
	return c.cfg.Network
}

// Submitter returns the transaction submission strategy installed in the client.
func (c *Client) Submitter() gasless.TxSubmitter {
	return c.submitter
}

// Sponsored reports if transactions are submitted through the gas station relay.
func (c *Client) Sponsored() bool {
	return c.sponsored
}

// BuildTx builds an unsigned legacy transaction calling the requested function
// from the given account. Nonce, gas price and gas limit are queried from the backend.
func (c *Client) BuildTx(ctx context.Context, from string, req gasless.TxRequest) (gasless.UnsignedTx, error) {
	if !common.IsHexAddress(from) {
		return gasless.UnsignedTx{}, errors.Errorf("invalid sender address %q", from)
	}
	fromAddr := common.HexToAddress(from)

	fn, err := ParseFunctionID(req.FunctionID)
	if err != nil {
		return gasless.UnsignedTx{}, err
	}
	data, err := fn.Pack(req.Args)
	if err != nil {
		return gasless.UnsignedTx{}, err
	}

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return gasless.UnsignedTx{}, errors.Wrap(err, "reading chain id")
	}
	nonce, err := c.backend.PendingNonceAt(ctx, fromAddr)
	if err != nil {
		return gasless.UnsignedTx{}, errors.Wrap(err, "reading nonce")
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return gasless.UnsignedTx{}, errors.Wrap(err, "suggesting gas price")
	}
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: fromAddr, To: &fn.Contract, Data: data})
	if err != nil {
		return gasless.UnsignedTx{}, errors.Wrap(err, "estimating gas")
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &fn.Contract,
		Value:    big.NewInt(0),
		Data:     data,
	})
	raw, err := tx.MarshalBinary()
	if err != nil {
		return gasless.UnsignedTx{}, errors.Wrap(err, "encoding transaction")
	}
	c.Logger.Debugf("Built transaction calling %s from %s with nonce %d", fn, fromAddr.Hex(), nonce)
	return gasless.UnsignedTx{From: fromAddr.Hex(), Raw: raw, ChainID: chainID}, nil
}

// WaitForTransaction polls the backend until the transaction is included. It
// returns a ConfirmationError if the transaction failed on-chain, if it was not
// included within the transaction timeout or if ctx was cancelled.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) (gasless.Receipt, error) {
	txHash := common.HexToHash(hash)
	waitCtx, cancel := context.WithTimeout(ctx, c.cfg.TxTimeout)
	defer cancel()

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(waitCtx, txHash)
		if err == nil {
			return c.checkReceipt(hash, receipt)
		}
		if !errors.Is(err, ethereum.NotFound) && waitCtx.Err() == nil {
			c.Logger.Debugf("Querying receipt of %s: %v", hash, err)
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return gasless.Receipt{}, gasless.WrapTxError(gasless.ConfirmationError,
					errors.WithMessagef(ctx.Err(), "waiting for transaction %s", hash))
			}
			return gasless.Receipt{}, gasless.NewTxError(gasless.ConfirmationError,
				fmt.Sprintf("timed out waiting for transaction %s", hash))
		case <-ticker.C:
		}
	}
}

func (c *Client) checkReceipt(hash string, receipt *types.Receipt) (gasless.Receipt, error) {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return gasless.Receipt{}, gasless.NewTxError(gasless.ConfirmationError,
			fmt.Sprintf("transaction %s failed on-chain", hash))
	}
	r := gasless.Receipt{
		Hash:    receipt.TxHash.Hex(),
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		r.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if receipt.EffectiveGasPrice != nil {
		r.Fee = new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), receipt.EffectiveGasPrice)
	}
	return r, nil
}
