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
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/core/types"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"

	"github.com/direct-state-transfer/gasless"
)

// DefaultDerivationPath is the path of the first account in the standard ethereum HD wallet.
const DefaultDerivationPath = "m/44'/60'/0'/0/0"

// MnemonicAgent is a signing agent deriving its account from a BIP-39 mnemonic.
type MnemonicAgent struct {
	name     string
	mnemonic string
	path     string

	mu      sync.Mutex
	wallet  *hdwallet.Wallet
	account *accounts.Account
}

// NewMnemonicAgent returns an agent for the mnemonic. If path is empty, the
// default derivation path is used.
func NewMnemonicAgent(name, mnemonic, path string) *MnemonicAgent {
	if path == "" {
		path = DefaultDerivationPath
	}
	return &MnemonicAgent{
		name:     name,
		mnemonic: mnemonic,
		path:     path,
	}
}

// Name returns the name of the agent.
func (a *MnemonicAgent) Name() string {
	return a.name
}

// Ready reports if the mnemonic is valid.
func (a *MnemonicAgent) Ready() bool {
	return bip39.IsMnemonicValid(a.mnemonic)
}

// Connect derives the account and returns its address.
func (a *MnemonicAgent) Connect(_ context.Context) (string, error) {
	if !a.Ready() {
		return "", gasless.ErrAgentNotReady
	}
	w, err := hdwallet.NewFromMnemonic(a.mnemonic)
	if err != nil {
		return "", errors.Wrap(err, "loading wallet from mnemonic")
	}
	path, err := hdwallet.ParseDerivationPath(a.path)
	if err != nil {
		return "", errors.Wrap(err, "parsing derivation path")
	}
	acc, err := w.Derive(path, true)
	if err != nil {
		return "", errors.Wrap(err, "deriving account")
	}

	a.mu.Lock()
	a.wallet, a.account = w, &acc
	a.mu.Unlock()
	return acc.Address.Hex(), nil
}

// Disconnect drops the derived wallet. It is a no-op if not connected.
func (a *MnemonicAgent) Disconnect() error {
	a.mu.Lock()
	a.wallet, a.account = nil, nil
	a.mu.Unlock()
	return nil
}

// SignTx signs the transaction with the derived account.
func (a *MnemonicAgent) SignTx(_ context.Context, utx gasless.UnsignedTx) ([]byte, error) {
	a.mu.Lock()
	w, acc := a.wallet, a.account
	a.mu.Unlock()
	if acc == nil {
		return nil, errors.New("agent not connected")
	}
	tx, err := decodeForSigning(utx, acc.Address)
	if err != nil {
		return nil, err
	}
	key, err := w.PrivateKey(*acc)
	if err != nil {
		return nil, errors.Wrap(err, "retrieving key")
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(utx.ChainID), key)
	if err != nil {
		return nil, errors.Wrap(err, "signing transaction")
	}
	raw, err := signed.MarshalBinary()
	return raw, errors.Wrap(err, "encoding signed transaction")
}
