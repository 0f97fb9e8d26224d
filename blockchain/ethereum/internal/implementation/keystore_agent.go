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
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/gasless"
)

// ScryptParams defines the parameters for scrypt algorithm. It determines the security level of algorithm
// used for encrypting the keys for storage on disk.
//
// Weak values should be used only for testing purposes (enables faster unlocking). Use standard values otherwise.
type ScryptParams struct {
	N, P int
}

// KeystoreAgent is a signing agent backed by an encrypted keystore directory.
// It is ready when the keystore holds at least one account and connects to the
// first account, unlocking it with the password.
type KeystoreAgent struct {
	name     string
	ks       *keystore.KeyStore
	password string

	mu        sync.Mutex
	account   *accounts.Account
	callbacks []func()
	sub       event.Subscription
}

// NewKeystoreAgent returns an agent for the keystore at the given path. The path
// need not exist; the agent is not ready until keys are present.
func NewKeystoreAgent(name, keystorePath, password string, params ScryptParams) *KeystoreAgent {
	return &KeystoreAgent{
		name:     name,
		ks:       keystore.NewKeyStore(keystorePath, params.N, params.P),
		password: password,
	}
}

// Name returns the name of the agent.
func (a *KeystoreAgent) Name() string {
	return a.name
}

// Ready reports if the keystore holds any account.
func (a *KeystoreAgent) Ready() bool {
	return len(a.ks.Accounts()) > 0
}

// Connect unlocks the first account in the keystore and returns its address.
func (a *KeystoreAgent) Connect(_ context.Context) (string, error) {
	accs := a.ks.Accounts()
	if len(accs) == 0 {
		return "", gasless.ErrAgentNotReady
	}
	acc := accs[0]
	if err := a.ks.Unlock(acc, a.password); err != nil {
		return "", errors.Wrap(err, "unlocking account")
	}

	a.mu.Lock()
	a.account = &acc
	a.mu.Unlock()
	return acc.Address.Hex(), nil
}

// Disconnect locks the connected account. It is a no-op if not connected.
func (a *KeystoreAgent) Disconnect() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.account == nil {
		return nil
	}
	err := a.ks.Lock(a.account.Address)
	a.account = nil
	return errors.Wrap(err, "locking account")
}

// SignTx signs the transaction with the connected account.
func (a *KeystoreAgent) SignTx(_ context.Context, utx gasless.UnsignedTx) ([]byte, error) {
	a.mu.Lock()
	acc := a.account
	a.mu.Unlock()
	if acc == nil {
		return nil, errors.New("agent not connected")
	}
	tx, err := decodeForSigning(utx, acc.Address)
	if err != nil {
		return nil, err
	}
	signed, err := a.ks.SignTx(*acc, tx, utx.ChainID)
	if err != nil {
		return nil, errors.Wrap(err, "signing transaction")
	}
	raw, err := signed.MarshalBinary()
	return raw, errors.Wrap(err, "encoding signed transaction")
}

// OnReadinessChange registers f to be called whenever accounts are added to or
// removed from the keystore.
func (a *KeystoreAgent) OnReadinessChange(f func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.callbacks = append(a.callbacks, f)
	if a.sub != nil {
		return
	}
	events := make(chan accounts.WalletEvent, 16)
	a.sub = a.ks.Subscribe(events)
	go a.watch(events, a.sub)
}

func (a *KeystoreAgent) watch(events <-chan accounts.WalletEvent, sub event.Subscription) {
	for {
		select {
		case <-events:
			a.mu.Lock()
			callbacks := make([]func(), len(a.callbacks))
			copy(callbacks, a.callbacks)
			a.mu.Unlock()
			for _, f := range callbacks {
				f()
			}
		case <-sub.Err():
			return
		}
	}
}

// Close stops watching the keystore for changes.
func (a *KeystoreAgent) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sub != nil {
		a.sub.Unsubscribe()
		a.sub = nil
	}
}

// decodeForSigning decodes the unsigned transaction and checks that it is to be
// signed by the given account.
func decodeForSigning(utx gasless.UnsignedTx, signer common.Address) (*types.Transaction, error) {
	if utx.ChainID == nil {
		return nil, errors.New("chain id is required for signing")
	}
	if !strings.EqualFold(utx.From, signer.Hex()) {
		return nil, errors.Errorf("transaction is from %s, connected account is %s", utx.From, signer.Hex())
	}
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(utx.Raw); err != nil {
		return nil, errors.Wrap(err, "decoding unsigned transaction")
	}
	return tx, nil
}
