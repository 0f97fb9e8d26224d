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
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum/internal/implementation"
)

// Weak encryption parameters, for faster unlocking of keys in tests.
const (
	weakScryptN = 2
	weakScryptP = 1
)

// KeystoreSetup is a temporary keystore directory holding test accounts.
type KeystoreSetup struct {
	Path     string
	Password string
	Keystore *keystore.KeyStore
	Addrs    []string
}

// NewKeystoreSetup creates a keystore in a temporary directory with n accounts
// encrypted with the password. It is removed when the test ends.
func NewKeystoreSetup(t *testing.T, n int, password string) *KeystoreSetup {
	ksPath := t.TempDir()
	ks := keystore.NewKeyStore(ksPath, weakScryptN, weakScryptP)
	addrs := make([]string, n)
	for i := 0; i < n; i++ {
		acc, err := ks.NewAccount(password)
		require.NoError(t, err)
		addrs[i] = acc.Address.Hex()
	}
	return &KeystoreSetup{
		Path:     ksPath,
		Password: password,
		Keystore: ks,
		Addrs:    addrs,
	}
}

// AddAccount creates a new account in the keystore and returns its address.
func (s *KeystoreSetup) AddAccount(t *testing.T) string {
	acc, err := s.Keystore.NewAccount(s.Password)
	require.NoError(t, err)
	s.Addrs = append(s.Addrs, acc.Address.Hex())
	return acc.Address.Hex()
}

// NewKeystoreAgent returns a keystore agent using weak encryption parameters.
func NewKeystoreAgent(name, keystorePath, password string) gasless.Agent {
	return implementation.NewKeystoreAgent(name, keystorePath, password, implementation.ScryptParams{
		N: weakScryptN,
		P: weakScryptP,
	})
}

// NewMnemonic returns a valid 12 word mnemonic generated from rng.
func NewMnemonic(t *testing.T, rng *rand.Rand) string {
	entropy := make([]byte, 16)
	_, err := rng.Read(entropy)
	require.NoError(t, err)
	mnemonic, err := bip39.NewMnemonic(entropy)
	require.NoError(t, err)
	return mnemonic
}

// MnemonicAddress returns the address derived from the mnemonic at the default derivation path.
func MnemonicAddress(t *testing.T, mnemonic string) string {
	w, err := hdwallet.NewFromMnemonic(mnemonic)
	require.NoError(t, err)
	path, err := hdwallet.ParseDerivationPath(implementation.DefaultDerivationPath)
	require.NoError(t, err)
	acc, err := w.Derive(path, false)
	require.NoError(t, err)
	return acc.Address.Hex()
}
