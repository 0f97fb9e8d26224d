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
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum/internal/implementation"
)

// Standard encryption parameters used for creating wallets. Using these parameters will
// cause the decryption to use 256MB of RAM and takes approx 1s on a modern processor.
const (
	standardScryptN = keystore.StandardScryptN
	standardScryptP = keystore.StandardScryptP
)

// DefaultDerivationPath is the path of the first account in the standard ethereum HD wallet.
const DefaultDerivationPath = implementation.DefaultDerivationPath

// Agent types supported in the agent configuration.
const (
	KeystoreAgentType = "keystore"
	MnemonicAgentType = "mnemonic"
)

// NewKeystoreAgent returns a signing agent backed by the keystore at the given path.
func NewKeystoreAgent(name, keystorePath, password string) gasless.Agent {
	return implementation.NewKeystoreAgent(name, keystorePath, password, implementation.ScryptParams{
		N: standardScryptN,
		P: standardScryptP,
	})
}

// NewMnemonicAgent returns a signing agent deriving its account from the mnemonic
// at the derivation path. The default path is used if it is empty.
func NewMnemonicAgent(name, mnemonic, derivationPath string) gasless.Agent {
	return implementation.NewMnemonicAgent(name, mnemonic, derivationPath)
}

// NewAgent initializes a signing agent as per the configuration.
func NewAgent(cfg gasless.AgentConfig) (gasless.Agent, error) {
	if cfg.Name == "" {
		return nil, errors.New("agent name is required")
	}
	switch cfg.Type {
	case KeystoreAgentType:
		return NewKeystoreAgent(cfg.Name, cfg.KeystorePath, cfg.Password), nil
	case MnemonicAgentType:
		return NewMnemonicAgent(cfg.Name, cfg.Mnemonic, cfg.DerivationPath), nil
	}
	return nil, errors.Errorf("unsupported agent type %q for agent %s", cfg.Type, cfg.Name)
}

// ParseAddr parses the hex address and returns it in checksummed form.
func ParseAddr(str string) (string, error) {
	if !common.IsHexAddress(str) {
		return "", errors.Errorf("invalid address %q", str)
	}
	return common.HexToAddress(str).Hex(), nil
}

// ValidateFunctionID checks that the function identifier refers to a known
// function of a contract module.
func ValidateFunctionID(id string) error {
	_, err := implementation.ParseFunctionID(id)
	return err
}
