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

// Package configgen generates sample configuration artifacts for the node.
package configgen

import (
	"crypto/rand"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"gopkg.in/yaml.v3"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum"
)

// NodeConfigFile is the name of the generated node config file.
const NodeConfigFile = "node.yaml"

// mnemonicEntropyBits yields a 12 word mnemonic.
const mnemonicEntropyBits = 128

// contract is the address of the billboard contract on the local network.
const contract = "0x9daEdAcb21dce86Af8604Ba1A1D7F9BFE55ddd63"

var nodeCfg = gasless.NodeConfig{
	LogFile:     "",
	LogLevel:    "debug",
	Network:     gasless.Local.String(),
	ChainURL:    "http://127.0.0.1:8545",
	RelayURL:    "http://127.0.0.1:8546",
	ExplorerURL: "http://localhost:4000",
	Contract:    contract,
	Function:    contract + "::billboard::send_message",

	TxTimeout:    ethereum.DefaultTxTimeout,
	PollInterval: ethereum.DefaultPollInterval,

	AutoConnect: true,
	LastAgent:   "default",
	ListenAddr:  "127.0.0.1:8080",
}

// GenerateNodeConfig generates node configuration artifact (node.yaml) in the
// given directory, with a signing agent using a newly generated mnemonic. It
// returns the path of the generated file.
func GenerateNodeConfig(dir string) (string, error) {
	file := filepath.Join(dir, NodeConfigFile)
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		return "", errors.New("exists file - " + file)
	}

	mnemonic, err := newMnemonic()
	if err != nil {
		return "", err
	}
	cfg := nodeCfg
	cfg.Agents = []gasless.AgentConfig{{
		Name:           "default",
		Type:           ethereum.MnemonicAgentType,
		Mnemonic:       mnemonic,
		DerivationPath: ethereum.DefaultDerivationPath,
	}}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, "encoding node config")
	}
	if err := os.WriteFile(file, data, 0600); err != nil {
		return "", errors.Wrap(err, "writing node config")
	}
	return file, nil
}

func newMnemonic() (string, error) {
	entropy := make([]byte, mnemonicEntropyBits/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", errors.Wrap(err, "reading entropy")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	return mnemonic, errors.Wrap(err, "generating mnemonic")
}
