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

// Package gasless defines domain types and services for a node that submits
// (optionally fee-sponsored) transactions to a smart contract function on
// behalf of a user connected through a signing agent.
package gasless

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Network identifies the deployment the node is bound to.
type Network string

// Supported networks.
const (
	Local   Network = "local"
	Devnet  Network = "devnet"
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

// ParseNetwork parses the network name, case insensitive.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(strings.ToLower(strings.TrimSpace(s))); n {
	case Local, Devnet, Testnet, Mainnet:
		return n, nil
	}
	return "", errors.Errorf("unknown network %q", s)
}

// String implements the stringer interface for Network.
func (n Network) String() string {
	return string(n)
}

// ConnectionStatus describes whether a signing agent is connected.
type ConnectionStatus int

const (
	// Disconnected is the initial status of a session.
	Disconnected ConnectionStatus = iota
	// Connected is set when a signing agent returned an account.
	Connected
)

// String implements the stringer interface for ConnectionStatus.
func (s ConnectionStatus) String() string {
	return [...]string{
		"disconnected",
		"connected",
	}[s]
}

// MarshalText encodes the status as its string representation.
func (s ConnectionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes the status from its string representation.
func (s *ConnectionStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "disconnected":
		*s = Disconnected
	case "connected":
		*s = Connected
	default:
		return errors.Errorf("unknown connection status %q", text)
	}
	return nil
}

// AgentInfo describes a signing agent detected by the node.
type AgentInfo struct {
	Name    string `json:"name"`
	IsReady bool   `json:"isReady"`
}

// Session is the connection state between the node and an external signing agent.
// There is exactly one session per node and it is never persisted.
type Session struct {
	Status  ConnectionStatus `json:"status"`
	Account string           `json:"account,omitempty"` // Empty when disconnected.
	Agent   string           `json:"agent,omitempty"`   // Name of the active agent.
	Agents  []AgentInfo      `json:"agents"`
}

// IsConnected reports if the session has an active account.
func (s Session) IsConnected() bool {
	return s.Status == Connected && s.Account != ""
}

// TxRequest identifies a contract function and its ordered arguments.
type TxRequest struct {
	FunctionID string
	Args       []interface{}
}

// NewTxRequest returns a request holding a copy of the given arguments, so that
// later changes by the caller are not observed by the request.
func NewTxRequest(functionID string, args ...interface{}) TxRequest {
	argsCopy := make([]interface{}, len(args))
	copy(argsCopy, args)
	return TxRequest{FunctionID: functionID, Args: argsCopy}
}

// UnsignedTx is a binary encoded transaction waiting to be signed by an agent.
type UnsignedTx struct {
	From    string
	Raw     []byte
	ChainID *big.Int
}

// Receipt is the on-chain inclusion record of a confirmed transaction.
type Receipt struct {
	Hash        string
	BlockNumber uint64
	GasUsed     uint64
	Fee         *big.Int // Gas used times effective gas price, in base units.
}

// SponsorshipConfig holds the optional credential for the gas station relay.
// When the credential is absent, transactions are submitted unsponsored.
type SponsorshipConfig struct {
	Credential string
}

// Sponsored reports if a sponsorship credential is configured.
func (c SponsorshipConfig) Sponsored() bool {
	return c.Credential != ""
}

//go:generate mockery --name Agent --output ./internal/mocks

// Agent is an external signing agent holding the user's key material.
type Agent interface {
	Name() string
	Ready() bool

	// Connect establishes a session with the agent and returns the account address.
	Connect(ctx context.Context) (account string, _ error)
	Disconnect() error

	// SignTx signs the unsigned transaction and returns the binary encoded signed transaction.
	SignTx(ctx context.Context, tx UnsignedTx) ([]byte, error)
}

// ReadinessNotifier is implemented by agents whose readiness can change at runtime,
// for example when keys are added to or removed from a keystore.
type ReadinessNotifier interface {
	OnReadinessChange(func())
}

//go:generate mockery --name TxBuilder --output ./internal/mocks

// TxBuilder builds unsigned transactions for a request on behalf of an account.
type TxBuilder interface {
	BuildTx(ctx context.Context, from string, req TxRequest) (UnsignedTx, error)
}

//go:generate mockery --name TxSubmitter --output ./internal/mocks

// TxSubmitter forwards signed transactions to the network, either directly or via
// a relay that pays the network fees.
type TxSubmitter interface {
	Submit(ctx context.Context, signedTx []byte) (hash string, _ error)
}

//go:generate mockery --name TxConfirmer --output ./internal/mocks

// TxConfirmer waits until a submitted transaction is included on-chain.
type TxConfirmer interface {
	WaitForTransaction(ctx context.Context, hash string) (Receipt, error)
}

// ChainClient is a client bound to a network, with a transaction submission
// strategy installed. It builds transactions and waits for their confirmation.
type ChainClient interface {
	TxBuilder
	TxConfirmer

	Network() Network
	Submitter() TxSubmitter
	Sponsored() bool
	Close()
}

// AgentConfig describes a signing agent to be initialized by the node.
type AgentConfig struct {
	Name string `json:"name"`
	Type string `json:"type"` // One of "keystore", "mnemonic".

	KeystorePath string `json:"keystorepath,omitempty"`
	Password     string `json:"password,omitempty"`

	Mnemonic       string `json:"mnemonic,omitempty"`
	DerivationPath string `json:"derivationpath,omitempty"`
}

// NodeConfig represents the configuration parameters for the node.
// It is read once at startup and not modified afterwards.
type NodeConfig struct {
	LogLevel string `json:"loglevel"`
	LogFile  string `json:"logfile"`

	Network        string  `json:"network"`
	ChainURL       string  `json:"chainurl"`
	RelayURL       string  `json:"relayurl"`
	RelayRateLimit float64 `json:"relayratelimit"` // Requests per second to the relay. Zero disables limiting.
	ExplorerURL    string  `json:"explorerurl"`

	Contract string `json:"contract"` // Address of the contract, also the recipient argument.
	Function string `json:"function"` // Function identifier, <contract>::<module>::<function>.

	TxTimeout    time.Duration `json:"txtimeout"`
	PollInterval time.Duration `json:"pollinterval"`

	AutoConnect bool          `json:"autoconnect"`
	LastAgent   string        `json:"lastagent"`
	Agents      []AgentConfig `json:"agents"`

	ListenAddr string `json:"listenaddr"`

	GasStationAPIKey string `json:"gasstationapikey"` // Optional, enables sponsored transactions.
	APIKey           string `json:"apikey"`           // Optional, sent to the chain node for higher quota.
}
