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

package node

import (
	"net"
	"net/url"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/blockchain/ethereum"
)

// Environment variables holding the credentials. They are preferred over
// values in the config file.
const (
	EnvGasStationAPIKey = "GASLESS_GAS_STATION_API_KEY"
	EnvAPIKey           = "GASLESS_API_KEY"
)

// DefaultListenAddr is the address at which the API is served if none is configured.
const DefaultListenAddr = "127.0.0.1:8080"

// localExplorerURL is the explorer base used on the local network if none is configured.
const localExplorerURL = "http://localhost:4000"

const redacted = "********"

func setDefaults(v *viper.Viper) {
	v.SetDefault("loglevel", "info")
	v.SetDefault("network", gasless.Local.String())
	v.SetDefault("listenaddr", DefaultListenAddr)
	v.SetDefault("txtimeout", ethereum.DefaultTxTimeout)
	v.SetDefault("pollinterval", ethereum.DefaultPollInterval)
}

// ParseConfig parses the node configuration from the config file, using the
// viper instance. Values for keys bound to flags in the viper instance take
// precedence over values in the file. If the config file is empty, only
// defaults, environment variables and bound flags are used.
func ParseConfig(v *viper.Viper, configFile string) (gasless.NodeConfig, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	if err := v.BindEnv("gasstationapikey", EnvGasStationAPIKey); err != nil {
		return gasless.NodeConfig{}, errors.WithStack(err)
	}
	if err := v.BindEnv("apikey", EnvAPIKey); err != nil {
		return gasless.NodeConfig{}, errors.WithStack(err)
	}

	if configFile != "" {
		v.SetConfigFile(filepath.Clean(configFile))
		if err := v.ReadInConfig(); err != nil {
			return gasless.NodeConfig{}, errors.Wrap(err, "reading config file")
		}
	}
	var cfg gasless.NodeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return gasless.NodeConfig{}, errors.Wrap(err, "decoding config")
	}
	cfg.ExplorerURL = explorerURL(cfg)
	return cfg, nil
}

// explorerURL returns the configured explorer base, or the default one on the
// local network.
func explorerURL(cfg gasless.NodeConfig) string {
	if cfg.ExplorerURL == "" && cfg.Network == gasless.Local.String() {
		return localExplorerURL
	}
	return cfg.ExplorerURL
}

// ValidateConfig checks the values in the configuration that are required
// for starting the node.
func ValidateConfig(cfg gasless.NodeConfig) error {
	network, err := gasless.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}
	if err := validateExplorerURL(network, cfg.ExplorerURL); err != nil {
		return err
	}
	if cfg.ChainURL == "" {
		return errors.New("chainurl is required")
	}
	if _, err := ethereum.ParseAddr(cfg.Contract); err != nil {
		return errors.WithMessage(err, "contract")
	}
	if err := ethereum.ValidateFunctionID(cfg.Function); err != nil {
		return errors.WithMessage(err, "function")
	}
	if cfg.ListenAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
			return errors.Wrap(err, "listenaddr")
		}
	}
	names := make(map[string]bool, len(cfg.Agents))
	for _, a := range cfg.Agents {
		if names[a.Name] {
			return errors.Errorf("duplicate agent name %q", a.Name)
		}
		names[a.Name] = true
	}
	return nil
}

// validateExplorerURL requires an explorer for every network except local,
// which defaults to a locally running explorer.
func validateExplorerURL(network gasless.Network, explorerURL string) error {
	if explorerURL == "" {
		if network == gasless.Local {
			return nil
		}
		return errors.Errorf("explorerurl is required for network %s", network)
	}
	u, err := url.Parse(explorerURL)
	if err != nil {
		return errors.Wrap(err, "explorerurl")
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return errors.Errorf("explorerurl %q is not an http(s) url", explorerURL)
	}
	return nil
}

// Redact returns a copy of the configuration with credentials and key material
// replaced, for display.
func Redact(cfg gasless.NodeConfig) gasless.NodeConfig {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return redacted
	}
	cfg.GasStationAPIKey = mask(cfg.GasStationAPIKey)
	cfg.APIKey = mask(cfg.APIKey)

	agents := make([]gasless.AgentConfig, len(cfg.Agents))
	for i, a := range cfg.Agents {
		a.Password = mask(a.Password)
		a.Mnemonic = mask(a.Mnemonic)
		agents[i] = a
	}
	cfg.Agents = agents
	return cfg
}
