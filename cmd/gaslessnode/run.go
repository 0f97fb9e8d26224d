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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/api/rest"
	"github.com/direct-state-transfer/gasless/node"
)

const (
	// flag names for run command.
	configfileF     = "configfile"
	loglevelF       = "loglevel"
	logfileF        = "logfile"
	networkF        = "network"
	chainurlF       = "chainurl"
	relayurlF       = "relayurl"
	relayratelimitF = "relayratelimit"
	explorerurlF    = "explorerurl"
	txtimeoutF      = "txtimeout"
	pollintervalF   = "pollinterval"
	autoconnectF    = "autoconnect"
	lastagentF      = "lastagent"
	listenaddrF     = "listenaddr"

	// default values for flags in run command.
	defaultConfigFile = "node.yaml"
)

var (
	// node level viper instance for parsing configuration from flags and configuration files.
	nodeViper *viper.Viper

	// flags in the run command is binded with the viper instance to override values from config file.
	flagsToBind = []string{
		loglevelF,
		logfileF,
		networkF,
		chainurlF,
		relayurlF,
		relayratelimitF,
		explorerurlF,
		txtimeoutF,
		pollintervalF,
		autoconnectF,
		lastagentF,
		listenaddrF,
	}
)

func init() {
	nodeViper = viper.New()
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String(configfileF, defaultConfigFile, "node config file")

	runCmd.Flags().String(loglevelF, "", "Log level. Supported levels: debug, info, error")
	runCmd.Flags().String(logfileF, "", "Log file path. Use empty string for stdout")
	runCmd.Flags().String(networkF, "", "Network to connect to. One of local, devnet, testnet, mainnet")
	runCmd.Flags().String(chainurlF, "", "URL of the blockchain node")
	runCmd.Flags().String(relayurlF, "", "URL of the gas station relay")
	runCmd.Flags().Float64(relayratelimitF, 0, "Max requests per second to the gas station relay. 0 for no limit")
	runCmd.Flags().String(explorerurlF, "", "Base URL of the block explorer")
	runCmd.Flags().Duration(txtimeoutF, time.Duration(0), "Max duration to wait for a transaction to be mined")
	runCmd.Flags().Duration(pollintervalF, time.Duration(0), "Interval for polling transaction receipts")
	runCmd.Flags().Bool(autoconnectF, false, "Reconnect to the last used signing agent on start")
	runCmd.Flags().String(lastagentF, "", "Name of the last used signing agent")
	runCmd.Flags().String(listenaddrF, "", "Address at which the API server should listen")

	// Bind the configuration flags to viper instance used for to override the values defined in config file.
	// Flags override values in the config file only when set.
	for i := range flagsToBind {
		if err := nodeViper.BindPFlag(flagsToBind[i], runCmd.Flags().Lookup(flagsToBind[i])); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flagsToBind[i], err))
		}
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the gasless node",
	Long: `
Start the gasless node. The node serves the wallet session and transaction API
over HTTP. Configuration can be specified in the config file or via flags.
If both config file and flags are given, values in flags are used.

The gas station API key and the chain node API key are read from the
environment variables GASLESS_GAS_STATION_API_KEY and GASLESS_API_KEY.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	nodeCfgFile, err := cmd.Flags().GetString(configfileF)
	if err != nil {
		return err
	}
	fmt.Printf("Using node config file - %s\n", nodeCfgFile)

	nodeCfg, err := node.ParseConfig(nodeViper, nodeCfgFile)
	if err != nil {
		return errors.WithMessage(err, "reading node config file")
	}

	n, err := node.New(nodeCfg)
	if err != nil {
		return errors.WithMessage(err, "initializing node")
	}
	defer n.Close()
	n.Mount()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s\n\n", prettify(node.Redact(nodeCfg)))
	fmt.Printf("Started gasless node API server with the above config at %s\n", nodeCfg.ListenAddr)
	return rest.NewAPI(n).ListenAndServe(ctx, nodeCfg.ListenAddr)
}

func prettify(cfg gasless.NodeConfig) string {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", cfg)
	}
	return string(out)
}
