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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/direct-state-transfer/gasless/cmd/configgen"
)

const configgenDirF = "dir"

func init() {
	rootCmd.AddCommand(configgenCmd)
	configgenCmd.Flags().String(configgenDirF, ".", "directory in which the configuration artifacts are generated")
}

var configgenCmd = &cobra.Command{
	Use:   "configgen",
	Short: "Generate sample configuration for the gasless node",
	Long: `
Generate a sample node.yaml for the local network, with a signing agent using a
freshly generated mnemonic. An existing node.yaml is not overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cmd.Flags().GetString(configgenDirF)
		if err != nil {
			return err
		}
		file, err := configgen.GenerateNodeConfig(dir)
		if err != nil {
			return err
		}
		fmt.Printf("Generated node config file - %s\n", file)
		return nil
	},
}
