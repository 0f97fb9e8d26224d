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

package configgen_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/direct-state-transfer/gasless/cmd/configgen"
	"github.com/direct-state-transfer/gasless/node"
)

func Test_GenerateNodeConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("happy", func(t *testing.T) {
		file, err := configgen.GenerateNodeConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, configgen.NodeConfigFile), file)

		cfg, err := node.ParseConfig(viper.New(), file)
		require.NoError(t, err)
		require.NoError(t, node.ValidateConfig(cfg))
		require.Len(t, cfg.Agents, 1)
		assert.True(t, bip39.IsMnemonicValid(cfg.Agents[0].Mnemonic))
		assert.Equal(t, cfg.Agents[0].Name, cfg.LastAgent)
		assert.Equal(t, "local", cfg.Network)
	})
	t.Run("error_file_exists", func(t *testing.T) {
		_, err := configgen.GenerateNodeConfig(dir)
		assert.Error(t, err)
	})
}
