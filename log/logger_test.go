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

package log_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless/log"
)

func Test_NewLogger(t *testing.T) {
	t.Run("happy_stdout", func(t *testing.T) {
		l, err := log.NewLogger("debug", "")
		require.NoError(t, err)
		assert.Equal(t, logrus.DebugLevel, l.Level)
	})
	t.Run("happy_file", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "node.log")
		l, err := log.NewLogger("info", logFile)
		require.NoError(t, err)
		l.Info("hello")

		content, err := ioutil.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "▶ ")
		assert.Contains(t, string(content), "hello")
	})
	t.Run("error_unsupported_level", func(t *testing.T) {
		_, err := log.NewLogger("trace", "")
		assert.Error(t, err)
	})
	t.Run("error_invalid_file", func(t *testing.T) {
		_, err := log.NewLogger("info", filepath.Join(os.TempDir(), "missing-dir-gasless", "x", "node.log"))
		assert.Error(t, err)
	})
}

func Test_NewLoggerWithField(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stdout) })

	l := log.NewLoggerWithField("component", "test")
	l.Info("message")
	assert.Contains(t, buf.String(), "component=test")

	derived := log.NewDerivedLoggerWithField(l, "attempt", "1")
	derived.Info("derived")
	assert.Contains(t, buf.String(), "attempt=1")
}

func Test_InitLogger(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		assert.NoError(t, log.InitLogger("info", ""))
	})
	t.Run("error", func(t *testing.T) {
		assert.Error(t, log.InitLogger("verbose", ""))
	})
}
