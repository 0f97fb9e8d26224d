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

// Package log provides the logrus based loggers used by all components of the node.
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used by the components of the node.
// Components embed it and add fields identifying themselves.
type Logger = logrus.FieldLogger

// logger is the root logger, from which all component loggers are derived.
// It logs to stdout at info level until InitLogger is called.
var logger *logrus.Logger

func init() {
	logger = logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(newFormatter())
}

// InitLogger sets the level and output of the root logger.
// Supported log levels are "debug", "info" and "error".
// Logs to stdout if logFile is an empty string.
func InitLogger(levelStr, logFile string) error {
	l, err := NewLogger(levelStr, logFile)
	if err != nil {
		return err
	}
	logger.SetLevel(l.Level)
	logger.SetOutput(l.Out)
	return nil
}

// NewLogger returns a logger set to the given level and log file.
// Supported log levels are "debug", "info" and "error".
// Logs to stdout if logFile is an empty string.
func NewLogger(levelStr, logFile string) (*logrus.Logger, error) {
	l := logrus.New()

	if levelStr != "debug" && levelStr != "info" && levelStr != "error" {
		return nil, errors.New("Unsupported log level, use debug, info or error")
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	l.SetLevel(level)

	out, err := openOutput(logFile)
	if err != nil {
		return nil, err
	}
	l.SetOutput(out)
	l.SetFormatter(newFormatter())
	return l, nil
}

func openOutput(logFile string) (io.Writer, error) {
	if logFile == "" {
		return os.Stdout, nil
	}
	f, err := os.OpenFile(filepath.Clean(logFile), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

// NewLoggerWithField returns a logger derived from the root logger that logs
// along with the given field.
func NewLoggerWithField(key string, value interface{}) Logger {
	return logger.WithField(key, value)
}

// NewDerivedLoggerWithField returns a logger derived from the given logger that
// additionally logs the given field.
func NewDerivedLoggerWithField(l Logger, key string, value interface{}) Logger {
	return l.WithField(key, value)
}

// SetOutput changes the output of the root logger.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func newFormatter() logrus.Formatter {
	return &customTextFormatter{logrus.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05 Z0700",
		DisableLevelTruncation: true,
	}}
}

// customTextFormatter is defined to override default formating options for log entry.
type customTextFormatter struct {
	logrus.TextFormatter
}

// Format modifies the default logging format.
func (f *customTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	originalText, err := f.TextFormatter.Format(entry)
	return append([]byte("▶ "), originalText...), err
}
