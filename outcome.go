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

package gasless

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// OutcomeKind is the tag of an Outcome.
type OutcomeKind int

const (
	// Pending is the outcome while a transaction attempt is in flight.
	Pending OutcomeKind = iota
	// Confirmed is the outcome when the transaction was included on-chain.
	Confirmed
	// Failed is the outcome when the attempt failed at any stage.
	Failed
)

// String implements the stringer interface for OutcomeKind.
func (k OutcomeKind) String() string {
	return [...]string{
		"pending",
		"confirmed",
		"failed",
	}[k]
}

// MarshalText encodes the kind as its string representation.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes the kind from its string representation.
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pending":
		*k = Pending
	case "confirmed":
		*k = Confirmed
	case "failed":
		*k = Failed
	default:
		return errors.Errorf("unknown outcome kind %q", text)
	}
	return nil
}

// Outcome is the result of the most recent transaction attempt.
// Hash and ExplorerURL are set only when confirmed; Message and ErrorKind only when failed.
type Outcome struct {
	Kind        OutcomeKind `json:"kind"`
	Hash        string      `json:"hash,omitempty"`
	ExplorerURL string      `json:"explorerUrl,omitempty"`
	Fee         string      `json:"fee,omitempty"`
	Sponsored   bool        `json:"sponsored,omitempty"`
	Message     string      `json:"message,omitempty"`
	ErrorKind   string      `json:"errorKind,omitempty"`
}

// PendingOutcome returns the outcome for an attempt in flight.
func PendingOutcome() Outcome {
	return Outcome{Kind: Pending}
}

// ConfirmedOutcome returns the outcome for a confirmed transaction.
func ConfirmedOutcome(hash, explorerURL string) Outcome {
	return Outcome{Kind: Confirmed, Hash: hash, ExplorerURL: explorerURL}
}

// FailedOutcome returns the outcome for a failed attempt, with the normalized
// message of err.
func FailedOutcome(err error) Outcome {
	return Outcome{Kind: Failed, Message: ErrorMessage(err), ErrorKind: KindOf(err).String()}
}

// IsTerminal reports if the outcome is either confirmed or failed.
func (o Outcome) IsTerminal() bool {
	return o.Kind != Pending
}

// ExplorerTxURL returns the link to the transaction in the block explorer, in the
// form <explorer-base>/txn/<hash>?network=<network>. It returns an empty string if
// the explorer base is empty.
func ExplorerTxURL(explorerBase string, hash string, network Network) string {
	if explorerBase == "" {
		return ""
	}
	q := url.Values{}
	q.Set("network", network.String())
	return fmt.Sprintf("%s/txn/%s?%s", strings.TrimRight(explorerBase, "/"), url.PathEscape(hash), q.Encode())
}
