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

// Package workflow drives a transaction attempt through validation, signing and
// submission, and the wait for confirmation. It holds the input message and the
// outcome of the most recent attempt.
package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/currency"
	"github.com/direct-state-transfer/gasless/log"
)

// State is the phase of the transaction workflow.
type State int

// States of the workflow. An attempt moves from Idle through Validating and,
// if validation passes, Submitting and Confirming back to Idle.
const (
	Idle State = iota
	Validating
	Submitting
	Confirming
)

// String implements the stringer interface for State.
func (s State) String() string {
	return [...]string{
		"idle",
		"validating",
		"submitting",
		"confirming",
	}[s]
}

// MarshalText encodes the state as its string representation.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes the state from its string representation.
func (s *State) UnmarshalText(text []byte) error {
	for candidate := Idle; candidate <= Confirming; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return errors.Errorf("unknown workflow state %q", text)
}

// SessionSource provides the current wallet session.
type SessionSource interface {
	Session() gasless.Session
}

//go:generate mockery --name Signer --output ../internal/mocks

// Signer signs a transaction for the request with the connected account and
// submits it, returning the transaction hash.
type Signer interface {
	SignAndSubmit(ctx context.Context, req gasless.TxRequest) (hash string, _ error)
}

// Config holds the fixed parameters of every transaction attempt.
type Config struct {
	FunctionID  string // Function to call, <contract>::<module>::<function>.
	Target      string // First argument of the function call.
	ExplorerURL string
	Network     gasless.Network
	Sponsored   bool

	// Registerer for the workflow metrics. Metrics are not exported if nil.
	Registerer prometheus.Registerer
}

// Snapshot is the observable state of the workflow.
type Snapshot struct {
	State     State            `json:"state"`
	Message   string           `json:"message"`
	Outcome   *gasless.Outcome `json:"outcome"`
	CanSubmit bool             `json:"canSubmit"`
}

// Orchestrator runs transaction attempts, at most one at a time.
type Orchestrator struct {
	log.Logger

	cfg       Config
	session   SessionSource
	signer    Signer
	confirmer gasless.TxConfirmer
	metrics   *metrics

	state   State
	message string
	outcome *gasless.Outcome

	subs      map[int]chan Snapshot
	nextSubID int

	sync.RWMutex
}

// New returns an idle orchestrator.
func New(cfg Config, session SessionSource, signer Signer, confirmer gasless.TxConfirmer) *Orchestrator {
	return &Orchestrator{
		Logger:    log.NewLoggerWithField("function", cfg.FunctionID),
		cfg:       cfg,
		session:   session,
		signer:    signer,
		confirmer: confirmer,
		metrics:   newMetrics(cfg.Registerer),
		subs:      make(map[int]chan Snapshot),
	}
}

// SetMessage sets the message for the next attempt.
func (o *Orchestrator) SetMessage(msg string) {
	o.Lock()
	defer o.Unlock()

	o.message = msg
	o.publish()
}

// Message returns the message for the next attempt.
func (o *Orchestrator) Message() string {
	o.RLock()
	defer o.RUnlock()
	return o.message
}

// Outcome returns the outcome of the most recent attempt, nil if there was none.
func (o *Orchestrator) Outcome() *gasless.Outcome {
	o.RLock()
	defer o.RUnlock()
	return copyOutcome(o.outcome)
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.RLock()
	defer o.RUnlock()
	return o.state
}

// CanSubmit reports if an attempt can be started, that is, if no attempt is in flight.
func (o *Orchestrator) CanSubmit() bool {
	o.RLock()
	defer o.RUnlock()
	return o.state == Idle
}

// Ready reports if an attempt started now would pass validation: a wallet is
// connected, the message is not blank and no attempt is in flight.
func (o *Orchestrator) Ready() bool {
	o.RLock()
	defer o.RUnlock()
	return o.state == Idle && strings.TrimSpace(o.message) != "" && o.session.Session().IsConnected()
}

// Snapshot returns the observable state of the workflow.
func (o *Orchestrator) Snapshot() Snapshot {
	o.RLock()
	defer o.RUnlock()
	return o.snapshot()
}

func (o *Orchestrator) snapshot() Snapshot {
	return Snapshot{
		State:     o.state,
		Message:   o.message,
		Outcome:   copyOutcome(o.outcome),
		CanSubmit: o.state == Idle,
	}
}

// Start begins an attempt with the current message. If an attempt is in flight,
// it returns ErrSubmitInProgress and nothing is requested.
//
// Validation is done before Start returns: when the wallet is not connected or
// the message is blank, the attempt fails without reaching the network. Otherwise
// the previous outcome is replaced with a pending one and the attempt continues
// in the background, bound to ctx. The terminal outcome is sent on the returned
// channel, which is then closed.
func (o *Orchestrator) Start(ctx context.Context) (<-chan gasless.Outcome, error) {
	o.Logger.Debug("Received request: workflow.Start")
	o.Lock()
	defer o.Unlock()

	if o.state != Idle {
		return nil, errors.WithStack(gasless.ErrSubmitInProgress)
	}

	attemptID := uuid.New().String()
	logger := o.Logger.WithField("attempt-id", attemptID)
	o.metrics.attempts.Inc()
	o.state = Validating

	result := make(chan gasless.Outcome, 1)
	msg := strings.TrimSpace(o.message)
	if err := o.validate(msg); err != nil {
		logger.Infof("Transaction failed: %v", err)
		outcome := gasless.FailedOutcome(err)
		o.finish(outcome, false)
		result <- outcome
		close(result)
		return result, nil
	}

	pending := gasless.PendingOutcome()
	o.outcome = &pending
	o.state = Submitting
	o.publish()

	req := gasless.NewTxRequest(o.cfg.FunctionID, o.cfg.Target, msg)
	go o.run(ctx, logger, req, result)
	return result, nil
}

// Submit runs an attempt with the current message and returns its terminal outcome.
func (o *Orchestrator) Submit(ctx context.Context) (gasless.Outcome, error) {
	result, err := o.Start(ctx)
	if err != nil {
		return gasless.Outcome{}, err
	}
	return <-result, nil
}

func (o *Orchestrator) validate(msg string) error {
	if !o.session.Session().IsConnected() {
		return gasless.NewTxError(gasless.ValidationError, gasless.MsgWalletNotConnected)
	}
	if msg == "" {
		return gasless.NewTxError(gasless.ValidationError, gasless.MsgEmptyMessage)
	}
	return nil
}

func (o *Orchestrator) run(ctx context.Context, logger log.Logger, req gasless.TxRequest,
	result chan<- gasless.Outcome) {
	defer close(result)
	start := time.Now()

	var outcome gasless.Outcome
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Transaction failed: unexpected panic: %v", r)
			outcome = gasless.FailedOutcome(gasless.NewTxError(gasless.InternalError, gasless.ErrorMessage(r)))
			o.complete(outcome, false)
		}
		result <- outcome
	}()

	logger.Info("Submitting transaction")
	hash, err := o.signer.SignAndSubmit(ctx, req)
	if err != nil {
		logger.Errorf("Transaction failed: %v", err)
		outcome = gasless.FailedOutcome(err)
		o.complete(outcome, false)
		return
	}
	logger = logger.WithField("hash", hash)
	logger.Info("Transaction submitted")
	o.setState(Confirming)

	receipt, err := o.confirmer.WaitForTransaction(ctx, hash)
	if err != nil {
		logger.Errorf("Transaction failed: %v", err)
		outcome = gasless.FailedOutcome(err)
		o.complete(outcome, false)
		return
	}
	o.metrics.confirmLatency.Observe(time.Since(start).Seconds())

	outcome = gasless.ConfirmedOutcome(hash, gasless.ExplorerTxURL(o.cfg.ExplorerURL, hash, o.cfg.Network))
	outcome.Fee = currency.PrintFee(currency.ETH, receipt.Fee)
	outcome.Sponsored = o.cfg.Sponsored
	logger.Infof("Transaction confirmed in block %d", receipt.BlockNumber)
	o.complete(outcome, true)
}

func (o *Orchestrator) setState(s State) {
	o.Lock()
	defer o.Unlock()

	o.state = s
	o.publish()
}

func (o *Orchestrator) complete(outcome gasless.Outcome, clearMessage bool) {
	o.Lock()
	defer o.Unlock()
	o.finish(outcome, clearMessage)
}

// finish records the terminal outcome and returns to Idle. It must be called
// with the lock held.
func (o *Orchestrator) finish(outcome gasless.Outcome, clearMessage bool) {
	o.outcome = &outcome
	if clearMessage {
		o.message = ""
	}
	o.state = Idle
	o.metrics.observeOutcome(outcome)
	o.publish()
}

// Subscribe returns a channel on which a snapshot is sent after every change.
// Only the latest snapshot is retained for a slow subscriber. The returned
// function cancels the subscription and closes the channel.
func (o *Orchestrator) Subscribe() (<-chan Snapshot, func()) {
	o.Lock()
	defer o.Unlock()

	id := o.nextSubID
	o.nextSubID++
	ch := make(chan Snapshot, 1)
	o.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.Lock()
			defer o.Unlock()
			delete(o.subs, id)
			close(ch)
		})
	}
}

// publish must be called with the lock held.
func (o *Orchestrator) publish() {
	s := o.snapshot()
	for _, ch := range o.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func copyOutcome(o *gasless.Outcome) *gasless.Outcome {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}
