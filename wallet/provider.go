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

// Package wallet holds the single session between the node and the external
// signing agents. It connects to agents, tracks their readiness and signs and
// submits transactions with the connected account.
package wallet

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/log"
)

// ProviderConfig holds the parameters of a provider.
type ProviderConfig struct {
	AutoConnect bool
	LastAgent   string // Agent to reconnect to on mount, if AutoConnect is set.

	Network   gasless.Network
	Submitter gasless.TxSubmitter

	// OnError is called with every failure to connect to an agent. Optional.
	OnError func(error)
}

// Provider manages the session with the signing agents. It is safe for
// concurrent use.
type Provider struct {
	log.Logger

	cfg     ProviderConfig
	builder gasless.TxBuilder

	agents    []gasless.Agent
	active    gasless.Agent
	account   string
	lastAgent string
	// connectSeq is incremented by every request changing the session, a
	// pending connect only commits if no other request came after it.
	connectSeq uint64

	subs      map[int]chan gasless.Session
	nextSubID int

	sync.RWMutex
}

// NewProvider returns a provider for the agents, in a disconnected session.
// Transactions are built using the builder and submitted using the submitter
// in the configuration.
func NewProvider(cfg ProviderConfig, builder gasless.TxBuilder, agents ...gasless.Agent) *Provider {
	p := &Provider{
		Logger:    log.NewLoggerWithField("network", cfg.Network),
		cfg:       cfg,
		builder:   builder,
		lastAgent: cfg.LastAgent,
		subs:      make(map[int]chan gasless.Session),
	}
	for _, a := range agents {
		p.addAgent(a)
	}
	return p
}

// Mount initializes the session. If auto connect is enabled and an agent was
// used last, a connection to it is attempted. Failure to reconnect is not an
// error, the session stays disconnected.
func (p *Provider) Mount(ctx context.Context) {
	p.Logger.Debug("Received request: wallet.Mount")
	if !p.cfg.AutoConnect || p.cfg.LastAgent == "" {
		return
	}
	p.RLock()
	connected := p.active != nil
	p.RUnlock()
	if connected {
		return
	}

	if err := p.connect(ctx, p.cfg.LastAgent); err != nil {
		p.Logger.Debugf("Auto connect to %s: %v", p.cfg.LastAgent, err)
	}
}

// Connect connects to the agent with the given name. On failure the session is
// left unchanged and an AgentError is returned.
//
// The agent may take arbitrary time to connect (user approval, key unlock), so
// the session can be read meanwhile. If Connect, Disconnect or RemoveAgent is
// called for the session before the agent returns, this attempt is discarded.
func (p *Provider) Connect(ctx context.Context, agentName string) error {
	p.Logger.Debug("Received request: wallet.Connect")
	err := p.connect(ctx, agentName)
	if err != nil {
		p.Logger.Debugf("Connecting to %s: %v", agentName, err)
		if p.cfg.OnError != nil {
			p.cfg.OnError(err)
		}
	}
	return err
}

func (p *Provider) connect(ctx context.Context, agentName string) error {
	p.Lock()
	a := p.findAgent(agentName)
	if a == nil {
		p.Unlock()
		return gasless.WrapTxError(gasless.AgentError, errors.WithMessagef(gasless.ErrUnknownAgent, "agent %s", agentName))
	}
	if !a.Ready() {
		p.Unlock()
		return gasless.WrapTxError(gasless.AgentError, errors.WithMessagef(gasless.ErrAgentNotReady, "agent %s", agentName))
	}
	p.connectSeq++
	seq := p.connectSeq
	p.Unlock()

	account, err := connectAgent(ctx, a)
	if err != nil {
		return err
	}

	p.Lock()
	defer p.Unlock()
	if seq != p.connectSeq || p.findAgent(agentName) != a {
		if p.active != a {
			if err := a.Disconnect(); err != nil {
				p.Logger.Errorf("Disconnecting from %s: %v", a.Name(), err)
			}
		}
		return gasless.NewTxError(gasless.AgentError, gasless.MsgConnectSuperseded)
	}
	if p.active != nil && p.active != a {
		p.disconnectActive()
	}
	p.active, p.account, p.lastAgent = a, account, a.Name()
	p.Logger.Infof("Connected to %s with account %s on %s", a.Name(), account, p.cfg.Network)
	p.publish()
	return nil
}

// connectAgent calls the agent, converting its failures and panics to AgentErrors.
func connectAgent(ctx context.Context, a gasless.Agent) (account string, err error) {
	defer func() {
		if r := recover(); r != nil {
			account, err = "", gasless.NewTxError(gasless.AgentError, gasless.ErrorMessage(r))
		}
	}()
	account, err = a.Connect(ctx)
	if err != nil {
		return "", gasless.WrapTxError(gasless.AgentError, err)
	}
	if account == "" {
		return "", gasless.NewTxError(gasless.AgentError, "agent returned no account")
	}
	return account, nil
}

// Disconnect ends the session. It is safe to call when already disconnected,
// in which case subscribers are not notified.
func (p *Provider) Disconnect() {
	p.Logger.Debug("Received request: wallet.Disconnect")
	p.Lock()
	defer p.Unlock()

	p.connectSeq++
	if p.active == nil {
		return
	}
	p.disconnectActive()
	p.publish()
}

func (p *Provider) disconnectActive() {
	if err := p.active.Disconnect(); err != nil {
		p.Logger.Errorf("Disconnecting from %s: %v", p.active.Name(), err)
	}
	p.Logger.Infof("Disconnected from %s", p.active.Name())
	p.active, p.account = nil, ""
}

// Session returns a snapshot of the current session.
func (p *Provider) Session() gasless.Session {
	p.RLock()
	defer p.RUnlock()
	return p.session()
}

func (p *Provider) session() gasless.Session {
	s := gasless.Session{
		Status: gasless.Disconnected,
		Agents: p.agentInfos(),
	}
	if p.active != nil {
		s.Status, s.Account, s.Agent = gasless.Connected, p.account, p.active.Name()
	}
	return s
}

// LastAgent returns the name of the agent that was connected last.
func (p *Provider) LastAgent() string {
	p.RLock()
	defer p.RUnlock()
	return p.lastAgent
}

// ListAgents returns the agents in the order they were added, with their
// current readiness.
func (p *Provider) ListAgents() []gasless.AgentInfo {
	p.RLock()
	defer p.RUnlock()
	return p.agentInfos()
}

func (p *Provider) agentInfos() []gasless.AgentInfo {
	infos := make([]gasless.AgentInfo, len(p.agents))
	for i, a := range p.agents {
		infos[i] = gasless.AgentInfo{Name: a.Name(), IsReady: a.Ready()}
	}
	return infos
}

// AddAgent adds an agent detected at runtime. An agent with the same name is
// replaced.
func (p *Provider) AddAgent(a gasless.Agent) {
	p.Logger.Debug("Received request: wallet.AddAgent")
	p.Lock()
	defer p.Unlock()

	if existing := p.findAgent(a.Name()); existing != nil {
		p.removeAgent(existing)
	}
	p.addAgent(a)
	p.publish()
}

func (p *Provider) addAgent(a gasless.Agent) {
	p.agents = append(p.agents, a)
	if n, ok := a.(gasless.ReadinessNotifier); ok {
		n.OnReadinessChange(func() {
			p.Lock()
			defer p.Unlock()
			if p.findAgent(a.Name()) == a {
				p.Logger.Debugf("Readiness of %s changed", a.Name())
				p.publish()
			}
		})
	}
}

// RemoveAgent removes the agent with the given name. If it is the active
// agent, the session is disconnected first.
func (p *Provider) RemoveAgent(name string) error {
	p.Logger.Debug("Received request: wallet.RemoveAgent")
	p.Lock()
	defer p.Unlock()

	a := p.findAgent(name)
	if a == nil {
		return errors.WithMessagef(gasless.ErrUnknownAgent, "agent %s", name)
	}
	p.connectSeq++
	p.removeAgent(a)
	p.publish()
	return nil
}

func (p *Provider) removeAgent(a gasless.Agent) {
	if p.active == a {
		p.disconnectActive()
	}
	for i := range p.agents {
		if p.agents[i] == a {
			p.agents = append(p.agents[:i], p.agents[i+1:]...)
			return
		}
	}
}

func (p *Provider) findAgent(name string) gasless.Agent {
	for _, a := range p.agents {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// Subscribe returns a channel on which a snapshot of the session is sent after
// every change. Only the latest snapshot is retained for a slow subscriber.
// The returned function cancels the subscription and closes the channel.
func (p *Provider) Subscribe() (<-chan gasless.Session, func()) {
	p.Lock()
	defer p.Unlock()

	id := p.nextSubID
	p.nextSubID++
	ch := make(chan gasless.Session, 1)
	p.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.Lock()
			defer p.Unlock()
			delete(p.subs, id)
			close(ch)
		})
	}
}

// publish sends the current session to all subscribers, replacing any snapshot
// not yet received. It must be called with the lock held.
func (p *Provider) publish() {
	s := p.session()
	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// SignAndSubmit builds the transaction for the request, signs it with the
// connected account and submits it. It returns the transaction hash.
func (p *Provider) SignAndSubmit(ctx context.Context, req gasless.TxRequest) (string, error) {
	p.Logger.Debug("Received request: wallet.SignAndSubmit")
	p.RLock()
	agent, account := p.active, p.account
	p.RUnlock()

	if agent == nil {
		return "", gasless.NewTxError(gasless.AgentError, gasless.MsgWalletNotConnected)
	}
	utx, err := p.builder.BuildTx(ctx, account, req)
	if err != nil {
		return "", gasless.WrapTxError(gasless.SubmissionError, err)
	}
	signed, err := agent.SignTx(ctx, utx)
	if err != nil {
		return "", gasless.WrapTxError(gasless.AgentError, err)
	}
	hash, err := p.cfg.Submitter.Submit(ctx, signed)
	if err != nil {
		if gasless.KindOf(err) == gasless.InternalError {
			err = gasless.WrapTxError(gasless.SubmissionError, err)
		}
		return "", err
	}
	return hash, nil
}
