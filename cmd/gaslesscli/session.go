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
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/api/rest"
)

var (
	agentsCmd = &ishell.Cmd{
		Name: "agents",
		Help: "List the wallet agents configured on the node. Usage: agents",
		Func: agentsFn,
	}

	connectCmd = &ishell.Cmd{
		Name: "connect",
		Help: "Connect the wallet using an agent. Usage: connect [agent name]",
		Func: connectFn,
		Completer: func([]string) []string {
			return agentNames()
		},
	}

	disconnectCmd = &ishell.Cmd{
		Name: "disconnect",
		Help: "Disconnect the wallet. Usage: disconnect",
		Func: disconnectFn,
	}

	sessionCmd = &ishell.Cmd{
		Name: "session",
		Help: "Print the wallet session. Usage: session",
		Func: sessionFn,
	}
)

func agentsFn(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var resp agentsResp
	if err := client.get("/agents", &resp); err != nil {
		c.Printf("%s\n\n", redf("Error listing agents: %v", err))
		return
	}
	if len(resp.Agents) == 0 {
		c.Printf("%s\n\n", yellowf("No agents configured."))
		return
	}
	c.Printf("%s\n\n", greenf("Agents:\n%s", prettifyAgents(resp.Agents)))
}

func connectFn(c *ishell.Context) {
	if !checkArgs(c, 1) {
		return
	}
	var resp sessionResp
	if err := client.post("/session/connect", rest.ConnectReq{Agent: c.Args[0]}, &resp); err != nil {
		c.Printf("%s\n\n", redf("Error connecting wallet: %v", err))
		return
	}
	c.Printf("%s\n\n", greenf("Wallet connected. %s", prettifySession(resp)))
}

func disconnectFn(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var resp sessionResp
	if err := client.post("/session/disconnect", nil, &resp); err != nil {
		c.Printf("%s\n\n", redf("Error disconnecting wallet: %v", err))
		return
	}
	c.Printf("%s\n\n", greenf("Wallet disconnected."))
}

func sessionFn(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var resp sessionResp
	if err := client.get("/session", &resp); err != nil {
		c.Printf("%s\n\n", redf("Error getting session: %v", err))
		return
	}
	c.Printf("%s\n\n", greenf("%s", prettifySession(resp)))
}

// agentNames is used for completing the connect command, errors are ignored.
func agentNames() []string {
	if client == nil {
		return nil
	}
	var resp agentsResp
	if err := client.get("/agents", &resp); err != nil {
		return nil
	}
	names := make([]string, len(resp.Agents))
	for i := range resp.Agents {
		names[i] = resp.Agents[i].Name
	}
	return names
}

func prettifyAgents(agents []gasless.AgentInfo) string {
	var b strings.Builder
	for _, a := range agents {
		ready := "not ready"
		if a.IsReady {
			ready = "ready"
		}
		fmt.Fprintf(&b, "  %s (%s)\n", a.Name, ready)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func prettifySession(s sessionResp) string {
	if s.Status != gasless.Connected {
		return fmt.Sprintf("Status: %s, Network: %s, Sponsored: %t", s.Status, s.Network, s.Sponsored)
	}
	return fmt.Sprintf("Status: %s, Agent: %s, Account: %s, Network: %s, Sponsored: %t",
		s.Status, s.Agent, s.Account, s.Network, s.Sponsored)
}
