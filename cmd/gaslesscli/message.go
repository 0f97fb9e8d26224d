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
	postCmd = &ishell.Cmd{
		Name: "post",
		Help: "Post a message to the billboard. Usage: post [message]",
		Func: postFn,
	}

	stateCmd = &ishell.Cmd{
		Name: "state",
		Help: "Print the workflow state. Usage: state",
		Func: stateFn,
	}

	outcomeCmd = &ishell.Cmd{
		Name: "outcome",
		Help: "Print the outcome of the last transaction. Usage: outcome",
		Func: outcomeFn,
	}
)

func postFn(c *ishell.Context) {
	if !checkArgs(c, -1) {
		return
	}
	msg := strings.Join(c.Args, " ")
	if err := client.put("/message", rest.MessageReq{Message: msg}, nil); err != nil {
		c.Printf("%s\n\n", redf("Error setting message: %v", err))
		return
	}

	var resp stateResp
	if err := client.post("/submit", nil, &resp); err != nil {
		c.Printf("%s\n\n", redf("Error submitting transaction: %v", err))
		return
	}
	if o := resp.Outcome; o != nil && o.Kind == gasless.Failed {
		c.Printf("%s\n\n", redf("%s", prettifyOutcome(o)))
		return
	}
	c.Printf("%s\n\n", greenf("Transaction submitted. Use 'outcome' or 'watch' to follow it."))
}

func stateFn(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var resp stateResp
	if err := client.get("/state", &resp); err != nil {
		c.Printf("%s\n\n", redf("Error getting state: %v", err))
		return
	}
	c.Printf("%s\n\n", greenf("%s", prettifyState(resp)))
}

func outcomeFn(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var resp outcomeResp
	if err := client.get("/outcome", &resp); err != nil {
		c.Printf("%s\n\n", redf("Error getting outcome: %v", err))
		return
	}
	if resp.Outcome == nil {
		c.Printf("%s\n\n", yellowf("No transaction submitted yet."))
		return
	}
	colorf := greenf
	if resp.Outcome.Kind == gasless.Failed {
		colorf = redf
	}
	c.Printf("%s\n\n", colorf("%s", prettifyOutcome(resp.Outcome)))
}

func prettifyState(s stateResp) string {
	out := fmt.Sprintf("State: %s, Message: %q, Ready: %t", s.State, s.Message, s.Ready)
	if s.Outcome != nil {
		out += "\n" + prettifyOutcome(s.Outcome)
	}
	return out
}

func prettifyOutcome(o *gasless.Outcome) string {
	switch o.Kind {
	case gasless.Confirmed:
		out := fmt.Sprintf("Confirmed: %s", o.ExplorerURL)
		if o.Sponsored {
			return out + ", gas sponsored"
		}
		if o.Fee != "" {
			return out + ", fee " + o.Fee
		}
		return out
	case gasless.Failed:
		return fmt.Sprintf("Failed (%s): %s", o.ErrorKind, o.Message)
	}
	if o.Hash != "" {
		return fmt.Sprintf("Pending: %s", o.Hash)
	}
	return "Pending"
}
