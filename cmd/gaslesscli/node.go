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
	"github.com/abiosoft/ishell"
	"gopkg.in/yaml.v3"

	"github.com/direct-state-transfer/gasless"
)

var (
	nodeCmd = &ishell.Cmd{
		Name: "node",
		Help: "Node command. Usage: node [command]",
		Func: node,
	}

	nodeConnectCmd = &ishell.Cmd{
		Name: "connect",
		Help: "Connect to a running gasless node instance. Usage: node connect [url]",
		Func: nodeConnect,
	}

	nodeConfigCmd = &ishell.Cmd{
		Name: "config",
		Help: "Print node config. Usage: node config",
		Func: nodeConfig,
	}
)

func init() {
	nodeCmd.AddCmd(nodeConnectCmd)
	nodeCmd.AddCmd(nodeConfigCmd)
}

func node(c *ishell.Context) {
	c.Println(c.Cmd.HelpText())
}

func nodeConnect(c *ishell.Context) {
	noArgsReq := 1
	if len(c.Args) != noArgsReq {
		c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(c.Args), noArgsReq))
		c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
		return
	}

	nodeAddr := c.Args[0]
	nc := newNodeClient(nodeAddr)
	var s sessionResp
	if err := nc.get("/session", &s); err != nil {
		c.Printf("%s\n\n", redf("Error connecting to gasless node: %v", err))
		return
	}
	client = nc
	c.Printf("%s\n\n", greenf("Connected to gasless node at %s on %s. Sponsored: %t", nodeAddr, s.Network, s.Sponsored))
}

func nodeConfig(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}

	var cfg gasless.NodeConfig
	if err := client.get("/config", &cfg); err != nil {
		c.Printf("%s\n\n", redf("Error sending command to gasless node: %v", err))
		return
	}
	c.Printf("%s\n\n", greenf("Gasless node config:\n%v", prettify(cfg)))
}

func prettify(v interface{}) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err.Error()
	}
	return string(out)
}
