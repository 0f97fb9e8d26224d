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
	"flag"
	"sync"

	"github.com/abiosoft/ishell"
	"github.com/fatih/color"
)

// shell is a wrapper around the ishell type that includes a mutex.
// The mutex is locked by the watch go-routine when printing events.
type shell struct {
	*ishell.Shell
	sync.Mutex
}

// singleton instance of ishell that can be accessed throughout this program.
var sh *shell

var (
	nodeURL = flag.String("node", "http://127.0.0.1:8080", "URL of the gasless node")

	// singleton instance of the node client used by all commands.
	client *nodeClient

	// SPrintf style functions that produce colored text.
	redf, greenf, yellowf func(format string, a ...interface{}) string
)

func init() {
	redf = color.New(color.FgRed).SprintfFunc()
	greenf = color.New(color.FgGreen).SprintfFunc()
	yellowf = color.New(color.FgYellow).SprintfFunc()
}

func main() {
	flag.Parse()

	// New shell includes help, clear, exit commands by default.
	sh = &shell{
		Shell: ishell.New(),
	}
	// Read and write history to $HOME/.gasless_history
	sh.SetHomeHistoryPath(".gasless_history")

	sh.AddCmd(nodeCmd)
	sh.AddCmd(agentsCmd)
	sh.AddCmd(connectCmd)
	sh.AddCmd(disconnectCmd)
	sh.AddCmd(sessionCmd)
	sh.AddCmd(postCmd)
	sh.AddCmd(stateCmd)
	sh.AddCmd(outcomeCmd)
	sh.AddCmd(watchCmd)

	sh.Printf("Gasless node cli application.\n\n")

	c := newNodeClient(*nodeURL)
	var s sessionResp
	if err := c.get("/session", &s); err != nil {
		sh.Printf("%s\n\n", redf("Error connecting to gasless node at %s: %v", *nodeURL, err))
	} else {
		client = c
		sh.Printf("Connected to gasless node at %s on %s\n\n", *nodeURL, s.Network)
	}

	sh.Run()
}

// checkArgs prints the usage and returns false if the number of arguments is
// not as expected. A negative want requires at least one argument.
func checkArgs(c *ishell.Context, want int) bool {
	if client == nil {
		c.Printf("%s\n\n", redf("Not connected to gasless node, connect using 'node connect' command."))
		return false
	}
	if want < 0 && len(c.Args) > 0 || len(c.Args) == want {
		return true
	}
	if want < 0 {
		c.Printf("%s\n\n", redf("Got 0 arg(s). Want at least 1."))
	} else {
		c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(c.Args), want))
	}
	c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
	return false
}
