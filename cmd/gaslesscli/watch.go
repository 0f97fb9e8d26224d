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
	"sync"

	"github.com/abiosoft/ishell"
	"github.com/gorilla/websocket"

	"github.com/direct-state-transfer/gasless/api/rest"
)

var (
	watchCmd = &ishell.Cmd{
		Name: "watch",
		Help: "Print session and workflow changes as they happen. Usage: watch [on|off]",
		Func: watchFn,
		Completer: func([]string) []string {
			return []string{"on", "off"}
		},
	}

	watchMtx  sync.Mutex
	watchConn *websocket.Conn
)

func watchFn(c *ishell.Context) {
	if !checkArgs(c, 1) {
		return
	}
	switch c.Args[0] {
	case "on":
		watchOn(c)
	case "off":
		watchOff(c)
	default:
		c.Printf("%s\n\n", redf("Unknown option %q. Want on or off.", c.Args[0]))
	}
}

func watchOn(c *ishell.Context) {
	watchMtx.Lock()
	defer watchMtx.Unlock()
	if watchConn != nil {
		c.Printf("%s\n\n", yellowf("Already watching."))
		return
	}

	wsURL, err := client.eventsURL()
	if err != nil {
		c.Printf("%s\n\n", redf("Error watching events: %v", err))
		return
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		c.Printf("%s\n\n", redf("Error watching events: %v", err))
		return
	}
	watchConn = conn
	go readEvents(conn)
	c.Printf("%s\n\n", greenf("Watching events."))
}

func watchOff(c *ishell.Context) {
	watchMtx.Lock()
	defer watchMtx.Unlock()
	if watchConn == nil {
		c.Printf("%s\n\n", yellowf("Not watching."))
		return
	}
	watchConn.Close() // nolint: errcheck, gosec
	watchConn = nil
	c.Printf("%s\n\n", greenf("Stopped watching events."))
}

// readEvents prints the events until the connection is closed, either by
// watchOff or by the node.
func readEvents(conn *websocket.Conn) {
	for {
		var e rest.Event
		if err := conn.ReadJSON(&e); err != nil {
			break
		}
		sh.Lock()
		switch {
		case e.Session != nil:
			sh.Printf("Event: %s\n", prettifySession(*e.Session))
		case e.Workflow != nil:
			sh.Printf("Event: %s\n", prettifyState(*e.Workflow))
		}
		sh.Unlock()
	}

	watchMtx.Lock()
	if watchConn == conn {
		watchConn = nil
		sh.Printf("%s\n", yellowf("Event stream closed by node."))
	}
	watchMtx.Unlock()
}
