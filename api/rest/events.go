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

package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/direct-state-transfer/gasless/workflow"
)

// Event types sent on the event stream.
const (
	SessionEvent  = "session"
	WorkflowEvent = "workflow"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is a change notification sent on the event stream. Only the field
// matching the type is set.
type Event struct {
	Type     string       `json:"type"`
	Session  *SessionResp `json:"session,omitempty"`
	Workflow *StateResp   `json:"workflow,omitempty"`
}

// Events handles GET /events. It upgrades the connection to a websocket and
// sends the current session and workflow state, followed by an event for every
// change, until the client goes away. Every session event is followed by a
// workflow event carrying the updated readiness.
func (a *API) Events(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.Logger.Errorf("Upgrading to websocket: %v", err)
		return
	}
	defer conn.Close() // nolint: errcheck

	sessions, cancelSessions := a.n.Provider.Subscribe()
	defer cancelSessions()
	snapshots, cancelSnapshots := a.n.Orchestrator.Subscribe()
	defer cancelSnapshots()

	// Reads are only used for detecting the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	a.Logger.Debug("Event stream subscriber connected")
	session, state := a.sessionResp(), a.stateResp()
	if a.send(conn, Event{Type: SessionEvent, Session: &session}) != nil ||
		a.send(conn, Event{Type: WorkflowEvent, Workflow: &state}) != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		var err error
		select {
		case <-closed:
			a.Logger.Debug("Event stream subscriber disconnected")
			return
		case <-c.Request.Context().Done():
			return
		case session := <-sessions:
			s := SessionResp{Session: session, Network: a.n.Network(), Sponsored: a.n.Sponsored()}
			err = a.send(conn, Event{Type: SessionEvent, Session: &s})
			if err == nil {
				// Readiness of the workflow depends on the session.
				state := a.stateResp()
				err = a.send(conn, Event{Type: WorkflowEvent, Workflow: &state})
			}
		case snapshot := <-snapshots:
			s := StateResp{Snapshot: snapshot, Ready: a.ready(snapshot)}
			err = a.send(conn, Event{Type: WorkflowEvent, Workflow: &s})
		case <-ping.C:
			err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		}
		if err != nil {
			a.Logger.Debugf("Writing to event stream: %v", err)
			return
		}
	}
}

func (a *API) ready(s workflow.Snapshot) bool {
	return s.CanSubmit && a.n.Orchestrator.Ready()
}

func (a *API) send(conn *websocket.Conn, e Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(e)
}
