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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/api/rest"
	"github.com/direct-state-transfer/gasless/workflow"
)

func newTestServer(t *testing.T) *nodeClient {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/session", func(c *gin.Context) {
		c.JSON(http.StatusOK, rest.SessionResp{
			Session: gasless.Session{Status: gasless.Connected, Account: "0xabc", Agent: "Petra"},
			Network: gasless.Testnet,
		})
	})
	router.POST("/session/connect", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, rest.ErrorResp{Error: "unknown agent", Kind: "AgentError"})
	})
	router.POST("/submit", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, rest.StateResp{Snapshot: workflow.Snapshot{
			State:   workflow.Idle,
			Outcome: &gasless.Outcome{Kind: gasless.Failed, Message: "Message is empty", ErrorKind: "ValidationError"},
		}})
	})
	router.GET("/outcome", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return newNodeClient(srv.URL + "/")
}

func Test_NodeClient(t *testing.T) {
	nc := newTestServer(t)

	t.Run("happy", func(t *testing.T) {
		var s sessionResp
		require.NoError(t, nc.get("/session", &s))
		assert.Equal(t, gasless.Connected, s.Status)
		assert.Equal(t, gasless.Testnet, s.Network)
		assert.Equal(t, "Status: connected, Agent: Petra, Account: 0xabc, Network: testnet, Sponsored: false",
			prettifySession(s))
	})

	t.Run("validation_failure_decoded", func(t *testing.T) {
		var s stateResp
		require.NoError(t, nc.post("/submit", nil, &s))
		require.NotNil(t, s.Outcome)
		assert.Equal(t, "Failed (ValidationError): Message is empty", prettifyOutcome(s.Outcome))
	})

	t.Run("error_with_message", func(t *testing.T) {
		err := nc.post("/session/connect", rest.ConnectReq{Agent: "Unknown"}, nil)
		require.Error(t, err)
		assert.Equal(t, "unknown agent (AgentError)", err.Error())
	})

	t.Run("error_without_message", func(t *testing.T) {
		err := nc.get("/outcome", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func Test_EventsURL(t *testing.T) {
	u, err := newNodeClient("http://127.0.0.1:8080").eventsURL()
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:8080/events", u)

	u, err = newNodeClient("https://node.example.com/").eventsURL()
	require.NoError(t, err)
	assert.Equal(t, "wss://node.example.com/events", u)

	_, err = newNodeClient("ftp://node").eventsURL()
	assert.Error(t, err)
}

func Test_PrettifyOutcome(t *testing.T) {
	assert.Equal(t, "Pending", prettifyOutcome(&gasless.Outcome{Kind: gasless.Pending}))
	assert.Equal(t, "Confirmed: http://x/tx/0x1, gas sponsored",
		prettifyOutcome(&gasless.Outcome{Kind: gasless.Confirmed, ExplorerURL: "http://x/tx/0x1", Sponsored: true}))
	assert.Equal(t, "Confirmed: http://x/tx/0x1, fee 0.0001 ETH",
		prettifyOutcome(&gasless.Outcome{Kind: gasless.Confirmed, ExplorerURL: "http://x/tx/0x1", Fee: "0.0001 ETH"}))
}
