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

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/workflow"
)

// SessionResp is the wallet session along with the network it is bound to.
type SessionResp struct {
	gasless.Session
	Network   gasless.Network `json:"network"`
	Sponsored bool            `json:"sponsored"`
}

// StateResp is the workflow state. Ready reports if a submit now would pass
// validation, for graying out the trigger.
type StateResp struct {
	workflow.Snapshot
	Ready bool `json:"ready"`
}

// ErrorResp is the body of every failed request.
type ErrorResp struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// ConnectReq is the body of a connect request.
type ConnectReq struct {
	Agent string `json:"agent" binding:"required"`
}

// MessageReq is the body of a set message request.
type MessageReq struct {
	Message string `json:"message"`
}

func (a *API) sessionResp() SessionResp {
	return SessionResp{
		Session:   a.n.Provider.Session(),
		Network:   a.n.Network(),
		Sponsored: a.n.Sponsored(),
	}
}

func (a *API) stateResp() StateResp {
	return StateResp{
		Snapshot: a.n.Orchestrator.Snapshot(),
		Ready:    a.n.Orchestrator.Ready(),
	}
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, ErrorResp{
		Error: gasless.ErrorMessage(err),
		Kind:  gasless.KindOf(err).String(),
	})
}

// GetSession handles GET /session.
func (a *API) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, a.sessionResp())
}

// Connect handles POST /session/connect.
func (a *API) Connect(c *gin.Context) {
	var req ConnectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, gasless.WrapTxError(gasless.ValidationError, err))
		return
	}
	if err := a.n.Provider.Connect(c.Request.Context(), req.Agent); err != nil {
		abortWithError(c, connectErrorStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, a.sessionResp())
}

func connectErrorStatus(err error) int {
	switch {
	case errors.Is(err, gasless.ErrUnknownAgent):
		return http.StatusNotFound
	case errors.Is(err, gasless.ErrAgentNotReady):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

// Disconnect handles POST /session/disconnect.
func (a *API) Disconnect(c *gin.Context) {
	a.n.Provider.Disconnect()
	c.JSON(http.StatusOK, a.sessionResp())
}

// ListAgents handles GET /agents.
func (a *API) ListAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": a.n.Provider.ListAgents()})
}

// GetMessage handles GET /message.
func (a *API) GetMessage(c *gin.Context) {
	c.JSON(http.StatusOK, MessageReq{Message: a.n.Orchestrator.Message()})
}

// SetMessage handles PUT /message.
func (a *API) SetMessage(c *gin.Context) {
	var req MessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, gasless.WrapTxError(gasless.ValidationError, err))
		return
	}
	a.n.Orchestrator.SetMessage(req.Message)
	c.JSON(http.StatusOK, a.stateResp())
}

// Submit handles POST /submit. The attempt continues after the response, its
// progress is reported by GET /state and the event stream.
func (a *API) Submit(c *gin.Context) {
	result, err := a.n.Submit()
	if err != nil {
		if errors.Is(err, gasless.ErrSubmitInProgress) {
			abortWithError(c, http.StatusConflict, err)
			return
		}
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	state := a.stateResp()
	if o := validationFailure(result); o != nil {
		state.Outcome = o
		c.JSON(http.StatusUnprocessableEntity, state)
		return
	}
	c.JSON(http.StatusAccepted, state)
}

// validationFailure returns the outcome of an attempt that failed validation.
// Validation runs before Start returns, so its outcome is already on the channel.
// Nil is returned for attempts that passed validation.
func validationFailure(result <-chan gasless.Outcome) *gasless.Outcome {
	select {
	case o, ok := <-result:
		if ok && o.Kind == gasless.Failed && o.ErrorKind == gasless.ValidationError.String() {
			return &o
		}
	default:
	}
	return nil
}

// GetState handles GET /state.
func (a *API) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, a.stateResp())
}

// GetOutcome handles GET /outcome.
func (a *API) GetOutcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"outcome": a.n.Orchestrator.Outcome()})
}

// GetConfig handles GET /config.
func (a *API) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, a.n.GetConfig())
}
