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
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/direct-state-transfer/gasless"
	"github.com/direct-state-transfer/gasless/api/rest"
)

type (
	sessionResp = rest.SessionResp
	stateResp   = rest.StateResp
)

type agentsResp struct {
	Agents []gasless.AgentInfo `json:"agents"`
}

type outcomeResp struct {
	Outcome *gasless.Outcome `json:"outcome"`
}

// nodeClient talks to the REST API of a gasless node.
type nodeClient struct {
	baseURL string
	http    *http.Client
}

func newNodeClient(baseURL string) *nodeClient {
	return &nodeClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *nodeClient) get(path string, resp interface{}) error {
	return c.do(http.MethodGet, path, nil, resp)
}

func (c *nodeClient) post(path string, req, resp interface{}) error {
	return c.do(http.MethodPost, path, req, resp)
}

func (c *nodeClient) put(path string, req, resp interface{}) error {
	return c.do(http.MethodPut, path, req, resp)
}

// do sends the request and decodes the response into resp. For responses with
// an error status, the error returned carries the message sent by the node.
// 422 is decoded into resp as it carries the state with a validation failure.
func (c *nodeClient) do(method, path string, req, resp interface{}) error {
	var body bytes.Buffer
	if req != nil {
		if err := json.NewEncoder(&body).Encode(req); err != nil {
			return errors.WithMessage(err, "encoding request")
		}
	}
	httpReq, err := http.NewRequest(method, c.baseURL+path, &body)
	if err != nil {
		return errors.WithMessage(err, "creating request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return errors.WithMessage(err, "sending request")
	}
	defer httpResp.Body.Close() // nolint: errcheck

	if httpResp.StatusCode >= 400 && httpResp.StatusCode != http.StatusUnprocessableEntity {
		var errResp rest.ErrorResp
		if err := json.NewDecoder(httpResp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			return errors.Errorf("node responded with %s", httpResp.Status)
		}
		return errors.Errorf("%s (%s)", errResp.Error, errResp.Kind)
	}
	if resp == nil {
		return nil
	}
	return errors.WithMessage(json.NewDecoder(httpResp.Body).Decode(resp), "decoding response")
}

// eventsURL returns the websocket URL of the event stream.
func (c *nodeClient) eventsURL() (string, error) {
	u, err := url.Parse(c.baseURL + "/events")
	if err != nil {
		return "", errors.WithStack(err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", errors.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u.String(), nil
}
