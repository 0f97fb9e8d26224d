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

// Package rest serves the node API over HTTP: the wallet session, the message
// and the transaction workflow, a websocket stream of changes and the metrics.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/direct-state-transfer/gasless/log"
	"github.com/direct-state-transfer/gasless/node"
)

const shutdownTimeout = 5 * time.Second

// API serves the node over HTTP.
type API struct {
	log.Logger

	n      *node.Node
	router *gin.Engine
}

// NewAPI returns an API serving the node.
func NewAPI(n *node.Node) *API {
	gin.SetMode(gin.ReleaseMode)
	a := &API{
		Logger: log.NewLoggerWithField("api", "rest"),
		n:      n,
	}

	router := gin.New()
	router.Use(gin.Recovery(), loggingMiddleware(a.Logger))

	router.GET("/session", a.GetSession)
	router.POST("/session/connect", a.Connect)
	router.POST("/session/disconnect", a.Disconnect)
	router.GET("/agents", a.ListAgents)
	router.GET("/message", a.GetMessage)
	router.PUT("/message", a.SetMessage)
	router.POST("/submit", a.Submit)
	router.GET("/state", a.GetState)
	router.GET("/outcome", a.GetOutcome)
	router.GET("/config", a.GetConfig)
	router.GET("/events", a.Events)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(n.Registry, promhttp.HandlerOpts{})))

	a.router = router
	return a
}

// Handler returns the http handler of the API.
func (a *API) Handler() http.Handler {
	return a.router
}

// ListenAndServe serves the API at the address until ctx is cancelled.
func (a *API) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	a.Logger.Infof("Serving API at %s", addr)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving api")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutting down api server")
}

// loggingMiddleware logs every request at debug level.
func loggingMiddleware(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.Debugf("[%s] %s - %d (%v)", c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
