/*
 * Copyright (c) 2023, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dburkart/abacus/pkg/proto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument tags the request with an id, attaches a request scoped logger to
// its context, and records the access log line and metrics once it is served.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(proto.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(proto.HeaderRequestID, id)

		log := s.log.With().Str("request-id", id).Logger()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r.WithContext(log.WithContext(r.Context())))

		elapsed := time.Since(start)
		s.metrics.IncRequests(endpoint, strconv.Itoa(rec.status))
		s.metrics.ObserveResponseNS(endpoint, elapsed.Nanoseconds())

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("handled request")
	}
}
