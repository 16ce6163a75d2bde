/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dburkart/abacus/pkg/proto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Port        int
	MetricsPort int
	// MaxLength caps the length of an expression in bytes, 0 disables it
	MaxLength int

	Version string
	Commit  string
}

type Server struct {
	log     zerolog.Logger
	metrics MetricsStore

	port        int
	metricsPort int
	maxLength   int
}

func New(log zerolog.Logger, config Config) Server {
	metrics := NewMetricsStore()
	metrics.RegisterCollector(NewBuildInfoCollector(config.Version, config.Commit, config.MaxLength))

	return Server{
		log,
		metrics,
		config.Port,
		config.MetricsPort,
		config.MaxLength,
	}
}

// Metrics returns the store the server records into
func (s *Server) Metrics() MetricsStore {
	return s.metrics
}

// Handler returns the calculator API. Handlers share no state other than the
// logger and the metric vectors.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+proto.EndpointInfo+"{$}", s.instrument(proto.EndpointInfo, s.handleInfo))
	mux.HandleFunc("POST "+proto.EndpointCalculate, s.instrument(proto.EndpointCalculate, s.handleCalculate))
	mux.HandleFunc("GET "+proto.EndpointStream, s.instrument(proto.EndpointStream, s.handleStream))

	return mux
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, InfoResponse())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes()))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, r, http.StatusRequestEntityTooLarge, proto.ErrResponse{
				Detail: fmt.Sprintf("request body is larger than %d bytes", tooLarge.Limit),
			})
			return
		}
		log.Error().Err(err).Msg("unable to read request body")
		s.writeJSON(w, r, http.StatusBadRequest, proto.ErrResponse{Detail: "unable to read request body"})
		return
	}

	expr, err := proto.ParseCalculateRequest(body)
	if err != nil {
		log.Debug().Err(err).Msg("rejected request body")
		s.writeJSON(w, r, http.StatusUnprocessableEntity, proto.ErrResponse{Detail: err.Error()})
		return
	}

	code, resp := CalculateResponse(expr, s.maxLength)
	s.record(log, expr, resp)
	s.writeJSON(w, r, code, resp)
}

// record notes the outcome of one evaluation
func (s *Server) record(log *zerolog.Logger, expr string, resp proto.Printable) {
	switch t := resp.(type) {
	case proto.CalculateResponse:
		log.Debug().Object("response", t).Msg("evaluated expression")
	case proto.ErrResponse:
		if t.Kind != "" {
			s.metrics.IncEvalErrors(t.Kind)
		}
		log.Debug().Str("expression", expr).Str("kind", t.Kind).Str("detail", t.Detail).Msg("expression failed")
	}
}

// maxBodyBytes bounds the request body. JSON escaping can grow an expression
// up to six-fold, plus room for the envelope.
func (s *Server) maxBodyBytes() int64 {
	if s.maxLength <= 0 {
		return 1 << 20
	}
	return int64(s.maxLength)*6 + 1024
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("unable to write response")
	}
}

// ServeCalculator serves the API until ctx is done
func (s *Server) ServeCalculator(ctx context.Context) error {
	s.log.Info().Int("port", s.port).Int("max-length", s.maxLength).Msg("listening for calculations")

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.serveUntilDone(ctx, srv)
}

// ServeMetrics serves /metrics until ctx is done
func (s *Server) ServeMetrics(ctx context.Context) error {
	s.log.Info().Int("port", s.metricsPort).Msg(proto.EndpointMetrics + " endpoint started")

	mux := http.NewServeMux()
	mux.Handle(proto.EndpointMetrics, s.metrics.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.metricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.serveUntilDone(ctx, srv)
}

func (s *Server) serveUntilDone(ctx context.Context, srv *http.Server) error {
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return errors.Wrapf(err, "error listening on %s", srv.Addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info().Str("addr", srv.Addr).Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrapf(err, "unable to shut down %s", srv.Addr)
	}
	return nil
}
