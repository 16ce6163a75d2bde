/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)
	Handler() http.Handler

	// Collection
	IncStreamConnections()
	IncRequests(endpoint, code string)
	IncEvalErrors(kind string)
	ObserveResponseNS(endpoint string, t int64)
}

type metricsStore struct {
	registry          *prometheus.Registry
	StreamConnections prometheus.Counter
	Requests          *prometheus.CounterVec
	EvalErrors        *prometheus.CounterVec
	ResponseNS        *prometheus.HistogramVec
}

var (
	EndpointLabel = "endpoint"
	CodeLabel     = "code"
	KindLabel     = "kind"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
	)

	// 1µs up to ~4s
	buckets := prometheus.ExponentialBuckets(1000, 4, 12)

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		StreamConnections: factory.NewCounter(prometheus.CounterOpts{
			Name: "abacus_stream_connections_total",
			Help: "The total number of websocket stream connections",
		}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "abacus_requests_total",
			Help: "Request counts by endpoint and status code",
		}, []string{EndpointLabel, CodeLabel}),
		EvalErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "abacus_eval_errors_total",
			Help: "Expressions that failed to evaluate, by error kind",
		}, []string{KindLabel}),
		ResponseNS: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "abacus_response_ns",
			Help:    "Response times on requests made against an endpoint",
			Buckets: buckets,
		}, []string{EndpointLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) IncStreamConnections() {
	ms.StreamConnections.Inc()
}

func (ms *metricsStore) IncRequests(endpoint, code string) {
	ms.Requests.With(prometheus.Labels{EndpointLabel: endpoint, CodeLabel: code}).Inc()
}

func (ms *metricsStore) IncEvalErrors(kind string) {
	ms.EvalErrors.With(prometheus.Labels{KindLabel: kind}).Inc()
}

func (ms *metricsStore) ObserveResponseNS(endpoint string, t int64) {
	ms.ResponseNS.
		With(prometheus.Labels{EndpointLabel: endpoint}).
		Observe(float64(t))
}
