/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type buildInfoCollector struct {
	info      *prometheus.Desc
	maxLength *prometheus.Desc

	maxLengthValue int
}

func NewBuildInfoCollector(version, commit string, maxLength int) prometheus.Collector {
	return &buildInfoCollector{
		info: prometheus.NewDesc(
			"abacus_build_info",
			"Build information of the running server.",
			nil, prometheus.Labels{"version": version, "commit": commit},
		),
		maxLength: prometheus.NewDesc(
			"abacus_max_expression_bytes",
			"Longest expression the server accepts, 0 when unlimited.",
			nil, nil,
		),
		maxLengthValue: maxLength,
	}
}

// Describe implements Collector.
func (c *buildInfoCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.info
	ch <- c.maxLength
}

// Collect implements Collector.
func (c *buildInfoCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1)
	ch <- prometheus.MustNewConstMetric(c.maxLength, prometheus.GaugeValue, float64(c.maxLengthValue))
}
