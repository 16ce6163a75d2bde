/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

var (
	// EndpointInfo describes the API
	EndpointInfo = "/"
	// EndpointCalculate evaluates a single expression
	EndpointCalculate = "/calculate"
	// EndpointStream evaluates one expression per websocket text frame
	EndpointStream = "/ws"
	// EndpointMetrics exposes prometheus metrics on the metrics port
	EndpointMetrics = "/metrics"

	// HeaderRequestID carries the per-request identifier
	HeaderRequestID = "X-Request-Id"
)
