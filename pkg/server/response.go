/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/dburkart/abacus/pkg/calc"
	"github.com/dburkart/abacus/pkg/common/parse"
	"github.com/dburkart/abacus/pkg/proto"
	"github.com/pkg/errors"
)

// CalculateResponse evaluates expr and returns the status code and body to
// send back. A maxLength of zero or less disables the length check.
func CalculateResponse(expr string, maxLength int) (int, proto.Printable) {
	if maxLength > 0 && len(expr) > maxLength {
		return http.StatusRequestEntityTooLarge, proto.ErrResponse{
			Detail: fmt.Sprintf("expression is longer than %d bytes", maxLength),
		}
	}

	result, err := calc.Evaluate(expr)
	if err != nil {
		var e *parse.Error
		if errors.As(err, &e) {
			return http.StatusBadRequest, proto.ErrResponse{Detail: e.Message, Kind: e.Kind.String()}
		}
		return http.StatusInternalServerError, proto.ErrResponse{Detail: err.Error()}
	}

	return ResultResponse(expr, result)
}

// ResultResponse builds the reply for an expression that evaluated to result.
// JSON has no representation for non-finite values, so they are reported
// rather than clamped.
func ResultResponse(expr string, result float64) (int, proto.Printable) {
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return http.StatusBadRequest, proto.ErrResponse{
			Detail: fmt.Sprintf("result is not a finite number: %s", strconv.FormatFloat(result, 'g', -1, 64)),
		}
	}

	return http.StatusOK, proto.CalculateResponse{Expression: expr, Result: proto.Float(result)}
}

// InfoResponse describes the API
func InfoResponse() proto.InfoResponse {
	return proto.MessageInfo
}
