/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package abacus

import (
	"fmt"

	"github.com/dburkart/abacus/pkg/proto"
)

type Client interface {
	Open(proto.ConnectionString, uint) error
	Close() error
	// Send evaluates expr and returns the status code and response body. A
	// failed evaluation is not an error, it is an ErrResponse.
	Send(expr string) (int, proto.Printable, error)
	Calculate(expr string) (float64, error)
}

// ResponseError is returned by Calculate when the expression was rejected
type ResponseError struct {
	Code int
	proto.ErrResponse
}

func (e *ResponseError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Code, e.Kind, e.Detail)
}

// calculate turns the result of a Send into a number or a *ResponseError
func calculate(code int, resp proto.Printable, err error) (float64, error) {
	if err != nil {
		return 0, err
	}

	switch t := resp.(type) {
	case proto.CalculateResponse:
		return float64(t.Result), nil
	case proto.ErrResponse:
		return 0, &ResponseError{Code: code, ErrResponse: t}
	}

	return 0, fmt.Errorf("unexpected response %T", resp)
}
