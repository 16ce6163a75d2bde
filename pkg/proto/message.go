/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	MessageInfo = InfoResponse{
		Message:  "abacus calculator API",
		Endpoint: `POST /calculate with body: {"calculate": "5+3"}`,
	}
)

// Printable values can be rendered by the REPL output writers
type Printable interface {
	Headers() []string
	Values() [][]string
}

// Float is a float64 that always marshals with a fractional part or an
// exponent, so 8 is written as 8.0. Non-finite values do not marshal.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, errors.Errorf("unsupported value: %s", strconv.FormatFloat(v, 'g', -1, 64))
	}

	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'e'
	}

	b := strconv.AppendFloat(nil, v, format, -1, 64)
	if format == 'f' && !bytes.ContainsRune(b, '.') {
		b = append(b, ".0"...)
	}
	return b, nil
}

func (f Float) String() string {
	b, err := f.MarshalJSON()
	if err != nil {
		return strconv.FormatFloat(float64(f), 'g', -1, 64)
	}
	return string(b)
}

type (
	CalculateRequest struct {
		Calculate *string `json:"calculate"`
	}

	CalculateResponse struct {
		Expression string `json:"expression"`
		Result     Float  `json:"result"`
	}

	ErrResponse struct {
		Detail string `json:"detail"`
		Kind   string `json:"kind,omitempty"`
	}

	InfoResponse struct {
		Message  string `json:"message"`
		Endpoint string `json:"endpoint"`
	}
)

// NewCalculateRequest builds a request body for expr
func NewCalculateRequest(expr string) CalculateRequest {
	return CalculateRequest{Calculate: &expr}
}

// ParseCalculateRequest decodes a request body. The "calculate" field is
// required, and must be a string.
func ParseCalculateRequest(b []byte) (string, error) {
	req := CalculateRequest{}
	if err := json.Unmarshal(b, &req); err != nil {
		return "", errors.Wrap(err, "request body is not valid JSON")
	}
	if req.Calculate == nil {
		return "", errors.New("field required: calculate")
	}
	return *req.Calculate, nil
}

func (r CalculateRequest) MarshalZerologObject(e *zerolog.Event) {
	if r.Calculate != nil {
		e.Str("calculate", *r.Calculate)
	}
}

// CalculateResponse
// --------------------------

func (r CalculateResponse) MarshalZerologObject(e *zerolog.Event) {
	e.Str("expression", r.Expression).Float64("result", float64(r.Result))
}

func (r CalculateResponse) Headers() []string {
	return []string{"Expression", "Result"}
}

func (r CalculateResponse) Values() [][]string {
	return [][]string{{r.Expression, r.Result.String()}}
}

// ErrResponse
// --------------------------

func (r ErrResponse) Error() string {
	return r.Detail
}

func (r ErrResponse) Headers() []string {
	return []string{"Kind", "Detail"}
}

func (r ErrResponse) Values() [][]string {
	return [][]string{{r.Kind, r.Detail}}
}

// InfoResponse
// --------------------------

func (r InfoResponse) Headers() []string {
	return []string{"Message", "Endpoint"}
}

func (r InfoResponse) Values() [][]string {
	return [][]string{{r.Message, r.Endpoint}}
}
