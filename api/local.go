/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package abacus

import (
	"github.com/dburkart/abacus/pkg/proto"
	"github.com/dburkart/abacus/pkg/server"
)

// LocalClient evaluates expressions in-process, producing the same responses
// a server would.
type LocalClient struct {
	target proto.ConnectionString
	// MaxLength is applied the way the server applies it, 0 disables it
	MaxLength int
}

func (client *LocalClient) Open(target proto.ConnectionString, _ uint) error {
	client.target = target
	return nil
}

func (client *LocalClient) Close() error {
	return nil
}

func (client *LocalClient) Send(expr string) (int, proto.Printable, error) {
	code, resp := server.CalculateResponse(expr, client.MaxLength)
	return code, resp, nil
}

func (client *LocalClient) Calculate(expr string) (float64, error) {
	return calculate(client.Send(expr))
}
