/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package abacus

import (
	"github.com/dburkart/abacus/pkg/proto"
)

// NewClient creates a new Client which can be used to evaluate expressions,
// either in-process or against a remote abacus server. The client is thread
// safe, but only has one request in flight at a time. For more, use
// NewClientPool instead.
func NewClient(connstr string) (Client, error) {
	client, err := NewClientPool(connstr, 1)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// NewClientPool creates a new Client which allows up to size concurrent
// requests to a remote abacus server. This is useful for sending large
// volumes of expressions.
func NewClientPool(connstr string, size uint) (Client, error) {
	var client Client
	var err error

	target, err := proto.ParseConnectionString(connstr)
	if err != nil {
		return nil, err
	}

	if target.Local {
		client = &LocalClient{}
	} else {
		client = &RemoteClient{}
	}

	if size == 0 {
		size = 1
	}

	err = client.Open(target, size)
	if err != nil {
		return nil, err
	}

	return client, nil
}
