/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package abacus

import (
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dburkart/abacus/pkg/proto"
	"github.com/dburkart/abacus/pkg/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemote(t *testing.T, size uint) Client {
	t.Helper()

	srv := server.New(zerolog.Nop(), server.Config{MaxLength: 64})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := NewClientPool(ts.URL, size)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("local")
	require.NoError(t, err)
	assert.IsType(t, &LocalClient{}, client)

	client, err = NewClient("abacus://localhost:8000")
	require.NoError(t, err)
	assert.IsType(t, &RemoteClient{}, client)

	_, err = NewClient("ftp://localhost")
	assert.Error(t, err)
}

func TestLocalCalculate(t *testing.T) {
	client, err := NewClient("")
	require.NoError(t, err)

	got, err := client.Calculate("10*2+5")
	require.NoError(t, err)
	assert.Equal(t, 25.0, got)

	_, err = client.Calculate("10/0")
	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusBadRequest, respErr.Code)
	assert.Equal(t, "DivisionByZero", respErr.Kind)
}

func TestRemoteCalculate(t *testing.T) {
	client := newRemote(t, 1)

	got, err := client.Calculate("(2+3)*4")
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)

	code, resp, err := client.Send("5 + 3")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, proto.CalculateResponse{Expression: "5 + 3", Result: 8}, resp)
}

func TestRemoteErrors(t *testing.T) {
	client := newRemote(t, 1)

	tt := []struct {
		expr string
		code int
		kind string
	}{
		{"(5+3", http.StatusBadRequest, "UnbalancedParentheses"},
		{"5+abc", http.StatusBadRequest, "InvalidCharacter"},
		{"", http.StatusBadRequest, "EmptyExpression"},
		{"1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1+1", http.StatusRequestEntityTooLarge, ""},
	}

	for _, tc := range tt {
		_, err := client.Calculate(tc.expr)

		var respErr *ResponseError
		require.True(t, errors.As(err, &respErr), "%q: %v", tc.expr, err)
		assert.Equal(t, tc.code, respErr.Code)
		assert.Equal(t, tc.kind, respErr.Kind)
		assert.NotEmpty(t, respErr.Detail)
	}
}

func TestRemoteMatchesLocal(t *testing.T) {
	remote := newRemote(t, 4)
	local, err := NewClient("local")
	require.NoError(t, err)

	exprs := []string{"1.5+2.5", "8-4-2", "-(-3)", "0.1+0.2", "7/3", "1.2.3", "3+"}
	for _, expr := range exprs {
		lc, lr, err := local.Send(expr)
		require.NoError(t, err)
		rc, rr, err := remote.Send(expr)
		require.NoError(t, err)

		assert.Equal(t, lc, rc, expr)
		assert.Equal(t, lr, rr, expr)
	}
}

func TestRemotePool(t *testing.T) {
	client := newRemote(t, 4)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := client.Calculate("2+3*4")
			assert.NoError(t, err)
			assert.Equal(t, 14.0, got)
		}()
	}
	wg.Wait()
}

func TestRemoteUnreachable(t *testing.T) {
	// Grab a free port and release it so nothing is listening there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	client, err := NewClient("abacus://" + addr)
	require.NoError(t, err)
	client.(*RemoteClient).backoff = time.Millisecond

	_, err = client.Calculate("1+1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to reach")
}
