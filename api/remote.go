/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package abacus

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/dburkart/abacus/pkg/proto"
	"github.com/pkg/errors"
)

const retries = 3

// A RemoteClient holds the data needed to talk to an abacus server.
type RemoteClient struct {
	target  proto.ConnectionString
	http    *http.Client
	slots   chan struct{}
	backoff time.Duration
}

func (client *RemoteClient) Open(target proto.ConnectionString, size uint) error {
	client.target = target
	client.slots = make(chan struct{}, size)
	client.backoff = time.Second
	client.http = &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: int(size),
		},
	}

	return nil
}

func (client *RemoteClient) Close() error {
	client.http.CloseIdleConnections()
	return nil
}

// Send an expression to the server's calculate endpoint.
func (client *RemoteClient) Send(expr string) (int, proto.Printable, error) {
	body, err := json.Marshal(proto.NewCalculateRequest(expr))
	if err != nil {
		return 0, nil, errors.Wrap(err, "unable to encode request")
	}

	client.slots <- struct{}{}
	defer func() {
		<-client.slots
	}()

	resp, err := client.post(body)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "unable to read response")
	}

	if resp.StatusCode == http.StatusOK {
		ok := proto.CalculateResponse{}
		if err = json.Unmarshal(b, &ok); err != nil {
			return 0, nil, errors.Wrap(err, "unable to decode response")
		}
		return resp.StatusCode, ok, nil
	}

	failed := proto.ErrResponse{}
	if err = json.Unmarshal(b, &failed); err != nil || failed.Detail == "" {
		failed.Detail = http.StatusText(resp.StatusCode)
	}
	return resp.StatusCode, failed, nil
}

func (client *RemoteClient) Calculate(expr string) (float64, error) {
	return calculate(client.Send(expr))
}

// post sends body, retrying with backoff while the server cannot be reached
func (client *RemoteClient) post(body []byte) (*http.Response, error) {
	url := client.target.BaseURL + proto.EndpointCalculate

	var resp *http.Response
	var err error

	for i := 0; ; i++ {
		resp, err = client.http.Post(url, "application/json", bytes.NewReader(body))
		if err == nil || i == retries || !unreachable(err) {
			break
		}

		delay := time.Duration(math.Exp2(float64(i)))
		time.Sleep(delay * client.backoff)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "unable to reach %s", client.target.Address)
	}
	return resp, nil
}

func unreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
