/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

var Protocol = "abacus"

type ConnectionString struct {
	Local   bool
	Address string
	BaseURL string
}

// ParseConnectionString takes a connection string and parses it into the parts
// the application needs to make a connection. It will only return an error if
// the scheme is not "abacus", "http", or "https", or if a remote target has
// no host.
//
// Formats:
//
//	local
//	abacus://<host:port>
//	http(s)://<host:port>[/prefix]
func ParseConnectionString(connStr string) (ConnectionString, error) {
	ret := ConnectionString{
		Local:   true,
		Address: "local",
	}

	if connStr == "" || connStr == "local" {
		return ret, nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return ConnectionString{}, errors.Wrapf(err, "invalid connection string %s", connStr)
	}

	switch u.Scheme {
	case Protocol, "http", "https":
		if u.Host == "" {
			return ConnectionString{}, errors.New(fmt.Sprintf("missing host in %s", connStr))
		}

		scheme := u.Scheme
		if scheme == Protocol {
			scheme = "http"
		}

		ret.Local = false
		ret.Address = u.Host
		ret.BaseURL = scheme + "://" + u.Host + strings.TrimSuffix(u.Path, "/")
		return ret, nil
	}

	return ConnectionString{}, errors.New(fmt.Sprintf("unrecognized scheme: %s", u.Scheme))
}
