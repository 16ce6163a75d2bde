/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import "fmt"

type TokenType interface {
	ToString() string
}

// Location is a half-open byte range into the sanitized expression
type Location struct {
	Start int
	End   int
}

type Token struct {
	Type     TokenType
	Lexeme   string
	Location Location
}

// Describe returns a human readable rendering of the token for error messages
func (t Token) Describe() string {
	if t.Lexeme == "" {
		return "end of input"
	}
	return fmt.Sprintf("'%s' at position %d", t.Lexeme, t.Location.Start)
}
