/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package calc

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dburkart/abacus/pkg/common/parse"
)

const allowed = "0123456789.+-*/()"

// Sanitize removes every whitespace rune from text and rejects anything that
// is not a digit, '.', an operator, or a parenthesis.
func Sanitize(text string) (string, error) {
	expr := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	if expr == "" {
		return "", &parse.Error{Kind: parse.EmptyExpression, Message: "empty expression"}
	}

	var (
		first   = -1
		width   int
		invalid []string
		seen    = map[rune]bool{}
	)

	// Offsets are reported against the raw text, whitespace included
	for i, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(allowed, r) {
			continue
		}

		if first < 0 {
			first = i
			_, width = utf8.DecodeRuneInString(text[i:])
		}

		if !seen[r] {
			seen[r] = true
			invalid = append(invalid, fmt.Sprintf("'%c'", r))
		}
	}

	if first >= 0 {
		return "", &parse.Error{
			Kind:     parse.InvalidCharacter,
			Location: parse.Location{Start: first, End: first + width},
			Message: fmt.Sprintf("invalid character(s) %s: only numbers and operators (+, -, *, /) are allowed",
				strings.Join(invalid, ", ")),
		}
	}

	return expr, nil
}
