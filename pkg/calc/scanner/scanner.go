/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dburkart/abacus/pkg/common/parse"
)

type Scanner struct {
	Input     string
	Start     int
	Pos       int
	LastWidth int
}

// MatchNumber returns the length of the next token, assuming it is a
// number. The run is maximal, so "1.2.3" is matched as a whole and rejected
// later by ValidNumber.
//
// Grammar:
//
//	number          = *DIGIT [ "." ] *DIGIT
func (s *Scanner) MatchNumber() int {
	r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
	size := 0

	for i := s.Pos; isDigit(r) || r == '.'; {
		size += width
		i += width
		r, width = utf8.DecodeRuneInString(s.Input[i:])
	}

	return size
}

// ValidNumber reports whether a lexeme matched by MatchNumber holds at least
// one digit and at most one decimal point.
func ValidNumber(lexeme string) bool {
	return strings.Count(lexeme, ".") <= 1 && strings.IndexFunc(lexeme, isDigit) >= 0
}

// Emit the next Token found on Scanner.Input
func (s *Scanner) Emit() parse.Token {
	var t parse.Token

	oldStart := s.Start
	s.Start = s.Pos

	if s.Pos >= len(s.Input) {
		t.Type = TOK_EOF
		t.Location = parse.Location{Start: len(s.Input), End: len(s.Input)}
		s.LastWidth = s.Start - oldStart
		return t
	}

	r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
	skip := width

	switch {
	case r == '+':
		t.Type = TOK_PLUS
	case r == '-':
		t.Type = TOK_MINUS
	case r == '*':
		t.Type = TOK_STAR
	case r == '/':
		t.Type = TOK_SLASH
	case r == '(':
		t.Type = TOK_PAREN_L
	case r == ')':
		t.Type = TOK_PAREN_R
	case isDigit(r) || r == '.':
		skip = s.MatchNumber()
		if ValidNumber(s.Input[s.Pos : s.Pos+skip]) {
			t.Type = TOK_NUMBER
		} else {
			t.Type = TOK_INVALID
		}
	default:
		t.Type = TOK_INVALID
	}

	s.Pos = s.Start + skip

	t.Lexeme = s.Input[s.Start:s.Pos]
	t.Location = parse.Location{Start: s.Start, End: s.Pos}
	s.Start = s.Pos

	s.LastWidth = s.Start - oldStart

	return t
}

// Rewind the last read token
func (s *Scanner) Rewind() {
	s.Start -= s.LastWidth
	s.Pos = s.Start
	s.LastWidth = 0
}

// Scan tokenizes all of input. The returned slice always ends with a TOK_EOF
// token. Scanning stops at the first invalid token.
func Scan(input string) ([]parse.Token, error) {
	s := Scanner{Input: input}
	tokens := []parse.Token{}

	for {
		tok := s.Emit()

		if tok.Type == TOK_INVALID {
			if isDigit(rune(tok.Lexeme[0])) || tok.Lexeme[0] == '.' {
				return nil, parse.NewError(parse.MalformedNumber, tok,
					fmt.Sprintf("malformed number '%s' at position %d", tok.Lexeme, tok.Location.Start))
			}
			// Only reachable for input that has not been through
			// calc.Sanitize
			return nil, parse.NewError(parse.InvalidCharacter, tok,
				fmt.Sprintf("invalid character '%s' at position %d", tok.Lexeme, tok.Location.Start))
		}

		tokens = append(tokens, tok)
		if tok.Type == TOK_EOF {
			return tokens, nil
		}
	}
}

// ParseNumber converts a TOK_NUMBER lexeme to its IEEE-754 double value.
// Lexemes too large for a float64 become ±Inf rather than an error.
func ParseNumber(tok parse.Token) (float64, error) {
	val, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, parse.NewError(parse.MalformedNumber, tok,
			fmt.Sprintf("malformed number '%s' at position %d", tok.Lexeme, tok.Location.Start))
	}
	return val, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
