/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed set of reasons an expression can fail to evaluate
type ErrorKind int

const (
	EmptyExpression ErrorKind = iota
	InvalidCharacter
	MalformedNumber
	UnbalancedParentheses
	UnexpectedToken
	UnexpectedEndOfInput
	DivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyExpression:
		return "EmptyExpression"
	case InvalidCharacter:
		return "InvalidCharacter"
	case MalformedNumber:
		return "MalformedNumber"
	case UnbalancedParentheses:
		return "UnbalancedParentheses"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case DivisionByZero:
		return "DivisionByZero"
	}
	return "Unknown"
}

// Error is the terminal outcome of a failed evaluation. Location refers to the
// sanitized input, i.e. after whitespace has been removed.
type Error struct {
	Kind     ErrorKind
	Location Location
	Message  string
}

func NewError(kind ErrorKind, t Token, m string) *Error {
	return &Error{Kind: kind, Location: t.Location, Message: m}
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf reports the ErrorKind carried by err, if any
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func (e *Error) FormatError(input string) string {
	repeat := e.Location.End - e.Location.Start - 1
	if repeat < 0 {
		repeat = 0
	}

	start := e.Location.Start
	if start > len(input) {
		start = len(input)
	}

	errorString := "Error found in expression:\n"
	errorString += input
	errorString += fmt.Sprintf("\n%s^%s ", strings.Repeat(" ", start), strings.Repeat("~", repeat))
	errorString += fmt.Sprintf("%s\n", e.Message)
	return errorString
}
