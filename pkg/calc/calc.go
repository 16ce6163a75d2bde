/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package calc evaluates arithmetic expressions made of numbers, the four
// basic operators, and parentheses. Nothing other than that grammar is ever
// interpreted.
//
// Evaluation runs in stages: Sanitize, scanner.Scan, parser.Parse, and a
// reduction of the resulting tree. Every failure is a *parse.Error whose Kind
// tells the caller why.
package calc

import (
	"github.com/dburkart/abacus/pkg/calc/ast"
	"github.com/dburkart/abacus/pkg/calc/parser"
	"github.com/dburkart/abacus/pkg/calc/scanner"
	"github.com/dburkart/abacus/pkg/common/parse"
	"github.com/pkg/errors"
)

// Expression is a sanitized, scanned, and parsed expression. It lives for a
// single evaluation.
type Expression struct {
	Input  string
	Tokens []parse.Token
	Root   ast.ASTNode
}

// Prepare runs every stage except the final reduction
func Prepare(text string) (*Expression, error) {
	input, err := Sanitize(text)
	if err != nil {
		return nil, err
	}

	tokens, err := scanner.Scan(input)
	if err != nil {
		return nil, err
	}

	p := parser.Parser{Tokens: tokens}
	root, err := p.Parse()
	if err != nil {
		return nil, err
	}

	return &Expression{Input: input, Tokens: tokens, Root: root}, nil
}

// Evaluate reduces the expression to a float64. Division by zero is an
// error; any other IEEE-754 result, including ±Inf and NaN, is returned as is.
func (e *Expression) Evaluate() (float64, error) {
	return e.Root.(ast.Numeric).DerivedValue()
}

// Evaluate sanitizes, parses, and reduces text in one call
func Evaluate(text string) (float64, error) {
	expr, err := Prepare(text)
	if err != nil {
		return 0, err
	}
	return expr.Evaluate()
}

// Describe renders a *parse.Error with a caret under the offending part of
// text. Sanitize errors point into text itself, later stages into its
// sanitized form.
func Describe(text string, err error) string {
	var e *parse.Error
	if !errors.As(err, &e) {
		return err.Error() + "\n"
	}

	input, serr := Sanitize(text)
	if serr != nil {
		input = text
	}
	return e.FormatError(input)
}
