/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"fmt"

	"github.com/dburkart/abacus/pkg/calc/scanner"
	"github.com/dburkart/abacus/pkg/common/parse"
)

type ASTNode interface {
	Value() string
}

type Visitor interface {
	Visit(ASTNode) Visitor
}

// Numeric nodes reduce to a float64. Reduction follows IEEE-754 double
// semantics except that dividing by zero is an error.
type Numeric interface {
	DerivedValue() (float64, error)
}

type (
	BaseNode struct {
		Token parse.Token
	}

	NumberNode struct {
		BaseNode
		Val float64
	}

	UnaryOpNode struct {
		BaseNode
		Operator parse.Token
		Operand  ASTNode
	}

	BinaryOpNode struct {
		BaseNode
		Left  ASTNode
		Op    parse.Token
		Right ASTNode
	}

	GroupNode struct {
		BaseNode
		LParen parse.Location
		Inner  ASTNode
		RParen parse.Location
	}
)

// -- BaseNode

func (b *BaseNode) Value() string {
	return b.Token.Lexeme
}

//-- NumberNode

func MakeNumberNode(tok parse.Token) (*NumberNode, error) {
	val, err := scanner.ParseNumber(tok)
	if err != nil {
		return nil, err
	}
	return &NumberNode{BaseNode: BaseNode{Token: tok}, Val: val}, nil
}

func (n NumberNode) DerivedValue() (float64, error) {
	return n.Val, nil
}

//-- UnaryOpNode

func (u UnaryOpNode) DerivedValue() (float64, error) {
	val, err := u.Operand.(Numeric).DerivedValue()
	if err != nil {
		return 0, err
	}

	switch u.Operator.Type {
	case scanner.TOK_MINUS:
		return -val, nil
	case scanner.TOK_PLUS:
		return val, nil
	}

	panic(fmt.Sprintf("Unknown unary operator '%s'", u.Value()))
}

//-- BinaryOpNode

func (b BinaryOpNode) DerivedValue() (float64, error) {
	// Chains like 1+2+...+n lean left, so follow the left spine in a loop
	// rather than recursing once per operator
	spine := []*BinaryOpNode{&b}
	left := b.Left
	for {
		n, ok := left.(*BinaryOpNode)
		if !ok {
			break
		}
		spine = append(spine, n)
		left = n.Left
	}

	acc, err := left.(Numeric).DerivedValue()
	if err != nil {
		return 0, err
	}

	for i := len(spine) - 1; i >= 0; i-- {
		rh, err := spine[i].Right.(Numeric).DerivedValue()
		if err != nil {
			return 0, err
		}

		acc, err = spine[i].apply(acc, rh)
		if err != nil {
			return 0, err
		}
	}

	return acc, nil
}

func (b *BinaryOpNode) apply(lh, rh float64) (float64, error) {
	switch b.Op.Type {
	case scanner.TOK_PLUS:
		return lh + rh, nil
	case scanner.TOK_MINUS:
		return lh - rh, nil
	case scanner.TOK_STAR:
		return lh * rh, nil
	case scanner.TOK_SLASH:
		if rh == 0 {
			return 0, parse.NewError(parse.DivisionByZero, b.Op,
				fmt.Sprintf("division by zero at position %d", b.Op.Location.Start))
		}
		return lh / rh, nil
	}

	panic(fmt.Sprintf("Unknown operator '%s'", b.Value()))
}

//-- GroupNode

func (g GroupNode) Value() string {
	return "()"
}

func (g GroupNode) DerivedValue() (float64, error) {
	return g.Inner.(Numeric).DerivedValue()
}
