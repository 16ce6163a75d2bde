/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parser

import (
	"fmt"

	"github.com/dburkart/abacus/pkg/calc/ast"
	"github.com/dburkart/abacus/pkg/calc/scanner"
	"github.com/dburkart/abacus/pkg/common/parse"
)

// MaxDepth bounds how deeply groups and signs may nest, which in turn bounds
// the recursion of the parser and of every walk over the tree it builds.
const MaxDepth = 1000

// Parser is a recursive descent parser over the output of scanner.Scan. The
// token slice is expected to end with a TOK_EOF token.
type Parser struct {
	Tokens []parse.Token
	pos    int
	depth  int
}

func (p *Parser) Parse() (root ast.ASTNode, err error) {
	defer func() {
		if e := recover(); e != nil {
			parseError, ok := e.(*parse.Error)
			if !ok {
				panic(e)
			}
			root = nil
			err = parseError
		}
	}()

	p.pos = 0
	p.depth = 0

	first := p.emit()
	if first.Type == scanner.TOK_EOF {
		return nil, parse.NewError(parse.EmptyExpression, first, "empty expression")
	}
	p.rewind()

	root = p.expression()

	// If we didn't parse all the input, return an error
	tok := p.emit()
	if tok.Type != scanner.TOK_EOF {
		message := fmt.Sprintf("unexpected token %s", tok.Describe())
		if tok.Type == scanner.TOK_PAREN_R {
			message += ", no matching '('"
		}
		return nil, parse.NewError(parse.UnexpectedToken, tok, message)
	}

	return root, nil
}

// expression returns the result of a single term, or a left-leaning chain
// of BinaryOpNodes
//
// Grammar:
//
//	expression      = term *( ( "+" / "-" ) term )
func (p *Parser) expression() ast.ASTNode {
	lh := p.term()

	for {
		tok := p.emit()
		if tok.Type != scanner.TOK_PLUS && tok.Type != scanner.TOK_MINUS {
			p.rewind()
			return lh
		}

		rh := p.term()

		lh = &ast.BinaryOpNode{
			BaseNode: ast.BaseNode{Token: tok},
			Left:     lh,
			Op:       tok,
			Right:    rh,
		}
	}
}

// term returns the result of a single factor, or a left-leaning chain of
// BinaryOpNodes
//
// Grammar:
//
//	term            = factor *( ( "*" / "/" ) factor )
func (p *Parser) term() ast.ASTNode {
	lh := p.factor()

	for {
		tok := p.emit()
		if tok.Type != scanner.TOK_STAR && tok.Type != scanner.TOK_SLASH {
			p.rewind()
			return lh
		}

		rh := p.factor()

		lh = &ast.BinaryOpNode{
			BaseNode: ast.BaseNode{Token: tok},
			Left:     lh,
			Op:       tok,
			Right:    rh,
		}
	}
}

// factor returns a NumberNode, a GroupNode, or a UnaryOpNode
//
// Grammar:
//
//	factor          = number / "(" expression ")" / ( "-" / "+" ) factor
func (p *Parser) factor() ast.ASTNode {
	tok := p.emit()

	switch tok.Type {
	case scanner.TOK_NUMBER:
		node, err := ast.MakeNumberNode(tok)
		if err != nil {
			panic(err)
		}
		return node

	case scanner.TOK_PLUS, scanner.TOK_MINUS:
		p.enter(tok)
		defer p.leave()

		// Only one sign per operand: "-3" and "-(-3)" are fine, "--3" is not
		next := p.emit()
		if next.Type == scanner.TOK_PLUS || next.Type == scanner.TOK_MINUS {
			panic(parse.NewError(parse.UnexpectedToken, next,
				fmt.Sprintf("unexpected token %s, only one sign is allowed per operand", next.Describe())))
		}
		p.rewind()

		return &ast.UnaryOpNode{
			BaseNode: ast.BaseNode{Token: tok},
			Operator: tok,
			Operand:  p.factor(),
		}

	case scanner.TOK_PAREN_L:
		p.enter(tok)
		defer p.leave()

		inner := p.expression()

		closing := p.emit()
		switch closing.Type {
		case scanner.TOK_PAREN_R:
			return &ast.GroupNode{
				BaseNode: ast.BaseNode{Token: tok},
				LParen:   tok.Location,
				Inner:    inner,
				RParen:   closing.Location,
			}
		case scanner.TOK_EOF:
			panic(parse.NewError(parse.UnbalancedParentheses, tok,
				fmt.Sprintf("unbalanced parentheses: '(' at position %d is never closed", tok.Location.Start)))
		}

		panic(parse.NewError(parse.UnexpectedToken, closing,
			fmt.Sprintf("unexpected token %s, expected ')'", closing.Describe())))

	case scanner.TOK_EOF:
		panic(parse.NewError(parse.UnexpectedEndOfInput, tok,
			"unexpected end of input, expected a number or '('"))
	}

	panic(parse.NewError(parse.UnexpectedToken, tok,
		fmt.Sprintf("unexpected token %s, expected a number or '('", tok.Describe())))
}

func (p *Parser) enter(tok parse.Token) {
	p.depth++
	if p.depth > MaxDepth {
		panic(parse.NewError(parse.UnexpectedToken, tok,
			fmt.Sprintf("unexpected token %s, expression nests deeper than %d levels", tok.Describe(), MaxDepth)))
	}
}

func (p *Parser) leave() {
	p.depth--
}

// emit returns the next token, or a TOK_EOF once the input is exhausted
func (p *Parser) emit() parse.Token {
	if p.pos >= len(p.Tokens) {
		p.pos++

		end := 0
		if len(p.Tokens) > 0 {
			end = p.Tokens[len(p.Tokens)-1].Location.End
		}
		return parse.Token{Type: scanner.TOK_EOF, Location: parse.Location{Start: end, End: end}}
	}

	tok := p.Tokens[p.pos]
	p.pos++
	return tok
}

// rewind un-reads the last emitted token
func (p *Parser) rewind() {
	p.pos--
}
