/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parser

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/dburkart/abacus/pkg/calc/ast"
	"github.com/dburkart/abacus/pkg/calc/scanner"
	"github.com/dburkart/abacus/pkg/common/parse"
)

func parseString(t *testing.T, input string) (ast.ASTNode, error) {
	tokens, err := scanner.Scan(input)
	if err != nil {
		t.Fatalf("unable to scan %q: %s", input, err)
	}

	p := Parser{Tokens: tokens}
	return p.Parse()
}

func TestPrecedence(t *testing.T) {
	root, err := parseString(t, "2+3*4")
	if err != nil {
		t.Fatal(err)
	}

	if fmt.Sprint(reflect.TypeOf(root)) != "*ast.BinaryOpNode" {
		t.Fatalf("wanted root node to be *ast.BinaryOpNode, found %s", reflect.TypeOf(root))
	}

	add := root.(*ast.BinaryOpNode)
	if add.Value() != "+" {
		t.Errorf("wanted '+' at the root, got '%s'", add.Value())
	}

	if mul, ok := add.Right.(*ast.BinaryOpNode); !ok || mul.Value() != "*" {
		t.Errorf("wanted '*' on the right of '+', got %s", reflect.TypeOf(add.Right))
	}
}

func TestLeftAssociativity(t *testing.T) {
	root, err := parseString(t, "8-4-2")
	if err != nil {
		t.Fatal(err)
	}

	outer := root.(*ast.BinaryOpNode)
	if _, ok := outer.Left.(*ast.BinaryOpNode); !ok {
		t.Errorf("wanted (8-4)-2 to lean left, got left child %s", reflect.TypeOf(outer.Left))
	}
	if n, ok := outer.Right.(*ast.NumberNode); !ok || n.Val != 2 {
		t.Errorf("wanted 2 on the right, got %s", reflect.TypeOf(outer.Right))
	}
}

func TestParseErrors(t *testing.T) {
	tt := []struct {
		input string
		kind  parse.ErrorKind
		start int
	}{
		{"", parse.EmptyExpression, 0},
		{"(5+3", parse.UnbalancedParentheses, 0},
		{"((5+3)", parse.UnbalancedParentheses, 0},
		{"3+4)", parse.UnexpectedToken, 3},
		{"3+", parse.UnexpectedEndOfInput, 2},
		{"3*", parse.UnexpectedEndOfInput, 2},
		{"*3", parse.UnexpectedToken, 0},
		{"()", parse.UnexpectedToken, 1},
		{"++3", parse.UnexpectedToken, 1},
		{"3---2", parse.UnexpectedToken, 3},
		{"(3(4))", parse.UnexpectedToken, 2},
	}

	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			_, err := parseString(t, tc.input)
			if err == nil {
				t.Fatalf("expected %q to fail", tc.input)
			}

			e, ok := err.(*parse.Error)
			if !ok {
				t.Fatalf("wanted *parse.Error, got %T", err)
			}

			if e.Kind != tc.kind {
				t.Errorf("wanted %s, got %s (%s)", tc.kind, e.Kind, e.Message)
			}

			if e.Location.Start != tc.start {
				t.Errorf("wanted error at %d, got %d", tc.start, e.Location.Start)
			}
		})
	}
}

func TestNestingDepth(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("(", n) + "1" + strings.Repeat(")", n)
	}

	if _, err := parseString(t, nested(MaxDepth)); err != nil {
		t.Errorf("wanted %d levels to parse, got %s", MaxDepth, err)
	}

	_, err := parseString(t, nested(MaxDepth+1))
	e, ok := err.(*parse.Error)
	if !ok {
		t.Fatalf("wanted *parse.Error, got %v", err)
	}
	if e.Kind != parse.UnexpectedToken {
		t.Errorf("wanted UnexpectedToken, got %s", e.Kind)
	}
	if e.Location.Start != MaxDepth {
		t.Errorf("wanted error at %d, got %d", MaxDepth, e.Location.Start)
	}

	_, err = parseString(t, nested(1_000_000))
	if kind, _ := parse.KindOf(err); kind != parse.UnexpectedToken {
		t.Errorf("wanted UnexpectedToken, got %v", err)
	}

	// Signs count toward the depth too
	_, err = parseString(t, strings.Repeat("-(", MaxDepth)+"1"+strings.Repeat(")", MaxDepth))
	if kind, _ := parse.KindOf(err); kind != parse.UnexpectedToken {
		t.Errorf("wanted UnexpectedToken, got %v", err)
	}
}

func TestParserIsReusableAfterDepthError(t *testing.T) {
	tokens, err := scanner.Scan(strings.Repeat("(", MaxDepth+1) + "1" + strings.Repeat(")", MaxDepth+1))
	if err != nil {
		t.Fatal(err)
	}
	p := Parser{Tokens: tokens}
	if _, err := p.Parse(); err == nil {
		t.Fatal("expected nesting past the limit to fail")
	}

	shallow, err := scanner.Scan("(1)")
	if err != nil {
		t.Fatal(err)
	}
	p.Tokens = shallow
	if _, err := p.Parse(); err != nil {
		t.Errorf("wanted a fresh parse to succeed, got %s", err)
	}
}

func TestParseWithoutEOF(t *testing.T) {
	p := Parser{Tokens: []parse.Token{
		{Type: scanner.TOK_NUMBER, Lexeme: "3", Location: parse.Location{Start: 0, End: 1}},
		{Type: scanner.TOK_PLUS, Lexeme: "+", Location: parse.Location{Start: 1, End: 2}},
	}}

	_, err := p.Parse()
	kind, _ := parse.KindOf(err)
	if kind != parse.UnexpectedEndOfInput {
		t.Errorf("wanted UnexpectedEndOfInput, got %v", err)
	}
}

func TestParse(t *testing.T) {
	testDirectory, err := filepath.Abs("../../../test/parsing/expression")
	if err != nil {
		panic(err)
	}

	inputDirectory := path.Join(testDirectory, "input")
	expectationDirectory := path.Join(testDirectory, "expectations")

	tests, err := filepath.Glob(fmt.Sprintf("%s/*.txt", inputDirectory))
	if err != nil {
		t.Fatal(err)
	}
	if len(tests) == 0 {
		t.Fatalf("no golden inputs found in %s", inputDirectory)
	}

	for _, test := range tests {
		t.Run(filepath.Base(test), func(t *testing.T) {
			var expected string
			expectation := path.Join(expectationDirectory, filepath.Base(test))
			expectedBytes, err := os.ReadFile(expectation)
			if err == nil {
				expected = string(expectedBytes)
			}

			file, err := os.Open(test)
			if err != nil {
				t.Fatalf("Error opening test: %s", test)
			}
			defer file.Close()

			lines := bufio.NewScanner(file)

			shouldPass := false
			lines.Scan()
			if strings.ToUpper(lines.Text()) == "PASS" {
				shouldPass = true
			}

			actual := ""
			for lines.Scan() {
				input := lines.Text()

				var root ast.ASTNode
				tokens, err := scanner.Scan(input)
				if err == nil {
					p := Parser{Tokens: tokens}
					root, err = p.Parse()
				}

				if shouldPass && err != nil {
					t.Error(err)
					continue
				}
				if !shouldPass && err == nil {
					t.Errorf("Expected expression to fail: %s", input)
					continue
				}

				if shouldPass {
					actual += ast.Dump(root)
				} else {
					kind, _ := parse.KindOf(err)
					actual += fmt.Sprintf("%s: %s\n", kind, err)
				}
			}

			if os.Getenv("SHOULD_REBASE") != "" {
				err := os.WriteFile(expectation, []byte(actual), 0666)
				if err != nil {
					t.Error(err)
				}
				expected = actual
			}

			if a, e := strings.TrimSpace(actual), strings.TrimSpace(expected); a != e {
				t.Errorf("Expectation not met:\n%s", diff.LineDiff(e, a))
			}
		})
	}
}
