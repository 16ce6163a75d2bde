/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"strings"

	"github.com/dburkart/abacus/pkg/common/parse"
)

type CommandKind int

const (
	CommandExpression CommandKind = iota
	CommandHelp
	CommandExit
	CommandTokens
	CommandAST
)

// Command is a single line of prompt input
type Command struct {
	Kind       CommandKind
	Expression string
}

// ParseREPLCommand parses input from the command line
//
// This function assumes there is no '\n'
func ParseREPLCommand(line string) Command {
	line = strings.TrimSpace(line)

	// all commands taking an argument have a space after them, if not then
	// they are command only like EXIT
	cmd, rest, _ := strings.Cut(line, " ")

	switch strings.ToUpper(cmd) {
	case "HELP":
		if rest == "" {
			return Command{Kind: CommandHelp}
		}
	case "EXIT", "QUIT":
		if rest == "" {
			return Command{Kind: CommandExit}
		}
	case "TOKENS":
		return Command{Kind: CommandTokens, Expression: strings.TrimSpace(rest)}
	case "AST":
		return Command{Kind: CommandAST, Expression: strings.TrimSpace(rest)}
	}

	return Command{Kind: CommandExpression, Expression: line}
}

// TokenTable renders a scanned expression
type TokenTable []parse.Token

func (t TokenTable) Headers() []string {
	return []string{"Type", "Lexeme", "Start", "End"}
}

func (t TokenTable) Values() [][]string {
	rows := make([][]string, 0, len(t))
	for _, tok := range t {
		rows = append(rows, []string{
			tok.Type.ToString(),
			tok.Lexeme,
			fmt.Sprint(tok.Location.Start),
			fmt.Sprint(tok.Location.End),
		})
	}
	return rows
}
