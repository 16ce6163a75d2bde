/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package client

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	abacus "github.com/dburkart/abacus/api"
	"github.com/dburkart/abacus/pkg/calc"
	"github.com/dburkart/abacus/pkg/calc/ast"
	"github.com/dburkart/abacus/pkg/calc/scanner"
	"github.com/dburkart/abacus/pkg/proto"
	"github.com/dburkart/abacus/pkg/repl"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "client",
	Short: "Interactive terminal for evaluating expressions",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)
		output := viper.GetString("abacus.output")

		host := viper.GetString("abacus.host")
		target, err := proto.ParseConnectionString(host)
		if err != nil {
			log.Fatal().Err(err).Msg("error parsing connection string")
		}

		client, err := abacus.NewClient(host)
		if err != nil {
			log.Fatal().Err(err).Str("address", target.Address).Msg("unable to create client")
		}
		defer client.Close()

		if local, ok := client.(*abacus.LocalClient); ok {
			local.MaxLength = viper.GetInt("abacus.max-length")
		}

		session := &session{
			client: client,
			log:    log,
			out:    os.Stdout,
			writer: repl.NewOutputWriter(os.Stdout, output),
		}

		if !readline.DefaultIsTerminal() {
			session.pipe(os.Stdin)
			return
		}
		session.prompt()
	},
}

type session struct {
	client abacus.Client
	log    zerolog.Logger
	out    io.Writer
	writer repl.OutputWriter
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("tokens"),
	readline.PcItem("ast"),
	readline.PcItem("exit"),
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func (s *session) prompt() {
	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}

		if !s.handle(ln.Line) {
			break
		}
		fmt.Fprintln(s.out)
	}
	rl.Clean()
}

// pipe evaluates one expression per line of r
func (s *session) pipe(r io.Reader) {
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		if !s.handle(lines.Text()) {
			return
		}
	}
	if err := lines.Err(); err != nil {
		s.log.Error().Err(err).Msg("error reading input")
	}
}

// handle runs a single line of input, and returns false once the session
// should end
func (s *session) handle(line string) bool {
	cmd := repl.ParseREPLCommand(line)

	switch cmd.Kind {
	case repl.CommandExit:
		return false

	case repl.CommandHelp:
		fmt.Fprintln(s.out, "usage:")
		fmt.Fprintln(s.out, "    <expression>     evaluate an expression, e.g. (2+3)*4")
		fmt.Fprint(s.out, completer.Tree("    "))

	case repl.CommandTokens:
		text, err := calc.Sanitize(cmd.Expression)
		if err != nil {
			fmt.Fprint(s.out, calc.Describe(cmd.Expression, err))
			break
		}
		tokens, err := scanner.Scan(text)
		if err != nil {
			fmt.Fprint(s.out, calc.Describe(cmd.Expression, err))
			break
		}
		s.write(repl.TokenTable(tokens))

	case repl.CommandAST:
		expr, err := calc.Prepare(cmd.Expression)
		if err != nil {
			fmt.Fprint(s.out, calc.Describe(cmd.Expression, err))
			break
		}
		fmt.Fprint(s.out, ast.Dump(expr.Root))

	case repl.CommandExpression:
		if cmd.Expression == "" {
			break
		}

		_, resp, err := s.client.Send(cmd.Expression)
		if err != nil {
			s.log.Fatal().Err(err).Msg("error sending expression")
		}
		s.write(resp)
	}

	return true
}

func (s *session) write(v proto.Printable) {
	if err := s.writer.Write(v); err != nil {
		s.log.Error().Err(err).Msg("unable to write output")
	}
}
