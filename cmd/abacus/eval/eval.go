/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package eval

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dburkart/abacus/pkg/calc"
	"github.com/dburkart/abacus/pkg/calc/ast"
	"github.com/dburkart/abacus/pkg/proto"
	"github.com/dburkart/abacus/pkg/repl"
	"github.com/dburkart/abacus/pkg/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "eval <expression>...",
	Short: "Evaluate expressions locally and print the results",
	Args:  cobra.MinimumNArgs(1),

	// The diagnostic has already been printed by the time an error is returned
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		writer := repl.NewOutputWriter(os.Stdout, viper.GetString("abacus.output"))

		return run(os.Stdout, writer, args, viper.GetBool("eval.ast"), viper.GetInt("abacus.max-length"))
	},
}

// run evaluates each expression in turn, stopping at the first failure
func run(out io.Writer, writer repl.OutputWriter, exprs []string, dumpAST bool, maxLength int) error {
	for _, text := range exprs {
		if maxLength > 0 && len(text) > maxLength {
			fmt.Fprintf(out, "expression is longer than %d bytes\n", maxLength)
			return errors.New("expression too long")
		}

		expr, err := calc.Prepare(text)
		if err != nil {
			fmt.Fprint(out, calc.Describe(text, err))
			return err
		}

		if dumpAST {
			fmt.Fprint(out, ast.Dump(expr.Root))
		}

		result, err := expr.Evaluate()
		if err != nil {
			fmt.Fprint(out, calc.Describe(text, err))
			return err
		}

		// Same response the server would give, non-finite results included
		code, resp := server.ResultResponse(text, result)
		if code != http.StatusOK {
			fmt.Fprintln(out, resp.(proto.ErrResponse).Detail)
			return errors.Errorf("unable to represent %v", result)
		}

		if err := writer.Write(resp); err != nil {
			return err
		}
	}

	return nil
}

func init() {
	// Flags for this command
	Command.Flags().Bool("ast", false, "Print the parsed tree before each result")

	// Bind flags to viper
	viper.BindPFlag("eval.ast", Command.Flags().Lookup("ast"))
}
