/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dburkart/abacus/pkg/repl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var b bytes.Buffer
	err := run(&b, repl.NewOutputWriter(&b, "csv"), []string{"5+3", "(2+3)*4"}, false, 0)
	require.NoError(t, err)
	assert.Equal(t, "Expression,Result\n5+3,8.0\nExpression,Result\n(2+3)*4,20.0\n", b.String())
}

func TestRunAST(t *testing.T) {
	var b bytes.Buffer
	err := run(&b, repl.NewOutputWriter(&b, "json"), []string{"-2"}, true, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(b.String(), "UnaryOpNode[-]\n"), b.String())
	assert.Contains(t, b.String(), `"result":-2.0`)
}

func TestRunStopsAtFirstError(t *testing.T) {
	var b bytes.Buffer
	err := run(&b, repl.NewOutputWriter(&b, "csv"), []string{"1+1", "10/0", "2+2"}, false, 0)
	require.Error(t, err)

	out := b.String()
	assert.Contains(t, out, "1+1,2.0")
	assert.Contains(t, out, "Error found in expression:\n10/0\n  ^ division by zero at position 2\n")
	assert.NotContains(t, out, "2+2")
}

func TestRunTooLong(t *testing.T) {
	var b bytes.Buffer
	err := run(&b, repl.NewOutputWriter(&b, "csv"), []string{"1+2+3"}, false, 3)
	require.Error(t, err)
	assert.Contains(t, b.String(), "longer than 3 bytes")
}

func TestRunNonFinite(t *testing.T) {
	var b bytes.Buffer
	err := run(&b, repl.NewOutputWriter(&b, "csv"), []string{"1" + strings.Repeat("0", 400)}, false, 0)
	require.Error(t, err)
	assert.Contains(t, b.String(), "not a finite number")
}
