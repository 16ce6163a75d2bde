/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package bench

import (
	"math/rand"
	"strconv"
	"strings"
)

// Generator builds random expressions. Most are well formed, some divide by
// zero or are left unbalanced so the error paths get exercised too.
type Generator struct {
	rand     *rand.Rand
	maxDepth int
}

func NewGenerator(seed int64, maxDepth int) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed)), maxDepth: maxDepth}
}

func (g *Generator) Expression() string {
	var b strings.Builder
	g.expression(&b, 0)

	expr := b.String()
	if g.rand.Intn(20) == 0 {
		expr = "(" + expr
	}
	return expr
}

func (g *Generator) expression(b *strings.Builder, depth int) {
	g.operand(b, depth)
	for n := g.rand.Intn(3); n > 0; n-- {
		if g.rand.Intn(4) == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte("+-*/"[g.rand.Intn(4)])
		if g.rand.Intn(4) == 0 {
			b.WriteByte(' ')
		}
		g.operand(b, depth)
	}
}

func (g *Generator) operand(b *strings.Builder, depth int) {
	if g.rand.Intn(8) == 0 {
		b.WriteByte('-')
	}

	if depth < g.maxDepth && g.rand.Intn(4) == 0 {
		b.WriteByte('(')
		g.expression(b, depth+1)
		b.WriteByte(')')
		return
	}

	switch g.rand.Intn(6) {
	case 0:
		b.WriteString(strconv.FormatFloat(g.rand.Float64()*100, 'f', 2, 64))
	case 1:
		b.WriteByte('0')
	default:
		b.WriteString(strconv.Itoa(g.rand.Intn(1000)))
	}
}
