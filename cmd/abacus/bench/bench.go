/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package bench

import (
	"sync"
	"sync/atomic"
	"time"

	abacus "github.com/dburkart/abacus/api"
	"github.com/dburkart/abacus/pkg/proto"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "bench",
	Short: "Send generated expressions to a server and check every answer",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		host := viper.GetString("abacus.host")
		count := viper.GetInt("bench.count")
		concurrency := viper.GetInt("bench.concurrency")
		if concurrency < 1 {
			concurrency = 1
		}

		client, err := abacus.NewClientPool(host, uint(concurrency))
		if err != nil {
			log.Fatal().Err(err).Str("host", host).Msg("unable to create client")
		}
		defer client.Close()

		seed := viper.GetInt64("bench.seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gen := NewGenerator(seed, 3)

		exprs := make([]string, count)
		for i := range exprs {
			exprs[i] = gen.Expression()
		}

		var report Report
		elapsed := timeIt(func() {
			report = Run(client, &abacus.LocalClient{}, exprs, concurrency)
		})

		rate := float64(report.Sent) / elapsed.Seconds()
		log.Info().
			Int64("seed", seed).
			Str("sent", humanize.Comma(report.Sent)).
			Str("rejected", humanize.Comma(report.Rejected)).
			Str("rate", humanize.CommafWithDigits(rate, 1)+"/s").
			Str("dur", elapsed.String()).
			Msg("bench finished")

		if report.Mismatched > 0 || report.Failed > 0 {
			log.Fatal().
				Int64("mismatched", report.Mismatched).
				Int64("failed", report.Failed).
				Msg("server answers did not match local evaluation")
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().Int("count", 1000, "Number of expressions to send")
	Command.Flags().Int("concurrency", 4, "Number of requests in flight")
	Command.Flags().Int64("seed", 0, "Seed for the expression generator, 0 picks one")

	// Bind flags to viper
	viper.BindPFlag("bench.count", Command.Flags().Lookup("count"))
	viper.BindPFlag("bench.concurrency", Command.Flags().Lookup("concurrency"))
	viper.BindPFlag("bench.seed", Command.Flags().Lookup("seed"))
}

// Report tallies a bench run
type Report struct {
	Sent int64
	// Rejected expressions were answered with an error by both sides
	Rejected int64
	// Mismatched answers differ between the client under test and the
	// reference
	Mismatched int64
	// Failed requests never got an answer
	Failed int64
}

// Run sends every expression to client over workers goroutines, and compares
// each answer with the one reference gives.
func Run(client, reference abacus.Client, exprs []string, workers int) Report {
	var report Report
	var wg sync.WaitGroup

	work := make(chan string)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for expr := range work {
				check(client, reference, expr, &report)
			}
		}()
	}

	for _, expr := range exprs {
		work <- expr
	}
	close(work)
	wg.Wait()

	return report
}

func check(client, reference abacus.Client, expr string, report *Report) {
	atomic.AddInt64(&report.Sent, 1)

	code, resp, err := client.Send(expr)
	if err != nil {
		atomic.AddInt64(&report.Failed, 1)
		return
	}

	wantCode, want, err := reference.Send(expr)
	if err != nil || code != wantCode || !equal(resp, want) {
		atomic.AddInt64(&report.Mismatched, 1)
		return
	}

	if _, ok := resp.(proto.ErrResponse); ok {
		atomic.AddInt64(&report.Rejected, 1)
	}
}

func equal(a, b proto.Printable) bool {
	return a == b
}

func timeIt(f func()) time.Duration {
	t := time.Now()
	f()
	return time.Since(t)
}
