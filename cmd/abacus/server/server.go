/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dburkart/abacus/pkg/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommitHash is reported by the build info metric
var CommitHash = "n/a"

var Command = &cobra.Command{
	Use:   "server",
	Short: "Serve the calculator API over HTTP",

	Run: func(cmd *cobra.Command, args []string) {
		logger := viper.Get("logger").(zerolog.Logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Initialize the calculator server
		srv := server.New(logger, server.Config{
			Port:        viper.GetInt("abacus.port"),
			MetricsPort: viper.GetInt("abacus.prom-port"),
			MaxLength:   viper.GetInt("abacus.max-length"),
			Version:     cmd.Version,
			Commit:      CommitHash,
		})

		// Serve the metrics endpoint
		go func() {
			if err := srv.ServeMetrics(ctx); err != nil {
				logger.Error().Err(err).Msg("metrics endpoint stopped")
			}
		}()

		// Serve the calculator
		if err := srv.ServeCalculator(ctx); err != nil {
			logger.Fatal().Err(err).Msg("calculator stopped")
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().IntP("port", "p", 8000, "Port to serve the calculator API on")
	Command.Flags().Int("prom-port", 2112, "Set the port for /metrics")

	// Bind flags to viper
	viper.BindPFlag("abacus.port", Command.Flags().Lookup("port"))
	viper.BindPFlag("abacus.prom-port", Command.Flags().Lookup("prom-port"))
}
