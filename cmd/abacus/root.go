/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package abacus

import (
	"fmt"
	"os"
	"strings"

	"github.com/dburkart/abacus/cmd/abacus/bench"
	"github.com/dburkart/abacus/cmd/abacus/client"
	"github.com/dburkart/abacus/cmd/abacus/eval"
	"github.com/dburkart/abacus/cmd/abacus/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "abacus",
		Short: "Abacus is a small arithmetic calculator service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
			return validateConfig()
		},
		SilenceUsage: true,
		Version:      Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("host", "H", "local", "Server to send expressions to, or 'local' to evaluate in-process")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the abacus config file (default ./config.toml)")
	rootCmd.PersistentFlags().Int("max-length", 4096, "Longest accepted expression in bytes, 0 for no limit")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format of results [csv, json, text]")

	// Bind viper config to the root flags
	viper.BindPFlag("abacus.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("abacus.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("abacus.host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("abacus.max-length", rootCmd.PersistentFlags().Lookup("max-length"))
	viper.BindPFlag("abacus.output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("abacus version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	// Bind viper keys to ENV variables, abacus.max-length is ABACUS_MAX_LENGTH
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Register commands on the root binary command
	server.CommitHash = CommitHash
	for _, cmd := range []*cobra.Command{server.Command, client.Command, eval.Command, bench.Command} {
		cmd.Version = rootCmd.Version
		rootCmd.AddCommand(cmd)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
