/*
 * Copyright (c) 2023, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package abacus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(2, 0))
	assert.Equal(t, 2, clamp(2, 2))
	assert.Equal(t, 2, clamp(2, 7))
}

func TestInitLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	viper.Set("abacus.verbose", 1)
	initLogLevel()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	viper.Set("abacus.verbose", 5)
	initLogLevel()
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	viper.Set("abacus.verbose", 0)
	initLogLevel()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestInitConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "abacus.toml")
	require.NoError(t, os.WriteFile(file, []byte("[abacus]\nport = 9000\nmax-length = 128\n"), 0644))

	viper.Set("logger", zerolog.Nop())
	initConfig(file)

	assert.Equal(t, 9000, viper.GetInt("abacus.port"))
	assert.Equal(t, 128, viper.GetInt("abacus.max-length"))
}

func TestValidateConfig(t *testing.T) {
	defer viper.Set("abacus.output", "text")
	defer viper.Set("abacus.max-length", 4096)

	viper.Set("abacus.output", "text")
	viper.Set("abacus.max-length", 4096)
	assert.NoError(t, validateConfig())

	viper.Set("abacus.output", "yaml")
	assert.Error(t, validateConfig())

	viper.Set("abacus.output", "json")
	viper.Set("abacus.max-length", -1)
	assert.Error(t, validateConfig())
}
