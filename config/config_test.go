// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/prng-audit/logger"
	"github.com/0xsoniclabs/prng-audit/seeds"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestGetFlagValue(t *testing.T) {
	// app for testing
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name: "testcmd",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name: "intflag",
				},
				&cli.Uint64Flag{
					Name: "uint64flag",
				},
				&cli.Float64Flag{
					Name: "float64flag",
				},
				&cli.StringFlag{
					Name: "stringflag",
				},
				&cli.PathFlag{
					Name: "pathflag",
				},
				&cli.BoolFlag{
					Name: "boolflag",
				},
				&cli.IntSliceFlag{
					Name: "intsliceflag",
				},
			},
		},
	}

	newContext := func(set *flag.FlagSet) *cli.Context {
		ctx := cli.NewContext(app, set, nil)
		ctx.Command = app.Commands[0]
		return ctx
	}

	// Setup test cases
	testCases := []struct {
		name          string
		setupFlags    func() *cli.Context
		flagToTest    interface{}
		expectedValue interface{}
	}{
		{
			name: "IntFlag value",
			setupFlags: func() *cli.Context {
				set := flag.NewFlagSet("test", 0)
				set.Int("intflag", 42, "")
				return newContext(set)
			},
			flagToTest:    cli.IntFlag{Name: "intflag"},
			expectedValue: 42,
		},
		{
			name: "Uint64Flag value",
			setupFlags: func() *cli.Context {
				set := flag.NewFlagSet("test", 0)
				set.Uint64("uint64flag", 100, "")
				return newContext(set)
			},
			flagToTest:    cli.Uint64Flag{Name: "uint64flag"},
			expectedValue: uint64(100),
		},
		{
			name: "Float64Flag value",
			setupFlags: func() *cli.Context {
				set := flag.NewFlagSet("test", 0)
				set.Float64("float64flag", 0.25, "")
				return newContext(set)
			},
			flagToTest:    cli.Float64Flag{Name: "float64flag"},
			expectedValue: 0.25,
		},
		{
			name: "StringFlag value",
			setupFlags: func() *cli.Context {
				set := flag.NewFlagSet("test", 0)
				set.String("stringflag", "test-string", "")
				return newContext(set)
			},
			flagToTest:    cli.StringFlag{Name: "stringflag"},
			expectedValue: "test-string",
		},
		{
			name: "PathFlag value",
			setupFlags: func() *cli.Context {
				set := flag.NewFlagSet("test", 0)
				set.String("pathflag", "/test/path", "")
				return newContext(set)
			},
			flagToTest:    cli.PathFlag{Name: "pathflag"},
			expectedValue: "/test/path",
		},
		{
			name: "BoolFlag value",
			setupFlags: func() *cli.Context {
				set := flag.NewFlagSet("test", 0)
				set.Bool("boolflag", true, "")
				return newContext(set)
			},
			flagToTest:    cli.BoolFlag{Name: "boolflag"},
			expectedValue: true,
		},
		{
			name: "IntSliceFlag value",
			setupFlags: func() *cli.Context {
				set := flag.NewFlagSet("test", 0)
				set.Var(cli.NewIntSlice(5, 10), "intsliceflag", "")
				return newContext(set)
			},
			flagToTest:    cli.IntSliceFlag{Name: "intsliceflag"},
			expectedValue: []int{5, 10},
		},
		{
			name: "Default of unknown flag",
			setupFlags: func() *cli.Context {
				return newContext(flag.NewFlagSet("test", 0))
			},
			flagToTest:    cli.IntFlag{Name: "other", Value: 7},
			expectedValue: 7,
		},
		{
			name: "Default of unset slice flag",
			setupFlags: func() *cli.Context {
				return newContext(flag.NewFlagSet("test", 0))
			},
			flagToTest:    cli.IntSliceFlag{Name: "other"},
			expectedValue: []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value := getFlagValue(tc.setupFlags(), tc.flagToTest)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}

// runCommand parses args with a command declaring the given flags and
// returns the resulting config.
func runCommand(t *testing.T, flags []cli.Flag, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	app := &cli.App{
		Name:     "prng-audit",
		HelpName: "prng-audit",
		Commands: []*cli.Command{{
			Name:  "test",
			Flags: flags,
			Action: func(ctx *cli.Context) error {
				cfg, cfgErr = NewConfig(ctx)
				return nil
			},
		}},
	}
	require.NoError(t, app.Run(append([]string{"prng-audit", "test"}, args...)))
	return cfg, cfgErr
}

func TestNewConfig_UsesDefaultsOfUndeclaredFlags(t *testing.T) {
	cfg, err := runCommand(t, []cli.Flag{&GeneratorFlag, &logger.LogLevelFlag}, "--prng", "randu")
	require.NoError(t, err)
	assert.Equal(t, "prng-audit", cfg.AppName)
	assert.Equal(t, "test", cfg.CommandName)
	assert.Equal(t, "randu", cfg.Generator)
	assert.Equal(t, "pikk", cfg.Algorithm)
	assert.Equal(t, uint64(seeds.DefaultMaster), cfg.MasterSeed)
	assert.Equal(t, 0.05, cfg.Alpha)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []int{}, cfg.Cutoffs)
}

func TestNewConfig_ReadsDeclaredFlags(t *testing.T) {
	flags := []cli.Flag{&AlphaFlag, &MultiplierFlag, &CutoffsFlag, &ChartFlag, &TwoSidedFlag}
	cfg, err := runCommand(t, flags, "--alpha", "0.01", "-m", "1.5", "--cutoffs", "5", "--cutoffs", "10", "--chart", "lr.html", "--two-sided")
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Alpha)
	assert.Equal(t, 1.5, cfg.Multiplier)
	assert.Equal(t, []int{5, 10}, cfg.Cutoffs)
	assert.True(t, cfg.TwoSided)
	assert.False(t, cfg.SPRT().DiscardHistory)
}

func TestNewConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("PRNG_AUDIT_WORKERS", "9")
	cfg, err := runCommand(t, []cli.Flag{&WorkersFlag})
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Workers)
}

func TestNewConfig_RejectsInvalidOptions(t *testing.T) {
	tests := map[string][]string{
		"unknown algorithm": {"--algorithm", "shuffle"},
		"unknown generator": {"--prng", "dice"},
		"no seeds":          {"--seeds", "0"},
		"no workers":        {"--workers", "0"},
		"resume":            {"--resume"},
	}
	flags := []cli.Flag{&AlgorithmFlag, &GeneratorFlag, &SeedCountFlag, &WorkersFlag, &ResumeFlag}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := runCommand(t, flags, args...)
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_RejectsInvalidTestParameters(t *testing.T) {
	_, err := runCommand(t, []cli.Flag{&AlphaFlag}, "--alpha", "1.5")
	assert.True(t, errors.Is(err, sprt.ErrInvalidConfig))
}

func TestLoadEnv_SetsUnsetVariables(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("PRNG_AUDIT_TEST_SEEDS=12\n"), 0644))
	t.Setenv("PRNG_AUDIT_TEST_SEEDS", "")
	require.NoError(t, os.Unsetenv("PRNG_AUDIT_TEST_SEEDS"))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), file))
	assert.Equal(t, "12", os.Getenv("PRNG_AUDIT_TEST_SEEDS"))
}
