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

// Package config builds the run configuration of the audit commands from
// command line flags, environment variables and an optional .env file.
package config

import (
	"io"
	"os"

	"github.com/0xsoniclabs/prng-audit/logger"
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// Config holds the options of one audit command.
type Config struct {
	AppName     string
	CommandName string

	Generator   string
	Algorithm   string
	EntropyFile string
	LCG         rng.LCGParams
	DrawLimit   uint64

	MasterSeed uint64
	SeedCount  int
	Workers    int

	Alpha      float64
	Beta       float64
	Multiplier float64
	MaxSteps   uint64
	TwoSided   bool

	N       int
	K       int
	S       int
	Cutoffs []int
	Reps    int

	CSV          string
	XLSX         string
	SQLite       string
	Chart        string
	CheckpointDb string
	Resume       bool
	Quiet        bool

	LogLevel string
}

// LoadEnv reads KEY=VALUE pairs from the given files into the process
// environment so flags with EnvVars pick them up. Missing files are ignored
// and variables already set win.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "cannot load %v", file)
		}
	}
	return nil
}

// NewConfig creates and validates the configuration of the running command.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		Generator:   getFlagValue(ctx, GeneratorFlag).(string),
		Algorithm:   getFlagValue(ctx, AlgorithmFlag).(string),
		EntropyFile: getFlagValue(ctx, EntropyFileFlag).(string),
		LCG: rng.LCGParams{
			Name:       "LCG",
			Multiplier: getFlagValue(ctx, LCGMultiplierFlag).(uint64),
			Increment:  getFlagValue(ctx, LCGIncrementFlag).(uint64),
			Modulus:    getFlagValue(ctx, LCGModulusFlag).(uint64),
		},
		DrawLimit:    getFlagValue(ctx, DrawLimitFlag).(uint64),
		MasterSeed:   getFlagValue(ctx, MasterSeedFlag).(uint64),
		SeedCount:    getFlagValue(ctx, SeedCountFlag).(int),
		Workers:      getFlagValue(ctx, WorkersFlag).(int),
		Alpha:        getFlagValue(ctx, AlphaFlag).(float64),
		Beta:         getFlagValue(ctx, BetaFlag).(float64),
		Multiplier:   getFlagValue(ctx, MultiplierFlag).(float64),
		MaxSteps:     getFlagValue(ctx, MaxStepsFlag).(uint64),
		TwoSided:     getFlagValue(ctx, TwoSidedFlag).(bool),
		N:            getFlagValue(ctx, NFlag).(int),
		K:            getFlagValue(ctx, KFlag).(int),
		S:            getFlagValue(ctx, TopFlag).(int),
		Cutoffs:      getFlagValue(ctx, CutoffsFlag).([]int),
		Reps:         getFlagValue(ctx, RepsFlag).(int),
		CSV:          getFlagValue(ctx, CSVFlag).(string),
		XLSX:         getFlagValue(ctx, XLSXFlag).(string),
		SQLite:       getFlagValue(ctx, SQLiteFlag).(string),
		Chart:        getFlagValue(ctx, ChartFlag).(string),
		CheckpointDb: getFlagValue(ctx, CheckpointDbFlag).(string),
		Resume:       getFlagValue(ctx, ResumeFlag).(bool),
		Quiet:        getFlagValue(ctx, QuietFlag).(bool),
		LogLevel:     getFlagValue(ctx, logger.LogLevelFlag).(string),
	}

	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Uint64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}

		case cli.IntSliceFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.IntSlice(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	case cli.IntSliceFlag:
		if f.Value == nil {
			return []int{}
		}
		return f.Value.Value()
	}

	return nil
}

// SPRT returns the sequential test parameters.
func (cfg *Config) SPRT() sprt.Config {
	return sprt.Config{
		Alpha:          cfg.Alpha,
		Beta:           cfg.Beta,
		Multiplier:     cfg.Multiplier,
		MaxSteps:       cfg.MaxSteps,
		DiscardHistory: cfg.Chart == "",
	}
}

// Options returns the generator options.
func (cfg *Config) Options() rng.Options {
	return rng.Options{LCG: cfg.LCG, StreamFile: cfg.EntropyFile}
}

// Validate checks the options shared by all commands before any run starts.
func (cfg *Config) Validate() error {
	if _, err := sampling.Lookup(cfg.Algorithm); err != nil {
		return err
	}
	src, err := rng.New(cfg.Generator, 1, cfg.Options())
	if err != nil {
		return err
	}
	if c, ok := src.(io.Closer); ok {
		_ = c.Close()
	}
	if cfg.SeedCount <= 0 {
		return errors.Newf("number of seeds must be positive, got %d", cfg.SeedCount)
	}
	if cfg.Workers <= 0 {
		return errors.Newf("number of workers must be positive, got %d", cfg.Workers)
	}
	if cfg.Resume && cfg.CheckpointDb == "" {
		return errors.New("--resume requires --checkpoint-db")
	}
	if err := cfg.SPRT().Validate(); err != nil {
		return err
	}
	return nil
}
