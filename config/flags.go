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
	"github.com/0xsoniclabs/prng-audit/seeds"
	"github.com/urfave/cli/v2"
)

var (
	GeneratorFlag = cli.StringFlag{
		Name:    "prng",
		Aliases: []string{"g"},
		Usage:   "pseudorandom generator (pcg, randu, sd, lcg, sha256, sha3-256, keccak256, stream)",
		Value:   "sha256",
		EnvVars: []string{"PRNG_AUDIT_PRNG"},
	}
	AlgorithmFlag = cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Usage:   "sampling algorithm (pikk, fykd, index, reservoir, recursive)",
		Value:   "pikk",
		EnvVars: []string{"PRNG_AUDIT_ALGORITHM"},
	}
	EntropyFileFlag = cli.PathFlag{
		Name:    "entropy-file",
		Usage:   "recorded random bytes read by the stream generator, optionally gzip compressed",
		EnvVars: []string{"PRNG_AUDIT_ENTROPY_FILE"},
	}
	LCGMultiplierFlag = cli.Uint64Flag{
		Name:  "lcg-multiplier",
		Usage: "multiplier of the custom lcg generator",
		Value: 69069,
	}
	LCGIncrementFlag = cli.Uint64Flag{
		Name:  "lcg-increment",
		Usage: "increment of the custom lcg generator",
	}
	LCGModulusFlag = cli.Uint64Flag{
		Name:  "lcg-modulus",
		Usage: "modulus of the custom lcg generator",
		Value: 1 << 32,
	}
	DrawLimitFlag = cli.Uint64Flag{
		Name:  "draw-limit",
		Usage: "exhaust the generator after this many draws (0 = unlimited)",
	}
	MasterSeedFlag = cli.Uint64Flag{
		Name:    "master-seed",
		Usage:   "seed of the seed list",
		Value:   seeds.DefaultMaster,
		EnvVars: []string{"PRNG_AUDIT_MASTER_SEED"},
	}
	SeedCountFlag = cli.IntFlag{
		Name:    "seeds",
		Usage:   "number of seeds to test",
		Value:   100,
		EnvVars: []string{"PRNG_AUDIT_SEEDS"},
	}
	WorkersFlag = cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "number of seeds tested in parallel",
		Value:   4,
		EnvVars: []string{"PRNG_AUDIT_WORKERS"},
	}
	AlphaFlag = cli.Float64Flag{
		Name:  "alpha",
		Usage: "type I error rate",
		Value: 0.05,
	}
	BetaFlag = cli.Float64Flag{
		Name:  "beta",
		Usage: "type II error rate",
	}
	MultiplierFlag = cli.Float64Flag{
		Name:    "multiplier",
		Aliases: []string{"m"},
		Usage:   "ratio of the alternative to the null probability",
		Value:   1.1,
	}
	MaxStepsFlag = cli.Uint64Flag{
		Name:  "max-steps",
		Usage: "draw budget of a single test",
		Value: 1_000_000,
	}
	TwoSidedFlag = cli.BoolFlag{
		Name:  "two-sided",
		Usage: "also test a lower alternative (2 - multiplier) * p0",
	}
	NFlag = cli.IntFlag{
		Name:  "n",
		Usage: "population size",
		Value: 100,
	}
	KFlag = cli.IntFlag{
		Name:  "k",
		Usage: "sample size",
		Value: 2,
	}
	TopFlag = cli.IntFlag{
		Name:  "s",
		Usage: "number of most frequent categories forming the event",
		Value: 10,
	}
	CutoffsFlag = cli.IntSliceFlag{
		Name:  "cutoffs",
		Usage: "top/bottom cutoffs of the multinomial and conditional tests",
	}
	RepsFlag = cli.IntFlag{
		Name:  "reps",
		Usage: "samples drawn per seed by the frequency simulation",
		Value: 10_000,
	}
	CSVFlag = cli.PathFlag{
		Name:  "csv",
		Usage: "append results to this csv file",
	}
	XLSXFlag = cli.PathFlag{
		Name:  "xlsx",
		Usage: "write results to this spreadsheet",
	}
	SQLiteFlag = cli.PathFlag{
		Name:  "sqlite",
		Usage: "store outcomes in this sqlite database",
	}
	ChartFlag = cli.PathFlag{
		Name:  "chart",
		Usage: "render likelihood ratio trajectories to this html file",
	}
	CheckpointDbFlag = cli.PathFlag{
		Name:  "checkpoint-db",
		Usage: "leveldb directory storing generator states after each seed",
	}
	ResumeFlag = cli.BoolFlag{
		Name:  "resume",
		Usage: "continue each generator from the state stored in the checkpoint db",
	}
	QuietFlag = cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "do not print result tables",
	}
)
