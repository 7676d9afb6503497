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

package main

import (
	"context"
	"io"
	"os"

	"github.com/0xsoniclabs/prng-audit/config"
	"github.com/0xsoniclabs/prng-audit/logger"
	"github.com/0xsoniclabs/prng-audit/report"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/0xsoniclabs/prng-audit/seeds"
	"github.com/0xsoniclabs/prng-audit/stats"
	"github.com/0xsoniclabs/prng-audit/sweep"
	"github.com/urfave/cli/v2"
)

var frequencyCommand = cli.Command{
	Action: frequencyAction,
	Name:   "frequency",
	Usage:  "Simulates the empirical distribution of k-subsets and tests it for uniformity.",
	Flags:  flags(sourceFlags, []cli.Flag{&config.NFlag, &config.KFlag, &config.RepsFlag, &config.AlphaFlag}),
}

func frequencyAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Frequency")
	_, err = simulate(ctx.Context, cfg, log, os.Stdout)
	return err
}

// simulate draws cfg.Reps samples per seed and prints the uniformity
// statistics of each seed.
func simulate(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) ([]report.FrequencyRow, error) {
	alg, err := sampling.Lookup(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	seedList, err := seeds.Generate(cfg.MasterSeed, cfg.SeedCount)
	if err != nil {
		return nil, err
	}
	if _, err = stats.NewDistribution(cfg.N, cfg.K); err != nil {
		return nil, err
	}

	log.Noticef("Drawing %d samples of %d out of %d per seed", cfg.Reps, cfg.K, cfg.N)
	rows, err := sweep.Run(ctx, log, seedList, cfg.Workers, func(_ context.Context, seed uint64) (report.FrequencyRow, error) {
		src, release, err := newSource(cfg, seed)
		if err != nil {
			return report.FrequencyRow{}, err
		}
		defer release()
		dist, err := stats.NewDistribution(cfg.N, cfg.K)
		if err != nil {
			return report.FrequencyRow{}, err
		}
		if err = dist.Draw(src, alg, uint64(cfg.Reps)); err != nil {
			return report.FrequencyRow{}, err
		}
		rep, err := dist.Analyze()
		if err != nil {
			return report.FrequencyRow{}, err
		}
		return report.FrequencyRow{
			Generator: src.Name(),
			Algorithm: alg.Name,
			Seed:      seed,
			Report:    rep,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	if err = report.PrintFrequency(out, rows, cfg.Alpha); err != nil {
		return nil, err
	}
	return rows, nil
}
