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
	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/0xsoniclabs/prng-audit/logger"
	"github.com/0xsoniclabs/prng-audit/report"
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/rng/checkpoint"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/0xsoniclabs/prng-audit/seeds"
	"github.com/0xsoniclabs/prng-audit/sweep"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// sourceFlags select the generator and seeds of a run.
var sourceFlags = []cli.Flag{
	&config.GeneratorFlag,
	&config.EntropyFileFlag,
	&config.LCGMultiplierFlag,
	&config.LCGIncrementFlag,
	&config.LCGModulusFlag,
	&config.DrawLimitFlag,
	&config.MasterSeedFlag,
	&config.SeedCountFlag,
	&config.WorkersFlag,
	&config.AlgorithmFlag,
	&logger.LogLevelFlag,
}

// testFlags are shared by the sequential test commands.
var testFlags = []cli.Flag{
	&config.AlphaFlag,
	&config.BetaFlag,
	&config.MultiplierFlag,
	&config.MaxStepsFlag,
	&config.CSVFlag,
	&config.XLSXFlag,
	&config.SQLiteFlag,
	&config.ChartFlag,
	&config.CheckpointDbFlag,
	&config.ResumeFlag,
	&config.QuietFlag,
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var res []cli.Flag
	for _, g := range groups {
		res = append(res, g...)
	}
	return res
}

// newSource creates the configured generator for seed. The returned closer
// releases recordings opened by stream generators.
func newSource(cfg *config.Config, seed uint64) (rng.Source, func(), error) {
	src, err := rng.New(cfg.Generator, seed, cfg.Options())
	if err != nil {
		return nil, nil, err
	}
	release := func() {}
	if c, ok := src.(io.Closer); ok {
		release = func() { _ = c.Close() }
	}
	if cfg.DrawLimit > 0 {
		return rng.NewLimited(src, cfg.DrawLimit), release, nil
	}
	return src, release, nil
}

// openSinks opens every configured result file.
func openSinks(cfg *config.Config) (*report.Sinks, error) {
	sinks := report.NewSinks()
	if cfg.CSV != "" {
		w, err := report.NewCSVWriter(cfg.CSV)
		if err != nil {
			return nil, err
		}
		sinks.Add(w)
	}
	if cfg.XLSX != "" {
		sinks.Add(report.NewXLSXWriter(cfg.XLSX))
	}
	if cfg.SQLite != "" {
		s, err := report.NewSQLiteStore(cfg.SQLite)
		if err != nil {
			return nil, errors.CombineErrors(err, sinks.Close())
		}
		sinks.Add(s)
	}
	return sinks, nil
}

// auditAction returns a command action running the test built by newTest.
func auditAction(newTest func(cfg *config.Config) hypothesis.Test) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := config.NewConfig(ctx)
		if err != nil {
			return err
		}
		log := logger.NewLogger(cfg.LogLevel, "Audit")
		_, err = audit(ctx.Context, cfg, log, newTest(cfg), os.Stdout)
		return err
	}
}

// audit runs test once per seed and hands the results to the configured
// sinks, tables and charts. It is factored out to facilitate testing
// without a cli.Context.
func audit(ctx context.Context, cfg *config.Config, log logger.Logger, test hypothesis.Test, out io.Writer) ([]hypothesis.Result, error) {
	alg, err := sampling.Lookup(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	seedList, err := seeds.Generate(cfg.MasterSeed, cfg.SeedCount)
	if err != nil {
		return nil, err
	}

	var store *checkpoint.Store
	if cfg.CheckpointDb != "" {
		if store, err = checkpoint.Open(cfg.CheckpointDb); err != nil {
			return nil, err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Warningf("cannot close checkpoint db; %v", err)
			}
		}()
	}

	sinks, err := openSinks(cfg)
	if err != nil {
		return nil, err
	}

	log.Noticef("Testing %v with %v on %d seeds", alg.Name, cfg.Generator, len(seedList))
	results, err := sweep.Run(ctx, log, seedList, cfg.Workers, func(_ context.Context, seed uint64) (hypothesis.Result, error) {
		src, release, err := newSource(cfg, seed)
		if err != nil {
			return hypothesis.Result{}, err
		}
		defer release()
		if cfg.Resume {
			found, err := store.Restore(src, seed)
			if err != nil {
				return hypothesis.Result{}, err
			}
			if found {
				log.Debugf("seed %d resumes from checkpoint", seed)
			}
		}
		res, err := test.Run(src, alg)
		if err != nil {
			return hypothesis.Result{}, err
		}
		res.Seed = seed
		if res.Exhausted {
			log.Warningf("seed %d: random source exhausted after %d draws", seed, res.Draws)
		}
		if store != nil {
			if err = store.Save(src, seed); err != nil {
				return hypothesis.Result{}, err
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, errors.CombineErrors(err, sinks.Close())
	}

	for _, res := range results {
		if err = sinks.Write(res); err != nil {
			return nil, errors.CombineErrors(err, sinks.Close())
		}
	}
	if err = sinks.Close(); err != nil {
		return nil, err
	}

	if !cfg.Quiet {
		report.PrintTable(out, results)
		if err = report.PrintSummary(out, results); err != nil {
			return nil, err
		}
	}
	if cfg.Chart != "" {
		if err = renderChart(cfg, results); err != nil {
			return nil, err
		}
		log.Infof("Likelihood ratio chart written to %v", cfg.Chart)
	}
	return results, nil
}

func renderChart(cfg *config.Config, results []hypothesis.Result) error {
	f, err := os.Create(cfg.Chart)
	if err != nil {
		return errors.Wrapf(err, "cannot create chart %v", cfg.Chart)
	}
	title := cfg.CommandName + " test: " + cfg.Generator + "/" + cfg.Algorithm
	return errors.CombineErrors(report.RenderTrajectories(f, title, results), f.Close())
}
