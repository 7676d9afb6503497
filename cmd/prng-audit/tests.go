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
	"github.com/0xsoniclabs/prng-audit/config"
	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/urfave/cli/v2"
)

var derangementCommand = cli.Command{
	Action: auditAction(newDerangementTest),
	Name:   "derangement",
	Usage:  "Tests whether random permutations are derangements as often as expected.",
	Flags:  flags(sourceFlags, testFlags, []cli.Flag{&config.NFlag, &config.TwoSidedFlag}),
}

var multinomialCommand = cli.Command{
	Action: auditAction(newMultinomialTest),
	Name:   "multinomial",
	Usage:  "Tests whether the most or least frequent k-subsets deviate from uniform for several cutoffs at once.",
	Flags:  flags(sourceFlags, testFlags, []cli.Flag{&config.NFlag, &config.KFlag, &config.TopFlag, &config.CutoffsFlag, &config.TwoSidedFlag}),
}

var conditionalCommand = cli.Command{
	Action: auditAction(newConditionalTest),
	Name:   "conditional",
	Usage:  "Tests top against bottom k-subsets for several cutoffs at once.",
	Flags:  flags(sourceFlags, testFlags, []cli.Flag{&config.NFlag, &config.KFlag, &config.TopFlag, &config.CutoffsFlag}),
}

func newDerangementTest(cfg *config.Config) hypothesis.Test {
	return hypothesis.Derangement{
		N:        cfg.N,
		Config:   cfg.SPRT(),
		TwoSided: cfg.TwoSided,
	}
}

func newMultinomialTest(cfg *config.Config) hypothesis.Test {
	return hypothesis.Multinomial{
		N:        cfg.N,
		K:        cfg.K,
		Cutoffs:  cutoffs(cfg),
		Config:   cfg.SPRT(),
		TwoSided: cfg.TwoSided,
	}
}

func newConditionalTest(cfg *config.Config) hypothesis.Test {
	return hypothesis.Conditional{
		N:       cfg.N,
		K:       cfg.K,
		Cutoffs: cutoffs(cfg),
		Config:  cfg.SPRT(),
	}
}

// cutoffs falls back to the single cutoff --s when no --cutoffs are given.
func cutoffs(cfg *config.Config) []int {
	if len(cfg.Cutoffs) == 0 {
		return []int{cfg.S}
	}
	return cfg.Cutoffs
}
