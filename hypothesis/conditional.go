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

package hypothesis

import (
	"slices"
	"strconv"

	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/cockroachdb/errors"
)

// Conditional compares, for every cutoff s, how often a draw lands among
// the s most frequent categories against how often it lands among the s
// least frequent ones. Draws in neither group are skipped by that cutoff.
// Under the null both groups are equally likely, so p0 = 1/2 and the
// alternative is p1 = m/2: a top draw multiplies the ratio by m and a
// bottom draw by 2-m. All cutoffs share one stream of draws.
type Conditional struct {
	N, K    int
	Cutoffs []int
	Config  sprt.Config
}

// CutoffLabel names the session of cutoff s.
func CutoffLabel(s int) string {
	return "s" + strconv.Itoa(s)
}

func (t Conditional) validate() error {
	if err := t.Config.Validate(); err != nil {
		return err
	}
	if t.Config.Multiplier >= 2 {
		return errors.Wrapf(sprt.ErrInvalidConfig, "conditional test needs a multiplier below 2, got %v", t.Config.Multiplier)
	}
	if len(t.Cutoffs) == 0 {
		return errors.Wrap(sprt.ErrInvalidConfig, "no cutoffs given")
	}
	c, err := Categories(t.N, t.K)
	if err != nil {
		return err
	}
	seen := map[int]bool{}
	for _, s := range t.Cutoffs {
		if s < 1 {
			return errors.Wrapf(sprt.ErrInvalidConfig, "cutoff %d must be positive", s)
		}
		if seen[s] {
			return errors.Wrapf(sprt.ErrInvalidConfig, "duplicate cutoff %d", s)
		}
		seen[s] = true
	}
	if top := slices.Max(t.Cutoffs); 2*top > c {
		return errors.Wrapf(sprt.ErrInvalidConfig, "cutoff %d needs %d categories, only %d exist", top, 2*top, c)
	}
	return nil
}

// Run warms the ranking up with 2*max(cutoff) distinct categories and then
// classifies every draw against the ranking before the draw.
func (t Conditional) Run(src rng.Source, alg sampling.Algorithm) (Result, error) {
	if err := t.validate(); err != nil {
		return Result{}, err
	}
	res := newResult(src, alg,
		Param{Name: "n", Value: float64(t.N)},
		Param{Name: "k", Value: float64(t.K)},
	)

	g, err := sprt.NewGroup(t.Config)
	if err != nil {
		return Result{}, err
	}
	cutoffs := make(map[string]int, len(t.Cutoffs))
	for _, s := range t.Cutoffs {
		label := CutoffLabel(s)
		cutoffs[label] = s
		if _, err = g.Add(label, 0.5, t.Config.Multiplier/2); err != nil {
			return Result{}, err
		}
	}

	table, err := warmUp(src, alg, t.N, t.K, 2*slices.Max(t.Cutoffs), t.Config.MaxSteps)
	if err == nil {
		res.Exhausted, err = sprt.RunGroup(g, func(g *sprt.Group) error {
			key, err := drawKey(src, alg, t.N, t.K)
			if err != nil {
				return err
			}
			g.ObserveEach(func(label string) (bool, bool) {
				s := cutoffs[label]
				if table.InTop(key, s) {
					return true, true
				}
				return false, table.InBottom(key, s)
			})
			table.Add(key)
			return nil
		})
	}
	if exhausted(err) {
		res.Exhausted, err = true, nil
	}
	if err != nil {
		return Result{}, errors.Wrapf(err, "conditional test with %s", alg.Name)
	}
	res.Outcomes = g.Outcomes()
	res.Draws = g.Draws()
	return res, nil
}
