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
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/cockroachdb/errors"
)

// Labels of the two-sided sessions.
const (
	UpperLabel = "upper"
	LowerLabel = "lower"
)

// DerangementProbability returns the probability that a uniformly random
// permutation of n items has no fixed point, sum_{j=0..n} (-1)^j/j!.
func DerangementProbability(n int) float64 {
	sum, term := 1.0, 1.0
	for j := 1; j <= n; j++ {
		term *= -1 / float64(j)
		sum += term
	}
	return sum
}

// Derangement tests whether random permutations of N items are
// derangements with probability p0 = DerangementProbability(N). The one
// sided test uses p1 = m*p0; the two sided test adds a second session with
// p1 = (2-m)*p0 observing the same permutations.
type Derangement struct {
	N        int
	Config   sprt.Config
	TwoSided bool
}

func (d Derangement) hypotheses() (p0, upper, lower float64, err error) {
	if d.N < 2 {
		return 0, 0, 0, errors.Wrapf(sprt.ErrInvalidConfig, "derangement test needs at least 2 items, got %d", d.N)
	}
	if err := d.Config.Validate(); err != nil {
		return 0, 0, 0, err
	}
	p0 = DerangementProbability(d.N)
	upper = d.Config.Multiplier * p0
	lower = (2 - d.Config.Multiplier) * p0
	if upper >= 1 {
		return 0, 0, 0, errors.Wrapf(sprt.ErrInvalidConfig, "alternative %v*%v is not a probability", d.Config.Multiplier, p0)
	}
	if d.TwoSided && lower <= 0 {
		return 0, 0, 0, errors.Wrapf(sprt.ErrInvalidConfig, "two sided test needs a multiplier below 2, got %v", d.Config.Multiplier)
	}
	return p0, upper, lower, nil
}

// Run draws permutations with alg until the test terminates.
func (d Derangement) Run(src rng.Source, alg sampling.Algorithm) (Result, error) {
	p0, upper, lower, err := d.hypotheses()
	if err != nil {
		return Result{}, err
	}
	if !alg.Permutes {
		return Result{}, errors.Wrapf(sprt.ErrInvalidConfig, "algorithm %s does not produce permutations", alg.Name)
	}
	res := newResult(src, alg, Param{Name: "n", Value: float64(d.N)})

	g, err := sprt.NewGroup(d.Config)
	if err != nil {
		return Result{}, err
	}
	label := ""
	if d.TwoSided {
		label = UpperLabel
	}
	if _, err = g.Add(label, p0, upper); err != nil {
		return Result{}, err
	}
	if d.TwoSided {
		if _, err = g.Add(LowerLabel, p0, lower); err != nil {
			return Result{}, err
		}
	}

	res.Exhausted, err = sprt.RunGroup(g, func(g *sprt.Group) error {
		perm, err := alg.Sample(src, d.N, d.N)
		if err != nil {
			return err
		}
		g.ObserveAll(perm.IsDerangement())
		return nil
	})
	if err != nil {
		return Result{}, errors.Wrapf(err, "derangement test with %s", alg.Name)
	}
	res.Outcomes = g.Outcomes()
	res.Draws = g.Draws()
	return res, nil
}
