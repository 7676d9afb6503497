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
	"math"
	"slices"

	"github.com/0xsoniclabs/prng-audit/frequency"
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/combin"
)

// maxLogCategories bounds the number of k-subsets to what fits an int.
var maxLogCategories = 62 * math.Ln2

// Categories returns the number of k-subsets of n items, C(n,k).
func Categories(n, k int) (int, error) {
	if n < 1 || k < 1 || k > n {
		return 0, errors.Wrapf(sprt.ErrInvalidConfig, "invalid sample size k=%d out of n=%d", k, n)
	}
	if k > sampling.MaxKeySize {
		return 0, errors.Wrapf(sprt.ErrInvalidConfig, "sample size %d exceeds %d", k, sampling.MaxKeySize)
	}
	if combin.LogGeneralizedBinomial(float64(n), float64(k)) > maxLogCategories {
		return 0, errors.Wrapf(sprt.ErrInvalidConfig, "C(%d,%d) is too large", n, k)
	}
	return combin.Binomial(n, k), nil
}

// Multinomial tests, for every cutoff s, whether the s most frequent
// k-subsets seen so far are drawn more often than uniform selection allows.
// Under the null every one of the C(N,K) subsets has probability 1/C, so a
// draw lands in the top s categories with p0 = s/C; the alternative is
// p1 = m*s/C. The two sided variant adds a lower session per cutoff in
// which the event is a draw among the s least frequent categories and the
// alternative is p1 = (2-m)*s/C. All sessions share one stream of draws.
type Multinomial struct {
	N, K     int
	Cutoffs  []int
	Config   sprt.Config
	TwoSided bool
}

// cutoffTest is one session of a multinomial run.
type cutoffTest struct {
	s      int
	bottom bool
}

// MultinomialLabels returns the session labels of cutoff s.
func MultinomialLabels(s int, twoSided bool) []string {
	if !twoSided {
		return []string{CutoffLabel(s)}
	}
	return []string{CutoffLabel(s) + "_" + UpperLabel, CutoffLabel(s) + "_" + LowerLabel}
}

func (t Multinomial) validate() (int, error) {
	if err := t.Config.Validate(); err != nil {
		return 0, err
	}
	c, err := Categories(t.N, t.K)
	if err != nil {
		return 0, err
	}
	if len(t.Cutoffs) == 0 {
		return 0, errors.Wrap(sprt.ErrInvalidConfig, "no cutoffs given")
	}
	if t.TwoSided && t.Config.Multiplier >= 2 {
		return 0, errors.Wrapf(sprt.ErrInvalidConfig, "two sided test needs a multiplier below 2, got %v", t.Config.Multiplier)
	}
	seen := map[int]bool{}
	for _, s := range t.Cutoffs {
		if s < 1 || s >= c {
			return 0, errors.Wrapf(sprt.ErrInvalidConfig, "top categories %d not in [1,%d)", s, c)
		}
		if seen[s] {
			return 0, errors.Wrapf(sprt.ErrInvalidConfig, "duplicate cutoff %d", s)
		}
		seen[s] = true
		if t.Config.Multiplier*float64(s) >= float64(c) {
			return 0, errors.Wrapf(sprt.ErrInvalidConfig, "alternative %v*%d/%d is not a probability", t.Config.Multiplier, s, c)
		}
	}
	return c, nil
}

// Run first draws samples until max(cutoff) distinct categories are known,
// then tests every further draw against the ranking of the draws before it.
func (t Multinomial) Run(src rng.Source, alg sampling.Algorithm) (Result, error) {
	c, err := t.validate()
	if err != nil {
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
	sessions := make(map[string]cutoffTest, 2*len(t.Cutoffs))
	for _, s := range t.Cutoffs {
		p0 := float64(s) / float64(c)
		labels := MultinomialLabels(s, t.TwoSided)
		if _, err = g.Add(labels[0], p0, t.Config.Multiplier*p0); err != nil {
			return Result{}, err
		}
		sessions[labels[0]] = cutoffTest{s: s}
		if t.TwoSided {
			if _, err = g.Add(labels[1], p0, (2-t.Config.Multiplier)*p0); err != nil {
				return Result{}, err
			}
			sessions[labels[1]] = cutoffTest{s: s, bottom: true}
		}
	}

	table, err := warmUp(src, alg, t.N, t.K, slices.Max(t.Cutoffs), t.Config.MaxSteps)
	if err == nil {
		res.Exhausted, err = sprt.RunGroup(g, func(g *sprt.Group) error {
			key, err := drawKey(src, alg, t.N, t.K)
			if err != nil {
				return err
			}
			g.ObserveEach(func(label string) (bool, bool) {
				ct := sessions[label]
				if ct.bottom {
					return table.InBottom(key, ct.s), true
				}
				return table.InTop(key, ct.s), true
			})
			table.Add(key)
			return nil
		})
	}
	if exhausted(err) {
		res.Exhausted, err = true, nil
	}
	if err != nil {
		return Result{}, errors.Wrapf(err, "multinomial test with %s", alg.Name)
	}
	res.Outcomes = g.Outcomes()
	res.Draws = g.Draws()
	return res, nil
}

// warmUp draws samples until the table knows distinct categories, all at
// count zero. Warm-up draws are not observed by any test; at most limit
// draws are taken.
func warmUp(src rng.Source, alg sampling.Algorithm, n, k, distinct int, limit uint64) (*frequency.Table[sampling.Key], error) {
	table := frequency.NewTable[sampling.Key]()
	for draws := uint64(0); table.Len() < distinct; draws++ {
		if draws >= limit {
			return nil, errors.Newf("found %d of %d distinct categories in %d warm-up draws", table.Len(), distinct, limit)
		}
		key, err := drawKey(src, alg, n, k)
		if err != nil {
			return nil, err
		}
		table.Register(key)
	}
	return table, nil
}
