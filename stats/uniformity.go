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

// Package stats holds the fixed-sample frequency checks that complement the
// sequential tests: chi-squared and range statistics of empirical sample
// distributions, per-item selection probabilities and summaries.
package stats

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareResult is the outcome of a chi-squared goodness of fit test.
type ChiSquareResult struct {
	Statistic float64
	DF        int
	PValue    float64
}

// ChiSquareUniform tests observed counts against equal expected counts.
func ChiSquareUniform(observed []float64) (ChiSquareResult, error) {
	if len(observed) < 2 {
		return ChiSquareResult{}, errors.Newf("chi-squared test needs at least 2 cells, got %d", len(observed))
	}
	total := 0.0
	for _, o := range observed {
		total += o
	}
	if total <= 0 {
		return ChiSquareResult{}, errors.New("chi-squared test needs a positive total count")
	}
	expected := make([]float64, len(observed))
	for i := range expected {
		expected[i] = total / float64(len(observed))
	}
	chi := stat.ChiSquare(observed, expected)
	df := len(observed) - 1
	return ChiSquareResult{
		Statistic: chi,
		DF:        df,
		PValue:    distuv.ChiSquared{K: float64(df)}.Survival(chi),
	}, nil
}

// NormalRangeCDF is the probability that the range of n independent
// standard normal variables is at most w:
// n * integral phi(x) (Phi(x+w) - Phi(x))^(n-1) dx.
func NormalRangeCDF(w float64, n int) float64 {
	if n < 2 {
		return 1
	}
	if w <= 0 {
		return 0
	}
	f := func(x float64) float64 {
		return distuv.UnitNormal.Prob(x) * math.Pow(distuv.UnitNormal.CDF(x+w)-distuv.UnitNormal.CDF(x), float64(n-1))
	}
	v := float64(n) * quad.Fixed(f, -w-10, 10, 2000, nil, 0)
	return math.Min(math.Max(v, 0), 1)
}

// MultinomialRangeCDF approximates the probability that the range of the
// cell counts of draws equiprobable draws over cells cells is at most w,
// using the normal approximation with continuity correction.
func MultinomialRangeCDF(w float64, draws uint64, cells int) float64 {
	n := float64(draws)
	cutoff := (w - 1/(2*n)) * math.Sqrt(float64(cells)/n)
	return NormalRangeCDF(cutoff, cells)
}

// Range returns max - min of counts.
func Range(counts []float64) float64 {
	if len(counts) == 0 {
		return 0
	}
	lo, hi := counts[0], counts[0]
	for _, c := range counts[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return hi - lo
}

// MaxProbRatio returns the ratio of the largest to the smallest count.
func MaxProbRatio(counts []float64) float64 {
	if len(counts) == 0 {
		return math.NaN()
	}
	lo, hi := counts[0], counts[0]
	for _, c := range counts[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return hi / lo
}
