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

package stats

import (
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/combin"
)

// Distribution is the empirical distribution of k-subsets of n items.
type Distribution struct {
	N, K   int
	Reps   uint64
	Counts map[sampling.Key]uint64
}

// NewDistribution creates an empty distribution of k out of n samples.
func NewDistribution(n, k int) (*Distribution, error) {
	if n < 1 || k < 1 || k > n || k > sampling.MaxKeySize {
		return nil, errors.Newf("invalid sample size k=%d out of n=%d", k, n)
	}
	return &Distribution{N: n, K: k, Counts: make(map[sampling.Key]uint64)}, nil
}

// Draw adds reps samples drawn by alg from src. It can be called
// repeatedly to grow the distribution.
func (d *Distribution) Draw(src rng.Source, alg sampling.Algorithm, reps uint64) error {
	for range reps {
		s, err := alg.Sample(src, d.N, d.K)
		if err != nil {
			return err
		}
		key, err := s.Key()
		if err != nil {
			return err
		}
		d.Counts[key]++
		d.Reps++
	}
	return nil
}

// Categories returns the number of possible k-subsets, C(n,k).
func (d *Distribution) Categories() int {
	return combin.Binomial(d.N, d.K)
}

// CellCounts returns the counts of all C(n,k) subsets, unseen ones as 0.
func (d *Distribution) CellCounts() []float64 {
	cells := make([]float64, 0, d.Categories())
	for _, c := range d.Counts {
		cells = append(cells, float64(c))
	}
	for len(cells) < cap(cells) {
		cells = append(cells, 0)
	}
	return cells
}

// ItemCounts returns how often each item was part of a sample.
func (d *Distribution) ItemCounts() []float64 {
	items := make([]float64, d.N)
	for key, c := range d.Counts {
		for _, i := range key.Items() {
			items[i] += float64(c)
		}
	}
	return items
}

// ItemFrequencies returns the empirical selection probability of each item.
func (d *Distribution) ItemFrequencies() []float64 {
	items := d.ItemCounts()
	if d.Reps == 0 {
		return items
	}
	for i := range items {
		items[i] /= float64(d.Reps)
	}
	return items
}

// Report summarizes the uniformity checks of a distribution.
type Report struct {
	Reps         uint64
	ChiSquare    ChiSquareResult
	Range        float64
	RangePValue  float64
	MaxProbRatio float64
}

// Analyze computes chi-squared and range statistics over all subsets and
// the selection probability ratio over the items.
func (d *Distribution) Analyze() (Report, error) {
	cells := d.CellCounts()
	chi, err := ChiSquareUniform(cells)
	if err != nil {
		return Report{}, err
	}
	r := Range(cells)
	return Report{
		Reps:         d.Reps,
		ChiSquare:    chi,
		Range:        r,
		RangePValue:  1 - MultinomialRangeCDF(r, d.Reps, len(cells)),
		MaxProbRatio: MaxProbRatio(d.ItemCounts()),
	}, nil
}
