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

// Package hypothesis turns sampling algorithms into sequential tests of
// their frequency guarantees: derangement frequency of permutations and
// the relative frequency of the most common k-subsets.
package hypothesis

import (
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/cockroachdb/errors"
)

// Param is a named test parameter reported next to the outcomes.
type Param struct {
	Name  string
	Value float64
}

// Result is the outcome of one test run on one seeded generator. An
// exhausted random source is reported through Exhausted with the partial
// outcomes; it is not an error.
type Result struct {
	Generator string
	Algorithm string
	Seed      uint64
	Params    []Param
	Outcomes  []sprt.Outcome
	Draws     uint64 // samples drawn after warm-up
	Exhausted bool
}

// Test is a hypothesis test that can be run against a sampling algorithm
// driven by a random source.
type Test interface {
	Run(src rng.Source, alg sampling.Algorithm) (Result, error)
}

func newResult(src rng.Source, alg sampling.Algorithm, params ...Param) Result {
	return Result{
		Generator: src.Name(),
		Algorithm: alg.Name,
		Params:    params,
	}
}

// drawKey samples k of n items and returns the category of the sample.
func drawKey(src rng.Source, alg sampling.Algorithm, n, k int) (sampling.Key, error) {
	s, err := alg.Sample(src, n, k)
	if err != nil {
		return sampling.Key{}, err
	}
	return s.Key()
}

// exhausted reports whether err marks the end of the random source.
func exhausted(err error) bool {
	return errors.Is(err, rng.ErrSourceExhausted)
}
