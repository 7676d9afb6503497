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

// Package sprt implements Wald's sequential probability ratio test for
// Bernoulli events together with a group of tests sharing one draw stream.
package sprt

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrInvalidConfig is returned for test parameters that cannot produce a
// valid test. It is reported before any draw is made.
var ErrInvalidConfig = errors.New("invalid test configuration")

// Config holds the parameters of a sequential test.
type Config struct {
	Alpha          float64 // type I error rate, in (0,1)
	Beta           float64 // type II error rate, in [0,1)
	Multiplier     float64 // alternative relative to the null, > 1
	MaxSteps       uint64  // maximum number of observations, > 0
	DiscardHistory bool    // do not keep the likelihood ratio trajectory
}

// Validate checks the parameters and the threshold invariant
// 0 <= lower < 1 < upper.
func (c Config) Validate() error {
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return errors.Wrapf(ErrInvalidConfig, "alpha %v not in (0,1)", c.Alpha)
	}
	if !(c.Beta >= 0 && c.Beta < 1) {
		return errors.Wrapf(ErrInvalidConfig, "beta %v not in [0,1)", c.Beta)
	}
	if !(c.Multiplier > 1) || math.IsInf(c.Multiplier, 1) {
		return errors.Wrapf(ErrInvalidConfig, "multiplier %v must be a finite value above 1", c.Multiplier)
	}
	if c.MaxSteps == 0 {
		return errors.Wrap(ErrInvalidConfig, "maximum number of steps must be positive")
	}
	lower, upper := c.Thresholds()
	if !(lower >= 0 && lower < 1 && upper > 1) {
		return errors.Wrapf(ErrInvalidConfig, "thresholds [%v,%v] do not enclose 1 (alpha+beta must be below 1)", lower, upper)
	}
	return nil
}

// Thresholds returns Wald's acceptance and rejection bounds of the
// likelihood ratio.
func (c Config) Thresholds() (lower, upper float64) {
	return c.Beta / (1 - c.Alpha), (1 - c.Beta) / c.Alpha
}
