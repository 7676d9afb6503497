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

// Package rng provides the deterministic random sources driving the sampling
// algorithms under audit. All sources implement the Source interface and are
// interchangeable; each one owns its state exclusively and is not safe for
// concurrent use.
package rng

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrSourceExhausted is returned when a source cannot supply the next value.
// Sources never return a partial or biased value instead.
var ErrSourceExhausted = errors.New("random source exhausted")

// ErrInvalidState is returned when a state snapshot does not belong to the source.
var ErrInvalidState = errors.New("invalid random source state")

// recipFloatBits scales a 53-bit integer into [0,1).
const recipFloatBits = 1.0 / (1 << 53)

// State is an opaque snapshot of a source. Restoring a snapshot makes the
// source produce the same output sequence as it did after the snapshot was taken.
type State struct {
	Generator string // name of the generator that produced the snapshot
	Data      []byte // generator specific encoding
}

// Source is the capability set shared by all random sources.
type Source interface {
	// Name returns the generator identifier used in reports.
	Name() string
	// Seed resets the source to the initial state for the given seed.
	Seed(seed uint64)
	// Uniform returns the next variate in [0,1).
	Uniform() (float64, error)
	// Intn returns the next integer in [low,high).
	Intn(low, high int) (int, error)
	// State returns a snapshot of the current state.
	State() State
	// SetState restores a snapshot produced by State.
	SetState(State) error
	// JumpAhead advances the source by n draws.
	JumpAhead(n uint64) error
}

// scaleInt maps a uniform variate onto [low,high).
func scaleInt(u float64, low, high int) (int, error) {
	if high <= low {
		return 0, errors.Newf("empty integer range [%d,%d)", low, high)
	}
	span := float64(high - low)
	i := int(math.Floor(u * span))
	if i >= high-low {
		// u*span may round up to span for u close to one
		i = high - low - 1
	}
	return low + i, nil
}

// toUniform maps the top 53 bits of x into [0,1).
func toUniform(x uint64) float64 {
	return float64(x>>11) * recipFloatBits
}

func checkState(s State, generator string) error {
	if s.Generator != generator {
		return errors.Wrapf(ErrInvalidState, "state of %q given to %q", s.Generator, generator)
	}
	return nil
}
