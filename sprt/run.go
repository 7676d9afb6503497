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

package sprt

import (
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/cockroachdb/errors"
)

// EventStream produces Bernoulli outcomes, typically by drawing a sample
// from a random source and classifying it.
type EventStream interface {
	Next() (bool, error)
}

// EventFunc adapts a function to an EventStream.
type EventFunc func() (bool, error)

func (f EventFunc) Next() (bool, error) {
	return f()
}

// Run feeds s from events until it terminates or reaches its step limit.
// An exhausted random source ends the run early; this is reported through
// the boolean, with s left in its partial state.
func Run(s *Session, events EventStream) (exhausted bool, err error) {
	for !s.Done() {
		event, err := events.Next()
		if errors.Is(err, rng.ErrSourceExhausted) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		s.Observe(event)
	}
	return false, nil
}

// RunGroup calls draw until the group is done. draw is expected to take
// one draw and pass it to the group via ObserveAll or ObserveEach.
func RunGroup(g *Group, draw func(g *Group) error) (exhausted bool, err error) {
	for !g.Done() {
		before := g.Draws()
		err := draw(g)
		if errors.Is(err, rng.ErrSourceExhausted) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if g.Draws() == before {
			return false, errors.New("draw function did not observe a draw")
		}
	}
	return false, nil
}
