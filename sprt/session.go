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
	"math"

	"github.com/cockroachdb/errors"
)

// Session is a single sequential test of H0: p = p0 against H1: p = p1.
// The likelihood ratio is tracked in the log domain; decisions are taken
// on the log value so they never depend on a saturated ratio.
type Session struct {
	p0, p1   float64
	logHit   float64 // log(p1/p0)
	logMiss  float64 // log((1-p1)/(1-p0))
	logLower float64
	logUpper float64
	maxSteps uint64 // 0 means unbounded

	logLR    float64
	steps    uint64
	events   uint64
	decision Decision
	history  []float64
	keep     bool
}

// NewSession validates cfg and the hypotheses and returns a session with
// likelihood ratio 1.
func NewSession(cfg Config, p0, p1 float64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := newSession(cfg, p0, p1)
	if err != nil {
		return nil, err
	}
	s.maxSteps = cfg.MaxSteps
	return s, nil
}

// newSession builds a session without a step limit; groups bound their
// sessions by a shared draw budget instead.
func newSession(cfg Config, p0, p1 float64) (*Session, error) {
	if !(p0 > 0 && p0 < 1) {
		return nil, errors.Wrapf(ErrInvalidConfig, "null probability %v not in (0,1)", p0)
	}
	if !(p1 > 0 && p1 < 1) {
		return nil, errors.Wrapf(ErrInvalidConfig, "alternative probability %v not in (0,1)", p1)
	}
	if p0 == p1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "null and alternative probability are both %v", p0)
	}
	lower, upper := cfg.Thresholds()
	s := &Session{
		p0:       p0,
		p1:       p1,
		logHit:   math.Log(p1 / p0),
		logMiss:  math.Log((1 - p1) / (1 - p0)),
		logLower: math.Log(lower),
		logUpper: math.Log(upper),
		keep:     !cfg.DiscardHistory,
	}
	if s.keep {
		s.history = []float64{1}
	}
	return s, nil
}

// Observe updates the test with one Bernoulli outcome and returns the
// decision. Observations after the test terminated are ignored.
func (s *Session) Observe(event bool) Decision {
	if s.Done() {
		return s.decision
	}
	s.steps++
	if event {
		s.events++
		s.logLR += s.logHit
	} else {
		s.logLR += s.logMiss
	}
	if s.keep {
		s.history = append(s.history, math.Exp(s.logLR))
	}
	if s.logLR <= s.logLower {
		s.decision = AcceptNull
	} else if s.logLR >= s.logUpper {
		s.decision = RejectNull
	}
	return s.decision
}

// LR returns the likelihood ratio, saturating to 0 or +Inf.
func (s *Session) LR() float64 {
	return math.Exp(s.logLR)
}

// LogLR returns the natural logarithm of the likelihood ratio.
func (s *Session) LogLR() float64 {
	return s.logLR
}

// PValue returns min(1/LR, 1).
func (s *Session) PValue() float64 {
	return math.Min(math.Exp(-s.logLR), 1)
}

func (s *Session) Steps() uint64 {
	return s.steps
}

// Events returns the number of observations in which the event occurred.
func (s *Session) Events() uint64 {
	return s.events
}

func (s *Session) Decision() Decision {
	return s.decision
}

// Hypotheses returns p0 and p1.
func (s *Session) Hypotheses() (float64, float64) {
	return s.p0, s.p1
}

// Truncated reports whether the step limit ended the test undecided.
func (s *Session) Truncated() bool {
	return s.decision == Undecided && s.maxSteps > 0 && s.steps >= s.maxSteps
}

// Done reports whether the session accepts no further observations.
func (s *Session) Done() bool {
	return s.decision.Terminal() || (s.maxSteps > 0 && s.steps >= s.maxSteps)
}

// History returns the likelihood ratio after every observation, starting
// with the initial ratio 1. It is nil when history is discarded.
func (s *Session) History() []float64 {
	return s.history
}

// Outcome snapshots the session.
func (s *Session) Outcome(label string) Outcome {
	return Outcome{
		Label:        label,
		Decision:     s.decision,
		LR:           s.LR(),
		PValue:       s.PValue(),
		Steps:        s.steps,
		Observations: s.steps,
		Events:       s.events,
		History:      s.history,
	}
}

// Outcome is the reported state of a finished (or interrupted) test.
type Outcome struct {
	Label    string
	Decision Decision
	LR       float64
	PValue   float64
	// Steps is the number of observations of a single session and the draw
	// index at termination for members of a group.
	Steps        uint64
	Observations uint64 // draws that counted for the session
	Events       uint64 // observations in which the event occurred
	History      []float64
}
