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
	"github.com/cockroachdb/errors"
)

// Group runs several sessions over one shared stream of draws. Each draw
// is offered to every active session; sessions terminate independently
// and the group stops when all have terminated or the shared draw budget
// (Config.MaxSteps) is spent.
type Group struct {
	cfg     Config
	members []*member
	index   map[string]*member
	draws   uint64
}

type member struct {
	label   string
	session *Session
	doneAt  uint64 // draw index at which the session terminated, 0 while active
}

// NewGroup creates an empty group after validating cfg.
func NewGroup(cfg Config) (*Group, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Group{cfg: cfg, index: make(map[string]*member)}, nil
}

// Add registers a session testing p0 against p1 under a unique label.
func (g *Group) Add(label string, p0, p1 float64) (*Session, error) {
	if _, found := g.index[label]; found {
		return nil, errors.Newf("duplicate session label %q", label)
	}
	if g.draws > 0 {
		return nil, errors.New("cannot add sessions after draws were observed")
	}
	s, err := newSession(g.cfg, p0, p1)
	if err != nil {
		return nil, errors.Wrapf(err, "session %s", label)
	}
	m := &member{label: label, session: s}
	g.members = append(g.members, m)
	g.index[label] = m
	return s, nil
}

// ObserveAll feeds the same outcome of one draw to every active session.
func (g *Group) ObserveAll(event bool) {
	g.ObserveEach(func(string) (bool, bool) {
		return event, true
	})
}

// ObserveEach accounts one draw and asks classify, per active session, for
// the outcome of the draw and whether it counts for that session at all.
func (g *Group) ObserveEach(classify func(label string) (event, counted bool)) {
	if g.Done() {
		return
	}
	g.draws++
	for _, m := range g.members {
		if m.doneAt != 0 {
			continue
		}
		event, counted := classify(m.label)
		if !counted {
			continue
		}
		if m.session.Observe(event).Terminal() {
			m.doneAt = g.draws
		}
	}
}

// Active lists the labels of sessions still running.
func (g *Group) Active() []string {
	var labels []string
	for _, m := range g.members {
		if m.doneAt == 0 {
			labels = append(labels, m.label)
		}
	}
	return labels
}

// Done reports whether every session terminated or the budget is spent.
func (g *Group) Done() bool {
	return len(g.Active()) == 0 || g.draws >= g.cfg.MaxSteps
}

// Draws returns the number of draws observed by the group.
func (g *Group) Draws() uint64 {
	return g.draws
}

// Session returns the session registered under label.
func (g *Group) Session(label string) (*Session, bool) {
	m, found := g.index[label]
	if !found {
		return nil, false
	}
	return m.session, true
}

// TerminatedAt returns the draw index at which the labelled session reached
// its decision, or 0 if it is still undecided.
func (g *Group) TerminatedAt(label string) uint64 {
	if m, found := g.index[label]; found {
		return m.doneAt
	}
	return 0
}

// Outcomes snapshots all sessions in registration order. Steps is the
// draw index at termination, or the number of draws for undecided sessions.
func (g *Group) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(g.members))
	for _, m := range g.members {
		o := m.session.Outcome(m.label)
		o.Steps = g.draws
		if m.doneAt != 0 {
			o.Steps = m.doneAt
		}
		out = append(out, o)
	}
	return out
}
