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

package report

import (
	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/cockroachdb/errors"
)

// Sink receives test results.
//
//go:generate mockgen -source sink.go -destination sink_mock.go -package report
type Sink interface {
	Write(res hypothesis.Result) error
	Close() error
}

// Sinks fans results out to several sinks.
type Sinks struct {
	sinks []Sink
}

func NewSinks(sinks ...Sink) *Sinks {
	return &Sinks{sinks: sinks}
}

// Add registers another sink.
func (s *Sinks) Add(sink Sink) *Sinks {
	s.sinks = append(s.sinks, sink)
	return s
}

func (s *Sinks) Len() int {
	return len(s.sinks)
}

func (s *Sinks) Write(res hypothesis.Result) error {
	for _, sink := range s.sinks {
		if err := sink.Write(res); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all sinks and combines their errors.
func (s *Sinks) Close() error {
	var err error
	for _, sink := range s.sinks {
		err = errors.CombineErrors(err, sink.Close())
	}
	return err
}
