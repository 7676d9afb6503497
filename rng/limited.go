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

package rng

// Limited wraps a source with a fixed budget of draws. Once the budget is
// spent every draw reports ErrSourceExhausted, which models finite entropy
// recordings and metered entropy services.
type Limited struct {
	Source
	limit uint64
	used  uint64
}

// NewLimited allows at most limit draws from src.
func NewLimited(src Source, limit uint64) *Limited {
	return &Limited{Source: src, limit: limit}
}

// Used returns the number of draws taken so far.
func (l *Limited) Used() uint64 {
	return l.used
}

func (l *Limited) take(n uint64) bool {
	if l.used+n > l.limit || l.used+n < l.used {
		return false
	}
	l.used += n
	return true
}

func (l *Limited) Uniform() (float64, error) {
	if !l.take(1) {
		return 0, ErrSourceExhausted
	}
	return l.Source.Uniform()
}

func (l *Limited) Intn(low, high int) (int, error) {
	if !l.take(1) {
		return 0, ErrSourceExhausted
	}
	return l.Source.Intn(low, high)
}

func (l *Limited) JumpAhead(n uint64) error {
	if !l.take(n) {
		return ErrSourceExhausted
	}
	return l.Source.JumpAhead(n)
}
