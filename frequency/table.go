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

// Package frequency keeps category counts ranked by frequency while they are
// being updated, so that rank queries cost O(1) per observed draw.
package frequency

// Table counts occurrences of categories and keeps them ordered by
// descending count. Categories with equal counts form a contiguous block;
// an increment swaps the category to the front of its block and moves the
// block boundary, so ranking always equals a full descending sort of the
// counts with ties broken by the order in which categories left the block.
type Table[K comparable] struct {
	order  []K            // categories by descending count
	counts []uint64       // count of order[i]
	pos    map[K]int      // position of a category in order
	start  map[uint64]int // first position of the block of each count
	total  uint64
}

// NewTable creates an empty table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{
		pos:   make(map[K]int),
		start: make(map[uint64]int),
	}
}

// Register adds key with count zero unless it is already present. It
// reports whether the key was new.
func (t *Table[K]) Register(key K) bool {
	if _, found := t.pos[key]; found {
		return false
	}
	p := len(t.order)
	t.order = append(t.order, key)
	t.counts = append(t.counts, 0)
	t.pos[key] = p
	if _, found := t.start[0]; !found {
		t.start[0] = p
	}
	return true
}

// Add increments the count of key, registering it first if needed.
func (t *Table[K]) Add(key K) {
	t.Register(key)
	p := t.pos[key]
	c := t.counts[p]
	f := t.start[c]

	// move key to the front of its block
	other := t.order[f]
	t.order[f], t.order[p] = key, other
	t.pos[key], t.pos[other] = f, p

	t.counts[f] = c + 1
	if f+1 < len(t.order) && t.counts[f+1] == c {
		t.start[c] = f + 1
	} else {
		delete(t.start, c)
	}
	if _, found := t.start[c+1]; !found {
		t.start[c+1] = f
	}
	t.total++
}

// Count returns the number of occurrences of key.
func (t *Table[K]) Count(key K) uint64 {
	if p, found := t.pos[key]; found {
		return t.counts[p]
	}
	return 0
}

// Rank returns the 0-based position of key in descending count order, or
// -1 if the key is unknown.
func (t *Table[K]) Rank(key K) int {
	if p, found := t.pos[key]; found {
		return p
	}
	return -1
}

// InTop reports whether key is among the s most frequent categories.
func (t *Table[K]) InTop(key K, s int) bool {
	r := t.Rank(key)
	return r >= 0 && r < s
}

// InBottom reports whether key is among the s least frequent categories.
func (t *Table[K]) InBottom(key K, s int) bool {
	r := t.Rank(key)
	return r >= 0 && r >= len(t.order)-s
}

// Top returns the s most frequent categories, most frequent first.
func (t *Table[K]) Top(s int) []K {
	s = min(max(s, 0), len(t.order))
	out := make([]K, s)
	copy(out, t.order[:s])
	return out
}

// Bottom returns the s least frequent categories, least frequent last.
func (t *Table[K]) Bottom(s int) []K {
	s = min(max(s, 0), len(t.order))
	out := make([]K, s)
	copy(out, t.order[len(t.order)-s:])
	return out
}

// Total returns the sum of all counts.
func (t *Table[K]) Total() uint64 {
	return t.total
}

// Len returns the number of distinct categories.
func (t *Table[K]) Len() int {
	return len(t.order)
}
