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

// Package sampling implements the sampling algorithms under audit. Every
// algorithm draws from an rng.Source and returns 0-based population indices.
package sampling

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxKeySize is the largest sample size representable as a Key.
const MaxKeySize = 16

// Sample is an ordered selection of distinct indices from 0..n-1. When it
// holds all n indices it is a permutation.
type Sample []int

// Key is the canonical, order-independent identity of a sample. Keys are
// comparable and can be used as map keys.
type Key struct {
	size  int
	items [MaxKeySize]int32
}

// Key returns the canonical key of the sample (its sorted indices).
func (s Sample) Key() (Key, error) {
	if len(s) > MaxKeySize {
		return Key{}, errors.Newf("sample of size %d exceeds maximum key size %d", len(s), MaxKeySize)
	}
	k := Key{size: len(s)}
	for i, v := range s {
		k.items[i] = int32(v)
	}
	slices.Sort(k.items[:k.size])
	return k, nil
}

// Valid checks that the sample holds distinct indices in [0,n).
func (s Sample) Valid(n int) error {
	seen := make(map[int]struct{}, len(s))
	for _, v := range s {
		if v < 0 || v >= n {
			return errors.Newf("index %d out of range [0,%d)", v, n)
		}
		if _, found := seen[v]; found {
			return errors.Newf("duplicate index %d", v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// IsDerangement reports whether the permutation moves every index.
func (s Sample) IsDerangement() bool {
	for i, v := range s {
		if i == v {
			return false
		}
	}
	return true
}

func (k Key) Len() int {
	return k.size
}

// Items returns the sorted indices of the key.
func (k Key) Items() []int {
	out := make([]int, k.size)
	for i := range out {
		out[i] = int(k.items[i])
	}
	return out
}

func (k Key) String() string {
	parts := make([]string, k.size)
	for i := range parts {
		parts[i] = strconv.Itoa(int(k.items[i]))
	}
	return "(" + strings.Join(parts, ",") + ")"
}
