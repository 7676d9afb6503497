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

package sampling

import (
	"sort"

	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/cockroachdb/errors"
)

// Func draws a sample of k out of n items. Errors of the source are
// returned unchanged.
type Func func(src rng.Source, n, k int) (Sample, error)

func checkSize(n, k int) error {
	if n < 1 || k < 0 || k > n {
		return errors.Newf("invalid sample size k=%d out of n=%d", k, n)
	}
	return nil
}

// PIKK assigns a uniform key to every index, sorts by key and keeps the
// first k ("permute indices and keep k"). Ties keep index order.
func PIKK(src rng.Source, n, k int) (Sample, error) {
	if err := checkSize(n, k); err != nil {
		return nil, err
	}
	keys := make([]float64, n)
	for i := range keys {
		u, err := src.Uniform()
		if err != nil {
			return nil, err
		}
		keys[i] = u
	}
	perm := make(Sample, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return keys[perm[a]] < keys[perm[b]]
	})
	return perm[:k], nil
}

// Permutation returns a uniformly random permutation of 0..n-1 using PIKK.
func Permutation(src rng.Source, n int) (Sample, error) {
	return PIKK(src, n, n)
}

// FisherYates shuffles 0..n-1 in place (for i in 0..n-2 swap a[i] with a
// uniform a[J], J in [i,n)) and returns the first k items.
func FisherYates(src rng.Source, n, k int) (Sample, error) {
	if err := checkSize(n, k); err != nil {
		return nil, err
	}
	a := make(Sample, n)
	for i := range a {
		a[i] = i
	}
	for i := 0; i < n-1; i++ {
		j, err := src.Intn(i, n)
		if err != nil {
			return nil, err
		}
		a[i], a[j] = a[j], a[i]
	}
	return a[:k], nil
}

// Reservoir is Waterman's Algorithm R: fill the reservoir with the first k
// items, then item t replaces slot i when a uniform i in [0,t] is below k.
func Reservoir(src rng.Source, n, k int) (Sample, error) {
	if err := checkSize(n, k); err != nil {
		return nil, err
	}
	s := make(Sample, k)
	for i := range s {
		s[i] = i
	}
	for t := k; t < n; t++ {
		i, err := src.Intn(0, t+1)
		if err != nil {
			return nil, err
		}
		if i < k {
			s[i] = t
		}
	}
	return s, nil
}

// Recursive is the RANDOM-SAMPLE procedure of Cormen et al. unrolled into a
// loop: for j = n-k..n-1 draw i in [0,j] and add j if i was already taken,
// i otherwise. The draw order equals the recursive formulation.
func Recursive(src rng.Source, n, k int) (Sample, error) {
	if err := checkSize(n, k); err != nil {
		return nil, err
	}
	s := make(Sample, 0, k)
	taken := make(map[int]struct{}, k)
	for j := n - k; j < n; j++ {
		i, err := src.Intn(0, j+1)
		if err != nil {
			return nil, err
		}
		if _, found := taken[i]; found {
			i = j
		}
		taken[i] = struct{}{}
		s = append(s, i)
	}
	return s, nil
}

// ByIndex selects uniform positions of a shrinking population; the last
// population item moves into the position of the selected one.
func ByIndex(src rng.Source, n, k int) (Sample, error) {
	if err := checkSize(n, k); err != nil {
		return nil, err
	}
	pop := make([]int, n)
	for i := range pop {
		pop[i] = i
	}
	s := make(Sample, 0, k)
	for remaining := n; remaining > n-k; remaining-- {
		w, err := src.Intn(0, remaining)
		if err != nil {
			return nil, err
		}
		s = append(s, pop[w])
		pop[w] = pop[remaining-1]
	}
	return s, nil
}
