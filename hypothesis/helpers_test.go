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

package hypothesis

import (
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sampling"
)

// shifted always returns the cyclic shift i -> i+1, a derangement.
var shifted = sampling.Algorithm{
	Name:     "shift",
	Permutes: true,
	Sample: func(_ rng.Source, n, _ int) (sampling.Sample, error) {
		s := make(sampling.Sample, n)
		for i := range s {
			s[i] = (i + 1) % n
		}
		return s, nil
	},
}

// scriptedSingletons returns an algorithm emitting the given one-item
// samples in order, then repeating the last one.
func scriptedSingletons(items ...int) sampling.Algorithm {
	next := 0
	return sampling.Algorithm{
		Name: "scripted",
		Sample: func(rng.Source, int, int) (sampling.Sample, error) {
			item := items[min(next, len(items)-1)]
			next++
			return sampling.Sample{item}, nil
		},
	}
}

// favouring returns an algorithm that emits the first k items with
// probability one half and a PIKK sample otherwise.
func favouring(k int) sampling.Algorithm {
	return sampling.Algorithm{
		Name: "biased",
		Sample: func(src rng.Source, n, size int) (sampling.Sample, error) {
			u, err := src.Uniform()
			if err != nil {
				return nil, err
			}
			if u < 0.5 {
				s := make(sampling.Sample, size)
				for i := range s {
					s[i] = i
				}
				return s, nil
			}
			return sampling.PIKK(src, n, size)
		},
	}
}

func lookup(name string) sampling.Algorithm {
	alg, err := sampling.Lookup(name)
	if err != nil {
		panic(err)
	}
	return alg
}
