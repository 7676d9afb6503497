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

// Package seeds derives reproducible lists of generator seeds from a single
// master seed, so a whole sweep can be repeated from one number.
package seeds

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
)

// DefaultMaster is the master seed used when none is configured.
const DefaultMaster = 347728688

// Max is the exclusive upper bound of generated seeds.
const Max = 1 << 32

// Generate returns count seeds in [1, 2^32) drawn from a PCG generator
// seeded with master.
func Generate(master uint64, count int) ([]uint64, error) {
	if count < 0 {
		return nil, errors.Newf("negative number of seeds %d", count)
	}
	rg := rand.New(rand.NewSource(master))
	out := make([]uint64, count)
	for i := range out {
		out[i] = 1 + rg.Uint64n(Max-1)
	}
	return out, nil
}
