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

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
)

// HostName identifies the host's general-purpose generator in reports.
const HostName = "PCG"

// Host wraps the general-purpose PCG generator of golang.org/x/exp/rand.
// Two instances agree only if seeded identically.
type Host struct {
	src *rand.PCGSource
	rg  *rand.Rand
}

// NewHost creates a host generator seeded with seed.
func NewHost(seed uint64) *Host {
	src := &rand.PCGSource{}
	src.Seed(seed)
	return &Host{src: src, rg: rand.New(src)}
}

func (h *Host) Name() string {
	return HostName
}

func (h *Host) Seed(seed uint64) {
	h.src.Seed(seed)
}

func (h *Host) Uniform() (float64, error) {
	return toUniform(h.src.Uint64()), nil
}

// Intn draws without modulo bias using the generator's bounded sampler.
func (h *Host) Intn(low, high int) (int, error) {
	if high <= low {
		return 0, errors.Newf("empty integer range [%d,%d)", low, high)
	}
	return low + int(h.rg.Uint64n(uint64(high-low))), nil
}

func (h *Host) State() State {
	data, _ := h.src.MarshalBinary()
	return State{Generator: HostName, Data: data}
}

func (h *Host) SetState(s State) error {
	if err := checkState(s, HostName); err != nil {
		return err
	}
	if err := h.src.UnmarshalBinary(s.Data); err != nil {
		return errors.Wrap(ErrInvalidState, err.Error())
	}
	return nil
}

// JumpAhead discards n outputs; PCG offers no cheaper advance here.
func (h *Host) JumpAhead(n uint64) error {
	for range n {
		h.src.Uint64()
	}
	return nil
}
