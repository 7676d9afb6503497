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
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// Parameter sets of historical weak generators, kept as negative controls:
// the audit must detect their bias.
var (
	// RANDU is IBM's RANDU generator x' = 65539·x mod 2^31.
	RANDU = LCGParams{Name: "RANDU", Multiplier: 65539, Increment: 0, Modulus: 1 << 31}
	// SuperDuper is Marsaglia's Super-Duper congruential part x' = 69069·x mod 2^32.
	SuperDuper = LCGParams{Name: "SD", Multiplier: 69069, Increment: 0, Modulus: 1 << 32}
)

const lcgStateLen = 40

// LCGParams fully specify a linear congruential generator.
type LCGParams struct {
	Name       string
	Multiplier uint64
	Increment  uint64
	Modulus    uint64
}

// Validate checks that the recurrence is well defined.
func (p LCGParams) Validate() error {
	if p.Modulus < 2 {
		return errors.Newf("lcg modulus %d must be at least 2", p.Modulus)
	}
	if p.Multiplier == 0 || p.Multiplier >= p.Modulus {
		return errors.Newf("lcg multiplier %d must be in [1,%d)", p.Multiplier, p.Modulus)
	}
	if p.Increment >= p.Modulus {
		return errors.Newf("lcg increment %d must be in [0,%d)", p.Increment, p.Modulus)
	}
	return nil
}

// LCG is the linear congruential generator x' = (a·x + c) mod m with output x'/m.
// Products are evaluated with 256-bit integers, so any 64-bit parameters are exact.
type LCG struct {
	params LCGParams
	seed   uint64
	state  uint64
}

// NewLCG creates a generator for the given parameters and seed.
func NewLCG(p LCGParams, seed uint64) (*LCG, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = "LCG"
	}
	g := &LCG{params: p}
	g.Seed(seed)
	return g, nil
}

func (g *LCG) Name() string {
	return g.params.Name
}

// Params returns the recurrence parameters.
func (g *LCG) Params() LCGParams {
	return g.params
}

func (g *LCG) Seed(seed uint64) {
	g.seed = seed
	g.state = seed % g.params.Modulus
}

// next advances the recurrence by one step.
func (g *LCG) next() uint64 {
	var x, a, c, m uint256.Int
	x.SetUint64(g.state)
	a.SetUint64(g.params.Multiplier)
	c.SetUint64(g.params.Increment)
	m.SetUint64(g.params.Modulus)
	x.MulMod(&a, &x, &m)
	x.AddMod(&x, &c, &m)
	g.state = x.Uint64()
	return g.state
}

func (g *LCG) Uniform() (float64, error) {
	return float64(g.next()) / float64(g.params.Modulus), nil
}

func (g *LCG) Intn(low, high int) (int, error) {
	u, err := g.Uniform()
	if err != nil {
		return 0, err
	}
	return scaleInt(u, low, high)
}

func (g *LCG) State() State {
	data := make([]byte, lcgStateLen)
	binary.BigEndian.PutUint64(data[0:], g.seed)
	binary.BigEndian.PutUint64(data[8:], g.state)
	binary.BigEndian.PutUint64(data[16:], g.params.Multiplier)
	binary.BigEndian.PutUint64(data[24:], g.params.Increment)
	binary.BigEndian.PutUint64(data[32:], g.params.Modulus)
	return State{Generator: g.params.Name, Data: data}
}

func (g *LCG) SetState(s State) error {
	if err := checkState(s, g.params.Name); err != nil {
		return err
	}
	if len(s.Data) != lcgStateLen {
		return errors.Wrapf(ErrInvalidState, "lcg state has %d bytes", len(s.Data))
	}
	p := LCGParams{
		Name:       g.params.Name,
		Multiplier: binary.BigEndian.Uint64(s.Data[16:]),
		Increment:  binary.BigEndian.Uint64(s.Data[24:]),
		Modulus:    binary.BigEndian.Uint64(s.Data[32:]),
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(ErrInvalidState, err.Error())
	}
	state := binary.BigEndian.Uint64(s.Data[8:])
	if state >= p.Modulus {
		return errors.Wrapf(ErrInvalidState, "lcg state %d exceeds modulus %d", state, p.Modulus)
	}
	g.params = p
	g.seed = binary.BigEndian.Uint64(s.Data[0:])
	g.state = state
	return nil
}

// JumpAhead applies the n-fold composition of the affine map in O(log n).
func (g *LCG) JumpAhead(n uint64) error {
	var m, a, c, accA, accC, x, t uint256.Int
	m.SetUint64(g.params.Modulus)
	a.SetUint64(g.params.Multiplier)
	c.SetUint64(g.params.Increment)
	accA.SetOne()
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			// acc <- base ∘ acc
			accA.MulMod(&a, &accA, &m)
			t.MulMod(&a, &accC, &m)
			accC.AddMod(&t, &c, &m)
		}
		// base <- base ∘ base
		t.MulMod(&a, &c, &m)
		c.AddMod(&t, &c, &m)
		a.MulMod(&a, &a, &m)
	}
	x.SetUint64(g.state)
	x.MulMod(&accA, &x, &m)
	x.AddMod(&x, &accC, &m)
	g.state = x.Uint64()
	return nil
}
