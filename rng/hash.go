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
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// Names of the supported hash functions.
const (
	SHA256Name    = "SHA256"
	SHA3Name      = "SHA3-256"
	Keccak256Name = "KECCAK256"
)

const hashStateLen = 16

var hashFunctions = map[string]func() hash.Hash{
	SHA256Name:    sha256.New,
	SHA3Name:      sha3.New256,
	Keccak256Name: sha3.NewLegacyKeccak256,
}

// Hash is a counter-mode generator: draw i is HASH("<seed>,<i>") read as a
// big-endian integer and scaled by 2^-bits. The counter moves by one per draw.
type Hash struct {
	name    string
	newHash func() hash.Hash
	seed    uint64
	counter uint64
	buf     []byte
}

// NewHash creates a counter-mode generator over the named hash function.
func NewHash(name string, seed uint64) (*Hash, error) {
	f, ok := hashFunctions[name]
	if !ok {
		return nil, errors.Newf("unknown hash function %q", name)
	}
	return &Hash{name: name, newHash: f, seed: seed}, nil
}

// NewSHA256 creates the SHA-256 counter-mode generator.
func NewSHA256(seed uint64) *Hash {
	g, _ := NewHash(SHA256Name, seed)
	return g
}

func (g *Hash) Name() string {
	return g.name
}

func (g *Hash) Seed(seed uint64) {
	g.seed = seed
	g.counter = 0
}

// Counter returns the number of draws taken since seeding.
func (g *Hash) Counter() uint64 {
	return g.counter
}

// digest hashes the current counter value and advances the counter.
func (g *Hash) digest() []byte {
	g.buf = g.buf[:0]
	g.buf = strconv.AppendUint(g.buf, g.seed, 10)
	g.buf = append(g.buf, ',')
	g.buf = strconv.AppendUint(g.buf, g.counter, 10)
	h := g.newHash()
	h.Write(g.buf)
	g.counter++
	return h.Sum(nil)
}

func (g *Hash) Uniform() (float64, error) {
	return toUniform(binary.BigEndian.Uint64(g.digest())), nil
}

// Intn reduces the whole digest modulo the range width.
func (g *Hash) Intn(low, high int) (int, error) {
	if high <= low {
		return 0, errors.Newf("empty integer range [%d,%d)", low, high)
	}
	var v, span uint256.Int
	v.SetBytes(g.digest())
	span.SetUint64(uint64(high - low))
	v.Mod(&v, &span)
	return low + int(v.Uint64()), nil
}

func (g *Hash) State() State {
	data := make([]byte, hashStateLen)
	binary.BigEndian.PutUint64(data[0:], g.seed)
	binary.BigEndian.PutUint64(data[8:], g.counter)
	return State{Generator: g.name, Data: data}
}

func (g *Hash) SetState(s State) error {
	if err := checkState(s, g.name); err != nil {
		return err
	}
	if len(s.Data) != hashStateLen {
		return errors.Wrapf(ErrInvalidState, "hash state has %d bytes", len(s.Data))
	}
	g.seed = binary.BigEndian.Uint64(s.Data[0:])
	g.counter = binary.BigEndian.Uint64(s.Data[8:])
	return nil
}

func (g *Hash) JumpAhead(n uint64) error {
	g.counter += n
	return nil
}
