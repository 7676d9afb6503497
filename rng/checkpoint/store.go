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

// Package checkpoint persists generator states so long audits can resume
// from the exact point of the random stream they stopped at.
package checkpoint

import (
	"encoding/binary"
	"strconv"

	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/cockroachdb/errors"
	"github.com/sigurn/crc8"
	"github.com/syndtr/goleveldb/leveldb"
)

// ErrCorrupted is returned when a stored state fails its checksum.
var ErrCorrupted = errors.New("checkpoint: corrupted state")

var crcTable = crc8.MakeTable(crc8.CRC8)

// Store keeps rng.State snapshots in a LevelDB database keyed by
// generator name and seed.
type Store struct {
	db *leveldb.DB
}

// Open opens or creates the checkpoint database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open checkpoint db %s", path)
	}
	return &Store{db: db}, nil
}

func key(generator string, seed uint64) []byte {
	return []byte(generator + "/" + strconv.FormatUint(seed, 10))
}

// encode lays out a state as crc | len(generator) | generator | data.
func encode(s rng.State) []byte {
	buf := make([]byte, 1, 1+2+len(s.Generator)+len(s.Data))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(s.Generator)))
	buf = append(buf, s.Generator...)
	buf = append(buf, s.Data...)
	buf[0] = crc8.Checksum(buf[1:], crcTable)
	return buf
}

func decode(buf []byte) (rng.State, error) {
	if len(buf) < 3 {
		return rng.State{}, errors.Wrapf(ErrCorrupted, "value has %d bytes", len(buf))
	}
	if got := crc8.Checksum(buf[1:], crcTable); got != buf[0] {
		return rng.State{}, errors.Wrapf(ErrCorrupted, "checksum 0x%02x, want 0x%02x", got, buf[0])
	}
	n := int(binary.BigEndian.Uint16(buf[1:3]))
	if len(buf) < 3+n {
		return rng.State{}, errors.Wrapf(ErrCorrupted, "generator name overflows value")
	}
	data := make([]byte, len(buf)-3-n)
	copy(data, buf[3+n:])
	return rng.State{Generator: string(buf[3 : 3+n]), Data: data}, nil
}

// Save stores the current state of src, which was seeded with seed.
func (s *Store) Save(src rng.Source, seed uint64) error {
	if err := s.db.Put(key(src.Name(), seed), encode(src.State()), nil); err != nil {
		return errors.Wrapf(err, "cannot save state of %s seed %d", src.Name(), seed)
	}
	return nil
}

// Load returns the stored state for generator and seed. The boolean is
// false when no checkpoint exists.
func (s *Store) Load(generator string, seed uint64) (rng.State, bool, error) {
	buf, err := s.db.Get(key(generator, seed), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return rng.State{}, false, nil
	}
	if err != nil {
		return rng.State{}, false, errors.Wrapf(err, "cannot load state of %s seed %d", generator, seed)
	}
	state, err := decode(buf)
	if err != nil {
		return rng.State{}, false, err
	}
	return state, true, nil
}

// Restore loads the checkpoint of src for seed and applies it. It reports
// whether a checkpoint was found.
func (s *Store) Restore(src rng.Source, seed uint64) (bool, error) {
	state, ok, err := s.Load(src.Name(), seed)
	if err != nil || !ok {
		return false, err
	}
	if err = src.SetState(state); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the checkpoint for generator and seed.
func (s *Store) Delete(generator string, seed uint64) error {
	return s.db.Delete(key(generator, seed), nil)
}

func (s *Store) Close() error {
	return s.db.Close()
}
