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
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Options carry generator specific parameters for New.
type Options struct {
	LCG        LCGParams // parameters of a custom "lcg" generator
	StreamFile string    // recording read by the "stream" generator
}

type constructor func(seed uint64, opts Options) (Source, error)

var generators = map[string]constructor{
	"pcg": func(seed uint64, _ Options) (Source, error) {
		return NewHost(seed), nil
	},
	"randu": func(seed uint64, _ Options) (Source, error) {
		return NewLCG(RANDU, seed)
	},
	"sd": func(seed uint64, _ Options) (Source, error) {
		return NewLCG(SuperDuper, seed)
	},
	"lcg": func(seed uint64, opts Options) (Source, error) {
		return NewLCG(opts.LCG, seed)
	},
	"sha256": func(seed uint64, _ Options) (Source, error) {
		return NewHash(SHA256Name, seed)
	},
	"sha3-256": func(seed uint64, _ Options) (Source, error) {
		return NewHash(SHA3Name, seed)
	},
	"keccak256": func(seed uint64, _ Options) (Source, error) {
		return NewHash(Keccak256Name, seed)
	},
	"stream": func(seed uint64, opts Options) (Source, error) {
		if opts.StreamFile == "" {
			return nil, errors.New("stream generator requires an entropy file")
		}
		s, err := NewFileStream(opts.StreamFile)
		if err != nil {
			return nil, err
		}
		s.Seed(seed)
		return s, nil
	},
}

var aliases = map[string]string{
	"host":        "pcg",
	"mt":          "pcg",
	"superduper":  "sd",
	"super-duper": "sd",
	"sha3":        "sha3-256",
	"keccak":      "keccak256",
}

// New creates the named generator seeded with seed. Names are case-insensitive.
func New(name string, seed uint64, opts Options) (Source, error) {
	key := strings.ToLower(name)
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	create, ok := generators[key]
	if !ok {
		return nil, errors.Newf("unknown generator %q (supported: %s)", name, strings.Join(Generators(), ", "))
	}
	return create(seed, opts)
}

// Generators lists the canonical generator names.
func Generators() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
