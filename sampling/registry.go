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
	"strings"

	"github.com/cockroachdb/errors"
)

// Algorithm is a named sampling algorithm. Permutes is set when the
// algorithm returns a uniformly random ordering for k = n, which
// permutation tests rely on.
type Algorithm struct {
	Name     string
	Sample   Func
	Permutes bool
}

var algorithms = map[string]Algorithm{
	"pikk":      {Name: "PIKK", Sample: PIKK, Permutes: true},
	"fykd":      {Name: "FYKD", Sample: FisherYates, Permutes: true},
	"index":     {Name: "SBI", Sample: ByIndex, Permutes: true},
	"reservoir": {Name: "AlgorithmR", Sample: Reservoir},
	"recursive": {Name: "RandomSample", Sample: Recursive},
}

var algorithmAliases = map[string]string{
	"fisher-yates":  "fykd",
	"sbi":           "index",
	"by-index":      "index",
	"algorithm-r":   "reservoir",
	"algorithmr":    "reservoir",
	"random-sample": "recursive",
	"randomsample":  "recursive",
}

// Lookup returns the named algorithm. Names are case-insensitive.
func Lookup(name string) (Algorithm, error) {
	key := strings.ToLower(name)
	if alias, ok := algorithmAliases[key]; ok {
		key = alias
	}
	alg, ok := algorithms[key]
	if !ok {
		return Algorithm{}, errors.Newf("unknown sampling algorithm %q (supported: %s)", name, strings.Join(Algorithms(), ", "))
	}
	return alg, nil
}

// Algorithms lists the canonical algorithm names.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
