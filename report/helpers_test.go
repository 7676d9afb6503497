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

package report

import (
	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/0xsoniclabs/prng-audit/sprt"
)

func twoSidedResult(seed uint64, upper, lower sprt.Decision) hypothesis.Result {
	return hypothesis.Result{
		Generator: "SHA256",
		Algorithm: "PIKK",
		Seed:      seed,
		Params:    []hypothesis.Param{{Name: "n", Value: 13}},
		Outcomes: []sprt.Outcome{
			{Label: "upper", Decision: upper, LR: 0.25, PValue: 1, Steps: 40, Observations: 40, Events: 3, History: []float64{1, 0.5, 0.25}},
			{Label: "lower", Decision: lower, LR: 12.5, PValue: 0.08, Steps: 60, Observations: 60, Events: 2, History: []float64{1, 2, 12.5}},
		},
		Draws: 60,
	}
}

func oneSidedResult(seed uint64, steps uint64) hypothesis.Result {
	return hypothesis.Result{
		Generator: "RANDU",
		Algorithm: "AlgorithmR",
		Seed:      seed,
		Params:    []hypothesis.Param{{Name: "n", Value: 30}, {Name: "k", Value: 2}, {Name: "s", Value: 10}},
		Outcomes: []sprt.Outcome{
			{Decision: sprt.RejectNull, LR: 21, PValue: 1 / 21.0, Steps: steps, Observations: steps, Events: 9},
		},
		Draws: steps,
	}
}
