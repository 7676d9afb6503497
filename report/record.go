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

// Package report writes test results to CSV, XLSX and SQLite files and
// renders them as console tables and likelihood ratio charts.
package report

import (
	"strconv"

	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/0xsoniclabs/prng-audit/sprt"
)

// Record is a flat row of named columns.
type Record struct {
	Columns []string
	Values  []string
}

func (r *Record) add(column, value string) {
	r.Columns = append(r.Columns, column)
	r.Values = append(r.Values, value)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// suffixed appends _label to the column unless label is empty.
func suffixed(column, label string) string {
	if label == "" {
		return column
	}
	return column + "_" + label
}

// Flatten turns a result into a record. Outcome columns are repeated per
// outcome with the outcome label as suffix (decision_upper, LR_s10, ...).
func Flatten(res hypothesis.Result) Record {
	var r Record
	r.add("prng", res.Generator)
	r.add("algorithm", res.Algorithm)
	r.add("seed", strconv.FormatUint(res.Seed, 10))
	for _, o := range res.Outcomes {
		r.add(suffixed("decision", o.Label), o.Decision.Code())
		r.add(suffixed("LR", o.Label), formatFloat(o.LR))
		r.add(suffixed("pvalue", o.Label), formatFloat(o.PValue))
		r.add(suffixed("steps", o.Label), strconv.FormatUint(o.Steps, 10))
		r.add(suffixed("events", o.Label), strconv.FormatUint(o.Events, 10))
	}
	for _, p := range res.Params {
		r.add(p.Name, formatFloat(p.Value))
	}
	r.add("exhausted", strconv.FormatBool(res.Exhausted))
	return r
}

// decided counts the outcomes with the given decision.
func decided(outcomes []sprt.Outcome, d sprt.Decision) int {
	n := 0
	for _, o := range outcomes {
		if o.Decision == d {
			n++
		}
	}
	return n
}
