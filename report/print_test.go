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
	"bytes"
	"testing"

	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_CountsDecisionsPerLabel(t *testing.T) {
	exhausted := twoSidedResult(2, sprt.RejectNull, sprt.RejectNull)
	exhausted.Exhausted = true
	results := []hypothesis.Result{
		twoSidedResult(1, sprt.AcceptNull, sprt.RejectNull),
		exhausted,
		twoSidedResult(3, sprt.Undecided, sprt.AcceptNull),
	}

	summaries, err := Summarize(results)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	lower, upper := summaries[0], summaries[1]
	assert.Equal(t, "lower", lower.Label)
	assert.Equal(t, 3, lower.Runs)
	assert.Equal(t, 1, lower.Accepted)
	assert.Equal(t, 2, lower.Rejected)
	assert.Equal(t, 0, lower.Undecided)
	assert.Equal(t, 1, lower.Exhausted)
	assert.Equal(t, 60.0, lower.Steps.Mean)

	assert.Equal(t, "upper", upper.Label)
	assert.Equal(t, 1, upper.Accepted)
	assert.Equal(t, 1, upper.Rejected)
	assert.Equal(t, 1, upper.Undecided)
}

func TestSummarize_EmptyInput(t *testing.T) {
	summaries, err := Summarize(nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestPrintTable_FormatsNumbers(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []hypothesis.Result{oneSidedResult(42, 1234)})
	out := buf.String()
	assert.Contains(t, out, "RANDU")
	assert.Contains(t, out, "AlgorithmR")
	assert.Contains(t, out, "reject")
	assert.Contains(t, out, "1,234")
}

func TestPrintSummary_WritesOneRowPerLabel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintSummary(&buf, []hypothesis.Result{
		twoSidedResult(1, sprt.AcceptNull, sprt.RejectNull),
		oneSidedResult(2, 8),
	}))
	out := buf.String()
	assert.Contains(t, out, "upper")
	assert.Contains(t, out, "lower")
	assert.Contains(t, out, " - ")
}
