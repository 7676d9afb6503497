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

package hypothesis

import (
	"testing"

	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditional_ClassifiesAgainstPreviousRanking(t *testing.T) {
	// warm-up: {0},{1}; draws: {0} top, {1} bottom, {2} unknown, {0} top
	test := Conditional{
		N: 4, K: 1, Cutoffs: []int{1},
		Config: sprt.Config{Alpha: 0.05, Beta: 0, Multiplier: 1.5, MaxSteps: 4},
	}
	res, err := test.Run(rng.NewHost(1), scriptedSingletons(0, 1, 0, 1, 2, 0))
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 1)

	o := res.Outcomes[0]
	assert.Equal(t, "s1", o.Label)
	assert.Equal(t, sprt.Undecided, o.Decision)
	assert.Equal(t, uint64(4), o.Steps)
	assert.Equal(t, uint64(3), o.Observations)
	assert.Equal(t, uint64(2), o.Events)
	assert.InDelta(t, 1.125, o.LR, 1e-12)
	assert.Equal(t, uint64(4), res.Draws)
	assert.Equal(t, []Param{{"n", 4}, {"k", 1}}, res.Params)
}

func TestConditional_DetectsFavouredSubset(t *testing.T) {
	test := Conditional{
		N: 13, K: 3, Cutoffs: []int{5, 10, 20},
		Config: sprt.Config{Alpha: 0.05, Beta: 0, Multiplier: 1.5, MaxSteps: 100000},
	}
	res, err := test.Run(rng.NewSHA256(11), favouring(3))
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 3)
	for i, label := range []string{"s5", "s10", "s20"} {
		o := res.Outcomes[i]
		assert.Equal(t, label, o.Label)
		assert.Equal(t, sprt.RejectNull, o.Decision, label)
		assert.LessOrEqual(t, o.Steps, res.Draws)
		assert.LessOrEqual(t, o.Events, o.Observations)
		assert.Positive(t, o.Events)
	}
	// the group stops as soon as the last cutoff decided
	var last uint64
	for _, o := range res.Outcomes {
		last = max(last, o.Steps)
	}
	assert.Equal(t, res.Draws, last)
}

func TestConditional_InvalidConfigurations(t *testing.T) {
	cfg := sprt.Config{Alpha: 0.05, Multiplier: 1.5, MaxSteps: 10}
	tests := map[string]Conditional{
		"no cutoffs":          {N: 13, K: 3, Config: cfg},
		"zero cutoff":         {N: 13, K: 3, Cutoffs: []int{0}, Config: cfg},
		"duplicate cutoffs":   {N: 13, K: 3, Cutoffs: []int{5, 5}, Config: cfg},
		"too few categories":  {N: 5, K: 2, Cutoffs: []int{6}, Config: cfg},
		"multiplier too big":  {N: 13, K: 3, Cutoffs: []int{5}, Config: sprt.Config{Alpha: 0.05, Multiplier: 2, MaxSteps: 10}},
		"invalid engine conf": {N: 13, K: 3, Cutoffs: []int{5}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := test.Run(rng.NewHost(1), lookup("pikk"))
			assert.True(t, errors.Is(err, sprt.ErrInvalidConfig))
		})
	}
}

func TestConditional_ExhaustedSource(t *testing.T) {
	test := Conditional{
		N: 13, K: 3, Cutoffs: []int{2},
		Config: sprt.Config{Alpha: 0.05, Multiplier: 1.5, MaxSteps: 1000},
	}
	// 13 uniforms per PIKK sample: four warm-up draws and three tested ones
	res, err := test.Run(rng.NewLimited(rng.NewSHA256(1), 13*7+5), lookup("pikk"))
	require.NoError(t, err)
	assert.True(t, res.Exhausted)
	assert.LessOrEqual(t, res.Draws, uint64(3))
}
