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

package sprt

import (
	"math"
	"testing"

	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inverseE = 0.36787944117144233

func always(event bool) EventStream {
	return EventFunc(func() (bool, error) {
		return event, nil
	})
}

func TestConfig_Thresholds(t *testing.T) {
	lower, upper := Config{Alpha: 0.05, Beta: 0}.Thresholds()
	assert.Equal(t, 0.0, lower)
	assert.InDelta(t, 19.0, upper, 1e-12)

	lower, upper = Config{Alpha: 0.05, Beta: 0.05}.Thresholds()
	assert.InDelta(t, 0.05/0.95, lower, 1e-15)
	assert.InDelta(t, 19.0, upper, 1e-12)
}

func TestConfig_ValidThresholdsEncloseOne(t *testing.T) {
	for _, alpha := range []float64{0.001, 0.01, 0.05, 0.2, 0.5} {
		for _, beta := range []float64{0, 0.01, 0.1, 0.3} {
			cfg := Config{Alpha: alpha, Beta: beta, Multiplier: 1.1, MaxSteps: 10}
			require.NoError(t, cfg.Validate())
			lower, upper := cfg.Thresholds()
			assert.GreaterOrEqual(t, lower, 0.0)
			assert.Less(t, lower, 1.0)
			assert.Greater(t, upper, 1.0)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Alpha: 0.05, Beta: 0, Multiplier: 1.1, MaxSteps: 100}
	tests := map[string]func(c *Config){
		"zero alpha":            func(c *Config) { c.Alpha = 0 },
		"alpha one":             func(c *Config) { c.Alpha = 1 },
		"negative beta":         func(c *Config) { c.Beta = -0.1 },
		"beta one":              func(c *Config) { c.Beta = 1 },
		"multiplier one":        func(c *Config) { c.Multiplier = 1 },
		"infinite multiplier":   func(c *Config) { c.Multiplier = math.Inf(1) },
		"NaN multiplier":        func(c *Config) { c.Multiplier = math.NaN() },
		"zero steps":            func(c *Config) { c.MaxSteps = 0 },
		"alpha plus beta above": func(c *Config) { c.Alpha, c.Beta = 0.6, 0.5 },
	}
	require.NoError(t, valid.Validate())
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
		})
	}
}

func TestNewSession_RejectsInvalidHypotheses(t *testing.T) {
	cfg := Config{Alpha: 0.05, Multiplier: 1.1, MaxSteps: 10}
	for _, p := range [][2]float64{{0, 0.5}, {0.5, 1}, {0.4, 0.4}, {1.2, 0.5}} {
		_, err := NewSession(cfg, p[0], p[1])
		assert.True(t, errors.Is(err, ErrInvalidConfig), "p0=%v p1=%v", p[0], p[1])
	}
	_, err := NewSession(Config{}, 0.3, 0.4)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestSession_RejectsOnPersistentEvents(t *testing.T) {
	cfg := Config{Alpha: 0.05, Beta: 0, Multiplier: 1.1, MaxSteps: 100000}
	s, err := NewSession(cfg, inverseE, 1.1*inverseE)
	require.NoError(t, err)

	exhausted, err := Run(s, always(true))
	require.NoError(t, err)
	assert.False(t, exhausted)

	// smallest n with 1.1^n >= 19
	want := uint64(math.Ceil(math.Log(19) / math.Log(1.1)))
	assert.Equal(t, uint64(31), want)
	assert.Equal(t, RejectNull, s.Decision())
	assert.Equal(t, want, s.Steps())
	assert.Equal(t, want, s.Events())
	assert.InDelta(t, math.Pow(1.1, 31), s.LR(), 1e-9)
	assert.InDelta(t, 1/math.Pow(1.1, 31), s.PValue(), 1e-12)
	assert.Equal(t, "1", s.Decision().Code())
}

func TestSession_AcceptsOnPersistentNonEvents(t *testing.T) {
	cfg := Config{Alpha: 0.05, Beta: 0.05, Multiplier: 1.2, MaxSteps: 1000}
	s, err := NewSession(cfg, 0.5, 0.6)
	require.NoError(t, err)
	_, err = Run(s, always(false))
	require.NoError(t, err)

	// 0.8^14 is the first power below 0.05/0.95
	assert.Equal(t, AcceptNull, s.Decision())
	assert.Equal(t, uint64(14), s.Steps())
	assert.Equal(t, uint64(0), s.Events())
	assert.Equal(t, 1.0, s.PValue())
	assert.Equal(t, "0", s.Decision().Code())
}

func TestSession_DecisionIsAbsorbing(t *testing.T) {
	cfg := Config{Alpha: 0.05, Beta: 0.05, Multiplier: 1.2, MaxSteps: 1000}
	s, err := NewSession(cfg, 0.5, 0.6)
	require.NoError(t, err)
	for range 14 {
		s.Observe(false)
	}
	require.Equal(t, AcceptNull, s.Decision())
	lr := s.LR()
	for range 100 {
		assert.Equal(t, AcceptNull, s.Observe(true))
	}
	assert.Equal(t, uint64(14), s.Steps())
	assert.Equal(t, lr, s.LR())
	assert.Len(t, s.History(), 15)
}

func TestSession_StopsUndecidedAtMaxSteps(t *testing.T) {
	cfg := Config{Alpha: 0.05, Beta: 0.05, Multiplier: 1.2, MaxSteps: 10}
	s, err := NewSession(cfg, 0.5, 0.6)
	require.NoError(t, err)
	next := false
	_, err = Run(s, EventFunc(func() (bool, error) {
		next = !next
		return next, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, Undecided, s.Decision())
	assert.True(t, s.Truncated())
	assert.True(t, s.Done())
	assert.Equal(t, uint64(10), s.Steps())
	assert.Equal(t, "None", s.Decision().Code())
}

func TestSession_HistoryTracksRatio(t *testing.T) {
	cfg := Config{Alpha: 0.05, Multiplier: 1.2, MaxSteps: 10}
	s, err := NewSession(cfg, 0.5, 0.6)
	require.NoError(t, err)
	s.Observe(true)
	s.Observe(false)
	require.Len(t, s.History(), 3)
	assert.Equal(t, 1.0, s.History()[0])
	assert.InDelta(t, 1.2, s.History()[1], 1e-12)
	assert.InDelta(t, 0.96, s.History()[2], 1e-12)

	cfg.DiscardHistory = true
	s, err = NewSession(cfg, 0.5, 0.6)
	require.NoError(t, err)
	s.Observe(true)
	assert.Nil(t, s.History())
}

func TestSession_SaturatedRatioDoesNotDecide(t *testing.T) {
	// with beta = 0 the lower threshold is 0 and can never be reached
	cfg := Config{Alpha: 0.05, Beta: 0, Multiplier: 1.1, MaxSteps: 40}
	s, err := NewSession(cfg, 0.5, 1e-10)
	require.NoError(t, err)
	_, err = Run(s, always(true))
	require.NoError(t, err)

	assert.Equal(t, Undecided, s.Decision())
	assert.True(t, s.Truncated())
	assert.Equal(t, 0.0, s.LR())
	assert.Equal(t, 1.0, s.PValue())
	assert.InDelta(t, 40*math.Log(2e-10), s.LogLR(), 1e-6)
	assert.False(t, math.IsInf(s.LogLR(), 0))
}

func TestRun_ExhaustedSourceEndsUndecided(t *testing.T) {
	cfg := Config{Alpha: 0.05, Beta: 0, Multiplier: 1.1, MaxSteps: 1000}
	s, err := NewSession(cfg, 0.5, 0.55)
	require.NoError(t, err)
	src := rng.NewLimited(rng.NewSHA256(1), 5)

	exhausted, err := Run(s, EventFunc(func() (bool, error) {
		u, err := src.Uniform()
		return u < 0.5, err
	}))
	require.NoError(t, err)
	assert.True(t, exhausted)
	assert.Equal(t, Undecided, s.Decision())
	assert.Equal(t, uint64(5), s.Steps())
	assert.False(t, s.Truncated())
}

func TestRun_PropagatesOtherErrors(t *testing.T) {
	cfg := Config{Alpha: 0.05, Multiplier: 1.1, MaxSteps: 1000}
	s, err := NewSession(cfg, 0.5, 0.55)
	require.NoError(t, err)
	boom := errors.New("boom")
	_, err = Run(s, EventFunc(func() (bool, error) {
		return false, boom
	}))
	assert.True(t, errors.Is(err, boom))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "undecided", Undecided.String())
	assert.Equal(t, "accept", AcceptNull.String())
	assert.Equal(t, "reject", RejectNull.String())
	assert.False(t, Undecided.Terminal())
}
