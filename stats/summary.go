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

package stats

import (
	"github.com/montanaflynn/stats"
)

// Summary describes a sample of values, for example the number of steps
// tests needed over a seed sweep.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Summarize computes the summary of values.
func Summarize(values []float64) (Summary, error) {
	data := stats.Float64Data(values)
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, err
	}
	stdDev, err := stats.StandardDeviationSample(data)
	if err != nil {
		return Summary{}, err
	}
	lo, err := stats.Min(data)
	if err != nil {
		return Summary{}, err
	}
	hi, err := stats.Max(data)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, err
	}
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		return Summary{}, err
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Count:  len(values),
		Mean:   mean,
		StdDev: stdDev,
		Min:    lo,
		Q25:    q25,
		Median: median,
		Q75:    q75,
		Max:    hi,
	}, nil
}
