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
	"io"
	"math"
	"strconv"

	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Trajectory returns the log10 likelihood ratio after each observation as
// (step, value) pairs. Infinite ratios end the trajectory.
func Trajectory(history []float64) [][2]float64 {
	points := make([][2]float64, 0, len(history))
	for i, lr := range history {
		v := math.Log10(lr)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			break
		}
		points = append(points, [2]float64{float64(i), v})
	}
	return points
}

func seriesName(res hypothesis.Result, label string) string {
	name := res.Generator + "/" + res.Algorithm + "/" + strconv.FormatUint(res.Seed, 10)
	if label != "" {
		name += "/" + label
	}
	return name
}

// RenderTrajectories draws the log10 likelihood ratio of every outcome
// that kept its history. Results without histories are skipped.
func RenderTrajectories(w io.Writer, title string, results []hypothesis.Result) error {
	chart := charts.NewLine()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "log10 likelihood ratio per step",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "log10 LR"}),
	)
	for _, res := range results {
		for _, o := range res.Outcomes {
			if o.History == nil {
				continue
			}
			points := Trajectory(o.History)
			data := make([]opts.LineData, len(points))
			for i, pair := range points {
				data[i] = opts.LineData{Value: pair}
			}
			chart.AddSeries(seriesName(res, o.Label), data)
		}
	}
	return chart.Render(w)
}
