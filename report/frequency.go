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

	"github.com/0xsoniclabs/prng-audit/stats"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FrequencyRow is the frequency simulation of one seed.
type FrequencyRow struct {
	Generator string
	Algorithm string
	Seed      uint64
	Report    stats.Report
}

// Rejections counts the rows whose chi-squared p-value is below alpha.
func Rejections(rows []FrequencyRow, alpha float64) int {
	n := 0
	for _, r := range rows {
		if r.Report.ChiSquare.PValue < alpha {
			n++
		}
	}
	return n
}

// PrintFrequency writes one row per seed followed by a summary of the
// chi-squared p-values, which are uniform when the sampler is.
func PrintFrequency(w io.Writer, rows []FrequencyRow, alpha float64) error {
	p := message.NewPrinter(language.English)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"PRNG", "Algorithm", "Seed", "Samples", "Chi2", "DF", "p-value", "Range", "Range p-value", "Max prob ratio"})
	pvalues := make([]float64, len(rows))
	for i, r := range rows {
		pvalues[i] = r.Report.ChiSquare.PValue
		t.AppendRow(table.Row{
			r.Generator,
			r.Algorithm,
			r.Seed,
			p.Sprintf("%d", r.Report.Reps),
			p.Sprintf("%.2f", r.Report.ChiSquare.Statistic),
			p.Sprintf("%.0f", r.Report.ChiSquare.DF),
			p.Sprintf("%.4f", r.Report.ChiSquare.PValue),
			p.Sprintf("%.0f", r.Report.Range),
			p.Sprintf("%.4f", r.Report.RangePValue),
			p.Sprintf("%.4f", r.Report.MaxProbRatio),
		})
	}
	t.Render()
	if len(rows) == 0 {
		return nil
	}

	s, err := stats.Summarize(pvalues)
	if err != nil {
		return err
	}
	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.AppendHeader(table.Row{"Seeds", "Rejected", "Mean p-value", "Min p-value", "Median p-value", "Max p-value"})
	summary.AppendRow(table.Row{
		len(rows),
		Rejections(rows, alpha),
		p.Sprintf("%.4f", s.Mean),
		p.Sprintf("%.4f", s.Min),
		p.Sprintf("%.4f", s.Median),
		p.Sprintf("%.4f", s.Max),
	})
	summary.Render()
	return nil
}
