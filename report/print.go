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
	"sort"
	"strconv"

	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/0xsoniclabs/prng-audit/stats"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LabelSummary aggregates the outcomes sharing a label over many runs.
type LabelSummary struct {
	Label     string
	Runs      int
	Accepted  int
	Rejected  int
	Undecided int
	Exhausted int
	Steps     stats.Summary
}

// Summarize groups outcomes by label, sorted by label.
func Summarize(results []hypothesis.Result) ([]LabelSummary, error) {
	byLabel := make(map[string][]sprt.Outcome)
	exhausted := make(map[string]int)
	for _, res := range results {
		for _, o := range res.Outcomes {
			byLabel[o.Label] = append(byLabel[o.Label], o)
			if res.Exhausted {
				exhausted[o.Label]++
			}
		}
	}
	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	summaries := make([]LabelSummary, 0, len(labels))
	for _, label := range labels {
		outcomes := byLabel[label]
		steps := make([]float64, len(outcomes))
		for i, o := range outcomes {
			steps[i] = float64(o.Steps)
		}
		s, err := stats.Summarize(steps)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, LabelSummary{
			Label:     label,
			Runs:      len(outcomes),
			Accepted:  decided(outcomes, sprt.AcceptNull),
			Rejected:  decided(outcomes, sprt.RejectNull),
			Undecided: decided(outcomes, sprt.Undecided),
			Exhausted: exhausted[label],
			Steps:     s,
		})
	}
	return summaries, nil
}

// PrintTable writes one table row per run and outcome.
func PrintTable(w io.Writer, results []hypothesis.Result) {
	p := message.NewPrinter(language.English)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"PRNG", "Algorithm", "Seed", "Label", "Decision", "LR", "p-value", "Steps"})
	for _, res := range results {
		for _, o := range res.Outcomes {
			t.AppendRow(table.Row{
				res.Generator,
				res.Algorithm,
				res.Seed,
				o.Label,
				o.Decision.String(),
				p.Sprintf("%.4g", o.LR),
				p.Sprintf("%.4g", o.PValue),
				p.Sprintf("%d", o.Steps),
			})
		}
	}
	t.Render()
}

// PrintSummary writes the per label aggregate of results.
func PrintSummary(w io.Writer, results []hypothesis.Result) error {
	summaries, err := Summarize(results)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Label", "Runs", "Accept", "Reject", "Undecided", "Exhausted", "Mean steps", "Median steps", "Max steps"})
	for _, s := range summaries {
		label := s.Label
		if label == "" {
			label = "-"
		}
		t.AppendRow(table.Row{
			label,
			strconv.Itoa(s.Runs),
			strconv.Itoa(s.Accepted),
			strconv.Itoa(s.Rejected),
			strconv.Itoa(s.Undecided),
			strconv.Itoa(s.Exhausted),
			p.Sprintf("%.1f", s.Steps.Mean),
			p.Sprintf("%.0f", s.Steps.Median),
			p.Sprintf("%.0f", s.Steps.Max),
		})
	}
	t.Render()
	return nil
}
