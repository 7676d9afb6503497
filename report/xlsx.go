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
	"math"
	"strconv"

	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// XLSXWriter collects flattened results in a spreadsheet saved on Close.
type XLSXWriter struct {
	path   string
	f      *excelize.File
	header []string
	row    int
}

func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path, f: excelize.NewFile(), row: 1}
}

// cellValue stores numeric data cells as numbers.
func cellValue(v string, data bool) any {
	if !data {
		return v
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return v
}

func (x *XLSXWriter) writeRow(values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, x.row)
		if err != nil {
			return err
		}
		if err := x.f.SetCellValue(sheet, cell, cellValue(v, x.row > 1)); err != nil {
			return err
		}
	}
	x.row++
	return nil
}

func (x *XLSXWriter) Write(res hypothesis.Result) error {
	rec := Flatten(res)
	if x.header == nil {
		if err := x.writeRow(rec.Columns); err != nil {
			return err
		}
		x.header = rec.Columns
	} else if len(x.header) != len(rec.Columns) {
		return errors.Newf("record has %d columns, sheet has %d", len(rec.Columns), len(x.header))
	}
	return x.writeRow(rec.Values)
}

// Close saves the workbook.
func (x *XLSXWriter) Close() error {
	err := x.f.SaveAs(x.path)
	return errors.CombineErrors(err, x.f.Close())
}
