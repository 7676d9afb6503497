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
	"encoding/csv"
	"os"
	"slices"

	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/cockroachdb/errors"
)

// CSVWriter appends flattened results to a CSV file. The header is written
// once, when the file is empty.
type CSVWriter struct {
	file   *os.File
	w      *csv.Writer
	header []string
}

// NewCSVWriter opens filename for appending, creating it if needed.
func NewCSVWriter(filename string) (*CSVWriter, error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open csv file %s", filename)
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrapf(err, "unable to stat csv file %s", filename)
	}
	c := &CSVWriter{file: file, w: csv.NewWriter(file)}
	if stat.Size() > 0 {
		// keep appending below an existing header
		c.header = []string{}
	}
	return c, nil
}

func (c *CSVWriter) Write(res hypothesis.Result) error {
	rec := Flatten(res)
	switch {
	case c.header == nil:
		if err := c.w.Write(rec.Columns); err != nil {
			return err
		}
		c.header = rec.Columns
	case len(c.header) > 0 && !slices.Equal(c.header, rec.Columns):
		return errors.Newf("record columns %v do not match header %v", rec.Columns, c.header)
	}
	if err := c.w.Write(rec.Values); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

func (c *CSVWriter) Close() error {
	c.w.Flush()
	return errors.CombineErrors(c.w.Error(), c.file.Close())
}
