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
	"strings"

	"github.com/0xsoniclabs/prng-audit/hypothesis"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	// registers the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const (
	// bufferSize of the in-memory buffer for outcome rows
	bufferSize = 1000

	// SQL statement for creating the outcome table
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS outcome (
	prng TEXT,
	algorithm TEXT,
	seed INTEGER,
	params TEXT,
	label TEXT,
	decision TEXT,
	lr FLOAT,
	pvalue FLOAT,
	steps INTEGER,
	observations INTEGER,
	events INTEGER,
	exhausted BOOLEAN
);
`
	// SQL statement for inserting one outcome
	insertSQL = `
INSERT INTO outcome (
	prng, algorithm, seed, params, label, decision, lr, pvalue, steps, observations, events, exhausted
) VALUES (
	:prng, :algorithm, :seed, :params, :label, :decision, :lr, :pvalue, :steps, :observations, :events, :exhausted
)
`
)

// OutcomeRow is one outcome of one run as stored in the database.
type OutcomeRow struct {
	Prng         string  `db:"prng"`
	Algorithm    string  `db:"algorithm"`
	Seed         int64   `db:"seed"`
	Params       string  `db:"params"`
	Label        string  `db:"label"`
	Decision     string  `db:"decision"`
	LR           float64 `db:"lr"`
	PValue       float64 `db:"pvalue"`
	Steps        int64   `db:"steps"`
	Observations int64   `db:"observations"`
	Events       int64   `db:"events"`
	Exhausted    bool    `db:"exhausted"`
}

// Rows converts a result into one row per outcome.
func Rows(res hypothesis.Result) []OutcomeRow {
	params := make([]string, len(res.Params))
	for i, p := range res.Params {
		params[i] = p.Name + "=" + formatFloat(p.Value)
	}
	rows := make([]OutcomeRow, len(res.Outcomes))
	for i, o := range res.Outcomes {
		rows[i] = OutcomeRow{
			Prng:         res.Generator,
			Algorithm:    res.Algorithm,
			Seed:         int64(res.Seed),
			Params:       strings.Join(params, ","),
			Label:        o.Label,
			Decision:     o.Decision.Code(),
			LR:           o.LR,
			PValue:       o.PValue,
			Steps:        int64(o.Steps),
			Observations: int64(o.Observations),
			Events:       int64(o.Events),
			Exhausted:    res.Exhausted,
		}
	}
	return rows
}

// SQLiteStore buffers outcome rows and writes them to an SQLite database
// in batches.
type SQLiteStore struct {
	db     *sqlx.DB
	buffer []OutcomeRow
}

// NewSQLiteStore opens dbFile and creates the schema if needed.
func NewSQLiteStore(dbFile string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %v", dbFile)
	}
	if _, err = db.Exec(createSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create outcome table")
	}
	return newSQLiteStore(db), nil
}

func newSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db, buffer: make([]OutcomeRow, 0, bufferSize)}
}

// Write buffers the outcomes of res and flushes a full buffer.
func (s *SQLiteStore) Write(res hypothesis.Result) error {
	s.buffer = append(s.buffer, Rows(res)...)
	if len(s.buffer) >= bufferSize {
		if err := s.Flush(); err != nil {
			return errors.Wrap(err, "unable to flush outcomes")
		}
	}
	return nil
}

// Flush writes buffered rows in a single transaction.
func (s *SQLiteStore) Flush() error {
	if len(s.buffer) == 0 {
		return nil
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	for _, row := range s.buffer {
		if _, err = tx.NamedExec(insertSQL, row); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	s.buffer = s.buffer[:0]
	return tx.Commit()
}

// Outcomes reads all stored rows matching label; an empty label matches all.
func (s *SQLiteStore) Outcomes(label string) ([]OutcomeRow, error) {
	var rows []OutcomeRow
	var err error
	if label == "" {
		err = s.db.Select(&rows, "SELECT * FROM outcome ORDER BY rowid")
	} else {
		err = s.db.Select(&rows, "SELECT * FROM outcome WHERE label = ? ORDER BY rowid", label)
	}
	return rows, err
}

// Close flushes the buffer and closes the database.
func (s *SQLiteStore) Close() error {
	err := s.Flush()
	return errors.CombineErrors(err, s.db.Close())
}
