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
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/prng-audit/sprt"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRows_OneRowPerOutcome(t *testing.T) {
	rows := Rows(twoSidedResult(9, sprt.RejectNull, sprt.AcceptNull))
	require.Len(t, rows, 2)
	assert.Equal(t, OutcomeRow{
		Prng:         "SHA256",
		Algorithm:    "PIKK",
		Seed:         9,
		Params:       "n=13",
		Label:        "upper",
		Decision:     "1",
		LR:           0.25,
		PValue:       1,
		Steps:        40,
		Observations: 40,
		Events:       3,
	}, rows[0])
	assert.Equal(t, "lower", rows[1].Label)
	assert.Equal(t, "0", rows[1].Decision)
}

func TestSQLiteStore_WritesAndReadsOutcomes(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "outcomes.db"))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	require.NoError(t, store.Write(twoSidedResult(1, sprt.AcceptNull, sprt.RejectNull)))
	require.NoError(t, store.Write(oneSidedResult(2, 17)))
	require.Len(t, store.buffer, 3)
	require.NoError(t, store.Flush())
	assert.Empty(t, store.buffer)

	all, err := store.Outcomes("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "n=30,k=2,s=10", all[2].Params)
	assert.Equal(t, int64(17), all[2].Steps)

	upper, err := store.Outcomes("upper")
	require.NoError(t, err)
	require.Len(t, upper, 1)
	assert.Equal(t, int64(1), upper[0].Seed)
}

func TestSQLiteStore_FlushesFullBuffer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := newSQLiteStore(sqlx.NewDb(db, "sqlite3"))

	mock.ExpectBegin()
	for range bufferSize {
		mock.ExpectExec("INSERT INTO outcome").WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	for i := range bufferSize {
		require.NoError(t, store.Write(oneSidedResult(uint64(i), 3)))
	}
	assert.Empty(t, store.buffer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_FlushRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := newSQLiteStore(sqlx.NewDb(db, "sqlite3"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outcome").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	require.NoError(t, store.Write(oneSidedResult(1, 3)))
	assert.ErrorContains(t, store.Flush(), "locked")
	assert.Len(t, store.buffer, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_FlushEmptyBufferIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := newSQLiteStore(sqlx.NewDb(db, "sqlite3"))
	assert.NoError(t, store.Flush())
	assert.NoError(t, mock.ExpectationsWereMet())
}
