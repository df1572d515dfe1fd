// Copyright 2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package data

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// RangeError reports a value outside the warehouse validation bounds. The Row
// field carries the business key of the offending row.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
	Row   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d outside range [%d, %d] for row %s", e.Field, e.Value, e.Min, e.Max, e.Row)
}

// DuplicateError reports a uniqueness violation: either a duplicate business
// key in a dimension or a duplicate natural key in the fact table. Duplicates
// are data-quality defects in the source, never auto-resolved by overwrite.
type DuplicateError struct {
	Table string
	Key   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key %s in %s", e.Key, e.Table)
}

// ReferenceError reports a fact row naming a dimension key that does not
// exist. It means the dimension load ran incompletely or out of order, which
// is fatal for the batch.
type ReferenceError struct {
	Table string
	Key   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s references missing dimension row %s", e.Table, e.Key)
}

func businessKey(m49 string, periodCode int, elementCode int, year int) string {
	return fmt.Sprintf("(m49=%s period=%d element=%d year=%d)", m49, periodCode, elementCode, year)
}

// FactBusinessKey renders the natural key of a fact row for error reporting.
func FactBusinessKey(m49 string, periodCode int, elementCode int, year int) string {
	return businessKey(m49, periodCode, elementCode, year)
}

// MapConstraintError converts a Postgres constraint violation into the typed
// error for the given table and business key, so callers surface source-data
// identity rather than SQLSTATE codes. Errors that are not constraint
// violations pass through unchanged.
func MapConstraintError(err error, table string, key string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &DuplicateError{Table: table, Key: key}
	case pgerrcode.ForeignKeyViolation:
		return &ReferenceError{Table: table, Key: key}
	case pgerrcode.CheckViolation:
		return fmt.Errorf("check constraint %s failed for row %s: %w", pgErr.ConstraintName, key, err)
	}

	return err
}
