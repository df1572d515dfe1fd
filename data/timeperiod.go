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
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SaveDB inserts the time period into core.dim_time_period and fills in the
// generated surrogate key. Month-number and quarter pairing with the period
// type is validated before the insert so misconfigured seed data fails with a
// traceable error instead of a bare CHECK violation.
func (period *TimePeriod) SaveDB(ctx context.Context, tx pgx.Tx) error {
	if period.MonthNumber != nil && !ValidMonthNumber(*period.MonthNumber) {
		return &RangeError{Field: "month_number", Value: *period.MonthNumber, Min: 1, Max: 12,
			Row: fmt.Sprintf("(period_code=%d)", period.PeriodCode)}
	}
	if period.Quarter != nil && !ValidQuarter(*period.Quarter) {
		return &RangeError{Field: "quarter", Value: *period.Quarter, Min: 1, Max: 4,
			Row: fmt.Sprintf("(period_code=%d)", period.PeriodCode)}
	}
	if (period.PeriodType == Month) != (period.MonthNumber != nil) {
		return fmt.Errorf("month_number must be set exactly for month periods: period_code=%d", period.PeriodCode)
	}
	if (period.PeriodType == Season) != (period.Quarter != nil) {
		return fmt.Errorf("quarter must be set exactly for season periods: period_code=%d", period.PeriodCode)
	}

	sql := `INSERT INTO core.dim_time_period (
		"period_code",
		"period_name",
		"period_type",
		"month_number",
		"quarter"
	) VALUES (
		$1, $2, $3, $4, $5
	) RETURNING period_key`

	err := tx.QueryRow(ctx, sql, period.PeriodCode, period.PeriodName,
		period.PeriodType, period.MonthNumber, period.Quarter).Scan(&period.PeriodKey)
	if err != nil {
		return MapConstraintError(err, "core.dim_time_period",
			fmt.Sprintf("(period_code=%d name=%s)", period.PeriodCode, period.PeriodName))
	}

	return nil
}
