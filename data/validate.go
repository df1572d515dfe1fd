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

// Validation bounds enforced before any row reaches the database. Year bounds
// match the CHECK constraints on staging.raw_temperature and
// core.fact_temperature; temperature bounds are advisory only.
const (
	MinYear = 1880
	MaxYear = 2200

	MinTempChange = -20.0
	MaxTempChange = 20.0
)

// ValidYear reports whether year is inside the warehouse range.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// ValidMonthNumber reports whether n is a calendar month number.
func ValidMonthNumber(n int) bool {
	return n >= 1 && n <= 12
}

// ValidQuarter reports whether q is a quarter number.
func ValidQuarter(q int) bool {
	return q >= 1 && q <= 4
}

// ExtremeTemperature reports whether a temperature-change value falls outside
// the plausible physical range. Extreme values are kept -- they may be
// legitimate climate events -- but the load logs them for operator review.
func ExtremeTemperature(value float64) bool {
	return value < MinTempChange || value > MaxTempChange
}

// Validate checks a staging row against the range rules. A nil error means
// the row may be staged; classification problems are not checked here since
// staging accepts loosely typed data by contract.
func (row *StagingRow) Validate() error {
	if !ValidYear(row.Year) {
		return &RangeError{
			Field: "year",
			Value: row.Year,
			Min:   MinYear,
			Max:   MaxYear,
			Row:   row.BusinessKey(),
		}
	}
	return nil
}

// BusinessKey renders the natural identity of the row for error messages, so
// an operator can trace a rejected row back to the source file.
func (row *StagingRow) BusinessKey() string {
	return businessKey(row.M49Code, row.PeriodCode, row.ElementCode, row.Year)
}
