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

// SaveDB inserts the measurement into core.fact_temperature. A second
// measurement for the same (area, period, metric, year) fails with a
// DuplicateError -- never an upsert. A failed load must show exactly which
// rows violated the natural-key contract so the source data can be fixed.
func (m *Measurement) SaveDB(ctx context.Context, tx pgx.Tx) error {
	if !ValidYear(m.Year) {
		return &RangeError{Field: "year", Value: m.Year, Min: MinYear, Max: MaxYear,
			Row: m.surrogateKeyString()}
	}

	sql := `INSERT INTO core.fact_temperature (
		"area_key",
		"period_key",
		"metric_key",
		"year",
		"value"
	) VALUES (
		$1, $2, $3, $4, $5
	) RETURNING fact_key`

	err := tx.QueryRow(ctx, sql, m.AreaKey, m.PeriodKey, m.MetricKey, m.Year, m.Value).Scan(&m.FactKey)
	if err != nil {
		return MapConstraintError(err, "core.fact_temperature", m.surrogateKeyString())
	}

	return nil
}

// surrogateKeyString is the fallback identity used when the business keys are
// not at hand; the loader wraps these errors with the staging business key.
func (m *Measurement) surrogateKeyString() string {
	return fmt.Sprintf("(area_key=%d period_key=%d metric_key=%d year=%d)",
		m.AreaKey, m.PeriodKey, m.MetricKey, m.Year)
}
