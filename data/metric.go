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

// SaveDB inserts the metric into core.dim_metric and fills in the generated
// surrogate key.
func (metric *Metric) SaveDB(ctx context.Context, tx pgx.Tx) error {
	sql := `INSERT INTO core.dim_metric (
		"metric_code",
		"metric_name",
		"unit"
	) VALUES (
		$1, $2, $3
	) RETURNING metric_key`

	err := tx.QueryRow(ctx, sql, metric.MetricCode, metric.MetricName, metric.Unit).Scan(&metric.MetricKey)
	if err != nil {
		return MapConstraintError(err, "core.dim_metric",
			fmt.Sprintf("(metric_code=%d name=%s)", metric.MetricCode, metric.MetricName))
	}

	return nil
}
