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
package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// Aggregates is the fixed set of analytics materialized views, refreshed in
// this order.
var Aggregates = []string{
	"annual_temperature_by_country",
	"seasonal_temperature_patterns",
	"continental_warming_trend",
}

// RefreshResult reports the outcome of refreshing one aggregate.
type RefreshResult struct {
	Aggregate string
	Duration  time.Duration
	Err       error
}

// refreshExecutor is the slice of database behavior the refresh logic needs;
// *pgxpool.Pool satisfies it.
type refreshExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Refresh recomputes one aggregate from the current fact+dimension state,
// fully replacing its prior contents. Once the view has been populated the
// refresh runs CONCURRENTLY so readers see either the old or the new
// contents, never a torn mix; the very first refresh after migration cannot
// (Postgres forbids it for never-populated views) and runs plain.
func (myWarehouse *Warehouse) Refresh(ctx context.Context, aggregate string) RefreshResult {
	return refreshAggregate(ctx, myWarehouse.Pool, aggregate)
}

// RefreshAll recomputes every aggregate. The three refreshes are independent
// units of work: a failure in one is reported in its result and does not
// block or roll back the others, so partial success is observable.
func (myWarehouse *Warehouse) RefreshAll(ctx context.Context) []RefreshResult {
	return refreshAll(ctx, myWarehouse.Pool)
}

func refreshAll(ctx context.Context, exec refreshExecutor) []RefreshResult {
	results := make([]RefreshResult, 0, len(Aggregates))

	for _, aggregate := range Aggregates {
		result := refreshAggregate(ctx, exec, aggregate)
		if result.Err != nil {
			log.Error().Err(result.Err).Str("Aggregate", aggregate).Msg("aggregate refresh failed")
		} else {
			log.Info().Str("Aggregate", aggregate).Dur("Duration", result.Duration).Msg("aggregate refreshed")
		}

		results = append(results, result)
	}

	return results
}

func refreshAggregate(ctx context.Context, exec refreshExecutor, aggregate string) RefreshResult {
	start := time.Now()
	result := RefreshResult{Aggregate: aggregate}

	populated, err := isPopulated(ctx, exec, aggregate)
	if err != nil {
		result.Err = fmt.Errorf("refresh %s: %w", aggregate, err)
		return result
	}

	sql := fmt.Sprintf("REFRESH MATERIALIZED VIEW analytics.%s", aggregate)
	if populated {
		sql = fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY analytics.%s", aggregate)
	}

	if _, err := exec.Exec(ctx, sql); err != nil {
		result.Err = fmt.Errorf("refresh %s: %w", aggregate, err)
	}

	result.Duration = time.Since(start)
	return result
}

func isPopulated(ctx context.Context, exec refreshExecutor, aggregate string) (bool, error) {
	var populated bool
	err := exec.QueryRow(ctx,
		"SELECT ispopulated FROM pg_matviews WHERE schemaname = 'analytics' AND matviewname = $1",
		aggregate).Scan(&populated)
	if err != nil {
		return false, err
	}

	return populated, nil
}

// Failed returns the subset of results that carry an error.
func Failed(results []RefreshResult) []RefreshResult {
	var failed []RefreshResult
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
