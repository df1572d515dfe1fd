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

// Package warehouse is the handle to a climdata database: connection
// management, row-count statistics, the analytics refresh contract, and the
// read queries the serving layer consumes.
package warehouse

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/climate-vault/climdata/data"
)

type Warehouse struct {
	DBUrl string

	Pool *pgxpool.Pool
}

// Connect to the database configured for the warehouse
func (myWarehouse *Warehouse) Connect(ctx context.Context) error {
	if myWarehouse.Pool != nil {
		return nil
	}

	pool, err := pgxpool.New(ctx, myWarehouse.DBUrl)
	if err != nil {
		return err
	}
	myWarehouse.Pool = pool

	return nil
}

// Close the database pool
func (myWarehouse *Warehouse) Close() {
	myWarehouse.Pool.Close()
}

// NewFromDB creates a warehouse handle and verifies the schema is reachable
func NewFromDB(ctx context.Context, dbURL string) (*Warehouse, error) {
	myWarehouse := &Warehouse{DBUrl: dbURL}
	if err := myWarehouse.Connect(ctx); err != nil {
		return nil, err
	}

	conn, err := myWarehouse.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var one int
	if err := conn.QueryRow(ctx, "SELECT 1 FROM core.dim_area LIMIT 1").Scan(&one); err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	return myWarehouse, nil
}

// Statistics holds row counts for every layer of the warehouse.
type Statistics struct {
	StagingRows int64
	Areas       int64
	TimePeriods int64
	Metrics     int64
	Facts       int64
}

// Statistics returns current row counts across staging, dimensions, and the
// fact table.
func (myWarehouse *Warehouse) Statistics(ctx context.Context) (*Statistics, error) {
	conn, err := myWarehouse.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	stats := &Statistics{}
	counts := []struct {
		table string
		dest  *int64
	}{
		{"staging.raw_temperature", &stats.StagingRows},
		{"core.dim_area", &stats.Areas},
		{"core.dim_time_period", &stats.TimePeriods},
		{"core.dim_metric", &stats.Metrics},
		{"core.fact_temperature", &stats.Facts},
	}

	for _, count := range counts {
		if err := conn.QueryRow(ctx, "SELECT count(*) FROM "+count.table).Scan(count.dest); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// LastRun returns the most recent etl_run record, or nil when no load has
// ever run.
func (myWarehouse *Warehouse) LastRun(ctx context.Context) (*data.ETLRun, error) {
	var run data.ETLRun
	err := pgxscan.Get(ctx, myWarehouse.Pool, &run,
		`SELECT id, started_at, finished_at, rows_staged, rows_facts, status, error_text
		FROM core.etl_run ORDER BY started_at DESC LIMIT 1`)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// LastUpdated returns the finish time of the most recent successful load.
func (myWarehouse *Warehouse) LastUpdated(ctx context.Context) (time.Time, error) {
	var lastUpdated time.Time
	err := myWarehouse.Pool.QueryRow(ctx,
		`SELECT coalesce(max(finished_at), '0001-01-01'::timestamptz)
		FROM core.etl_run WHERE status = 'succeeded'`).Scan(&lastUpdated)
	if err != nil {
		return time.Time{}, err
	}

	return lastUpdated, nil
}
