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

// Package load writes transformed rows into the warehouse: staging first,
// then dimensions, then facts. Each step is one transaction per batch -- a
// constraint violation rolls the step back entirely so readers never see a
// partial batch, and the error names the violating business key.
package load

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/climate-vault/climdata/data"
)

const defaultBatchSize = 5000

// Loader writes one batch of staged rows through the star schema.
type Loader struct {
	Pool      *pgxpool.Pool
	BatchSize int

	keys *KeyCache
}

// NewLoader returns a Loader over the given pool.
func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{
		Pool:      pool,
		BatchSize: defaultBatchSize,
		keys:      NewKeyCache(),
	}
}

// Result reports what one load run wrote.
type Result struct {
	RunID      uuid.UUID
	RowsStaged int64
	Areas      int
	Facts      int64
}

// Run executes the complete load: staging, dimensions, facts. An etl_run
// audit row tracks the batch from start to finish.
func (loader *Loader) Run(ctx context.Context, rows []data.StagingRow) (*Result, error) {
	result := &Result{RunID: uuid.New()}

	if err := loader.beginRun(ctx, result.RunID); err != nil {
		return nil, err
	}

	err := loader.runSteps(ctx, rows, result)
	if finishErr := loader.finishRun(ctx, result, err); finishErr != nil {
		log.Error().Err(finishErr).Str("RunID", result.RunID.String()).Msg("could not record run outcome")
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (loader *Loader) runSteps(ctx context.Context, rows []data.StagingRow, result *Result) error {
	staged, err := loader.LoadStaging(ctx, rows)
	if err != nil {
		return fmt.Errorf("staging load: %w", err)
	}
	result.RowsStaged = staged

	areas, err := loader.LoadDimensions(ctx, rows)
	if err != nil {
		return fmt.Errorf("dimension load: %w", err)
	}
	result.Areas = areas

	facts, err := loader.LoadFacts(ctx)
	if err != nil {
		return fmt.Errorf("fact load: %w", err)
	}
	result.Facts = facts

	return nil
}

// LoadStaging truncates and bulk-loads staging.raw_temperature inside a
// single transaction. Rows are validated before they are sent; a rejected row
// fails the batch with its business key rather than tripping the CHECK
// constraint server-side.
func (loader *Loader) LoadStaging(ctx context.Context, rows []data.StagingRow) (int64, error) {
	for idx := range rows {
		if err := rows[idx].Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := loader.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE staging.raw_temperature RESTART IDENTITY"); err != nil {
		return 0, err
	}

	batchSize := loader.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	var total int64
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		copied, err := tx.CopyFrom(ctx,
			pgx.Identifier{"staging", "raw_temperature"},
			[]string{"area_code", "m49_code", "area_name", "period_code", "period_name",
				"element_code", "element_name", "unit", "year", "value"},
			pgx.CopyFromSlice(end-start, func(i int) ([]any, error) {
				row := rows[start+i]
				return []any{row.AreaCode, row.M49Code, row.AreaName, row.PeriodCode,
					row.PeriodName, row.ElementCode, row.ElementName, row.Unit,
					row.Year, row.Value}, nil
			}))
		if err != nil {
			return 0, err
		}

		total += copied
		log.Info().Int64("RowsCopied", total).Int("TotalRows", len(rows)).Msg("staged batch")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	log.Info().Int64("Rows", total).Msg("staging load complete")
	return total, nil
}

// LoadDimensions rebuilds the three dimensions from the batch inside one
// transaction: distinct areas with resolved hierarchy, then the fixed time
// period and metric seed sets. Surrogate keys are regenerated as a unit with
// the fact reload that follows, so no fact ever references a stale key.
func (loader *Loader) LoadDimensions(ctx context.Context, rows []data.StagingRow) (int, error) {
	tx, err := loader.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE core.dim_area RESTART IDENTITY CASCADE"); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, "TRUNCATE TABLE core.dim_time_period RESTART IDENTITY CASCADE"); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, "TRUNCATE TABLE core.dim_metric RESTART IDENTITY CASCADE"); err != nil {
		return 0, err
	}

	areas := DistinctAreas(rows)
	for _, area := range areas {
		if err := area.SaveDB(ctx, tx); err != nil {
			return 0, err
		}
	}

	if err := ResolveHierarchy(areas); err != nil {
		return 0, err
	}
	for _, area := range areas {
		if area.ParentAreaKey == nil {
			continue
		}
		if err := area.SetParent(ctx, tx, *area.ParentAreaKey); err != nil {
			return 0, err
		}
	}

	for _, period := range data.SeedTimePeriods() {
		if err := period.SaveDB(ctx, tx); err != nil {
			return 0, err
		}
	}

	for _, metric := range data.SeedMetrics() {
		if err := metric.SaveDB(ctx, tx); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	loader.keys.Reset()
	for _, area := range areas {
		loader.keys.PutArea(area.M49Code, area.AreaKey)
	}

	log.Info().Int("Areas", len(areas)).Msg("dimension load complete")
	return len(areas), nil
}

// DistinctAreas extracts the unique areas from a batch, keyed by
// (area_code, m49_code). The first occurrence of a key wins.
func DistinctAreas(rows []data.StagingRow) []*data.Area {
	type areaKey struct {
		code int
		m49  string
	}

	seen := make(map[areaKey]*data.Area)
	var areas []*data.Area

	for idx := range rows {
		row := &rows[idx]
		key := areaKey{code: row.AreaCode, m49: row.M49Code}

		if _, ok := seen[key]; ok {
			continue
		}

		area := &data.Area{
			AreaCode: row.AreaCode,
			M49Code:  row.M49Code,
			AreaName: row.AreaName,
			AreaType: row.AreaType,
		}
		seen[key] = area
		areas = append(areas, area)
	}

	return areas
}

// LoadFacts rebuilds core.fact_temperature from staging joined to the
// dimensions, resolving business keys to surrogate keys in a single
// INSERT ... SELECT. The natural-key constraint enforces reject-on-duplicate:
// when it fires, the transaction rolls back and the duplicates are looked up
// in staging so the error names the offending business keys.
func (loader *Loader) LoadFacts(ctx context.Context) (int64, error) {
	tx, err := loader.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE core.fact_temperature RESTART IDENTITY"); err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO core.fact_temperature (area_key, period_key, metric_key, year, value)
		SELECT a.area_key, p.period_key, m.metric_key, s.year, s.value
		FROM staging.raw_temperature s
		INNER JOIN core.dim_area a        ON s.m49_code = a.m49_code
		INNER JOIN core.dim_time_period p ON s.period_code = p.period_code
		INNER JOIN core.dim_metric m      ON s.element_code = m.metric_code`)
	if err != nil {
		mapped := data.MapConstraintError(err, "core.fact_temperature", "(batch)")

		var dup *data.DuplicateError
		if errors.As(mapped, &dup) {
			if keys, diagErr := loader.duplicateStagingKeys(ctx); diagErr == nil && len(keys) > 0 {
				return 0, &data.DuplicateError{Table: dup.Table, Key: keys[0]}
			}
		}

		return 0, mapped
	}

	inserted := tag.RowsAffected()

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	log.Info().Int64("Facts", inserted).Msg("fact load complete")
	return inserted, nil
}

// duplicateStagingKeys finds staging rows sharing a natural key, for error
// reporting after a unique violation on the fact load.
func (loader *Loader) duplicateStagingKeys(ctx context.Context) ([]string, error) {
	rows, err := loader.Pool.Query(ctx, `
		SELECT m49_code, period_code, element_code, year
		FROM staging.raw_temperature
		GROUP BY m49_code, period_code, element_code, year
		HAVING count(*) > 1
		LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var (
			m49                string
			period, elem, year int
		)
		if err := rows.Scan(&m49, &period, &elem, &year); err != nil {
			return nil, err
		}
		keys = append(keys, data.FactBusinessKey(m49, period, elem, year))
	}

	return keys, rows.Err()
}

// InsertMeasurement writes a single measurement, resolving its business keys
// to surrogate keys through the dimension tables. Duplicates of the natural
// key are rejected, never overwritten.
func (loader *Loader) InsertMeasurement(ctx context.Context, m49 string, periodCode int, elementCode int, year int, value *float64) error {
	tx, err := loader.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollback(ctx, tx)

	businessKey := data.FactBusinessKey(m49, periodCode, elementCode, year)

	areaKey, err := loader.areaKey(ctx, tx, m49)
	if err != nil {
		return fmt.Errorf("%s: %w", businessKey, err)
	}

	var periodKey int64
	if err := tx.QueryRow(ctx,
		"SELECT period_key FROM core.dim_time_period WHERE period_code = $1", periodCode).Scan(&periodKey); err != nil {
		return &data.ReferenceError{Table: "core.fact_temperature", Key: businessKey}
	}

	var metricKey int64
	if err := tx.QueryRow(ctx,
		"SELECT metric_key FROM core.dim_metric WHERE metric_code = $1", elementCode).Scan(&metricKey); err != nil {
		return &data.ReferenceError{Table: "core.fact_temperature", Key: businessKey}
	}

	measurement := data.Measurement{
		AreaKey:   areaKey,
		PeriodKey: periodKey,
		MetricKey: metricKey,
		Year:      year,
		Value:     value,
	}

	if err := measurement.SaveDB(ctx, tx); err != nil {
		var dup *data.DuplicateError
		if errors.As(err, &dup) {
			return &data.DuplicateError{Table: dup.Table, Key: businessKey}
		}
		return err
	}

	return tx.Commit(ctx)
}

// areaKey resolves an m49 code to its surrogate key through the cache.
func (loader *Loader) areaKey(ctx context.Context, tx pgx.Tx, m49 string) (int64, error) {
	if key, ok := loader.keys.Area(m49); ok {
		return key, nil
	}

	var key int64
	if err := tx.QueryRow(ctx,
		"SELECT area_key FROM core.dim_area WHERE m49_code = $1", m49).Scan(&key); err != nil {
		return 0, &data.ReferenceError{Table: "core.dim_area", Key: fmt.Sprintf("(m49=%s)", m49)}
	}

	loader.keys.PutArea(m49, key)
	return key, nil
}

func (loader *Loader) beginRun(ctx context.Context, id uuid.UUID) error {
	_, err := loader.Pool.Exec(ctx,
		`INSERT INTO core.etl_run (id, started_at, status) VALUES ($1, $2, $3)`,
		id, time.Now().UTC(), data.RunRunning)
	return err
}

func (loader *Loader) finishRun(ctx context.Context, result *Result, runErr error) error {
	status := data.RunSucceeded
	var errText *string
	if runErr != nil {
		status = data.RunFailed
		msg := runErr.Error()
		errText = &msg
	}

	_, err := loader.Pool.Exec(ctx, `
		UPDATE core.etl_run
		SET finished_at = $1, rows_staged = $2, rows_facts = $3, status = $4, error_text = $5
		WHERE id = $6`,
		time.Now().UTC(), result.RowsStaged, result.Facts, status, errText, result.RunID)
	return err
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		log.Error().Err(err).Msg("error rolling back transaction")
	}
}
