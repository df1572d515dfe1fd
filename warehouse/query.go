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

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/climate-vault/climdata/data"
)

// SeriesPoint is one measurement in an area's time series.
type SeriesPoint struct {
	Year       int      `db:"year"`
	PeriodName string   `db:"period_name"`
	MetricName string   `db:"metric_name"`
	Value      *float64 `db:"value"`
}

// TemperatureSeries returns the measurements for one area (by m49 code)
// between startYear and endYear inclusive, optionally restricted to a period
// granularity. Parameter validation, pagination, and serialization belong to
// the API layer; this is the raw read path over the star schema.
func (myWarehouse *Warehouse) TemperatureSeries(ctx context.Context, m49Code string, periodType data.PeriodType, startYear int, endYear int) ([]SeriesPoint, error) {
	sql := `
		SELECT f.year, p.period_name, m.metric_name, f.value
		FROM core.fact_temperature f
		JOIN core.dim_area a        ON a.area_key = f.area_key
		JOIN core.dim_time_period p ON p.period_key = f.period_key
		JOIN core.dim_metric m      ON m.metric_key = f.metric_key
		WHERE a.m49_code = $1
		  AND f.year BETWEEN $2 AND $3
		  AND ($4 = '' OR p.period_type = $4)
		ORDER BY f.year, p.period_key, m.metric_key`

	var points []SeriesPoint
	err := pgxscan.Select(ctx, myWarehouse.Pool, &points, sql, m49Code, startYear, endYear, string(periodType))
	return points, err
}

// AnnualByCountry reads the pivoted annual aggregate for one country/year.
// Returns nil when the aggregate holds no row for the pair, which also covers
// the period before the first refresh.
func (myWarehouse *Warehouse) AnnualByCountry(ctx context.Context, m49Code string, year int) (*data.AnnualCountryTemperature, error) {
	var row data.AnnualCountryTemperature
	err := pgxscan.Get(ctx, myWarehouse.Pool, &row, `
		SELECT area_name, m49_code, year, temperature_change, std_dev
		FROM analytics.annual_temperature_by_country
		WHERE m49_code = $1 AND year = $2`, m49Code, year)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// SeasonalPatterns reads the seasonal aggregate for one area name across a
// year range.
func (myWarehouse *Warehouse) SeasonalPatterns(ctx context.Context, areaName string, startYear int, endYear int) ([]data.SeasonalPattern, error) {
	var rows []data.SeasonalPattern
	err := pgxscan.Select(ctx, myWarehouse.Pool, &rows, `
		SELECT area_name, period_name, quarter, year, metric_name, avg_value, measurement_count
		FROM analytics.seasonal_temperature_patterns
		WHERE area_name = $1 AND year BETWEEN $2 AND $3
		ORDER BY year, quarter, metric_name`, areaName, startYear, endYear)
	return rows, err
}

// ContinentalWarming reads the continental trend aggregate for one continent
// across a year range.
func (myWarehouse *Warehouse) ContinentalWarming(ctx context.Context, continent string, startYear int, endYear int) ([]data.ContinentalWarming, error) {
	var rows []data.ContinentalWarming
	err := pgxscan.Select(ctx, myWarehouse.Pool, &rows, `
		SELECT continent_name, year, avg_change, min_change, max_change, measurement_count, std_dev
		FROM analytics.continental_warming_trend
		WHERE continent_name = $1 AND year BETWEEN $2 AND $3
		ORDER BY year`, continent, startYear, endYear)
	return rows, err
}
