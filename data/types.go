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

// Package data defines the warehouse domain model: the staging row shape, the
// three dimensions of the star schema (area, time period, metric), the
// temperature fact, and the validation rules the load path enforces.
package data

import (
	"time"

	"github.com/google/uuid"
)

type AreaType string

const (
	Country   AreaType = "country"
	Subregion AreaType = "subregion"
	Continent AreaType = "continent"
	WorldArea AreaType = "world"
)

type PeriodType string

const (
	Month  PeriodType = "month"
	Season PeriodType = "season"
	Annual PeriodType = "annual"
)

// Known metric names pivoted into columns by the annual-by-country aggregate.
// A metric outside this set flows into the fact table but is silently absent
// from the pivot; extending the pivot is a schema change.
const (
	TemperatureChangeMetric = "Temperature change"
	StandardDeviationMetric = "Standard Deviation"
)

// StagingRow is one unpivoted measurement as it lands in
// staging.raw_temperature. Business keys only -- no surrogate keys exist yet
// at this point in the pipeline.
type StagingRow struct {
	AreaCode    int      `db:"area_code"`
	M49Code     string   `db:"m49_code"`
	AreaName    string   `db:"area_name"`
	PeriodCode  int      `db:"period_code"`
	PeriodName  string   `db:"period_name"`
	ElementCode int      `db:"element_code"`
	ElementName string   `db:"element_name"`
	Unit        string   `db:"unit"`
	Year        int      `db:"year"`
	Value       *float64 `db:"value"`

	// classification attributes attached during transform; these feed the
	// dimension load and are not staged
	AreaType    AreaType   `db:"-"`
	PeriodType  PeriodType `db:"-"`
	MonthNumber int        `db:"-"`
	Quarter     int        `db:"-"`
}

// Area is a row of core.dim_area. The parent link models the strictly layered
// geographic hierarchy: country -> subregion -> continent -> world.
type Area struct {
	AreaKey       int64    `db:"area_key"`
	AreaCode      int      `db:"area_code"`
	M49Code       string   `db:"m49_code"`
	AreaName      string   `db:"area_name"`
	AreaType      AreaType `db:"area_type"`
	ParentAreaKey *int64   `db:"parent_area_key"`
}

// TimePeriod is a row of core.dim_time_period. MonthNumber is non-nil exactly
// when PeriodType is month, Quarter exactly when PeriodType is season.
type TimePeriod struct {
	PeriodKey   int64      `db:"period_key"`
	PeriodCode  int        `db:"period_code"`
	PeriodName  string     `db:"period_name"`
	PeriodType  PeriodType `db:"period_type"`
	MonthNumber *int       `db:"month_number"`
	Quarter     *int       `db:"quarter"`
}

// Metric is a row of core.dim_metric.
type Metric struct {
	MetricKey  int64  `db:"metric_key"`
	MetricCode int    `db:"metric_code"`
	MetricName string `db:"metric_name"`
	Unit       string `db:"unit"`
}

// Measurement is a row of core.fact_temperature. Value is nil for years where
// FAO reports no measurement; missing data is legitimate and never coerced to
// zero. The natural key (AreaKey, PeriodKey, MetricKey, Year) is unique.
type Measurement struct {
	FactKey   int64    `db:"fact_key"`
	AreaKey   int64    `db:"area_key"`
	PeriodKey int64    `db:"period_key"`
	MetricKey int64    `db:"metric_key"`
	Year      int      `db:"year"`
	Value     *float64 `db:"value"`
}

// RunStatus values recorded in core.etl_run.
const (
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// ETLRun is the audit record for one load batch.
type ETLRun struct {
	ID         uuid.UUID  `db:"id"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
	RowsStaged int64      `db:"rows_staged"`
	RowsFacts  int64      `db:"rows_facts"`
	Status     string     `db:"status"`
	ErrorText  *string    `db:"error_text"`
}

// AnnualCountryTemperature is a row of analytics.annual_temperature_by_country.
// The two metric columns come from pivoting the metric dimension; either may be
// nil when the corresponding metric was not reported for that country/year.
type AnnualCountryTemperature struct {
	AreaName          string   `db:"area_name"`
	M49Code           string   `db:"m49_code"`
	Year              int      `db:"year"`
	TemperatureChange *float64 `db:"temperature_change"`
	StdDev            *float64 `db:"std_dev"`
}

// SeasonalPattern is a row of analytics.seasonal_temperature_patterns.
type SeasonalPattern struct {
	AreaName         string  `db:"area_name"`
	PeriodName       string  `db:"period_name"`
	Quarter          int     `db:"quarter"`
	Year             int     `db:"year"`
	MetricName       string  `db:"metric_name"`
	AvgValue         float64 `db:"avg_value"`
	MeasurementCount int64   `db:"measurement_count"`
}

// ContinentalWarming is a row of analytics.continental_warming_trend. StdDev
// is the sample standard deviation over present measurements and is nil when
// fewer than two values exist for the group.
type ContinentalWarming struct {
	ContinentName    string   `db:"continent_name"`
	Year             int      `db:"year"`
	AvgChange        float64  `db:"avg_change"`
	MinChange        float64  `db:"min_change"`
	MaxChange        float64  `db:"max_change"`
	MeasurementCount int64    `db:"measurement_count"`
	StdDev           *float64 `db:"std_dev"`
}
