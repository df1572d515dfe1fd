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

// Package transform turns wide FAO records into long staging rows: unpivot
// the year columns, attach area and period classifications, and run the
// validation pass that keeps bad years out of the warehouse.
package transform

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/climate-vault/climdata/classify"
	"github.com/climate-vault/climdata/data"
	"github.com/climate-vault/climdata/extract"
)

// Stats summarizes a transform run.
type Stats struct {
	InputRecords      int
	OutputRows        int
	NullValues        int
	DroppedYearRange  int
	ExtremeValues     int
	PrecisionWarnings int
}

// Unpivot converts wide records into one staging row per (record, year).
// Years are emitted in ascending order so the output is deterministic. Nil
// measurements stay nil.
func Unpivot(records []extract.WideRecord) []data.StagingRow {
	var rows []data.StagingRow

	for _, rec := range records {
		years := make([]int, 0, len(rec.Values))
		for year := range rec.Values {
			years = append(years, year)
		}
		sort.Ints(years)

		for _, year := range years {
			rows = append(rows, data.StagingRow{
				AreaCode:    rec.AreaCode,
				M49Code:     rec.M49Code,
				AreaName:    rec.AreaName,
				PeriodCode:  rec.PeriodCode,
				PeriodName:  rec.PeriodName,
				ElementCode: rec.ElementCode,
				ElementName: rec.ElementName,
				Unit:        rec.Unit,
				Year:        year,
				Value:       rec.Values[year],
			})
		}
	}

	return rows
}

// Classify attaches the area and period classifications each row needs for
// the dimension load. An unknown period name fails the transform: the period
// vocabulary is fixed and a new name means the source changed shape.
func Classify(rows []data.StagingRow) ([]data.StagingRow, error) {
	for idx := range rows {
		row := &rows[idx]

		row.AreaType = data.AreaType(classify.Area(row.AreaName))

		attrs, err := classify.Period(row.PeriodName)
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", row.BusinessKey(), err)
		}

		row.PeriodType = data.PeriodType(attrs.PeriodType)
		row.MonthNumber = attrs.MonthNumber
		row.Quarter = attrs.Quarter
	}

	return rows, nil
}

// Validate filters rows that fail the range rules and logs data-quality
// observations. Rows with out-of-range years are dropped; null values and
// extreme-but-plausible temperatures are kept.
func Validate(rows []data.StagingRow) ([]data.StagingRow, Stats) {
	stats := Stats{}
	kept := rows[:0]

	for _, row := range rows {
		if err := row.Validate(); err != nil {
			stats.DroppedYearRange++
			log.Warn().Err(err).Msg("dropping row with invalid year")
			continue
		}

		if row.Value == nil {
			stats.NullValues++
		} else {
			if row.ElementName == data.TemperatureChangeMetric && data.ExtremeTemperature(*row.Value) {
				stats.ExtremeValues++
				log.Warn().Str("Row", row.BusinessKey()).Float64("Value", *row.Value).
					Msg("temperature change outside plausible range, keeping")
			}

			if exceedsScale(*row.Value, 4) {
				stats.PrecisionWarnings++
				log.Warn().Str("Row", row.BusinessKey()).Float64("Value", *row.Value).
					Msg("value has more than 4 decimal digits and will be rounded by the column type")
			}
		}

		kept = append(kept, row)
	}

	stats.OutputRows = len(kept)
	return kept, stats
}

// Transform runs the whole pipeline: unpivot, classify, validate.
func Transform(records []extract.WideRecord) ([]data.StagingRow, Stats, error) {
	rows := Unpivot(records)

	rows, err := Classify(rows)
	if err != nil {
		return nil, Stats{}, err
	}

	rows, stats := Validate(rows)
	stats.InputRecords = len(records)

	log.Info().Int("InputRecords", stats.InputRecords).Int("OutputRows", stats.OutputRows).
		Int("NullValues", stats.NullValues).Int("DroppedYearRange", stats.DroppedYearRange).
		Int("ExtremeValues", stats.ExtremeValues).Msg("transform complete")

	return rows, stats, nil
}

// exceedsScale reports whether v carries more than the given number of
// decimal digits. The fact column is NUMERIC(8,4); anything finer would be
// rounded silently by the database, so the transform surfaces it first.
func exceedsScale(v float64, scale int) bool {
	shifted := v * math.Pow10(scale)
	return math.Abs(shifted-math.Round(shifted)) > 1e-6
}
