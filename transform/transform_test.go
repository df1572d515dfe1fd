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
package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climate-vault/climdata/data"
	"github.com/climate-vault/climdata/extract"
)

func floatPtr(v float64) *float64 { return &v }

func wideRecord(area string, period string, values map[int]*float64) extract.WideRecord {
	return extract.WideRecord{
		AreaCode:    231,
		M49Code:     "840",
		AreaName:    area,
		PeriodCode:  7020,
		PeriodName:  period,
		ElementCode: 7271,
		ElementName: "Temperature change",
		Unit:        "°C",
		Values:      values,
	}
}

func TestUnpivot(t *testing.T) {
	records := []extract.WideRecord{
		wideRecord("United States of America", "Meteorological year", map[int]*float64{
			2021: floatPtr(1.5),
			2019: floatPtr(0.9),
			2020: nil,
		}),
	}

	rows := Unpivot(records)
	require.Len(t, rows, 3)

	// years come out ascending
	assert.Equal(t, 2019, rows[0].Year)
	assert.Equal(t, 2020, rows[1].Year)
	assert.Equal(t, 2021, rows[2].Year)

	assert.Nil(t, rows[1].Value, "missing measurement survives the unpivot as null")
	require.NotNil(t, rows[2].Value)
	assert.InDelta(t, 1.5, *rows[2].Value, 1e-9)

	assert.Equal(t, "840", rows[0].M49Code)
	assert.Equal(t, "Temperature change", rows[0].ElementName)
}

func TestClassify(t *testing.T) {
	rows := Unpivot([]extract.WideRecord{
		wideRecord("United States of America", "Meteorological year", map[int]*float64{2020: floatPtr(1.0)}),
		wideRecord("Europe", "January", map[int]*float64{2020: floatPtr(0.5)}),
		wideRecord("Caribbean", "June-July-August", map[int]*float64{2020: nil}),
		wideRecord("World", "Dec–Jan–Feb", map[int]*float64{2020: floatPtr(0.2)}),
	})

	rows, err := Classify(rows)
	require.NoError(t, err)

	assert.Equal(t, data.Country, rows[0].AreaType)
	assert.Equal(t, data.Annual, rows[0].PeriodType)

	assert.Equal(t, data.Continent, rows[1].AreaType)
	assert.Equal(t, data.Month, rows[1].PeriodType)
	assert.Equal(t, 1, rows[1].MonthNumber)

	assert.Equal(t, data.Subregion, rows[2].AreaType)
	assert.Equal(t, data.Season, rows[2].PeriodType)
	assert.Equal(t, 3, rows[2].Quarter)

	assert.Equal(t, data.WorldArea, rows[3].AreaType)
	assert.Equal(t, 1, rows[3].Quarter)
}

func TestClassifyUnknownPeriod(t *testing.T) {
	rows := Unpivot([]extract.WideRecord{
		wideRecord("France", "Fiscal year", map[int]*float64{2020: floatPtr(1.0)}),
	})

	_, err := Classify(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fiscal year")
	assert.Contains(t, err.Error(), "m49=840", "error must carry the business key")
}

func TestValidate(t *testing.T) {
	rows := Unpivot([]extract.WideRecord{
		wideRecord("France", "Meteorological year", map[int]*float64{
			1700: floatPtr(1.0),  // outside year range, dropped
			2019: nil,            // null measurement, kept
			2020: floatPtr(1.23), // normal, kept
			2021: floatPtr(25.0), // extreme but kept
		}),
	})
	rows, err := Classify(rows)
	require.NoError(t, err)

	kept, stats := Validate(rows)

	assert.Len(t, kept, 3)
	assert.Equal(t, 1, stats.DroppedYearRange)
	assert.Equal(t, 1, stats.NullValues)
	assert.Equal(t, 1, stats.ExtremeValues)
	assert.Equal(t, 3, stats.OutputRows)

	for _, row := range kept {
		assert.True(t, data.ValidYear(row.Year))
	}
}

func TestValidatePrecisionWarning(t *testing.T) {
	rows := Unpivot([]extract.WideRecord{
		wideRecord("France", "Meteorological year", map[int]*float64{
			2020: floatPtr(1.23456), // five decimal digits
			2021: floatPtr(1.2345),  // exactly the column scale
		}),
	})
	rows, err := Classify(rows)
	require.NoError(t, err)

	_, stats := Validate(rows)
	assert.Equal(t, 1, stats.PrecisionWarnings)
}

func TestTransformEndToEnd(t *testing.T) {
	records := []extract.WideRecord{
		wideRecord("United States of America", "Meteorological year", map[int]*float64{
			2019: floatPtr(0.951),
			2020: floatPtr(1.23),
		}),
		wideRecord("Africa", "March-April-May", map[int]*float64{
			2020: nil,
		}),
	}

	rows, stats, err := Transform(records)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.InputRecords)
	assert.Equal(t, 3, stats.OutputRows)
	assert.Len(t, rows, 3)
	assert.Equal(t, data.Continent, rows[2].AreaType)
}
