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
package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	tests := []struct {
		periodName string
		want       PeriodAttributes
	}{
		{"January", PeriodAttributes{PeriodType: "month", MonthNumber: 1}},
		{"December", PeriodAttributes{PeriodType: "month", MonthNumber: 12}},
		{"March-April-May", PeriodAttributes{PeriodType: "season", Quarter: 2}},
		{"September-October-November", PeriodAttributes{PeriodType: "season", Quarter: 4}},
		// FAO en-dash spellings
		{"Dec–Jan–Feb", PeriodAttributes{PeriodType: "season", Quarter: 1}},
		{"Jun–Jul–Aug", PeriodAttributes{PeriodType: "season", Quarter: 3}},
		{"Meteorological year", PeriodAttributes{PeriodType: "annual"}},
		{" July ", PeriodAttributes{PeriodType: "month", MonthNumber: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.periodName, func(t *testing.T) {
			got, err := Period(tt.periodName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodUnknownName(t *testing.T) {
	_, err := Period("Fiscal year")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fiscal year")
}

func TestPeriodAttributeExclusivity(t *testing.T) {
	// month periods never carry a quarter, seasons never carry a month number
	month, err := Period("May")
	require.NoError(t, err)
	assert.Zero(t, month.Quarter)

	season, err := Period("June-July-August")
	require.NoError(t, err)
	assert.Zero(t, season.MonthNumber)

	annual, err := Period("Meteorological year")
	require.NoError(t, err)
	assert.Zero(t, annual.MonthNumber)
	assert.Zero(t, annual.Quarter)
}
