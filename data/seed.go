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

func intPtr(v int) *int { return &v }

// SeedTimePeriods returns the fixed reference set for core.dim_time_period:
// 12 months, 4 meteorological seasons, and the meteorological year. Period
// codes follow the FAO months-code vocabulary. The dimension does not grow
// with data volume.
func SeedTimePeriods() []TimePeriod {
	return []TimePeriod{
		{PeriodCode: 7001, PeriodName: "January", PeriodType: Month, MonthNumber: intPtr(1)},
		{PeriodCode: 7002, PeriodName: "February", PeriodType: Month, MonthNumber: intPtr(2)},
		{PeriodCode: 7003, PeriodName: "March", PeriodType: Month, MonthNumber: intPtr(3)},
		{PeriodCode: 7004, PeriodName: "April", PeriodType: Month, MonthNumber: intPtr(4)},
		{PeriodCode: 7005, PeriodName: "May", PeriodType: Month, MonthNumber: intPtr(5)},
		{PeriodCode: 7006, PeriodName: "June", PeriodType: Month, MonthNumber: intPtr(6)},
		{PeriodCode: 7007, PeriodName: "July", PeriodType: Month, MonthNumber: intPtr(7)},
		{PeriodCode: 7008, PeriodName: "August", PeriodType: Month, MonthNumber: intPtr(8)},
		{PeriodCode: 7009, PeriodName: "September", PeriodType: Month, MonthNumber: intPtr(9)},
		{PeriodCode: 7010, PeriodName: "October", PeriodType: Month, MonthNumber: intPtr(10)},
		{PeriodCode: 7011, PeriodName: "November", PeriodType: Month, MonthNumber: intPtr(11)},
		{PeriodCode: 7012, PeriodName: "December", PeriodType: Month, MonthNumber: intPtr(12)},
		{PeriodCode: 7016, PeriodName: "December-January-February", PeriodType: Season, Quarter: intPtr(1)},
		{PeriodCode: 7017, PeriodName: "March-April-May", PeriodType: Season, Quarter: intPtr(2)},
		{PeriodCode: 7018, PeriodName: "June-July-August", PeriodType: Season, Quarter: intPtr(3)},
		{PeriodCode: 7019, PeriodName: "September-October-November", PeriodType: Season, Quarter: intPtr(4)},
		{PeriodCode: 7020, PeriodName: "Meteorological year", PeriodType: Annual},
	}
}

// SeedMetrics returns the fixed reference set for core.dim_metric. Element
// codes follow the FAO elements vocabulary.
func SeedMetrics() []Metric {
	return []Metric{
		{MetricCode: 7271, MetricName: TemperatureChangeMetric, Unit: "°C"},
		{MetricCode: 6078, MetricName: StandardDeviationMetric, Unit: "°C"},
	}
}
