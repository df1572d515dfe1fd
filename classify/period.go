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
	"fmt"
	"strings"
)

// monthNumber maps month period names to their calendar number.
var monthNumber = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// seasonQuarter maps seasonal period names to a quarter number. FAO files use
// either regular hyphens or en-dashes (U+2013) depending on the export, so
// both spellings are accepted.
var seasonQuarter = map[string]int{
	"December-January-February":  1,
	"March-April-May":            2,
	"June-July-August":           3,
	"September-October-November": 4,

	"Dec–Jan–Feb": 1,
	"Mar–Apr–May": 2,
	"Jun–Jul–Aug": 3,
	"Sep–Oct–Nov": 4,
}

const annualPeriodName = "Meteorological year"

// PeriodAttributes holds the temporal classification of a reporting period.
// MonthNumber is set only for month periods and Quarter only for seasons.
type PeriodAttributes struct {
	PeriodType  string
	MonthNumber int
	Quarter     int
}

// Period classifies a period name and extracts its temporal attributes.
// Unlike area classification there is no open-ended fallback: the period
// vocabulary is fixed at 17 entries and an unknown name means the source file
// changed shape, which must fail loudly.
func Period(periodName string) (PeriodAttributes, error) {
	periodName = strings.TrimSpace(periodName)

	if num, ok := monthNumber[periodName]; ok {
		return PeriodAttributes{PeriodType: "month", MonthNumber: num}, nil
	}

	if quarter, ok := seasonQuarter[periodName]; ok {
		return PeriodAttributes{PeriodType: "season", Quarter: quarter}, nil
	}

	if periodName == annualPeriodName {
		return PeriodAttributes{PeriodType: "annual"}, nil
	}

	return PeriodAttributes{}, fmt.Errorf("unknown period name: %q", periodName)
}
