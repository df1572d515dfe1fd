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
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/climate-vault/climdata/data"
)

// Summary returns a description of the warehouse in markdown
func (myWarehouse *Warehouse) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# Climate Data Warehouse\n\n")
	builder.WriteString(fmt.Sprintf("Database: %s\n\n", myWarehouse.DBUrl))

	stats, err := myWarehouse.Statistics(ctx)
	if err != nil {
		return "", err
	}

	builder.WriteString("## Row Counts\n\n")
	builder.WriteString(p.Sprintf("  * Staging: %d\n", stats.StagingRows))
	builder.WriteString(p.Sprintf("  * Areas: %d\n", stats.Areas))
	builder.WriteString(p.Sprintf("  * Time Periods: %d\n", stats.TimePeriods))
	builder.WriteString(p.Sprintf("  * Metrics: %d\n", stats.Metrics))
	builder.WriteString(p.Sprintf("  * Facts: %d\n\n", stats.Facts))

	lastUpdated, err := myWarehouse.LastUpdated(ctx)
	if err != nil {
		return "", err
	}

	if lastUpdated.Equal(time.Time{}) || lastUpdated.Year() <= 1 {
		builder.WriteString("Last Updated: Never\n\n")
	} else {
		age := timeago.English.Format(lastUpdated)
		builder.WriteString(fmt.Sprintf("Last Updated: %s (%s)\n\n", age, lastUpdated.Local().Format("01/02/2006")))
	}

	lastRun, err := myWarehouse.LastRun(ctx)
	if err != nil {
		return "", err
	}

	if lastRun != nil {
		builder.WriteString("## Last Load Run\n\n")
		builder.WriteString(fmt.Sprintf("  * ID: %s\n", lastRun.ID.String()[:8]))
		builder.WriteString(fmt.Sprintf("  * Status: %s\n", lastRun.Status))
		builder.WriteString(p.Sprintf("  * Rows Staged: %d\n", lastRun.RowsStaged))
		builder.WriteString(p.Sprintf("  * Facts Loaded: %d\n", lastRun.RowsFacts))
		if lastRun.Status == data.RunFailed && lastRun.ErrorText != nil {
			builder.WriteString(fmt.Sprintf("  * Error: %s\n", *lastRun.ErrorText))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Analytics Aggregates\n\n")
	for _, aggregate := range Aggregates {
		builder.WriteString(fmt.Sprintf("  * analytics.%s\n", aggregate))
	}

	return builder.String(), nil
}
