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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records refresh statements and can fail selected aggregates.
type fakeExecutor struct {
	executed  []string
	populated map[string]bool
	failOn    map[string]error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		populated: map[string]bool{},
		failOn:    map[string]error{},
	}
}

type fakeRow struct {
	populated bool
}

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = r.populated
	return nil
}

func (f *fakeExecutor) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	for aggregate, err := range f.failOn {
		if strings.Contains(sql, aggregate) {
			return pgconn.CommandTag{}, err
		}
	}

	f.executed = append(f.executed, sql)

	for aggregate := range f.populated {
		if strings.Contains(sql, aggregate) {
			f.populated[aggregate] = true
		}
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeExecutor) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	aggregate := args[0].(string)
	return fakeRow{populated: f.populated[aggregate]}
}

func TestRefreshAllRunsEveryAggregate(t *testing.T) {
	exec := newFakeExecutor()
	for _, aggregate := range Aggregates {
		exec.populated[aggregate] = false
	}

	results := refreshAll(context.Background(), exec)

	require.Len(t, results, 3)
	for idx, result := range results {
		assert.Equal(t, Aggregates[idx], result.Aggregate)
		assert.NoError(t, result.Err)
	}

	// never-populated views must not be refreshed CONCURRENTLY
	for _, sql := range exec.executed {
		assert.NotContains(t, sql, "CONCURRENTLY")
	}
}

func TestRefreshUsesConcurrentlyOncePopulated(t *testing.T) {
	exec := newFakeExecutor()
	for _, aggregate := range Aggregates {
		exec.populated[aggregate] = true
	}

	results := refreshAll(context.Background(), exec)
	require.Len(t, results, 3)

	for _, sql := range exec.executed {
		assert.Contains(t, sql, "REFRESH MATERIALIZED VIEW CONCURRENTLY analytics.")
	}
}

func TestRefreshFailureIsIsolated(t *testing.T) {
	exec := newFakeExecutor()
	for _, aggregate := range Aggregates {
		exec.populated[aggregate] = true
	}
	boom := errors.New("out of memory")
	exec.failOn["seasonal_temperature_patterns"] = boom

	results := refreshAll(context.Background(), exec)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.NoError(t, results[2].Err, "a failed aggregate must not block the others")

	failed := Failed(results)
	require.Len(t, failed, 1)
	assert.Equal(t, "seasonal_temperature_patterns", failed[0].Aggregate)
}

func TestRefreshIsRepeatable(t *testing.T) {
	exec := newFakeExecutor()
	for _, aggregate := range Aggregates {
		exec.populated[aggregate] = false
	}

	first := refreshAll(context.Background(), exec)
	second := refreshAll(context.Background(), exec)

	for _, result := range append(first, second...) {
		assert.NoError(t, result.Err)
	}

	// each aggregate refreshed twice: plain the first time, concurrently after
	assert.Len(t, exec.executed, 6)
	for idx, aggregate := range Aggregates {
		assert.Equal(t, fmt.Sprintf("REFRESH MATERIALIZED VIEW analytics.%s", aggregate), exec.executed[idx])
		assert.Equal(t, fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY analytics.%s", aggregate), exec.executed[3+idx])
	}
}
