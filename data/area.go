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

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SaveDB inserts the area into core.dim_area and fills in the generated
// surrogate key. Duplicate m49 codes surface as a DuplicateError; existing
// rows are never overwritten because facts reference surrogate keys for the
// lifetime of the warehouse.
func (area *Area) SaveDB(ctx context.Context, tx pgx.Tx) error {
	sql := `INSERT INTO core.dim_area (
		"area_code",
		"m49_code",
		"area_name",
		"area_type",
		"parent_area_key"
	) VALUES (
		$1, $2, $3, $4, $5
	) RETURNING area_key`

	err := tx.QueryRow(ctx, sql, area.AreaCode, area.M49Code, area.AreaName,
		area.AreaType, area.ParentAreaKey).Scan(&area.AreaKey)
	if err != nil {
		return MapConstraintError(err, "core.dim_area", fmt.Sprintf("(m49=%s name=%s)", area.M49Code, area.AreaName))
	}

	return nil
}

// SetParent updates the parent link for the area. Cycle prevention is
// enforced by the caller before invoking this; see load.ResolveHierarchy.
func (area *Area) SetParent(ctx context.Context, tx pgx.Tx, parentKey int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE core.dim_area SET parent_area_key = $1 WHERE area_key = $2`,
		parentKey, area.AreaKey)
	if err != nil {
		return MapConstraintError(err, "core.dim_area", fmt.Sprintf("(m49=%s name=%s)", area.M49Code, area.AreaName))
	}

	area.ParentAreaKey = &parentKey
	return nil
}
