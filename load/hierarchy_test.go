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
package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climate-vault/climdata/data"
)

func testAreas() []*data.Area {
	return []*data.Area{
		{AreaKey: 1, M49Code: "001", AreaName: "World", AreaType: data.WorldArea},
		{AreaKey: 2, M49Code: "002", AreaName: "Africa", AreaType: data.Continent},
		{AreaKey: 3, M49Code: "014", AreaName: "Eastern Africa", AreaType: data.Subregion},
		{AreaKey: 4, M49Code: "404", AreaName: "Kenya", AreaType: data.Country},
	}
}

func TestResolveHierarchy(t *testing.T) {
	areas := testAreas()
	require.NoError(t, ResolveHierarchy(areas))

	world, africa, eastern, kenya := areas[0], areas[1], areas[2], areas[3]

	assert.Nil(t, world.ParentAreaKey, "world has no parent")

	require.NotNil(t, africa.ParentAreaKey)
	assert.Equal(t, world.AreaKey, *africa.ParentAreaKey)

	require.NotNil(t, eastern.ParentAreaKey)
	assert.Equal(t, africa.AreaKey, *eastern.ParentAreaKey)

	// country parents come from M49 relationships, not names; left unset
	assert.Nil(t, kenya.ParentAreaKey)
}

func TestResolveHierarchyParentChainTerminates(t *testing.T) {
	areas := testAreas()
	require.NoError(t, ResolveHierarchy(areas))

	byKey := make(map[int64]*data.Area)
	for _, area := range areas {
		byKey[area.AreaKey] = area
	}

	for _, area := range areas {
		hops := 0
		current := area
		for current.ParentAreaKey != nil {
			current = byKey[*current.ParentAreaKey]
			require.NotNil(t, current)
			hops++
			require.LessOrEqual(t, hops, 3, "parent chain for %s must terminate within 3 hops", area.AreaName)
		}
		assert.Nil(t, current.ParentAreaKey)
	}
}

func TestResolveHierarchyMissingParent(t *testing.T) {
	// a subregion without its continent in the batch cannot be parented
	areas := []*data.Area{
		{AreaKey: 1, M49Code: "014", AreaName: "Eastern Africa", AreaType: data.Subregion},
	}

	err := ResolveHierarchy(areas)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Africa")
	assert.Contains(t, err.Error(), "m49=014")
}

func TestWouldCreateCycle(t *testing.T) {
	parentOf := map[int64]int64{2: 1, 3: 2}

	assert.True(t, wouldCreateCycle(5, 5, parentOf), "self-parent is a cycle")
	assert.True(t, wouldCreateCycle(1, 3, parentOf), "linking the root under a descendant is a cycle")
	assert.True(t, wouldCreateCycle(2, 3, parentOf))
	assert.False(t, wouldCreateCycle(4, 3, parentOf), "new leaf under existing chain is fine")
	assert.False(t, wouldCreateCycle(3, 1, parentOf), "re-linking directly to the root is fine")
}

func TestDistinctAreas(t *testing.T) {
	rows := []data.StagingRow{
		{AreaCode: 231, M49Code: "840", AreaName: "United States of America", AreaType: data.Country, Year: 2019},
		{AreaCode: 231, M49Code: "840", AreaName: "United States of America", AreaType: data.Country, Year: 2020},
		{AreaCode: 5000, M49Code: "001", AreaName: "World", AreaType: data.WorldArea, Year: 2019},
	}

	areas := DistinctAreas(rows)
	require.Len(t, areas, 2)
	assert.Equal(t, "840", areas[0].M49Code)
	assert.Equal(t, data.WorldArea, areas[1].AreaType)
}

func TestKeyCache(t *testing.T) {
	cache := NewKeyCache()

	_, ok := cache.Area("840")
	assert.False(t, ok)

	cache.PutArea("840", 7)
	key, ok := cache.Area("840")
	require.True(t, ok)
	assert.Equal(t, int64(7), key)

	cache.Reset()
	_, ok = cache.Area("840")
	assert.False(t, ok, "reset discards stale surrogate keys")
}
