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
	"fmt"

	"github.com/climate-vault/climdata/classify"
	"github.com/climate-vault/climdata/data"
)

// maxHierarchyDepth is the longest legal parent chain:
// country -> subregion -> continent -> world.
const maxHierarchyDepth = 3

// ResolveHierarchy assigns parent keys to a freshly loaded set of areas:
// continents point at the world total, subregions at their continent.
// Country parents are not derivable from FAO area names and stay unset.
//
// Every assignment is checked against the already-assigned links so that no
// sequence of updates can introduce a cycle; a cyclic assignment is rejected
// with the offending area's business key.
func ResolveHierarchy(areas []*data.Area) error {
	byName := make(map[string]*data.Area, len(areas))
	for _, area := range areas {
		byName[area.AreaName] = area
	}

	parentOf := make(map[int64]int64, len(areas))

	for _, area := range areas {
		parentName := classify.ParentArea(area.AreaName, string(area.AreaType))
		if parentName == "" {
			continue
		}

		parent, ok := byName[parentName]
		if !ok {
			return fmt.Errorf("area (m49=%s name=%s) names parent %q which is not in the dimension",
				area.M49Code, area.AreaName, parentName)
		}

		if wouldCreateCycle(area.AreaKey, parent.AreaKey, parentOf) {
			return fmt.Errorf("parent link %q -> %q would create a cycle (m49=%s)",
				area.AreaName, parentName, area.M49Code)
		}

		parentOf[area.AreaKey] = parent.AreaKey
		key := parent.AreaKey
		area.ParentAreaKey = &key
	}

	return checkLayering(areas, parentOf)
}

// wouldCreateCycle walks the parent chain from parent upward and reports
// whether it reaches child.
func wouldCreateCycle(child int64, parent int64, parentOf map[int64]int64) bool {
	if child == parent {
		return true
	}

	seen := map[int64]struct{}{}
	for current, ok := parent, true; ok; current, ok = parentOf[current] {
		if current == child {
			return true
		}
		if _, dup := seen[current]; dup {
			// existing cycle elsewhere; the new link does not reach child
			return false
		}
		seen[current] = struct{}{}
	}

	return false
}

// checkLayering verifies every parent chain terminates at a parentless area
// within maxHierarchyDepth hops.
func checkLayering(areas []*data.Area, parentOf map[int64]int64) error {
	for _, area := range areas {
		hops := 0
		current := area.AreaKey

		for {
			parent, ok := parentOf[current]
			if !ok {
				break
			}

			hops++
			if hops > maxHierarchyDepth {
				return fmt.Errorf("parent chain for area (m49=%s name=%s) exceeds %d hops",
					area.M49Code, area.AreaName, maxHierarchyDepth)
			}
			current = parent
		}
	}

	return nil
}
