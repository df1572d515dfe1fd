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
)

func TestArea(t *testing.T) {
	tests := []struct {
		name     string
		areaName string
		want     string
	}{
		{"world total", "World", "world"},
		{"continent", "Europe", "continent"},
		{"subregion", "Western Africa", "subregion"},
		{"country", "United States of America", "country"},
		{"unrecognized name defaults to country", "Atlantis", "country"},
		{"surrounding whitespace trimmed", "  Asia ", "continent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Area(tt.areaName))
		})
	}
}

func TestParentArea(t *testing.T) {
	assert.Empty(t, ParentArea("World", "world"))
	assert.Equal(t, "World", ParentArea("Oceania", "continent"))
	assert.Equal(t, "Oceania", ParentArea("Melanesia", "subregion"))
	assert.Equal(t, "Americas", ParentArea("Caribbean", "subregion"))

	// country parents come from M49 relationships at load time, not the name
	assert.Empty(t, ParentArea("France", "country"))

	// an unknown subregion has no resolvable parent
	assert.Empty(t, ParentArea("Nowhere", "subregion"))
}

func TestHierarchyIsStrictlyLayered(t *testing.T) {
	// every subregion's parent must classify as a continent, and every
	// continent's parent must be the world total
	for _, sub := range Subregions() {
		parent := ParentArea(sub, "subregion")
		assert.Equal(t, "continent", Area(parent), "subregion %s", sub)
		assert.Equal(t, "world", Area(ParentArea(parent, "continent")))
	}
}
