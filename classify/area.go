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

// Package classify assigns geographic areas and reporting periods to their
// place in the warehouse hierarchies. The FAO source data mixes countries,
// subregions, continents and the world total in a single area column; the
// classifiers here are how the dimensional model tells them apart.
package classify

import "strings"

const (
	World = "World"
)

// continents recognized in the FAO area column
var continents = map[string]struct{}{
	"Africa":   {},
	"Americas": {},
	"Asia":     {},
	"Europe":   {},
	"Oceania":  {},
}

// subregionContinent maps each UN subregion to its parent continent.
var subregionContinent = map[string]string{
	// Africa
	"Eastern Africa":  "Africa",
	"Middle Africa":   "Africa",
	"Northern Africa": "Africa",
	"Southern Africa": "Africa",
	"Western Africa":  "Africa",
	// Americas
	"Caribbean":        "Americas",
	"Central America":  "Americas",
	"South America":    "Americas",
	"Northern America": "Americas",
	// Asia
	"Central Asia":       "Asia",
	"Eastern Asia":       "Asia",
	"South-eastern Asia": "Asia",
	"Southern Asia":      "Asia",
	"Western Asia":       "Asia",
	// Europe
	"Eastern Europe":  "Europe",
	"Northern Europe": "Europe",
	"Southern Europe": "Europe",
	"Western Europe":  "Europe",
	// Oceania
	"Australia and New Zealand": "Oceania",
	"Melanesia":                 "Oceania",
	"Micronesia":                "Oceania",
	"Polynesia":                 "Oceania",
}

// Area classifies an area name into a hierarchy level: world, continent,
// subregion, or country. Any name not in the fixed world/continent/subregion
// sets is a country -- FAO publishes new member states from time to time and
// they must not be rejected here.
func Area(areaName string) string {
	areaName = strings.TrimSpace(areaName)

	if areaName == World {
		return "world"
	}

	if _, ok := continents[areaName]; ok {
		return "continent"
	}

	if _, ok := subregionContinent[areaName]; ok {
		return "subregion"
	}

	return "country"
}

// ParentArea returns the parent area name for the given area, or empty string
// when the area has no parent. The hierarchy is strictly layered:
// country -> subregion -> continent -> world.
//
// Country parents are not derivable from the name alone; they are resolved
// during the dimension load from the M49 relationships in the source data.
func ParentArea(areaName string, areaType string) string {
	switch areaType {
	case "world":
		return ""
	case "continent":
		return World
	case "subregion":
		return subregionContinent[strings.TrimSpace(areaName)]
	}

	return ""
}

// Subregions returns the fixed set of recognized subregion names.
func Subregions() []string {
	names := make([]string, 0, len(subregionContinent))
	for name := range subregionContinent {
		names = append(names, name)
	}
	return names
}
