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
package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainCSV = `Area Code,Area Code (M49),Area,Months Code,Months,Element Code,Element,Unit,Y2019,Y2020,Y2021
231,'840,United States of America,7020,Meteorological year,7271,Temperature change,°C,0.951,1.230,
33,'250,France,7001,January,7271,Temperature change,°C,-0.120,,2.001
`

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestMainData(t *testing.T) {
	path := writeTemp(t, "main.csv", mainCSV)

	records, err := MainData(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	usa := records[0]
	assert.Equal(t, 231, usa.AreaCode)
	assert.Equal(t, "840", usa.M49Code, "leading apostrophe must be stripped")
	assert.Equal(t, "United States of America", usa.AreaName)
	assert.Equal(t, 7020, usa.PeriodCode)
	assert.Equal(t, "Meteorological year", usa.PeriodName)
	assert.Equal(t, 7271, usa.ElementCode)
	assert.Equal(t, "°C", usa.Unit)

	require.Len(t, usa.Values, 3)
	require.NotNil(t, usa.Values[2020])
	assert.InDelta(t, 1.23, *usa.Values[2020], 1e-9)
	assert.Nil(t, usa.Values[2021], "empty cell is a missing measurement, not zero")

	france := records[1]
	require.NotNil(t, france.Values[2019])
	assert.InDelta(t, -0.12, *france.Values[2019], 1e-9)
	assert.Nil(t, france.Values[2020])
}

func TestMainDataMissingColumn(t *testing.T) {
	path := writeTemp(t, "bad.csv", "Area Code,Area,Y2020\n231,USA,1.0\n")

	_, err := MainData(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestMainDataNoYearColumns(t *testing.T) {
	header := "Area Code,Area Code (M49),Area,Months Code,Months,Element Code,Element,Unit\n"
	path := writeTemp(t, "noyears.csv", header+"231,'840,USA,7020,Meteorological year,7271,Temperature change,°C\n")

	_, err := MainData(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no year columns")
}

func TestAreaCodes(t *testing.T) {
	path := writeTemp(t, "areas.csv", "Area Code,Area,M49 Code\n231,United States of America,'840\n5000,World,'001\n")

	records, err := AreaCodes(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 231, records[0].AreaCode)
	assert.Equal(t, "840", records[0].M49Code)
	assert.Equal(t, "001", records[1].M49Code)
}

func TestElements(t *testing.T) {
	path := writeTemp(t, "elements.csv", "Element Code,Element,Unit\n7271,Temperature change,°C\n6078,Standard Deviation,°C\n")

	records, err := Elements(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Temperature change", records[0].Element)
	assert.Equal(t, 6078, records[1].ElementCode)
}

func TestValidateFiles(t *testing.T) {
	existing := writeTemp(t, "main.csv", mainCSV)

	require.NoError(t, ValidateFiles(map[string]string{"Main CSV": existing}))
	require.NoError(t, ValidateFiles(map[string]string{"Main CSV": existing, "Areas": ""}),
		"empty paths are optional inputs")

	err := ValidateFiles(map[string]string{"Main CSV": "/nonexistent/main.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Main CSV")
}
