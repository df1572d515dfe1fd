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
package cmd

import (
	"bytes"
	"testing"

	"github.com/climate-vault/climdata/transform"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogTransformStats(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	logTransformStats(transform.Stats{
		InputRecords:      2,
		OutputRows:        10,
		NullValues:        1,
		DroppedYearRange:  3,
		ExtremeValues:     1,
		PrecisionWarnings: 2,
	})

	out := buf.String()
	assert.Contains(t, out, `"OutputRows":10`)
	assert.Contains(t, out, `"DroppedYearRange":3`)
	assert.Contains(t, out, `"PrecisionWarnings":2`)
}

func TestLoadFlagsBindToConfigKeys(t *testing.T) {
	require.NoError(t, loadCmd.Flags().Set("areas", "areas.csv"))
	require.NoError(t, loadCmd.Flags().Set("elements", "elements.csv"))

	assert.Equal(t, "areas.csv", viper.GetString("etl.csv.areas"))
	assert.Equal(t, "elements.csv", viper.GetString("etl.csv.elements"))
}
