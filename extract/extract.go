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

// Package extract reads the FAO source CSV files. The main file is the wide
// export with one column per year (Y1961 .. Y2024); the area-codes and
// elements files are small fixed-column reference exports.
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// WideRecord is one row of the wide main CSV before unpivoting: the
// identifying columns plus the year column series.
type WideRecord struct {
	AreaCode    int
	M49Code     string
	AreaName    string
	PeriodCode  int
	PeriodName  string
	ElementCode int
	ElementName string
	Unit        string

	// Values maps year to measurement; a nil value is a year FAO reports
	// with no measurement, which stays representable end to end.
	Values map[int]*float64
}

// AreaCodeRecord is a row of the area-codes reference CSV.
type AreaCodeRecord struct {
	AreaCode int    `csv:"Area Code"`
	Area     string `csv:"Area"`
	M49Code  string `csv:"M49 Code"`
}

// ElementRecord is a row of the elements reference CSV.
type ElementRecord struct {
	ElementCode int    `csv:"Element Code"`
	Element     string `csv:"Element"`
	Unit        string `csv:"Unit"`
}

// identifying columns expected in the main CSV, before the year series
var mainIDColumns = []string{
	"Area Code", "Area Code (M49)", "Area",
	"Months Code", "Months",
	"Element Code", "Element", "Unit",
}

// ValidateFiles confirms that every required source file exists before any
// work starts, so a mistyped path fails the run up front rather than halfway
// through a load.
func ValidateFiles(paths map[string]string) error {
	var missing []string

	for name, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			log.Error().Str("File", name).Str("Path", path).Msg("source file not found")
			missing = append(missing, name)
			continue
		}
		log.Info().Str("File", name).Str("Path", path).Msg("source file found")
	}

	if len(missing) > 0 {
		return fmt.Errorf("required CSV files are missing: %s", strings.Join(missing, ", "))
	}

	return nil
}

// MainData reads the wide main CSV. The year columns are discovered from the
// header (any column of the form Y<number>), so new export vintages with
// additional years need no code change.
func MainData(path string) ([]WideRecord, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open main csv: %w", err)
	}
	defer fh.Close()

	reader := csv.NewReader(fh)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read main csv header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	yearCols := make(map[int]int) // year -> column index
	for idx, col := range header {
		col = strings.TrimSpace(col)
		colIdx[col] = idx

		if year, ok := parseYearColumn(col); ok {
			yearCols[year] = idx
		}
	}

	for _, col := range mainIDColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("main csv is missing column %q", col)
		}
	}

	if len(yearCols) == 0 {
		return nil, fmt.Errorf("main csv has no year columns")
	}

	var records []WideRecord
	line := 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read main csv line %d: %w", line, err)
		}

		rec, err := parseWideRow(row, colIdx, yearCols)
		if err != nil {
			return nil, fmt.Errorf("main csv line %d: %w", line, err)
		}

		records = append(records, rec)
	}

	log.Info().Int("Rows", len(records)).Int("YearColumns", len(yearCols)).
		Str("Path", path).Msg("loaded main csv")

	return records, nil
}

func parseWideRow(row []string, colIdx map[string]int, yearCols map[int]int) (WideRecord, error) {
	areaCode, err := strconv.Atoi(strings.TrimSpace(row[colIdx["Area Code"]]))
	if err != nil {
		return WideRecord{}, fmt.Errorf("bad area code: %w", err)
	}

	periodCode, err := strconv.Atoi(strings.TrimSpace(row[colIdx["Months Code"]]))
	if err != nil {
		return WideRecord{}, fmt.Errorf("bad months code: %w", err)
	}

	elementCode, err := strconv.Atoi(strings.TrimSpace(row[colIdx["Element Code"]]))
	if err != nil {
		return WideRecord{}, fmt.Errorf("bad element code: %w", err)
	}

	rec := WideRecord{
		AreaCode:    areaCode,
		M49Code:     normalizeM49(row[colIdx["Area Code (M49)"]]),
		AreaName:    strings.TrimSpace(row[colIdx["Area"]]),
		PeriodCode:  periodCode,
		PeriodName:  strings.TrimSpace(row[colIdx["Months"]]),
		ElementCode: elementCode,
		ElementName: strings.TrimSpace(row[colIdx["Element"]]),
		Unit:        strings.TrimSpace(row[colIdx["Unit"]]),
		Values:      make(map[int]*float64, len(yearCols)),
	}

	for year, idx := range yearCols {
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			rec.Values[year] = nil
			continue
		}

		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return WideRecord{}, fmt.Errorf("bad value for Y%d: %w", year, err)
		}
		rec.Values[year] = &value
	}

	return rec, nil
}

// AreaCodes reads the area-codes reference CSV.
func AreaCodes(path string) ([]*AreaCodeRecord, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open area codes csv: %w", err)
	}
	defer fh.Close()

	var records []*AreaCodeRecord
	if err := gocsv.UnmarshalFile(fh, &records); err != nil {
		return nil, fmt.Errorf("parse area codes csv: %w", err)
	}

	for _, rec := range records {
		rec.M49Code = normalizeM49(rec.M49Code)
	}

	log.Info().Int("Rows", len(records)).Str("Path", path).Msg("loaded area codes csv")
	return records, nil
}

// Elements reads the elements reference CSV.
func Elements(path string) ([]*ElementRecord, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open elements csv: %w", err)
	}
	defer fh.Close()

	var records []*ElementRecord
	if err := gocsv.UnmarshalFile(fh, &records); err != nil {
		return nil, fmt.Errorf("parse elements csv: %w", err)
	}

	log.Info().Int("Rows", len(records)).Str("Path", path).Msg("loaded elements csv")
	return records, nil
}

func parseYearColumn(col string) (int, bool) {
	if len(col) < 2 || col[0] != 'Y' {
		return 0, false
	}

	year, err := strconv.Atoi(col[1:])
	if err != nil {
		return 0, false
	}

	return year, true
}

// normalizeM49 strips the leading apostrophe FAO uses to force spreadsheet
// programs to treat M49 codes as text ('004 -> 004).
func normalizeM49(code string) string {
	return strings.TrimPrefix(strings.TrimSpace(code), "'")
}
