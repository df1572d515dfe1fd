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
	"context"
	"time"

	"github.com/climate-vault/climdata/extract"
	"github.com/climate-vault/climdata/healthcheck"
	"github.com/climate-vault/climdata/load"
	"github.com/climate-vault/climdata/transform"
	"github.com/climate-vault/climdata/warehouse"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var skipRefresh bool

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load [csv]",
	Short: "Load FAO temperature change CSV exports into the warehouse",
	Long: `load runs the full ETL pipeline against the configured warehouse:

  1. extract the wide FAO CSV and unpivot the year columns
  2. classify areas and time periods and validate the rows
  3. replace the staging, dimension and fact layers in the database
  4. refresh the analytics aggregates (unless --skip-refresh is given)

The main CSV may be given as an argument or configured as etl.csv.main.
The pipeline is batch-replace: each load truncates and rebuilds the
warehouse from the supplied files.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		begin := time.Now()

		dataFN := viper.GetString("etl.csv.main")
		if len(args) > 0 {
			dataFN = args[0]
		}
		if dataFN == "" {
			log.Fatal().Msg("no temperature data file given; pass it as an argument or set etl.csv.main")
		}

		areaCodesFN := viper.GetString("etl.csv.areas")
		elementsFN := viper.GetString("etl.csv.elements")

		if err := extract.ValidateFiles(map[string]string{
			"data":     dataFN,
			"areas":    areaCodesFN,
			"elements": elementsFN,
		}); err != nil {
			log.Fatal().Err(err).Msg("source file validation failed")
		}

		records, err := extract.MainData(dataFN)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", dataFN).Msg("could not read temperature data file")
		}
		log.Info().Int("NumRecords", len(records)).Msg("extracted wide records")

		if areaCodesFN != "" {
			areaCodes, err := extract.AreaCodes(areaCodesFN)
			if err != nil {
				log.Fatal().Err(err).Str("FileName", areaCodesFN).Msg("could not read area codes file")
			}
			log.Info().Int("NumAreaCodes", len(areaCodes)).Msg("extracted area code reference data")
		}

		if elementsFN != "" {
			elements, err := extract.Elements(elementsFN)
			if err != nil {
				log.Fatal().Err(err).Str("FileName", elementsFN).Msg("could not read elements file")
			}
			log.Info().Int("NumElements", len(elements)).Msg("extracted element reference data")
		}

		rows, stats, err := transform.Transform(records)
		if err != nil {
			log.Fatal().Err(err).Msg("could not transform temperature data")
		}
		logTransformStats(stats)

		myWarehouse, err := warehouse.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			reportFailure()
			log.Fatal().Err(err).Msg("could not connect to warehouse")
		}
		defer myWarehouse.Close()

		loader := load.NewLoader(myWarehouse.Pool)
		if batchSize := viper.GetInt("etl.batch_size"); batchSize > 0 {
			loader.BatchSize = batchSize
		}

		result, err := loader.Run(ctx, rows)
		if err != nil {
			reportFailure()
			log.Fatal().Err(err).Msg("warehouse load failed")
		}

		log.Info().
			Str("RunID", result.RunID.String()).
			Int64("RowsStaged", result.RowsStaged).
			Int("Areas", result.Areas).
			Int64("Facts", result.Facts).
			Msg("warehouse load complete")

		if skipRefresh {
			log.Info().Msg("skipping analytics refresh; aggregates are stale until `climdata refresh` runs")
		} else {
			results := myWarehouse.RefreshAll(ctx)
			for _, res := range results {
				if res.Err != nil {
					log.Error().Err(res.Err).Str("Aggregate", res.Aggregate).Msg("aggregate refresh failed")
					continue
				}
				log.Info().Str("Aggregate", res.Aggregate).Str("RunTime", durafmt.Parse(res.Duration).String()).Msg("aggregate refreshed")
			}
			if failed := warehouse.Failed(results); len(failed) > 0 {
				reportFailure()
				log.Fatal().Int("NumFailed", len(failed)).Msg("one or more aggregate refreshes failed")
			}
		}

		reportSuccess()
		log.Info().Str("RunTime", durafmt.Parse(time.Since(begin)).String()).Msg("load finished")
	},
}

func logTransformStats(stats transform.Stats) {
	log.Info().
		Int("InputRecords", stats.InputRecords).
		Int("OutputRows", stats.OutputRows).
		Int("NullValues", stats.NullValues).
		Int("DroppedYearRange", stats.DroppedYearRange).
		Int("ExtremeValues", stats.ExtremeValues).
		Int("PrecisionWarnings", stats.PrecisionWarnings).
		Msg("transformed temperature data")
}

func reportSuccess() {
	if id := viper.GetString("healthchecks.uuid"); id != "" {
		if err := healthcheck.PingSuccess(id); err != nil {
			log.Warn().Err(err).Msg("could not ping healthcheck endpoint")
		}
	}
}

func reportFailure() {
	if id := viper.GetString("healthchecks.uuid"); id != "" {
		if err := healthcheck.PingFailure(id); err != nil {
			log.Warn().Err(err).Msg("could not ping healthcheck endpoint")
		}
	}
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().String("areas", "", "FAO area codes reference CSV")
	loadCmd.Flags().String("elements", "", "FAO elements reference CSV")
	loadCmd.Flags().BoolVar(&skipRefresh, "skip-refresh", false, "do not refresh analytics aggregates after loading")

	if err := viper.BindPFlag("etl.csv.areas", loadCmd.Flags().Lookup("areas")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for areas failed")
	}
	if err := viper.BindPFlag("etl.csv.elements", loadCmd.Flags().Lookup("elements")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for elements failed")
	}
}
