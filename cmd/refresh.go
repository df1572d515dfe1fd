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
	"os"

	"github.com/climate-vault/climdata/warehouse"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh [aggregate...]",
	Short: "Refresh analytics aggregates from the core schema",
	Long: `refresh recomputes the materialized analytics aggregates from the core
fact and dimension tables. With no arguments every aggregate is refreshed;
otherwise only the named aggregates are. Each aggregate refreshes
independently, so one failure does not prevent the others from updating.`,
	ValidArgs: warehouse.Aggregates,
	Args:      cobra.OnlyValidArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		myWarehouse, err := warehouse.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to warehouse")
		}
		defer myWarehouse.Close()

		var results []warehouse.RefreshResult
		if len(args) == 0 {
			results = myWarehouse.RefreshAll(ctx)
		} else {
			for _, aggregate := range args {
				results = append(results, myWarehouse.Refresh(ctx, aggregate))
			}
		}

		for _, res := range results {
			if res.Err != nil {
				log.Error().Err(res.Err).Str("Aggregate", res.Aggregate).Msg("aggregate refresh failed")
				continue
			}
			log.Info().Str("Aggregate", res.Aggregate).Str("RunTime", durafmt.Parse(res.Duration).String()).Msg("aggregate refreshed")
		}

		if failed := warehouse.Failed(results); len(failed) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
