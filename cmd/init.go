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
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/climate-vault/climdata/db"
	"github.com/climate-vault/climdata/healthcheck"
	"github.com/climate-vault/climdata/warehouse"
	"github.com/jackc/pgx/v5"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type initConfigFile struct {
	DB struct {
		URL string `toml:"url"`
	} `toml:"db"`
	ETL struct {
		BatchSize int `toml:"batch_size"`
	} `toml:"etl"`
	Healthchecks struct {
		APIKey string `toml:"apikey,omitempty"`
		UUID   string `toml:"uuid,omitempty"`
	} `toml:"healthchecks"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather database configuration and create the warehouse schema",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		var (
			dbURL         string
			monitorChecks bool
			hcAPIKey      string
		)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Provide the DSN for connecting to your PostgreSQL database (postgres://[user[:password]@][netloc][:port][/dbname][?param1=value1&...])").
					Value(&dbURL).
					Validate(func(dsn string) error {
						_, err := pgx.ParseConfig(dsn)
						return err
					}),

				huh.NewConfirm().
					Title("Monitor load runs with healthchecks.io?").
					Value(&monitorChecks),
			),

			huh.NewGroup(
				huh.NewInput().
					Title("Provide your healthchecks.io API key").
					Value(&hcAPIKey),
			).WithHideFunc(func() bool {
				return !monitorChecks
			}),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering database settings")
		}

		log.Info().Msg("creating warehouse schemas and tables")

		// run migration
		migrateURL := strings.Replace(dbURL, "postgres://", "pgx5://", -1)
		err = db.Migrate(migrateURL)
		if err != nil {
			log.Fatal().Err(err).Msg("error running database migration")
		}

		log.Info().Msg("warehouse schemas created")

		// verify the warehouse is reachable with the supplied DSN
		myWarehouse := &warehouse.Warehouse{DBUrl: dbURL}
		if err := myWarehouse.Connect(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not connect to database")
		}
		defer myWarehouse.Close()

		if _, err := myWarehouse.Statistics(ctx); err != nil {
			log.Fatal().Err(err).Msg("warehouse schema verification failed")
		}

		// save database settings to config file
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		var cfg initConfigFile
		cfg.DB.URL = dbURL
		cfg.ETL.BatchSize = 5000

		if monitorChecks {
			viper.Set("healthchecks.apikey", hcAPIKey)

			checkUUID, err := healthcheck.Create("climdata load", []string{"climdata", "etl"}, "0 0 1 * *")
			if err != nil {
				log.Fatal().Err(err).Msg("could not create healthcheck")
			}
			cfg.Healthchecks.APIKey = hcAPIKey
			cfg.Healthchecks.UUID = checkUUID
			log.Info().Str("CheckUUID", checkUUID).Msg("healthcheck created")
		}

		configFN := filepath.Join(home, ".climdata.toml")
		log.Info().Str("ConfigFile", configFN).Msg("Saving database connection info to config file")
		configData, err := toml.Marshal(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("Your climate warehouse has been initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
