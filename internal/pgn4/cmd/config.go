// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/pgn4/pkg/common"
)

func Config() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: heredoc.Doc(`config prints the configuration pgn4 runs with, which is the
			configuration file read over the built-in defaults.

			With --init, the effective configuration is also written back to
			the configuration file, creating it from the defaults if needed.`),
		Args: cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			path := cmd.Flag("config").Value.String()

			config, err := common.LoadConfig(path)
			if err != nil {
				return err
			}

			if write, _ := cmd.Flags().GetBool("init"); write {
				if err := config.Save(path); err != nil {
					return err
				}

				logrus.Infof("configuration written to %s", path)
			}

			data, err := yaml.Marshal(config)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().Bool("init", false, "Write the configuration file")
	return cmd
}

// oracleFlags registers the flags selecting the oracle backend.
func oracleFlags(cmd *cobra.Command) {
	cmd.Flags().String("oracle", "", "Oracle backend ("+strings.Join(common.Oracles, ", ")+")")
	cmd.Flags().String("engine", "", "UCI engine command for the uci oracle")
}

// loadConfig reads the configuration file and applies the flags that were
// set on the command line over it.
func loadConfig(cmd *cobra.Command) (common.Config, error) {
	config, err := common.LoadConfig(cmd.Flag("config").Value.String())
	if err != nil {
		return config, err
	}

	flags := cmd.Flags()

	if flags.Changed("oracle") {
		config.Oracle, _ = flags.GetString("oracle")
	}

	if flags.Changed("engine") {
		config.Engine.Cmd, _ = flags.GetString("engine")
		config.Engine.Name = ""
		if config.Oracle != common.OracleUCI {
			logrus.Debug("--engine given, using the uci oracle")
			config.Oracle = common.OracleUCI
		}
	}

	if flags.Lookup("variant") == nil {
		return config, nil
	}

	if flags.Changed("variant") {
		config.Variant, _ = flags.GetString("variant")
	}

	if flags.Changed("default-variant") {
		config.DefaultVariant, _ = flags.GetString("default-variant")
	}

	if flags.Changed("fallback") {
		config.Fallback, _ = flags.GetBool("fallback")
	}

	if flags.Changed("offset") {
		config.Offset, _ = flags.GetString("offset")
	}

	if flags.Changed("castling-square") {
		config.CastlingSquare, _ = flags.GetBool("castling-square")
	}

	if flags.Changed("keep-site") {
		config.KeepSite, _ = flags.GetBool("keep-site")
	}

	if flags.Changed("files") {
		config.Files, _ = flags.GetInt("files")
	}

	if flags.Changed("ranks") {
		config.Ranks, _ = flags.GetInt("ranks")
	}

	return config, nil
}
