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
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pgn4/internal/util"
	"laptudirm.com/x/pgn4/pkg/common"
	"laptudirm.com/x/pgn4/pkg/pgn4"
)

func Variants() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variants",
		Short: "Lists the variants supported by the oracle",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			o, closer, err := common.OpenOracle(config)
			if err != nil {
				return err
			}
			defer closer.Close()

			variants := append([]string(nil), o.Variants()...)
			if len(variants) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\x1b[31mNo Variants Supported.\x1b[0m")
				return nil
			}

			util.SortAlphanum(variants)

			fmt.Fprintf(cmd.OutOrStdout(), "\u001B[32mSupported Variants\u001B[0m (%s):\n\n", config.Oracle)
			for _, variant := range variants {
				dims := pgn4.DefaultDimensions

				fen, err := o.StartingFEN(variant)
				if err == nil {
					dims, err = pgn4.DimensionsFromFEN(fen)
				}

				if err != nil {
					logrus.Debugf("board size of %s: %v", variant, err)
					dims = pgn4.DefaultDimensions
				}

				name := fmt.Sprintf("\x1b[34m%s\x1b[0m:", variant)
				fmt.Fprintf(cmd.OutOrStdout(), "- %-30s %s\n", name, dims)
			}

			return nil
		},
	}

	oracleFlags(cmd)
	return cmd
}
