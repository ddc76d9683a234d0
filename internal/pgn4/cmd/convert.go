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
	"io"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pgn4/pkg/common"
	"laptudirm.com/x/pgn4/pkg/pgn4"
	"laptudirm.com/x/pgn4/pkg/report"
)

const SPIN = 31

func Convert() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file...]",
		Short: "Convert pgn4 game records to PGN",
		Long: heredoc.Doc(`convert reads pgn4 game records from the given files, or from
			the standard input if none are given, and writes them as standard
			PGN to the standard output or the --output file.

			The variant of every game is detected from its Site header and
			replaced by a Variant header. Moves are mapped from the 14x14
			board onto the variant's board and rewritten in short algebraic
			notation by the configured oracle. Moves the oracle can't resolve
			are kept as they are and reported as warnings.

			Flags override the values of the configuration file.`),
		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			options, err := config.Options(logrus.StandardLogger())
			if err != nil {
				return err
			}

			o, closer, err := common.OpenOracle(config)
			if err != nil {
				return err
			}
			defer closer.Close()

			converter, err := pgn4.New(o, options)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output, _ := cmd.Flags().GetString("output"); output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()

				s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
				s.Suffix = " converting to " + output
				s.Start()
				defer s.Stop()

				out = file
			}

			if len(args) == 0 {
				args = []string{"-"}
			}

			var rows []report.Row
			games, unresolved := 0, 0

			for i, source := range args {
				if i > 0 {
					// keep the games of consecutive inputs apart
					if _, err := io.WriteString(out, "\n"); err != nil {
						return err
					}
				}

				summary, err := convertSource(converter, source, cmd.InOrStdin(), out)
				if err != nil {
					return fmt.Errorf("%s: %w", source, err)
				}

				games += len(summary.Games)
				unresolved += summary.Unresolved()
				rows = append(rows, report.Rows(source, summary)...)
			}

			if path, _ := cmd.Flags().GetString("report"); path != "" {
				if err := report.Write(path, rows, 4); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}

			logrus.WithFields(logrus.Fields{
				"games":      games,
				"unresolved": unresolved,
			}).Debug("conversion finished")

			if unresolved > 0 {
				logrus.Warnf("%d moves could not be resolved", unresolved)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "Write the PGN to this file")
	flags.String("report", "", "Write a per-game Parquet report to this file")

	flags.String("variant", "", "Convert every game as this variant")
	flags.String("default-variant", pgn4.DefaultVariant, "Variant of games without a Site header")
	flags.Bool("fallback", false, "Convert unsupported variants as the default variant")

	flags.Int("files", 0, "Override the number of files of the board")
	flags.Int("ranks", 0, "Override the number of ranks of the board")
	flags.String("offset", common.OffsetFixed, "Coordinate offset policy (fixed, symmetric)")

	flags.Bool("castling-square", true, "Append the gating square to gated castling moves")
	flags.Bool("keep-site", false, "Keep the Site header after the Variant header")

	oracleFlags(cmd)

	return cmd
}

// convertSource converts the named file, or stdin for "-".
func convertSource(converter *pgn4.Converter, source string, stdin io.Reader, out io.Writer) (*pgn4.Report, error) {
	if source == "-" {
		return converter.Convert(stdin, out)
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	logrus.Debugf("converting %s", source)
	return converter.Convert(file, out)
}
