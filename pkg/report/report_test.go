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

package report

import (
	"path/filepath"
	"testing"

	"laptudirm.com/x/pgn4/pkg/pgn4"
)

func TestWriteRead(t *testing.T) {
	summary := &pgn4.Report{Games: []pgn4.GameReport{
		{
			Index:      1,
			Variant:    "seirawan",
			StartFEN:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[HEhe] w KQBCDFGkqbcdfg - 0 1",
			Dimensions: pgn4.BoardDimensions{Files: 8, Ranks: 8},
			Result:     pgn4.BlackWins,
			Resolved:   41,
			Unresolved: []string{"Qd1-h5", "O-O/Ee8"},
		},
		{
			Index:      2,
			Variant:    "capablanca",
			Dimensions: pgn4.BoardDimensions{Files: 10, Ranks: 8},
			Result:     pgn4.Ongoing,
			Resolved:   12,
		},
	}}

	rows := Rows("games.pgn4", summary)
	path := filepath.Join(t.TempDir(), "report.parquet")

	if err := Write(path, rows, 1); err != nil {
		t.Fatalf("unexpected error writing report: %v", err)
	}

	got, err := Read(path, 1)
	if err != nil {
		t.Fatalf("unexpected error reading report: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("unexpected number of rows: got %d want 2", len(got))
	}

	first := got[0]
	if first.Source != "games.pgn4" || first.Variant != "seirawan" || first.Files != 8 || first.Result != "0-1" {
		t.Errorf("unexpected first row: %+v", first)
	}

	if first.UnresolvedCount != 2 || first.Unresolved != "Qd1-h5 O-O/Ee8" {
		t.Errorf("unexpected unresolved tokens: %d %q", first.UnresolvedCount, first.Unresolved)
	}

	if got[1].Game != 2 || got[1].Files != 10 || got[1].Resolved != 12 || got[1].Unresolved != "" || got[1].Result != "*" {
		t.Errorf("unexpected second row: %+v", got[1])
	}
}
