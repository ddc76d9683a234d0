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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"laptudirm.com/x/pgn4/pkg/pgn4"
	"laptudirm.com/x/pgn4/pkg/report"
)

const chessGame = "[Site \"https://www.pychess.org/variants/chess\"]\n\n1. h5-h7 .. h10-h8 2. Nj4-i6 T\n"

// execute runs the root command with a configuration file that doesn't
// exist, so that only the defaults and the given flags apply.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := Root()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))

	config := filepath.Join(t.TempDir(), "config.yaml")
	root.SetArgs(append(args, "--config", config))

	err := root.Execute()
	return out.String(), err
}

func TestConvertStdin(t *testing.T) {
	got, err := execute(t, chessGame, "convert")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[Variant \"Chess\"]\n\n1. e4 e5 2. Nf3 T\n"
	if got != want {
		t.Errorf("unexpected output:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestConvertFiles(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "games.pgn4")
	if err := os.WriteFile(input, []byte(chessGame), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := filepath.Join(dir, "games.pgn")
	parquet := filepath.Join(dir, "report.parquet")

	if _, err := execute(t, "", "convert", input, input, "--oracle", "dragontooth", "-o", output, "--report", parquet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	game := "[Variant \"Chess\"]\n\n1. e4 e5 2. Nf3 T\n"
	if got := string(data); got != game+"\n"+game {
		t.Errorf("unexpected output:\n%s", got)
	}

	rows, err := report.Read(parquet, 1)
	if err != nil {
		t.Fatalf("unexpected error reading the report: %v", err)
	}

	if len(rows) != 2 || rows[0].Source != input || rows[1].Resolved != 3 {
		t.Errorf("unexpected report: %+v", rows)
	}
}

func TestConvertErrors(t *testing.T) {
	if _, err := execute(t, chessGame, "convert", "--engine", filepath.Join(t.TempDir(), "no-such-engine")); !errors.Is(err, pgn4.ErrOracleUnavailable) {
		t.Errorf("unexpected error for a missing engine: %v", err)
	}

	if _, err := execute(t, chessGame, "convert", "--variant", "crazyhouse"); !errors.Is(err, pgn4.ErrUnsupportedVariant) {
		t.Errorf("unexpected error for an unsupported variant: %v", err)
	}

	if _, err := execute(t, chessGame, "convert", "--offset", "diagonal"); err == nil {
		t.Errorf("expected an error for an unknown offset policy")
	}

	if _, err := execute(t, "", "convert", filepath.Join(t.TempDir(), "missing.pgn4")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unexpected error for a missing input: %v", err)
	}
}

func TestVariants(t *testing.T) {
	got, err := execute(t, "", "variants")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "chess") || !strings.Contains(got, "8x8") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestConfig(t *testing.T) {
	got, err := execute(t, "", "config")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got, "oracle: mess") || !strings.Contains(got, "castling-square: true") {
		t.Errorf("unexpected output:\n%s", got)
	}
}
