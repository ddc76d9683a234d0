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

package uci

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/exp/slices"

	"laptudirm.com/x/pgn4/pkg/oracle"
)

const (
	fakeStart  = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	fakeAfterE = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
)

var fakePositions = map[string]struct {
	fen   string
	moves string
}{
	"": {
		fakeStart,
		"a2a3 a2a4 b2b3 b2b4 c2c3 c2c4 d2d3 d2d4 e2e3 e2e4 f2f3 f2f4 g2g3 g2g4 h2h3 h2h4 b1a3 b1c3 g1f3 g1h3",
	},
	"e2e4": {
		fakeAfterE,
		"a7a6 a7a5 b7b6 b7b5 c7c6 c7c5 d7d6 d7d5 e7e6 e7e5 f7f6 f7f5 g7g6 g7g5 h7h6 h7h5 b8a6 b8c6 g8f6 g8h6",
	},
}

// runFakeEngine speaks just enough UCI over stdin and stdout to drive the
// oracle through a couple of standard chess positions.
func runFakeEngine() {
	scanner := bufio.NewScanner(os.Stdin)
	history := ""

	var (
		output    sync.Mutex
		searching sync.WaitGroup
	)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "uci":
			fmt.Println("id name Fake")
			fmt.Println("option name Hash type spin default 16 min 1 max 1024")
			fmt.Println("option name UCI_Variant type combo default chess var chess var seirawan")
			fmt.Println("uciok")
		case "isready":
			output.Lock()
			fmt.Println("readyok")
			output.Unlock()
		case "position":
			history = ""
			for i, field := range fields {
				if field == "moves" {
					history = strings.Join(fields[i+1:], " ")
				}
			}
		case "d":
			fen := fakeStart
			if position, found := fakePositions[history]; found {
				fen = position.fen
			}

			output.Lock()
			fmt.Println()
			fmt.Println("Fen: " + fen)
			fmt.Println("Checkers: ")
			output.Unlock()
		case "go":
			// perft runs on a search thread of its own, so an isready sent
			// right after go is answered before the moves are printed
			moves := strings.Fields(fakePositions[history].moves)
			searching.Add(1)
			go func() {
				defer searching.Done()
				time.Sleep(50 * time.Millisecond)

				output.Lock()
				defer output.Unlock()

				for _, move := range moves {
					fmt.Printf("%s: 1\n", move)
				}

				fmt.Println()
				fmt.Printf("Nodes searched: %d\n", len(moves))
			}()
		case "quit":
			searching.Wait()
			return
		}
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("PGN4_FAKE_ENGINE") != "1" {
		return
	}

	runFakeEngine()
	os.Exit(0)
}

func fakeConfig() EngineConfig {
	return EngineConfig{
		Name:    "fake",
		Cmd:     os.Args[0],
		Arg:     "-test.run=^TestHelperProcess$",
		Env:     []string{"PGN4_FAKE_ENGINE=1"},
		Options: map[string]string{"Hash": "16"},
		Timeout: 10 * time.Second,
	}
}

func TestOracle(t *testing.T) {
	o, err := New(fakeConfig())
	if err != nil {
		t.Fatalf("unexpected error starting engine: %v", err)
	}
	defer o.Close()

	if got := o.Variants(); !slices.Equal(got, []string{"chess", "seirawan"}) {
		t.Errorf("unexpected variants: got %v want [chess seirawan]", got)
	}

	if _, err := o.StartingFEN("crazyhouse"); !errors.Is(err, oracle.ErrUnknownVariant) {
		t.Errorf("unexpected error for unknown variant: %v", err)
	}

	fen, err := o.StartingFEN("chess")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fen != fakeStart {
		t.Errorf("unexpected starting fen: got %s want %s", fen, fakeStart)
	}

	position, err := o.NewPosition("chess", fen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer position.Close()

	moves, err := position.LegalMoves()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(moves) != 20 {
		t.Errorf("unexpected number of legal moves: got %d want 20", len(moves))
	}

	moves[0] = "a1a8"
	if again, err := position.LegalMoves(); err != nil || slices.Contains(again, "a1a8") || len(again) != 20 {
		t.Errorf("legal moves changed by the caller: %v (%v)", again, err)
	}

	san, err := position.ShortNotation("g1f3")
	if err != nil || san != "Nf3" {
		t.Errorf("unexpected san for g1f3: got %s (%v) want Nf3", san, err)
	}

	native, err := position.ParseShort("e4")
	if err != nil || native != "e2e4" {
		t.Errorf("unexpected move for e4: got %s (%v) want e2e4", native, err)
	}

	if err := position.Push("e2e5"); !errors.Is(err, oracle.ErrIllegalMove) {
		t.Errorf("unexpected error for illegal move: %v", err)
	}

	if err := position.Push("e2e4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	moves, err = position.LegalMoves()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Contains(moves, "e7e5") {
		t.Errorf("expected e7e5 in the legal moves, got %v", moves)
	}

	lan, err := position.LongNotation("g8f6")
	if err != nil || lan != "Ng8-f6" {
		t.Errorf("unexpected lan for g8f6: got %s (%v) want Ng8-f6", lan, err)
	}
}

func TestParseVariants(t *testing.T) {
	if got := parseVariants([]string{"id name Stockfish"}); !slices.Equal(got, []string{"chess"}) {
		t.Errorf("unexpected variants without the option: got %v", got)
	}
}

func TestFairyStockfish(t *testing.T) {
	path, err := exec.LookPath("fairy-stockfish")
	if err != nil {
		t.Skipf("fairy-stockfish not found: %v", err)
	}

	o, err := New(EngineConfig{Cmd: path})
	if err != nil {
		t.Fatalf("unexpected error starting engine: %v", err)
	}
	defer o.Close()

	fen, err := o.StartingFEN("seirawan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	position, err := o.NewPosition("seirawan", fen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer position.Close()

	san, err := position.ShortNotation("g1f3h")
	if err != nil || san != "Nf3/H" {
		t.Errorf("unexpected san for g1f3h: got %s (%v) want Nf3/H", san, err)
	}
}
