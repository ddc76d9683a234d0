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

// Package uci implements an oracle backed by an external UCI variant
// engine such as Fairy-Stockfish. The engine is asked for its variants,
// starting positions, legal moves (perft 1) and check status, while the
// notation itself is rendered by the notation package.
package uci

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pgn4/pkg/oracle"
)

// Oracle is a rules oracle driving an external engine process. Queries are
// serialized, so an Oracle may be shared by multiple positions.
type Oracle struct {
	mu sync.Mutex

	engine   *Engine
	variants []string
	selected string
}

var _ oracle.Oracle = (*Oracle)(nil)

// New starts the engine described by config and reads its variants.
func New(config EngineConfig) (*Oracle, error) {
	engine, handshake, err := StartEngine(config)
	if err != nil {
		return nil, err
	}

	o := &Oracle{
		engine:   engine,
		variants: parseVariants(handshake),
		selected: "chess",
	}

	for name, value := range config.Options {
		if err := engine.Write("setoption name %s value %s", name, value); err != nil {
			_ = engine.Kill()
			return nil, err
		}
	}

	if err := engine.Synchronize(); err != nil {
		_ = engine.Kill()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"engine":   engine.config.Name,
		"variants": len(o.variants),
	}).Debug("uci oracle ready")

	return o, nil
}

// parseVariants extracts the variant names from the UCI_Variant combo
// option of the handshake. An engine without it only plays chess.
func parseVariants(handshake []string) []string {
	var variants []string
	for _, line := range handshake {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != "option" || fields[2] != "UCI_Variant" {
			continue
		}

		for i := 3; i+1 < len(fields); i++ {
			if fields[i] == "var" {
				variants = append(variants, fields[i+1])
			}
		}
	}

	if len(variants) == 0 {
		return []string{"chess"}
	}

	return variants
}

func (o *Oracle) Variants() []string {
	return append([]string(nil), o.variants...)
}

func (o *Oracle) StartingFEN(variant string) (string, error) {
	if !oracle.Supports(o, variant) {
		return "", fmt.Errorf("%w: %s", oracle.ErrUnknownVariant, variant)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.setup(variant, "startpos"); err != nil {
		return "", err
	}

	return o.fen()
}

func (o *Oracle) NewPosition(variant, fen string) (oracle.Position, error) {
	if !oracle.Supports(o, variant) {
		return nil, fmt.Errorf("%w: %s", oracle.ErrUnknownVariant, variant)
	}

	return &Position{oracle: o, variant: variant, fen: fen}, nil
}

func (*Oracle) Capabilities() oracle.Capabilities {
	return oracle.Capabilities{ShortNotation: true, LongNotation: true}
}

// Close shuts the engine down.
func (o *Oracle) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.engine.Kill()
}

// setup selects the given variant and sets up the given position, which
// is either "startpos" or a "fen ..." argument.
func (o *Oracle) setup(variant, position string, moves ...string) error {
	if variant != o.selected {
		if err := o.engine.Write("setoption name UCI_Variant value %s", variant); err != nil {
			return err
		}

		if err := o.engine.Synchronize(); err != nil {
			return err
		}

		o.selected = variant
	}

	command := "position " + position
	if len(moves) > 0 {
		command += " moves " + strings.Join(moves, " ")
	}

	return o.engine.Write("%s", command)
}

// fen returns the FEN of the position last set up.
func (o *Oracle) fen() (string, error) {
	lines, err := o.engine.Query("d")
	if err != nil {
		return "", err
	}

	for _, line := range lines {
		if fen, found := strings.CutPrefix(line, "Fen: "); found {
			return strings.TrimSpace(fen), nil
		}
	}

	return "", fmt.Errorf("engine: no fen in %s display output", o.engine.config.Name)
}

// inCheck reports whether the side to move is in check in the position
// last set up.
func (o *Oracle) inCheck() (bool, error) {
	lines, err := o.engine.Query("d")
	if err != nil {
		return false, err
	}

	for _, line := range lines {
		if checkers, found := strings.CutPrefix(line, "Checkers:"); found {
			return strings.TrimSpace(checkers) != "", nil
		}
	}

	return false, fmt.Errorf("engine: no checkers in %s display output", o.engine.config.Name)
}

var perftRegexp = regexp.MustCompile(`^(\S+): \d+$`)

// legalMoves returns the legal moves of the position last set up. Perft
// runs on the engine's search thread, which may still be printing after an
// isready sent behind it is answered, so the summary line is awaited first.
func (o *Oracle) legalMoves() ([]string, error) {
	if err := o.engine.Write("go perft 1"); err != nil {
		return nil, err
	}

	lines, err := o.engine.Collect("^Nodes searched")
	if err != nil {
		return nil, err
	}

	if err := o.engine.Synchronize(); err != nil {
		return nil, err
	}

	moves := []string{}
	for _, line := range lines {
		if match := perftRegexp.FindStringSubmatch(line); match != nil {
			moves = append(moves, match[1])
		}
	}

	return moves, nil
}
