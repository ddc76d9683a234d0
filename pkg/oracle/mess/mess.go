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

// Package mess implements an in-process standard chess oracle using the
// mess move generator.
package mess

import (
	"fmt"
	"strings"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/formats/fen"

	"laptudirm.com/x/pgn4/pkg/oracle"
	"laptudirm.com/x/pgn4/pkg/oracle/notation"
)

// Variant is the only variant supported by the mess oracle.
const Variant = "chess"

// StartFEN is the starting position of standard chess.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Oracle is a standard chess oracle.
type Oracle struct{}

var _ oracle.Oracle = (*Oracle)(nil)

func New() *Oracle {
	return &Oracle{}
}

func (*Oracle) Variants() []string {
	return []string{Variant}
}

func (*Oracle) StartingFEN(variant string) (string, error) {
	if variant != Variant {
		return "", fmt.Errorf("%w: %s", oracle.ErrUnknownVariant, variant)
	}

	return StartFEN, nil
}

func (*Oracle) NewPosition(variant, fenstr string) (oracle.Position, error) {
	if variant != Variant {
		return nil, fmt.Errorf("%w: %s", oracle.ErrUnknownVariant, variant)
	}

	return newPosition(fenstr), nil
}

func (*Oracle) Capabilities() oracle.Capabilities {
	return oracle.Capabilities{ShortNotation: true, LongNotation: true}
}

// Position is a standard chess position.
type Position struct {
	board *board.Board
	moves []move.Move

	closed bool
}

var _ oracle.Position = (*Position)(nil)

func newPosition(fenstr string) *Position {
	position := &Position{board: board.New(board.FEN(fen.FromString(fenstr)))}
	position.moves = position.board.GenerateMoves(false)
	return position
}

func (position *Position) find(mov string) (m move.Move, found bool) {
	for _, legal := range position.moves {
		if strings.EqualFold(legal.String(), mov) {
			return legal, true
		}
	}

	return m, false
}

func (position *Position) Push(mov string) error {
	if position.closed {
		return oracle.ErrClosed
	}

	m, found := position.find(mov)
	if !found {
		return fmt.Errorf("%w: %s", oracle.ErrIllegalMove, mov)
	}

	position.board.MakeMove(m)
	position.moves = position.board.GenerateMoves(false)
	return nil
}

func (position *Position) LegalMoves() ([]string, error) {
	if position.closed {
		return nil, oracle.ErrClosed
	}

	moves := make([]string, len(position.moves))
	for i, m := range position.moves {
		moves[i] = strings.ToLower(m.String())
	}

	return moves, nil
}

func (position *Position) FEN() (string, error) {
	if position.closed {
		return "", oracle.ErrClosed
	}

	fen := [6]string(position.board.FEN())
	return strings.Join(fen[:], " "), nil
}

// StatusAfter plays the given move on a copy of the position and reports
// whether it gives check or mate.
func (position *Position) StatusAfter(mov string) (notation.Status, error) {
	fenstr, err := position.FEN()
	if err != nil {
		return notation.Quiet, err
	}

	next := newPosition(fenstr)
	if err := next.Push(mov); err != nil {
		return notation.Quiet, err
	}

	switch {
	case !next.board.IsInCheck(next.board.SideToMove):
		return notation.Quiet, nil
	case len(next.moves) == 0:
		return notation.Mate, nil
	default:
		return notation.Check, nil
	}
}

func (position *Position) ShortNotation(mov string) (string, error) {
	return notation.ShortFor(position, mov)
}

func (position *Position) LongNotation(mov string) (string, error) {
	return notation.LongFor(position, mov)
}

func (position *Position) ParseShort(san string) (string, error) {
	return notation.ParseShortFor(position, san)
}

func (position *Position) Close() error {
	position.closed = true
	return nil
}
