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

// Package dragontooth implements an in-process standard chess oracle
// backed by the dragontoothmg bitboard move generator.
package dragontooth

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"laptudirm.com/x/pgn4/pkg/oracle"
	"laptudirm.com/x/pgn4/pkg/oracle/notation"
)

const Variant = "chess"

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

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

func (*Oracle) NewPosition(variant, fen string) (oracle.Position, error) {
	if variant != Variant {
		return nil, fmt.Errorf("%w: %s", oracle.ErrUnknownVariant, variant)
	}

	return &Position{board: dragontoothmg.ParseFen(fen)}, nil
}

func (*Oracle) Capabilities() oracle.Capabilities {
	return oracle.Capabilities{ShortNotation: true, LongNotation: true}
}

type Position struct {
	board  dragontoothmg.Board
	closed bool
}

var _ oracle.Position = (*Position)(nil)

func (position *Position) find(move string) (m dragontoothmg.Move, found bool) {
	for _, legal := range position.board.GenerateLegalMoves() {
		if legal.String() == move {
			return legal, true
		}
	}

	return m, false
}

func (position *Position) Push(move string) error {
	if position.closed {
		return oracle.ErrClosed
	}

	m, found := position.find(move)
	if !found {
		return fmt.Errorf("%w: %s", oracle.ErrIllegalMove, move)
	}

	position.board.Apply(m)
	return nil
}

func (position *Position) LegalMoves() ([]string, error) {
	if position.closed {
		return nil, oracle.ErrClosed
	}

	legal := position.board.GenerateLegalMoves()
	moves := make([]string, len(legal))
	for i, m := range legal {
		moves[i] = m.String()
	}

	return moves, nil
}

func (position *Position) FEN() (string, error) {
	if position.closed {
		return "", oracle.ErrClosed
	}

	return position.board.ToFen(), nil
}

func (position *Position) StatusAfter(move string) (notation.Status, error) {
	m, found := position.find(move)
	if !found {
		return notation.Quiet, fmt.Errorf("%w: %s", oracle.ErrIllegalMove, move)
	}

	unapply := position.board.Apply(m)
	defer unapply()

	switch {
	case !position.board.OurKingInCheck():
		return notation.Quiet, nil
	case len(position.board.GenerateLegalMoves()) == 0:
		return notation.Mate, nil
	default:
		return notation.Check, nil
	}
}

func (position *Position) ShortNotation(move string) (string, error) {
	return notation.ShortFor(position, move)
}

func (position *Position) LongNotation(move string) (string, error) {
	return notation.LongFor(position, move)
}

func (position *Position) ParseShort(san string) (string, error) {
	return notation.ParseShortFor(position, san)
}

func (position *Position) Close() error {
	position.closed = true
	return nil
}
