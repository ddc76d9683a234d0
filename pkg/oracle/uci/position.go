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
	"fmt"

	"golang.org/x/exp/slices"

	"laptudirm.com/x/pgn4/pkg/oracle"
	"laptudirm.com/x/pgn4/pkg/oracle/notation"
)

// Position is a position of an engine backed Oracle. It is stored as the
// starting FEN and the moves played from it, and is set up on the engine
// afresh for every query. Legal moves and the FEN are cached until the
// next Push.
type Position struct {
	oracle *Oracle

	variant string
	fen     string
	moves   []string

	legal   []string
	current string

	closed bool
}

var _ oracle.Position = (*Position)(nil)

func (position *Position) origin() string {
	return "fen " + position.fen
}

func (position *Position) Push(move string) error {
	legal, err := position.LegalMoves()
	if err != nil {
		return err
	}

	if !slices.Contains(legal, move) {
		return fmt.Errorf("%w: %s", oracle.ErrIllegalMove, move)
	}

	position.moves = append(position.moves, move)
	position.legal, position.current = nil, ""
	return nil
}

func (position *Position) LegalMoves() ([]string, error) {
	if position.closed {
		return nil, oracle.ErrClosed
	}

	if position.legal != nil {
		return append([]string(nil), position.legal...), nil
	}

	o := position.oracle
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.setup(position.variant, position.origin(), position.moves...); err != nil {
		return nil, err
	}

	legal, err := o.legalMoves()
	if err != nil {
		return nil, err
	}

	position.legal = legal
	return append([]string(nil), legal...), nil
}

func (position *Position) FEN() (string, error) {
	if position.closed {
		return "", oracle.ErrClosed
	}

	if position.current != "" {
		return position.current, nil
	}

	o := position.oracle
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.setup(position.variant, position.origin(), position.moves...); err != nil {
		return "", err
	}

	fen, err := o.fen()
	if err != nil {
		return "", err
	}

	position.current = fen
	return fen, nil
}

func (position *Position) StatusAfter(move string) (notation.Status, error) {
	if position.closed {
		return notation.Quiet, oracle.ErrClosed
	}

	o := position.oracle
	o.mu.Lock()
	defer o.mu.Unlock()

	moves := append(append([]string(nil), position.moves...), move)
	if err := o.setup(position.variant, position.origin(), moves...); err != nil {
		return notation.Quiet, err
	}

	check, err := o.inCheck()
	if err != nil || !check {
		return notation.Quiet, err
	}

	replies, err := o.legalMoves()
	switch {
	case err != nil:
		return notation.Quiet, err
	case len(replies) == 0:
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
