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

// Package oracletest provides a scripted oracle for testing code which
// consumes an oracle.Oracle without a real rules engine.
package oracletest

import (
	"fmt"
	"strings"
	"sync"

	"laptudirm.com/x/pgn4/pkg/oracle"
)

// Move is a scripted legal move with its renderings.
type Move struct {
	Native string
	Short  string
	Long   string
}

// Stub is an oracle whose legal moves are scripted per move history.
type Stub struct {
	// Positions maps a variant name to its scripted game tree, which maps
	// the space separated move history to the legal moves after it.
	Positions map[string]map[string][]Move

	// FENs maps a variant name to its starting position.
	FENs map[string]string

	// NoLong disables the long notation capability.
	NoLong bool

	mu     sync.Mutex
	opened int
	closed int
}

var _ oracle.Oracle = (*Stub)(nil)

// NewStub returns an empty Stub.
func NewStub() *Stub {
	return &Stub{
		Positions: make(map[string]map[string][]Move),
		FENs:      make(map[string]string),
	}
}

// Add scripts the given legal moves for the position reached by playing
// history in variant, and registers the variant if it is new.
func (stub *Stub) Add(variant, fen string, history []string, moves ...Move) {
	if _, found := stub.Positions[variant]; !found {
		stub.Positions[variant] = make(map[string][]Move)
		stub.FENs[variant] = fen
	}

	key := strings.Join(history, " ")
	stub.Positions[variant][key] = append(stub.Positions[variant][key], moves...)
}

// Open returns the number of positions which haven't been closed.
func (stub *Stub) Open() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.opened - stub.closed
}

// Created returns the total number of positions handed out.
func (stub *Stub) Created() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.opened
}

func (stub *Stub) Variants() []string {
	variants := make([]string, 0, len(stub.FENs))
	for variant := range stub.FENs {
		variants = append(variants, variant)
	}

	return variants
}

func (stub *Stub) StartingFEN(variant string) (string, error) {
	fen, found := stub.FENs[variant]
	if !found {
		return "", fmt.Errorf("%w: %s", oracle.ErrUnknownVariant, variant)
	}

	return fen, nil
}

func (stub *Stub) NewPosition(variant, fen string) (oracle.Position, error) {
	tree, found := stub.Positions[variant]
	if !found {
		return nil, fmt.Errorf("%w: %s", oracle.ErrUnknownVariant, variant)
	}

	stub.mu.Lock()
	stub.opened++
	stub.mu.Unlock()

	return &Position{stub: stub, tree: tree}, nil
}

func (stub *Stub) Capabilities() oracle.Capabilities {
	return oracle.Capabilities{ShortNotation: true, LongNotation: !stub.NoLong}
}

// Position is a position of a Stub.
type Position struct {
	stub    *Stub
	tree    map[string][]Move
	history []string
	closed  bool
}

func (position *Position) legal() []Move {
	return position.tree[strings.Join(position.history, " ")]
}

func (position *Position) find(match func(Move) bool) (Move, bool) {
	for _, move := range position.legal() {
		if match(move) {
			return move, true
		}
	}

	return Move{}, false
}

func (position *Position) Push(move string) error {
	if position.closed {
		return oracle.ErrClosed
	}

	if _, found := position.find(func(m Move) bool { return m.Native == move }); !found {
		return fmt.Errorf("%w: %s", oracle.ErrIllegalMove, move)
	}

	position.history = append(position.history, move)
	return nil
}

func (position *Position) LegalMoves() ([]string, error) {
	if position.closed {
		return nil, oracle.ErrClosed
	}

	moves := []string{}
	for _, move := range position.legal() {
		moves = append(moves, move.Native)
	}

	return moves, nil
}

func (position *Position) ShortNotation(move string) (string, error) {
	m, found := position.find(func(m Move) bool { return m.Native == move })
	if !found {
		return "", fmt.Errorf("%w: %s", oracle.ErrIllegalMove, move)
	}

	return m.Short, nil
}

func (position *Position) LongNotation(move string) (string, error) {
	if position.stub.NoLong {
		return "", fmt.Errorf("oracletest: long notation disabled")
	}

	m, found := position.find(func(m Move) bool { return m.Native == move })
	if !found {
		return "", fmt.Errorf("%w: %s", oracle.ErrIllegalMove, move)
	}

	return m.Long, nil
}

func (position *Position) ParseShort(san string) (string, error) {
	m, found := position.find(func(m Move) bool { return m.Short == san })
	if !found {
		return "", fmt.Errorf("%w: %s", oracle.ErrIllegalMove, san)
	}

	return m.Native, nil
}

func (position *Position) Close() error {
	if !position.closed {
		position.closed = true

		position.stub.mu.Lock()
		position.stub.closed++
		position.stub.mu.Unlock()
	}

	return nil
}
