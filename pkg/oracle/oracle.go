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

// Package oracle defines the rules authority consumed by the pgn4
// converter. An Oracle knows which variants it supports and their
// starting positions, and hands out Position handles which can be
// advanced with moves in the oracle's native (UCI) encoding and asked
// to render or parse move notations.
package oracle

import (
	"errors"
	"fmt"
)

// Oracle is a rules authority for one or more chess variants.
type Oracle interface {
	// Variants returns the names of the supported variants.
	Variants() []string

	// StartingFEN returns the starting position of the given variant.
	StartingFEN(variant string) (string, error)

	// NewPosition creates a new position handle for the given variant
	// starting from the given FEN. The handle must be closed after use.
	NewPosition(variant, fen string) (Position, error)

	// Capabilities reports the notation modes the oracle can render.
	Capabilities() Capabilities
}

// Position is a handle to a single position of an Oracle.
type Position interface {
	// Push plays the given native move on the position.
	Push(move string) error

	// LegalMoves returns the legal moves of the position in the
	// oracle's native encoding.
	LegalMoves() ([]string, error)

	// ShortNotation renders the given native move in short algebraic
	// notation (SAN) relative to the current position.
	ShortNotation(move string) (string, error)

	// LongNotation renders the given native move in long algebraic
	// notation (LAN) relative to the current position.
	LongNotation(move string) (string, error)

	// ParseShort parses a move in short algebraic notation and returns
	// the legal native move it denotes.
	ParseShort(san string) (string, error)

	// Close releases the resources held by the position.
	Close() error
}

// Capabilities is the set of notation modes supported by an Oracle.
type Capabilities struct {
	ShortNotation bool
	LongNotation  bool
}

var (
	ErrUnknownVariant = errors.New("oracle: unknown variant")
	ErrIllegalMove    = errors.New("oracle: illegal move")
	ErrClosed         = errors.New("oracle: position is closed")
)

// Require checks that the given Oracle supports all of the notation modes
// set in required, returning a descriptive error if it doesn't.
func Require(o Oracle, required Capabilities) error {
	got := o.Capabilities()
	switch {
	case required.ShortNotation && !got.ShortNotation:
		return fmt.Errorf("oracle: short notation rendering is not supported")
	case required.LongNotation && !got.LongNotation:
		return fmt.Errorf("oracle: long notation rendering is not supported")
	}

	return nil
}

// Supports reports whether the given variant is one of o's variants.
func Supports(o Oracle, variant string) bool {
	for _, name := range o.Variants() {
		if name == variant {
			return true
		}
	}

	return false
}
