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

package notation

import (
	"fmt"

	"golang.org/x/exp/slices"

	"laptudirm.com/x/pgn4/pkg/oracle"
)

// Source is the minimal view of a position an oracle backend has to
// provide for its notation to be rendered by this package.
type Source interface {
	FEN() (string, error)
	LegalMoves() ([]string, error)

	// StatusAfter returns the check status of the position reached
	// after playing the given legal move.
	StatusAfter(move string) (Status, error)
}

// ShortFor renders the given move of src in short algebraic notation.
func ShortFor(src Source, move string) (string, error) {
	board, legal, err := load(src, move)
	if err != nil {
		return "", err
	}

	status, err := src.StatusAfter(move)
	if err != nil {
		return "", err
	}

	return Short(board, move, legal, status)
}

// LongFor renders the given move of src in long algebraic notation.
func LongFor(src Source, move string) (string, error) {
	board, _, err := load(src, move)
	if err != nil {
		return "", err
	}

	status, err := src.StatusAfter(move)
	if err != nil {
		return "", err
	}

	return Long(board, move, status)
}

// ParseShortFor parses the given short algebraic move in the position of
// src and returns the native move it denotes.
func ParseShortFor(src Source, san string) (string, error) {
	board, legal, err := load(src, "")
	if err != nil {
		return "", err
	}

	return ParseShort(board, san, legal)
}

func load(src Source, move string) (*Board, []string, error) {
	legal, err := src.LegalMoves()
	if err != nil {
		return nil, nil, err
	}

	if move != "" && !slices.Contains(legal, move) {
		return nil, nil, fmt.Errorf("%w: %s", oracle.ErrIllegalMove, move)
	}

	fen, err := src.FEN()
	if err != nil {
		return nil, nil, err
	}

	board, err := ParseFEN(fen)
	if err != nil {
		return nil, nil, err
	}

	return board, legal, nil
}
