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

// Package notation renders and parses algebraic move notation for the
// oracle backends which only speak the native (UCI) move encoding. The
// board is read from a FEN string, so boards of any size and fairy piece
// letters are supported.
package notation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Square is a square on a board of arbitrary size. File is zero based
// while Rank is one based, matching the algebraic square name.
type Square struct {
	File int
	Rank int
}

func (sq Square) String() string {
	return string(rune('a'+sq.File)) + strconv.Itoa(sq.Rank)
}

// Board is the piece placement part of a FEN together with the fields
// needed for rendering notation.
type Board struct {
	Files, Ranks int

	WhiteToMove bool
	EnPassant   string

	pieces map[Square]string
}

var ErrEmptyFEN = errors.New("notation: empty fen")

// ParseFEN parses the given FEN string. Multi-digit empty square counts,
// pockets ("[HEhe]"), promoted markers ('~') and shogi style promoted
// pieces ("+R") are understood.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, ErrEmptyFEN
	}

	placement := fields[0]
	if i := strings.IndexByte(placement, '['); i >= 0 {
		placement = placement[:i]
	}

	rows := strings.Split(placement, "/")
	board := &Board{
		Ranks:       len(rows),
		WhiteToMove: true,
		pieces:      make(map[Square]string),
	}

	for i, row := range rows {
		rank := len(rows) - i
		file := 0

		for j := 0; j < len(row); j++ {
			switch c := row[j]; {
			case isDigit(c):
				k := j
				for k < len(row) && isDigit(row[k]) {
					k++
				}

				empty, _ := strconv.Atoi(row[j:k])
				file += empty
				j = k - 1

			case c == '~':
				// promoted marker for the previous piece

			case c == '+':
				if j+1 >= len(row) {
					return nil, fmt.Errorf("notation: dangling '+' in fen rank %q", row)
				}

				board.pieces[Square{file, rank}] = row[j : j+2]
				file++
				j++

			default:
				board.pieces[Square{file, rank}] = string(c)
				file++
			}
		}

		if file > board.Files {
			board.Files = file
		}
	}

	if len(fields) > 1 {
		board.WhiteToMove = fields[1] != "b"
	}

	if len(fields) > 3 && fields[3] != "-" {
		board.EnPassant = fields[3]
	}

	return board, nil
}

// Piece returns the piece on the given square, if any. White pieces are
// upper case and black pieces lower case, as in FEN.
func (board *Board) Piece(sq Square) (string, bool) {
	piece, found := board.pieces[sq]
	return piece, found
}

// Move is a move in the native encoding: an origin and a destination
// square followed by an optional promotion or gating piece letter.
type Move struct {
	From, To Square
	Extra    byte
}

var moveRegexp = regexp.MustCompile(`^([a-z])(\d{1,2})([a-z])(\d{1,2})([a-z]?)$`)

// ParseMove parses a move in the native encoding.
func ParseMove(s string) (Move, error) {
	match := moveRegexp.FindStringSubmatch(s)
	if match == nil {
		return Move{}, fmt.Errorf("notation: invalid native move %q", s)
	}

	fromRank, _ := strconv.Atoi(match[2])
	toRank, _ := strconv.Atoi(match[4])

	move := Move{
		From: Square{int(match[1][0] - 'a'), fromRank},
		To:   Square{int(match[3][0] - 'a'), toRank},
	}

	if match[5] != "" {
		move.Extra = match[5][0]
	}

	return move, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// kind returns the colorless upper-case type of the given piece.
func kind(piece string) string {
	return strings.ToUpper(piece)
}

// isWhite reports whether the given piece belongs to the white side.
func isWhite(piece string) bool {
	last := piece[len(piece)-1]
	return last >= 'A' && last <= 'Z'
}
