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
	"strconv"
	"strings"

	"laptudirm.com/x/pgn4/pkg/oracle"
)

// Status is the check status of the position reached after a move.
type Status int

const (
	Quiet Status = iota
	Check
	Mate
)

// Suffix returns the notation suffix for the given status.
func (status Status) Suffix() string {
	switch status {
	case Check:
		return "+"
	case Mate:
		return "#"
	default:
		return ""
	}
}

// parts is a rendered move split into its notation components.
type parts struct {
	castle string // castling side, empty for normal moves

	piece   string // piece letter, empty for pawns
	capture bool
	target  string

	promotion string // "=Q"
	gating    string // "/H" or "/Hh1"

	// disambiguation candidates
	ambiguity string
	file      string
	rank      string
	origin    string
}

func (p parts) join(disambiguation string, status Status) string {
	var b strings.Builder

	if p.castle != "" {
		b.WriteString(p.castle)
	} else {
		b.WriteString(p.piece)
		b.WriteString(disambiguation)
		if p.capture {
			b.WriteByte('x')
		}
		b.WriteString(p.target)
		b.WriteString(p.promotion)
	}

	b.WriteString(p.gating)
	b.WriteString(status.Suffix())
	return b.String()
}

// split breaks the given native move up into its notation components.
func split(board *Board, move string, legal []string) (parts, error) {
	m, err := ParseMove(move)
	if err != nil {
		return parts{}, err
	}

	piece, found := board.Piece(m.From)
	if !found {
		return parts{}, fmt.Errorf("notation: no piece on %s for move %s", m.From, move)
	}

	p := parts{
		target: m.To.String(),
		file:   string(rune('a' + m.From.File)),
		rank:   strconv.Itoa(m.From.Rank),
		origin: m.From.String(),
	}

	if side, ok := board.castling(m, piece); ok {
		p.castle = side
		if m.Extra != 0 {
			// the gated piece may be dropped on either the king's or the
			// rook's square, so the square is made explicit
			p.gating = "/" + strings.ToUpper(string(m.Extra)) + m.From.String()
		}
		return p, nil
	}

	pawn := kind(piece) == "P"
	if !pawn {
		p.piece = kind(piece)
	}

	if target, found := board.Piece(m.To); found && isWhite(target) != isWhite(piece) {
		p.capture = true
	}

	if pawn && m.From.File != m.To.File {
		// en passant captures land on an empty square
		p.capture = true
	}

	if m.Extra != 0 {
		extra := strings.ToUpper(string(m.Extra))
		if pawn {
			p.promotion = "=" + extra
		} else {
			p.gating = "/" + extra
		}
	}

	switch {
	case pawn:
		if p.capture {
			p.ambiguity = p.file
		}
	default:
		p.ambiguity = disambiguate(board, m, piece, legal)
	}

	return p, nil
}

// disambiguate returns the minimal origin qualifier needed to tell the
// given move apart from other legal moves of identical pieces to the
// same target square.
func disambiguate(board *Board, m Move, piece string, legal []string) string {
	var others []Square
	for _, l := range legal {
		other, err := ParseMove(l)
		if err != nil || other.To != m.To || other.From == m.From {
			continue
		}

		if p, _ := board.Piece(other.From); p == piece {
			others = append(others, other.From)
		}
	}

	if len(others) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range others {
		sameFile = sameFile || sq.File == m.From.File
		sameRank = sameRank || sq.Rank == m.From.Rank
	}

	switch {
	case !sameFile:
		return string(rune('a' + m.From.File))
	case !sameRank:
		return strconv.Itoa(m.From.Rank)
	default:
		return m.From.String()
	}
}

// castling reports whether the given move of piece is a castling move,
// returning the castling side if it is. Both the king-moves-two-squares
// and the king-takes-own-rook encodings are recognized.
func (board *Board) castling(m Move, piece string) (string, bool) {
	side := func(kingside bool) string {
		if kingside {
			return "O-O"
		}
		return "O-O-O"
	}

	target, occupied := board.Piece(m.To)
	friendly := occupied && isWhite(target) == isWhite(piece)

	switch kind(piece) {
	case "K":
		if friendly && kind(target) == "R" {
			return side(m.To.File > m.From.File), true
		}

		distance := m.To.File - m.From.File
		if m.From.Rank == m.To.Rank && (distance >= 2 || distance <= -2) {
			return side(distance > 0), true
		}

	case "R":
		if friendly && kind(target) == "K" {
			return side(m.From.File > m.To.File), true
		}
	}

	return "", false
}

// Short renders the given native move in short algebraic notation. The
// legal moves of the position are needed for disambiguation and status is
// the check status after the move is played.
func Short(board *Board, move string, legal []string, status Status) (string, error) {
	if strings.Contains(move, "@") {
		return move + status.Suffix(), nil
	}

	p, err := split(board, move, legal)
	if err != nil {
		return "", err
	}

	return p.join(p.ambiguity, status), nil
}

// Long renders the given native move in long algebraic notation, which
// always carries the full origin square and a '-' or 'x' separator.
func Long(board *Board, move string, status Status) (string, error) {
	if strings.Contains(move, "@") {
		return move + status.Suffix(), nil
	}

	p, err := split(board, move, nil)
	if err != nil {
		return "", err
	}

	if p.castle != "" {
		return p.join("", status), nil
	}

	var b strings.Builder
	b.WriteString(p.piece)
	b.WriteString(p.origin)
	if p.capture {
		b.WriteByte('x')
	} else {
		b.WriteByte('-')
	}
	b.WriteString(p.target)
	b.WriteString(p.promotion)
	b.WriteString(p.gating)
	b.WriteString(status.Suffix())
	return b.String(), nil
}

// ParseShort returns the legal move denoted by the given short algebraic
// notation. Parsing is lenient: check and annotation marks, capture and
// promotion markers are ignored, zeros are accepted for castling, and
// both under and over-qualified origins are accepted while unambiguous.
func ParseShort(board *Board, san string, legal []string) (string, error) {
	want := normalize(san)
	if want == "" {
		return "", fmt.Errorf("%w: empty move", oracle.ErrIllegalMove)
	}

	rendered := make(map[string]parts, len(legal))
	for _, move := range legal {
		if p, err := split(board, move, legal); err == nil {
			rendered[move] = p
		}
	}

	// exact renderings take precedence over the lenient forms
	match := func(qualifiers func(parts) []string) []string {
		var found []string
		for _, move := range legal {
			if strings.Contains(move, "@") {
				if normalize(move) == want {
					found = append(found, move)
				}
				continue
			}

			p, ok := rendered[move]
			if !ok {
				continue
			}

			for _, qualifier := range qualifiers(p) {
				if normalize(p.join(qualifier, Quiet)) == want {
					found = append(found, move)
					break
				}
			}
		}

		return found
	}

	found := match(func(p parts) []string { return []string{p.ambiguity} })
	if len(found) == 0 {
		found = match(func(p parts) []string {
			return []string{"", p.file, p.rank, p.origin}
		})
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %s", oracle.ErrIllegalMove, san)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("notation: ambiguous move %s: %s", san, strings.Join(found, ", "))
	}
}

func normalize(san string) string {
	san = strings.TrimRight(san, "+#!?")
	if strings.HasPrefix(san, "0-0") {
		san = strings.ReplaceAll(san, "0", "O")
	}

	return strings.NewReplacer("x", "", "=", "", ":", "").Replace(san)
}
