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

package pgn4

import (
	"regexp"
)

// gatingRegexp matches "<move>&@<color><Piece>-<square>" annotations.
var gatingRegexp = regexp.MustCompile(`([^ ]*)&@([a-z])([A-Z])-([a-n][0-9]{1,2})`)

// castlingAliases maps the spellings of castling moves found in gating
// annotations to their canonical form.
var castlingAliases = map[string]string{
	"O-O":   "O-O",
	"O-O-O": "O-O-O",

	"h1-e1": "O-O",
	"h8-e8": "O-O",

	"a1-e1": "O-O-O",
	"a8-e8": "O-O-O",
}

// GatingAnnotation is a move which introduces a reserve piece onto the
// board at the origin square of the moved piece.
type GatingAnnotation struct {
	BaseMove  string
	ColorTag  byte
	PieceType byte
	Origin    Square
}

// ParseGating parses a gating annotated move token.
func ParseGating(token string) (GatingAnnotation, bool) {
	match := gatingRegexp.FindStringSubmatch(token)
	if match == nil {
		return GatingAnnotation{}, false
	}

	origin, err := ParseSquare(match[4])
	if err != nil {
		return GatingAnnotation{}, false
	}

	return GatingAnnotation{
		BaseMove:  match[1],
		ColorTag:  match[2][0],
		PieceType: match[3][0],
		Origin:    origin,
	}, true
}

// GatingEncoder rewrites gating annotations into the "<move>/<Piece>"
// notation understood by the rules oracle.
type GatingEncoder struct {
	// CastlingSquare appends the gating square to castling moves, since
	// the piece may enter on either the king's or the rook's square.
	CastlingSquare bool
}

// Encode renders the given annotation.
func (encoder GatingEncoder) Encode(gating GatingAnnotation) string {
	piece := string(gating.PieceType)

	castling, isCastling := castlingAliases[gating.BaseMove]
	switch {
	case !isCastling:
		return gating.BaseMove + "/" + piece
	case encoder.CastlingSquare:
		return castling + "/" + piece + gating.Origin.String()
	default:
		return castling + "/" + piece
	}
}

// EncodeText rewrites every gating annotation in the given line.
func (encoder GatingEncoder) EncodeText(line string) string {
	return gatingRegexp.ReplaceAllStringFunc(line, func(token string) string {
		gating, ok := ParseGating(token)
		if !ok {
			return token
		}

		return encoder.Encode(gating)
	})
}
