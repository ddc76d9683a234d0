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
	"fmt"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"
)

// OversizedExtent is the number of files and ranks of the oversized
// four-player board, with files named a through n.
const OversizedExtent = 14

// BoardDimensions is the size of a variant's native board.
type BoardDimensions struct {
	Files int
	Ranks int
}

// DefaultDimensions is used when a board's size can't be determined.
var DefaultDimensions = BoardDimensions{Files: 8, Ranks: 8}

func (dims BoardDimensions) String() string {
	return fmt.Sprintf("%dx%d", dims.Files, dims.Ranks)
}

// Contains reports whether the given square lies on the board.
func (dims BoardDimensions) Contains(sq Square) bool {
	file := int(sq.File - 'a')
	return file >= 0 && file < dims.Files && sq.Rank >= 1 && sq.Rank <= dims.Ranks
}

// Square is an algebraic square, like "k11".
type Square struct {
	File byte
	Rank int
}

var squareRegexp = regexp.MustCompile(`^([a-z])([0-9]{1,2})$`)

// ParseSquare parses an algebraic square name.
func ParseSquare(s string) (Square, error) {
	match := squareRegexp.FindStringSubmatch(s)
	if match == nil {
		return Square{}, fmt.Errorf("pgn4: invalid square %q", s)
	}

	rank, _ := strconv.Atoi(match[2])
	return Square{File: match[1][0], Rank: rank}, nil
}

func (sq Square) String() string {
	return string(sq.File) + strconv.Itoa(sq.Rank)
}

// OffsetPolicy decides how far the native board is shifted inside the
// oversized board.
type OffsetPolicy interface {
	// Offsets returns the file and rank offsets for the given native
	// board dimensions.
	Offsets(native BoardDimensions) (files, ranks int)
}

// FixedExtent anchors the native board so that it ends at Extent, giving
// an offset of Extent minus the native size. This matches the layout of
// the two-player games recorded on the four-player board.
type FixedExtent struct {
	Extent int
}

func (policy FixedExtent) Offsets(native BoardDimensions) (int, int) {
	return policy.Extent - native.Files, policy.Extent - native.Ranks
}

// SymmetricPadding centres the native board inside an oversized board of
// the given Extent.
type SymmetricPadding struct {
	Extent int
}

func (policy SymmetricPadding) Offsets(native BoardDimensions) (int, int) {
	return (policy.Extent - native.Files) / 2, (policy.Extent - native.Ranks) / 2
}

// DefaultOffsetPolicy is the policy used when none is configured.
var DefaultOffsetPolicy OffsetPolicy = FixedExtent{Extent: 11}

// Mapper translates squares between the oversized and native boards.
type Mapper struct {
	Dimensions BoardDimensions
	Offset     OffsetPolicy

	Log logrus.FieldLogger
}

// NewMapper returns a Mapper for the given native board. A nil policy
// selects DefaultOffsetPolicy.
func NewMapper(dims BoardDimensions, policy OffsetPolicy) *Mapper {
	if policy == nil {
		policy = DefaultOffsetPolicy
	}

	return &Mapper{Dimensions: dims, Offset: policy, Log: logrus.StandardLogger()}
}

// MapSquare translates an oversized board square to the native board. The
// second result is false if the square falls outside the native board.
func (mapper *Mapper) MapSquare(sq Square) (Square, bool) {
	files, ranks := mapper.offsets()
	native := Square{File: byte(int(sq.File) - files), Rank: sq.Rank - ranks}
	return native, mapper.Dimensions.Contains(native)
}

// UnmapSquare translates a native board square back to the oversized
// board. The second result is false if the square can't be represented.
func (mapper *Mapper) UnmapSquare(sq Square) (Square, bool) {
	if !mapper.Dimensions.Contains(sq) {
		return Square{}, false
	}

	files, ranks := mapper.offsets()
	oversized := Square{File: byte(int(sq.File) + files), Rank: sq.Rank + ranks}
	return oversized, BoardDimensions{OversizedExtent, OversizedExtent}.Contains(oversized)
}

func (mapper *Mapper) offsets() (int, int) {
	if mapper.Offset == nil {
		return DefaultOffsetPolicy.Offsets(mapper.Dimensions)
	}

	return mapper.Offset.Offsets(mapper.Dimensions)
}

func (mapper *Mapper) logger() logrus.FieldLogger {
	if mapper.Log == nil {
		return logrus.StandardLogger()
	}

	return mapper.Log
}

var squareTextRegexp = regexp.MustCompile(`[a-n][0-9]{1,2}`)

// MapText translates every square inside the given movetext line. Squares
// which fall outside the native board are left as they are.
func (mapper *Mapper) MapText(line string) string {
	return squareTextRegexp.ReplaceAllStringFunc(line, func(text string) string {
		sq, err := ParseSquare(text)
		if err != nil {
			return text
		}

		native, ok := mapper.MapSquare(sq)
		if !ok {
			mapper.logger().WithFields(logrus.Fields{
				"square":     text,
				"dimensions": mapper.Dimensions,
			}).Debug("square outside native board, leaving it unchanged")
			return text
		}

		return native.String()
	})
}
