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
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"laptudirm.com/x/pgn4/internal/util"
	"laptudirm.com/x/pgn4/pkg/oracle"
	"laptudirm.com/x/pgn4/pkg/oracle/notation"
)

// Tag is a single header line. Lines which are not well formed tag pairs
// are kept verbatim in Raw.
type Tag struct {
	Key   string
	Value string

	Raw string
}

var tagRegexp = regexp.MustCompile(`^\s*\[(\w+)\s+"(.*)"\]\s*$`)

// ParseTag parses a "[Key "Value"]" header line.
func ParseTag(line string) Tag {
	match := tagRegexp.FindStringSubmatch(line)
	if match == nil {
		return Tag{Raw: line}
	}

	return Tag{Key: match[1], Value: match[2]}
}

func (tag Tag) String() string {
	if tag.Key == "" {
		return tag.Raw
	}

	return fmt.Sprintf(`[%s "%s"]`, tag.Key, tag.Value)
}

var (
	variantPathRegexp = regexp.MustCompile(`variants/([^/\]"]*)`)
	dimRegexp         = regexp.MustCompile(`'dim':'(\d+)x(\d+)'`)
)

// ExtractVariant extracts the variant name from a Site header value
// pointing at a variant page, like ".../variants/seirawan-chess".
func ExtractVariant(site string) (string, bool) {
	match := variantPathRegexp.FindStringSubmatch(site)
	if match == nil {
		return "", false
	}

	name := strings.Replace(match[1], "-chess", "", 1)
	name = strings.ReplaceAll(name, "-", "")
	return name, name != ""
}

// DimensionsFromStartFen4 reads the "'dim':'FxR'" metadata of a StartFen4
// header value.
func DimensionsFromStartFen4(value string) (BoardDimensions, bool) {
	match := dimRegexp.FindStringSubmatch(value)
	if match == nil {
		return BoardDimensions{}, false
	}

	files, _ := strconv.Atoi(match[1])
	ranks, _ := strconv.Atoi(match[2])
	if files == 0 || ranks == 0 {
		return BoardDimensions{}, false
	}

	return BoardDimensions{Files: files, Ranks: ranks}, true
}

// DimensionsFromFEN derives the board dimensions from a FEN string.
func DimensionsFromFEN(fen string) (BoardDimensions, error) {
	board, err := notation.ParseFEN(fen)
	if err != nil {
		return BoardDimensions{}, err
	}

	if board.Files == 0 || board.Ranks == 0 {
		return BoardDimensions{}, fmt.Errorf("pgn4: empty board in fen %q", fen)
	}

	return BoardDimensions{Files: board.Files, Ranks: board.Ranks}, nil
}

// UnsupportedPolicy decides what happens to games of unsupported variants.
type UnsupportedPolicy int

const (
	// UnsupportedFail aborts the conversion with an UnsupportedVariantError.
	UnsupportedFail UnsupportedPolicy = iota

	// UnsupportedFallback converts the game as the default variant.
	UnsupportedFallback
)

// Setup is the per-game state discovered from a header block.
type Setup struct {
	Variant    string
	StartFEN   string
	Dimensions BoardDimensions
}

// HeaderRewriter detects and validates the variant of a game, replaces
// its Site header with a canonical Variant header, and looks up the
// game's starting position and board size.
type HeaderRewriter struct {
	Oracle oracle.Oracle

	Variant        string
	Dimensions     *BoardDimensions
	Unsupported    UnsupportedPolicy
	DefaultVariant string
	KeepSite       bool

	Log logrus.FieldLogger
}

var upperCaser = cases.Upper(language.Und)

// CanonicalName returns the Variant header value of a variant: its name
// with only the first character upper-cased, so "3check" stays as it is.
func CanonicalName(variant string) string {
	_, size := utf8.DecodeRuneInString(variant)
	return upperCaser.String(variant[:size]) + variant[size:]
}

func (rewriter *HeaderRewriter) logger() logrus.FieldLogger {
	if rewriter.Log == nil {
		return logrus.StandardLogger()
	}

	return rewriter.Log
}

// Rewrite rewrites the header block of the given game in place.
func (rewriter *HeaderRewriter) Rewrite(game *GameRecord) (Setup, error) {
	variant, err := rewriter.detect(game.Tags)
	if err != nil {
		return Setup{}, err
	}

	var (
		tags    []Tag
		written bool
		hint    *BoardDimensions
	)

	canonical := Tag{Key: "Variant", Value: CanonicalName(variant)}
	for _, tag := range game.Tags {
		switch tag.Key {
		case "Variant":
			// replaced by the canonical header
			continue

		case "Site":
			if !written {
				tags = append(tags, canonical)
				written = true
				if !rewriter.KeepSite {
					continue
				}
			}

		case "StartFen4":
			if dims, ok := DimensionsFromStartFen4(tag.Value); ok {
				hint = &dims
			}
		}

		tags = append(tags, tag)
	}

	if !written {
		tags = append(tags, canonical)
	}

	game.Tags = tags

	fen, err := rewriter.Oracle.StartingFEN(variant)
	if err != nil {
		return Setup{}, err
	}

	return Setup{
		Variant:    variant,
		StartFEN:   fen,
		Dimensions: rewriter.dimensions(fen, hint),
	}, nil
}

// detect returns the validated variant of a game with the given tags.
func (rewriter *HeaderRewriter) detect(tags []Tag) (string, error) {
	if rewriter.Variant != "" {
		return rewriter.validate(rewriter.Variant)
	}

	for _, tag := range tags {
		if tag.Key != "Site" {
			continue
		}

		if variant, ok := ExtractVariant(tag.Value); ok {
			return rewriter.validate(variant)
		}

		break
	}

	rewriter.logger().WithField("default", rewriter.DefaultVariant).
		Debug("no variant in headers, assuming the default variant")
	return rewriter.validate(rewriter.DefaultVariant)
}

func (rewriter *HeaderRewriter) validate(variant string) (string, error) {
	if oracle.Supports(rewriter.Oracle, variant) {
		return variant, nil
	}

	if rewriter.Unsupported == UnsupportedFallback && oracle.Supports(rewriter.Oracle, rewriter.DefaultVariant) {
		rewriter.logger().WithFields(logrus.Fields{
			"variant":  variant,
			"fallback": rewriter.DefaultVariant,
		}).Warn("unsupported variant, converting as the default variant")
		return rewriter.DefaultVariant, nil
	}

	available := rewriter.Oracle.Variants()
	util.SortAlphanum(available)

	return "", &UnsupportedVariantError{Variant: variant, Available: available}
}

// dimensions picks the board size from the configured override, the
// StartFen4 metadata, or the starting FEN, in that order. A zero field of
// the override is taken from the detected size.
func (rewriter *HeaderRewriter) dimensions(fen string, hint *BoardDimensions) BoardDimensions {
	override := rewriter.Dimensions
	if override != nil && override.Files > 0 && override.Ranks > 0 {
		return *override
	}

	dims := rewriter.detectDimensions(fen, hint)
	if override != nil {
		if override.Files > 0 {
			dims.Files = override.Files
		}

		if override.Ranks > 0 {
			dims.Ranks = override.Ranks
		}
	}

	return dims
}

func (rewriter *HeaderRewriter) detectDimensions(fen string, hint *BoardDimensions) BoardDimensions {
	if hint != nil {
		return *hint
	}

	dims, err := DimensionsFromFEN(fen)
	if err != nil {
		rewriter.logger().WithError(err).Debug("unable to derive board size, assuming 8x8")
		return DefaultDimensions
	}

	return dims
}
