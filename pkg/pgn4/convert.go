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

// Package pgn4 converts game records of the four-player chess format,
// played on an oversized 14x14 board, into standard PGN for the native
// board of the game's variant. Legal moves and notation are provided by
// an injected rules oracle.
package pgn4

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pgn4/pkg/oracle"
)

// DefaultVariant is the variant assumed when none can be detected.
const DefaultVariant = "chess"

// Options configures a Converter. The zero value is a usable default.
type Options struct {
	// Variant overrides the variant detected from the headers.
	Variant string

	// Dimensions overrides the native board size of every game. A zero
	// Files or Ranks is detected per game.
	Dimensions *BoardDimensions

	// Offset is the coordinate offset policy, DefaultOffsetPolicy if nil.
	Offset OffsetPolicy

	// OmitCastlingSquare drops the gating square from gated castling
	// moves ("O-O/E" instead of "O-O/Ee1").
	OmitCastlingSquare bool

	Unsupported    UnsupportedPolicy
	DefaultVariant string

	// KeepSite retains the Site header after the Variant header.
	KeepSite bool

	Logger logrus.FieldLogger
}

// GameReport summarizes the conversion of a single game.
type GameReport struct {
	Index int

	Variant    string
	StartFEN   string
	Dimensions BoardDimensions

	// Result is read from the Result header, Ongoing if there is none.
	Result Result

	Resolved   int
	Unresolved []string
}

// Report summarizes a conversion run.
type Report struct {
	Games []GameReport
}

// Unresolved returns the total number of unresolved tokens.
func (report *Report) Unresolved() int {
	total := 0
	for _, game := range report.Games {
		total += len(game.Unresolved)
	}

	return total
}

// Converter converts pgn4 game records to PGN.
type Converter struct {
	oracle oracle.Oracle

	headers *HeaderRewriter
	gating  GatingEncoder
	offset  OffsetPolicy

	log logrus.FieldLogger
}

// New returns a Converter using the given oracle. The oracle has to render
// both short and long notation, and a configured variant override has to
// be supported by it.
func New(o oracle.Oracle, options Options) (*Converter, error) {
	if o == nil {
		return nil, fmt.Errorf("%w: no oracle configured", ErrOracleUnavailable)
	}

	required := oracle.Capabilities{ShortNotation: true, LongNotation: true}
	if err := oracle.Require(o, required); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	if options.Logger == nil {
		options.Logger = logrus.StandardLogger()
	}

	if options.Offset == nil {
		options.Offset = DefaultOffsetPolicy
	}

	if options.DefaultVariant == "" {
		options.DefaultVariant = DefaultVariant
	}

	converter := &Converter{
		oracle: o,
		headers: &HeaderRewriter{
			Oracle:         o,
			Variant:        options.Variant,
			Dimensions:     options.Dimensions,
			Unsupported:    options.Unsupported,
			DefaultVariant: options.DefaultVariant,
			KeepSite:       options.KeepSite,
			Log:            options.Logger,
		},
		gating: GatingEncoder{CastlingSquare: !options.OmitCastlingSquare},
		offset: options.Offset,
		log:    options.Logger,
	}

	if options.Variant != "" {
		if _, err := converter.headers.validate(options.Variant); err != nil {
			return nil, err
		}
	}

	return converter, nil
}

// Convert converts every game read from r and writes the result to w.
func (converter *Converter) Convert(r io.Reader, w io.Writer) (*Report, error) {
	text, err := Decode(r)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for i, game := range SplitGames(text) {
		summary, err := converter.ConvertGame(i+1, game)
		if err != nil {
			return report, fmt.Errorf("game %d: %w", i+1, err)
		}

		report.Games = append(report.Games, summary)
		if _, err := game.WriteTo(w); err != nil {
			return report, err
		}
	}

	return report, nil
}

// ConvertString is a convenience wrapper around Convert for in-memory
// input.
func (converter *Converter) ConvertString(text string) (string, *Report, error) {
	var out strings.Builder
	report, err := converter.Convert(strings.NewReader(text), &out)
	return out.String(), report, err
}

// ConvertGame converts the given game in place. The index is only used
// for reporting.
func (converter *Converter) ConvertGame(index int, game *GameRecord) (GameReport, error) {
	headerless := len(game.Tags) == 0

	setup, err := converter.headers.Rewrite(game)
	if err != nil {
		return GameReport{}, err
	}

	log := converter.log.WithField("game", index)
	log.WithFields(logrus.Fields{
		"variant":    setup.Variant,
		"dimensions": setup.Dimensions,
	}).Debug("converting game")

	mapper := NewMapper(setup.Dimensions, converter.offset)
	mapper.Log = log

	resolver := NewMoveResolver(converter.oracle, setup.Variant, setup.StartFEN, log)

	for i, line := range game.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		line = Preprocess(line)
		line = mapper.MapText(line)
		line = converter.gating.EncodeText(line)
		game.Lines[i] = resolver.ResolveLine(line)
	}

	if headerless {
		// separate the added Variant header from the movetext
		game.Lines = append([]string{""}, game.Lines...)
	}

	return GameReport{
		Index:      index,
		Variant:    setup.Variant,
		StartFEN:   setup.StartFEN,
		Dimensions: setup.Dimensions,
		Result:     gameResult(game.Tags),
		Resolved:   len(resolver.History()),
		Unresolved: resolver.Unresolved(),
	}, nil
}

func gameResult(tags []Tag) Result {
	for _, tag := range tags {
		if tag.Key == "Result" {
			result, _ := ParseResult(tag.Value)
			return result
		}
	}

	return Ongoing
}
