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
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"laptudirm.com/x/pgn4/pkg/oracle"
)

// placeholders are movetext tokens which never denote a move.
var placeholders = map[string]bool{
	"T":  true,
	"R":  true,
	"S":  true,
	"..": true,
}

// Skippable reports whether the given movetext token is a move number, a
// placeholder or a game result rather than a move.
func Skippable(token string) bool {
	if token == "" || placeholders[token] {
		return true
	}

	// castling written with zeros is a move, not a move number
	if token[0] >= '0' && token[0] <= '9' && !strings.HasPrefix(token, "0-0") {
		return true
	}

	_, isResult := ParseResult(token)
	return isResult
}

// MoveResolver resolves the moves of a single game to the short notation
// of the rules oracle. Every move is resolved against a fresh position
// set up by replaying the moves resolved so far.
type MoveResolver struct {
	oracle oracle.Oracle

	variant  string
	startFEN string

	history    []string
	unresolved []string

	log logrus.FieldLogger
}

// NewMoveResolver returns a resolver for a game of the given variant
// starting from startFEN.
func NewMoveResolver(o oracle.Oracle, variant, startFEN string, log logrus.FieldLogger) *MoveResolver {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &MoveResolver{
		oracle:   o,
		variant:  variant,
		startFEN: startFEN,
		log:      log.WithField("variant", variant),
	}
}

// History returns the native moves resolved so far.
func (resolver *MoveResolver) History() []string {
	return append([]string(nil), resolver.history...)
}

// Unresolved returns the tokens which couldn't be resolved so far.
func (resolver *MoveResolver) Unresolved() []string {
	return append([]string(nil), resolver.unresolved...)
}

// ResolveLine resolves every move token in the given movetext line. Tokens
// which can't be resolved are kept as they are.
func (resolver *MoveResolver) ResolveLine(line string) string {
	tokens := strings.Fields(line)
	for i, token := range tokens {
		// unresolved tokens are logged and kept
		tokens[i], _ = resolver.ResolveToken(token)
	}

	return strings.Join(tokens, " ")
}

// ResolveToken resolves a single movetext token. On failure the original
// token is returned together with an *UnresolvedMoveError and the move
// history is left unchanged.
func (resolver *MoveResolver) ResolveToken(token string) (string, error) {
	if Skippable(token) {
		return token, nil
	}

	move := CleanToken(token)
	if move == "" {
		return token, nil
	}

	native, short, err := resolver.resolve(move)
	if err != nil {
		resolver.log.WithFields(logrus.Fields{
			"token": token,
			"ply":   len(resolver.history) + 1,
		}).WithError(err).Warn("unable to resolve move, keeping it as is")

		resolver.unresolved = append(resolver.unresolved, token)
		return token, &UnresolvedMoveError{Token: token, Cause: err}
	}

	resolver.history = append(resolver.history, native)
	return short, nil
}

func (resolver *MoveResolver) resolve(move string) (native, short string, err error) {
	position, err := resolver.oracle.NewPosition(resolver.variant, resolver.startFEN)
	if err != nil {
		return "", "", err
	}
	defer position.Close()

	for _, played := range resolver.history {
		if err := position.Push(played); err != nil {
			return "", "", fmt.Errorf("replaying %s: %w", played, err)
		}
	}

	legal, err := position.LegalMoves()
	if err != nil {
		return "", "", err
	}

	native, err = interpret(position, legal, move)
	if err != nil {
		return "", "", err
	}

	short, err = position.ShortNotation(native)
	if err != nil {
		return "", "", err
	}

	return native, short, nil
}

var errNoInterpretation = errors.New("no legal move matches the token")

// interpret finds the legal move denoted by the given token, trying the
// native encoding, then short notation, then long notation.
func interpret(position oracle.Position, legal []string, move string) (string, error) {
	if slices.Contains(legal, move) {
		return move, nil
	}

	if native, err := position.ParseShort(move); err == nil && slices.Contains(legal, native) {
		return native, nil
	}

	for _, candidate := range legal {
		long, err := position.LongNotation(candidate)
		if err == nil && long == move {
			return candidate, nil
		}
	}

	return "", errNoInterpretation
}
