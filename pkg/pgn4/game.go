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
	"bufio"
	"io"
	"strings"
)

// GameRecord is a single game of the input: its header block and the
// lines following it, blank lines included.
type GameRecord struct {
	Tags  []Tag
	Lines []string
}

// IsHeaderLine reports whether the given line belongs to a header block.
func IsHeaderLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "[")
}

// SplitGames splits the given text into games. A header line which
// follows movetext starts a new game, so the history of one game never
// leaks into the next.
func SplitGames(text string) []*GameRecord {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	var (
		games []*GameRecord
		game  *GameRecord
	)

	for _, line := range strings.Split(text, "\n") {
		header := IsHeaderLine(line)
		if game == nil || (header && len(game.Lines) > 0) {
			game = &GameRecord{}
			games = append(games, game)
		}

		if header {
			game.Tags = append(game.Tags, ParseTag(line))
		} else {
			game.Lines = append(game.Lines, line)
		}
	}

	return games
}

// WriteTo writes the game in PGN form to w.
func (game *GameRecord) WriteTo(w io.Writer) (int64, error) {
	buffered := bufio.NewWriter(w)

	var written int64
	write := func(line string) error {
		n, err := buffered.WriteString(line + "\n")
		written += int64(n)
		return err
	}

	for _, tag := range game.Tags {
		if err := write(tag.String()); err != nil {
			return written, err
		}
	}

	for _, line := range game.Lines {
		if err := write(line); err != nil {
			return written, err
		}
	}

	return written, buffered.Flush()
}
