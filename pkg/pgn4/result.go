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

// Result represents the result of a game as written in movetext.
type Result int

const (
	WhiteWins Result = +1
	Draw      Result = 0
	BlackWins Result = -1

	Ongoing Result = 2
)

// String returns the movetext token of the given Result.
func (result Result) String() string {
	switch result {
	case WhiteWins:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case BlackWins:
		return "0-1"
	default:
		return "*"
	}
}

// ParseResult parses a game termination token.
func ParseResult(token string) (Result, bool) {
	for _, result := range []Result{WhiteWins, Draw, BlackWins, Ongoing} {
		if token == result.String() {
			return result, true
		}
	}

	return Ongoing, false
}
