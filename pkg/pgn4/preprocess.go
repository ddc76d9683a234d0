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
	"strings"
)

const separator = " .. "

// captureRegexp matches a capture which names the captured piece.
var captureRegexp = regexp.MustCompile(`x[A-Z]([a-n][0-9]{1,2})`)

// Preprocess removes the empty move separators of the given movetext line
// and drops the captured piece letter from captures ("xQd8" → "xd8").
func Preprocess(line string) string {
	for strings.Contains(line, separator) {
		line = strings.ReplaceAll(line, separator, " ")
	}

	return captureRegexp.ReplaceAllString(line, "x$1")
}

// CleanToken strips the termination markers of a single move token: a
// trailing 'S' is dropped and "+#" collapses into "#".
func CleanToken(token string) string {
	token = strings.TrimSuffix(token, "S")
	return strings.Replace(token, "+#", "#", 1)
}
