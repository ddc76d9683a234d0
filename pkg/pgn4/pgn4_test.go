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
	"testing"

	"laptudirm.com/x/pgn4/pkg/oracle/oracletest"
)

const (
	seirawanFEN   = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[HEhe] w KQBCDFGkqbcdfg - 0 1"
	chessFEN      = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	capablancaFEN = "rnabqkbcnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNABQKBCNR w KQkq - 0 1"
)

// newStub scripts the opening 1. e4 e5 2. Nf3/H Nc6 3. Bc4 of a Seirawan
// game, and registers chess and capablanca with a single legal move.
func newStub(t *testing.T) *oracletest.Stub {
	t.Helper()

	stub := oracletest.NewStub()

	stub.Add("seirawan", seirawanFEN, nil,
		oracletest.Move{Native: "e2e4", Short: "e4", Long: "e2-e4"},
		oracletest.Move{Native: "g1f3", Short: "Nf3", Long: "Ng1-f3"},
		oracletest.Move{Native: "g1f3h", Short: "Nf3/H", Long: "Ng1-f3/H"},
	)
	stub.Add("seirawan", seirawanFEN, []string{"e2e4"},
		oracletest.Move{Native: "e7e5", Short: "e5", Long: "e7-e5"},
	)
	stub.Add("seirawan", seirawanFEN, []string{"e2e4", "e7e5"},
		oracletest.Move{Native: "g1f3", Short: "Nf3", Long: "Ng1-f3"},
		oracletest.Move{Native: "g1f3h", Short: "Nf3/H", Long: "Ng1-f3/H"},
	)
	stub.Add("seirawan", seirawanFEN, []string{"e2e4", "e7e5", "g1f3h"},
		oracletest.Move{Native: "b8c6", Short: "Nc6", Long: "Nb8-c6"},
	)
	stub.Add("seirawan", seirawanFEN, []string{"e2e4", "e7e5", "g1f3h", "b8c6"},
		oracletest.Move{Native: "f1c4", Short: "Bc4", Long: "Bf1-c4"},
	)

	stub.Add("chess", chessFEN, nil,
		oracletest.Move{Native: "e2e4", Short: "e4", Long: "e2-e4"},
	)
	stub.Add("capablanca", capablancaFEN, nil,
		oracletest.Move{Native: "f2f4", Short: "f4", Long: "f2-f4"},
	)

	return stub
}
