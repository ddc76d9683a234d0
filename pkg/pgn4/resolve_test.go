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
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"laptudirm.com/x/pgn4/pkg/oracle"
	"laptudirm.com/x/pgn4/pkg/oracle/mess"
)

func TestSkippable(t *testing.T) {
	for _, token := range []string{"1.", "12...", "T", "R", "S", "..", "*", "1-0", "0-1", "1/2-1/2"} {
		if !Skippable(token) {
			t.Errorf("expected %q to be skipped", token)
		}
	}

	for _, token := range []string{"e4", "Nf3/H", "O-O", "Qd1-h5", "e2e4", "0-0", "0-0-0+"} {
		if Skippable(token) {
			t.Errorf("expected %q to be resolved", token)
		}
	}
}

func TestResolveInterpretations(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"e2e4", "e4"},    // native
		{"e4", "e4"},      // short
		{"e2-e4", "e4"},   // long
		{"Ng1-f3", "Nf3"}, // long
		{"g1f3h", "Nf3/H"},
		{"Ng1-f3/H", "Nf3/H"},
	}

	for _, test := range tests {
		stub := newStub(t)
		resolver := NewMoveResolver(stub, "seirawan", seirawanFEN, nil)

		got, err := resolver.ResolveToken(test.token)
		if err != nil {
			t.Errorf("ResolveToken(%q): unexpected error: %v", test.token, err)
			continue
		}

		if got != test.want {
			t.Errorf("ResolveToken(%q): got %s want %s", test.token, got, test.want)
		}

		if len(resolver.History()) != 1 {
			t.Errorf("ResolveToken(%q): expected one move in the history, got %v", test.token, resolver.History())
		}

		if stub.Open() != 0 {
			t.Errorf("ResolveToken(%q): %d positions left open", test.token, stub.Open())
		}
	}
}

func TestResolveUnresolved(t *testing.T) {
	logger, hook := test.NewNullLogger()

	stub := newStub(t)
	resolver := NewMoveResolver(stub, "seirawan", seirawanFEN, logger.WithField("game", 3))

	got, err := resolver.ResolveToken("Qd1-h5+")
	if got != "Qd1-h5+" {
		t.Errorf("expected the token to be kept, got %s", got)
	}

	if !errors.Is(err, ErrUnresolvedMove) {
		t.Errorf("unexpected error: %v", err)
	}

	var unresolved *UnresolvedMoveError
	if !errors.As(err, &unresolved) || unresolved.Token != "Qd1-h5+" {
		t.Errorf("expected an *UnresolvedMoveError for Qd1-h5+, got %v", err)
	}

	if len(resolver.History()) != 0 {
		t.Errorf("unexpected history after a failure: %v", resolver.History())
	}

	entry := hook.LastEntry()
	switch {
	case entry == nil:
		t.Fatalf("expected a warning to be logged")
	case entry.Level != logrus.WarnLevel:
		t.Errorf("unexpected log level: got %s want warning", entry.Level)
	case entry.Data["game"] != 3 || entry.Data["token"] != "Qd1-h5+" || entry.Data["variant"] != "seirawan":
		t.Errorf("unexpected log fields: %v", entry.Data)
	}

	if stub.Open() != 0 {
		t.Errorf("%d positions left open after a failure", stub.Open())
	}
}

func TestResolveLine(t *testing.T) {
	stub := newStub(t)
	resolver := NewMoveResolver(stub, "seirawan", seirawanFEN, logrus.New())

	got := resolver.ResolveLine("1. e2-e4 e7-e5 2. Ng1-f3/H Nb8-c6 3. Qd1-h5 Bf1-c4 T 1-0")
	want := "1. e4 e5 2. Nf3/H Nc6 3. Qd1-h5 Bc4 T 1-0"
	if got != want {
		t.Errorf("unexpected line:\ngot:  %s\nwant: %s", got, want)
	}

	wantHistory := "e2e4 e7e5 g1f3h b8c6 f1c4"
	if history := strings.Join(resolver.History(), " "); history != wantHistory {
		t.Errorf("unexpected history: got %s want %s", history, wantHistory)
	}

	if unresolved := resolver.Unresolved(); len(unresolved) != 1 || unresolved[0] != "Qd1-h5" {
		t.Errorf("unexpected unresolved tokens: %v", unresolved)
	}

	// every resolution replays the game on a fresh position
	if stub.Created() != 6 || stub.Open() != 0 {
		t.Errorf("unexpected position usage: %d created, %d open", stub.Created(), stub.Open())
	}
}

func TestResolveZeroCastling(t *testing.T) {
	resolver := NewMoveResolver(mess.New(), mess.Variant, mess.StartFEN, logrus.New())

	got := resolver.ResolveLine("1. e4 e5 2. Nf3 Nc6 3. Bc4 Nf6 4. 0-0 Bc5")
	want := "1. e4 e5 2. Nf3 Nc6 3. Bc4 Nf6 4. O-O Bc5"
	if got != want {
		t.Errorf("unexpected line:\ngot:  %s\nwant: %s", got, want)
	}

	if unresolved := resolver.Unresolved(); len(unresolved) != 0 {
		t.Errorf("unexpected unresolved tokens: %v", unresolved)
	}
}

// brokenOracle fails to replay any move.
type brokenOracle struct {
	oracle.Oracle
}

func (o brokenOracle) NewPosition(variant, fen string) (oracle.Position, error) {
	position, err := o.Oracle.NewPosition(variant, fen)
	return brokenPosition{position}, err
}

type brokenPosition struct {
	oracle.Position
}

func (brokenPosition) Push(string) error {
	return oracle.ErrIllegalMove
}

func TestResolveReplayFailure(t *testing.T) {
	stub := newStub(t)
	resolver := NewMoveResolver(stub, "seirawan", seirawanFEN, logrus.New())

	if _, err := resolver.ResolveToken("e4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolver.oracle = brokenOracle{stub}

	got, err := resolver.ResolveToken("e5")
	if got != "e5" || !errors.Is(err, ErrUnresolvedMove) || !errors.Is(err, oracle.ErrIllegalMove) {
		t.Errorf("unexpected result after a replay failure: %s, %v", got, err)
	}

	if len(resolver.History()) != 1 {
		t.Errorf("unexpected history: %v", resolver.History())
	}

	if stub.Open() != 0 {
		t.Errorf("%d positions left open after a replay failure", stub.Open())
	}
}
