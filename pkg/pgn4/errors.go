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
)

var (
	ErrUnsupportedVariant = errors.New("pgn4: unsupported variant")
	ErrUnresolvedMove     = errors.New("pgn4: unresolved move")
	ErrOracleUnavailable  = errors.New("pgn4: rules oracle unavailable")
)

// UnsupportedVariantError is returned when a game's variant is not one of
// the oracle's variants and no fallback is configured.
type UnsupportedVariantError struct {
	Variant   string
	Available []string
}

func (err *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("pgn4: unsupported variant %q, available variants are: %s",
		err.Variant, strings.Join(err.Available, ", "))
}

func (err *UnsupportedVariantError) Is(target error) bool {
	return target == ErrUnsupportedVariant
}

// UnresolvedMoveError describes a movetext token which could not be
// resolved to a legal move. It is recoverable: the token is emitted as is.
type UnresolvedMoveError struct {
	Token string
	Cause error
}

func (err *UnresolvedMoveError) Error() string {
	if err.Cause == nil {
		return fmt.Sprintf("pgn4: unresolved move %s", err.Token)
	}

	return fmt.Sprintf("pgn4: unresolved move %s: %v", err.Token, err.Cause)
}

func (err *UnresolvedMoveError) Is(target error) bool {
	return target == ErrUnresolvedMove
}

func (err *UnresolvedMoveError) Unwrap() error {
	return err.Cause
}
