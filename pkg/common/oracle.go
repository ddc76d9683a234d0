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

package common

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pgn4/pkg/oracle"
	"laptudirm.com/x/pgn4/pkg/oracle/dragontooth"
	"laptudirm.com/x/pgn4/pkg/oracle/mess"
	"laptudirm.com/x/pgn4/pkg/oracle/uci"
	"laptudirm.com/x/pgn4/pkg/pgn4"
)

// Oracle backend names.
const (
	OracleMess        = "mess"
	OracleDragontooth = "dragontooth"
	OracleUCI         = "uci"
)

// Oracles lists the available oracle backends.
var Oracles = []string{OracleMess, OracleDragontooth, OracleUCI}

// OpenOracle starts the oracle backend named in the configuration. The
// returned closer releases the backend and is never nil.
func OpenOracle(config Config) (oracle.Oracle, io.Closer, error) {
	switch config.Oracle {
	case "", OracleMess:
		return mess.New(), nopCloser{}, nil
	case OracleDragontooth:
		return dragontooth.New(), nopCloser{}, nil
	case OracleUCI:
		logrus.Debugf("starting engine %s", config.Engine.Cmd)

		engine, err := uci.New(config.Engine)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", pgn4.ErrOracleUnavailable, err)
		}

		return engine, engine, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown oracle %q", pgn4.ErrOracleUnavailable, config.Oracle)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
