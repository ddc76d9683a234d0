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

// Package common holds the configuration shared by the pgn4 commands.
package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/pgn4/pkg/oracle/uci"
	"laptudirm.com/x/pgn4/pkg/pgn4"
)

const FilePermissions = 0755

var (
	Directory  = filepath.Join(xdg.ConfigHome, "pgn4")
	ConfigFile = filepath.Join(Directory, "config.yaml")
)

// Offset policy names.
const (
	OffsetFixed     = "fixed"
	OffsetSymmetric = "symmetric"
)

// Config is the on-disk configuration of the pgn4 commands. Command line
// flags override the values read from the file.
type Config struct {
	Oracle string           `yaml:"oracle"`
	Engine uci.EngineConfig `yaml:"engine"`

	Variant        string `yaml:"variant,omitempty"`
	DefaultVariant string `yaml:"default-variant"`
	Fallback       bool   `yaml:"fallback"`

	Offset         string `yaml:"offset"`
	CastlingSquare bool   `yaml:"castling-square"`
	KeepSite       bool   `yaml:"keep-site"`

	// Files and Ranks override the detected board size. An unset one is
	// still detected per game.
	Files int `yaml:"files,omitempty"`
	Ranks int `yaml:"ranks,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Oracle: OracleMess,
		Engine: uci.EngineConfig{
			Name: "fairy-stockfish",
			Cmd:  "fairy-stockfish",
		},
		DefaultVariant: pgn4.DefaultVariant,
		Offset:         OffsetFixed,
		CastlingSquare: true,
	}
}

// LoadConfig reads the configuration file at path over the defaults. A
// missing file is not an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Debugf("no configuration file at %s, using defaults", path)
		return config, nil
	}

	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

// Save writes the configuration to path, creating its directory.
func (config Config) Save(path string) error {
	TryMkdir(filepath.Dir(path))

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// OffsetPolicy returns the named offset policy.
func (config Config) OffsetPolicy() (pgn4.OffsetPolicy, error) {
	switch config.Offset {
	case "", OffsetFixed:
		return pgn4.DefaultOffsetPolicy, nil
	case OffsetSymmetric:
		return pgn4.SymmetricPadding{Extent: pgn4.OversizedExtent}, nil
	default:
		return nil, fmt.Errorf("unknown offset policy %q", config.Offset)
	}
}

// Options converts the configuration into converter options.
func (config Config) Options(logger logrus.FieldLogger) (pgn4.Options, error) {
	offset, err := config.OffsetPolicy()
	if err != nil {
		return pgn4.Options{}, err
	}

	options := pgn4.Options{
		Variant:            config.Variant,
		Offset:             offset,
		OmitCastlingSquare: !config.CastlingSquare,
		DefaultVariant:     config.DefaultVariant,
		KeepSite:           config.KeepSite,
		Logger:             logger,
	}

	if config.Fallback {
		options.Unsupported = pgn4.UnsupportedFallback
	}

	if config.Files < 0 || config.Ranks < 0 {
		return pgn4.Options{}, fmt.Errorf("invalid board size %dx%d", config.Files, config.Ranks)
	}

	if config.Files > 0 || config.Ranks > 0 {
		options.Dimensions = &pgn4.BoardDimensions{Files: config.Files, Ranks: config.Ranks}
	}

	if dims := options.Dimensions; dims != nil && (dims.Files > pgn4.OversizedExtent || dims.Ranks > pgn4.OversizedExtent) {
		return pgn4.Options{}, fmt.Errorf("board size %s exceeds %dx%d", dims, pgn4.OversizedExtent, pgn4.OversizedExtent)
	}

	return options, nil
}

func TryMkdir(dir string) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		_ = os.MkdirAll(dir, FilePermissions)
	}
}
