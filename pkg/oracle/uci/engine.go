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

package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// EngineConfig describes how to start a UCI variant engine.
type EngineConfig struct {
	Name string   `yaml:"name"`
	Cmd  string   `yaml:"cmd"`
	Dir  string   `yaml:"dir"`
	Arg  string   `yaml:"arg"`
	Env  []string `yaml:"env"`

	InitStr string `yaml:"init-string"`

	Options map[string]string `yaml:"options"`

	// Timeout bounds the wait for any single engine reply.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultTimeout is used when an EngineConfig doesn't specify a timeout.
const DefaultTimeout = 5 * time.Second

// StartEngine starts the engine process described by config and performs
// the UCI handshake, returning the lines the engine sent during it.
func StartEngine(config EngineConfig) (*Engine, []string, error) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	if config.Name == "" {
		config.Name = config.Cmd
	}

	var engine Engine
	process := exec.Command(config.Cmd, strings.Fields(config.Arg)...)

	engine.config = config

	process.Dir = config.Dir
	if len(config.Env) > 0 {
		process.Env = append(os.Environ(), config.Env...)
	}

	stdin, err := process.StdinPipe()
	if err != nil {
		return nil, nil, err
	}

	stdout, err := process.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}

	engine.writer = bufio.NewWriter(stdin)
	engine.reader = bufio.NewReader(stdout)
	engine.lines = make(chan string)

	engine.Cmd = process

	if err := engine.Cmd.Start(); err != nil {
		return nil, nil, err
	}

	go func() {
		for {
			line, err := engine.reader.ReadString('\n')
			if err != nil {
				engine.err = err
				close(engine.lines)
				return
			}

			line = strings.Trim(line, " \n\t\r")

			logrus.Tracef("info: (%s)> %s", engine.config.Name, line)
			engine.lines <- line
		}
	}()

	if engine.config.InitStr != "" {
		if err := engine.Write(engine.config.InitStr); err != nil {
			return nil, nil, err
		}
	}

	handshake, err := engine.Initialize()
	if err != nil {
		_ = engine.Kill()
		return nil, nil, err
	}

	return &engine, handshake, nil
}

// Engine is a running UCI engine process.
type Engine struct {
	config EngineConfig

	*exec.Cmd

	writer *bufio.Writer
	reader *bufio.Reader

	lines chan string

	err error
}

// Initialize performs the UCI handshake and returns the identification
// and option lines sent by the engine.
func (engine *Engine) Initialize() ([]string, error) {
	if err := engine.Write("uci"); err != nil {
		return nil, err
	}

	return engine.Collect("^uciok$")
}

// Synchronize waits for the engine to complete some time consuming task
// and synchronizes the interface with it.
func (engine *Engine) Synchronize() error {
	if err := engine.Write("isready"); err != nil {
		return err
	}

	_, err := engine.Await("^readyok$")
	return err
}

// Query sends the given command followed by an isready and returns every
// line the engine printed before answering readyok.
func (engine *Engine) Query(format string, a ...any) ([]string, error) {
	if err := engine.Write(format, a...); err != nil {
		return nil, err
	}

	if err := engine.Write("isready"); err != nil {
		return nil, err
	}

	return engine.Collect("^readyok$")
}

// Kill kills the engine.
func (engine *Engine) Kill() error {
	// the engine may already be gone, so a failed quit is not an error
	_ = engine.Write("quit")

	// unblock the reader so it can observe the closed pipe
	go func() {
		for range engine.lines {
		}
	}()

	if err := engine.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}

	_ = engine.Wait()
	return nil
}

var ErrReadTimeout = errors.New("engine: read i/o timeout")

// Await is a utility function which waits for a particular line from the
// engine, discarding the lines before it.
func (engine *Engine) Await(pattern string) (string, error) {
	_, match, err := engine.collect(pattern)
	return match, err
}

// Collect gathers the lines printed by the engine until one matches the
// given pattern. The matching line is not included in the result.
func (engine *Engine) Collect(pattern string) ([]string, error) {
	lines, _, err := engine.collect(pattern)
	return lines, err
}

// collect fails if no line is read for the configured timeout.
func (engine *Engine) collect(pattern string) ([]string, string, error) {
	regex := regexp.MustCompile(pattern)
	timer := time.NewTimer(engine.config.Timeout)
	defer timer.Stop()

	var lines []string
	for {
		select {
		case <-timer.C:
			return nil, "", ErrReadTimeout

		case line, ok := <-engine.lines:
			if !ok {
				if engine.err == io.EOF {
					return nil, "", fmt.Errorf("engine: %s exited unexpectedly", engine.config.Name)
				}

				return nil, "", engine.err
			}

			if regex.MatchString(line) {
				// line is the expected line
				return lines, line, nil
			}

			lines = append(lines, line)
			timer.Reset(engine.config.Timeout)
		}
	}
}

func (engine *Engine) Write(format string, a ...any) error {
	logrus.Tracef("info: (%s)< %s", engine.config.Name, fmt.Sprintf(format, a...))

	if _, err := fmt.Fprintf(engine.writer, format+"\n", a...); err != nil {
		return err
	}

	return engine.writer.Flush()
}
