// This file is part of arduino-reset-cli.
//
// Copyright 2025 ARDUINO SA (http://www.arduino.cc/)
//
// This software is released under the GNU General Public License version 3,
// which covers the main part of arduino-reset-cli.
// The terms of this license can be found at:
// https://www.gnu.org/licenses/gpl-3.0.en.html
//
// You can be released from the requirements of the above licenses by purchasing
// a commercial license. Buying such a license is mandatory if you want to
// modify or otherwise use the software for commercial activities involving the
// Arduino software without disclosing the source code of your own applications.
// To purchase a commercial license, send an email to license@arduino.cc.

// Package buildenv implements the build environment custom targets are
// registered into: a variable store with {KEY} substitution, the board
// configuration, the tool package resolver and the target registry.
package buildenv

import (
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/arduino/go-paths-helper"
	properties "github.com/arduino/go-properties-orderedmap"

	"github.com/arduino/arduino-reset-cli/internal/board"
	"github.com/arduino/arduino-reset-cli/internal/packages"
	"github.com/arduino/arduino-reset-cli/internal/runner"
	"github.com/arduino/arduino-reset-cli/internal/serialport"
	"github.com/arduino/arduino-reset-cli/internal/target"
)

const (
	KeyUploadPort = "UPLOAD_PORT"
	KeyPythonExe  = "PYTHONEXE"
)

var ErrUnknownKey = errors.New("unknown variable")

type PackageResolver interface {
	PackageDir(name string) (*paths.Path, error)
}

type Environment struct {
	vars     *properties.Map
	lists    map[string][]string
	board    *board.Config
	packages PackageResolver
	detector serialport.Detector
	runner   runner.Runner
	targets  *target.Registry
}

type Option func(*Environment)

func WithBoard(b *board.Config) Option {
	return func(e *Environment) { e.board = b }
}

func WithPackages(r PackageResolver) Option {
	return func(e *Environment) { e.packages = r }
}

func WithPortDetector(d serialport.Detector) Option {
	return func(e *Environment) { e.detector = d }
}

func WithRunner(r runner.Runner) Option {
	return func(e *Environment) { e.runner = r }
}

// WithVars pre-populates the variable store, e.g. with PYTHONEXE.
func WithVars(vars map[string]string) Option {
	return func(e *Environment) {
		for k, v := range vars {
			e.vars.Set(k, v)
		}
	}
}

func New(opts ...Option) *Environment {
	e := &Environment{
		vars:     properties.NewMap(),
		lists:    map[string][]string{},
		board:    board.New(),
		packages: packages.NewResolver(nil),
		detector: serialport.NewDetector(),
		runner:   &runner.Process{Stdout: os.Stdout, Stderr: os.Stderr},
		targets:  target.NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Get returns the raw value of key, without substitutions. List variables
// are returned space separated.
func (e *Environment) Get(key string) string {
	return e.vars.Get(key)
}

func (e *Environment) GetOk(key string) (string, bool) {
	return e.vars.GetOk(key)
}

// GetList returns a copy of the list stored in key, or nil if key does not
// hold a list.
func (e *Environment) GetList(key string) []string {
	return slices.Clone(e.lists[key])
}

// Replace sets a scalar variable, replacing any previous value.
func (e *Environment) Replace(key, value string) {
	delete(e.lists, key)
	e.vars.Set(key, value)
}

// ReplaceList sets a list variable. When the variable is the sole content
// of a command line argument it expands to one argument per item.
func (e *Environment) ReplaceList(key string, values []string) {
	e.lists[key] = slices.Clone(values)
	e.vars.Set(key, strings.Join(values, " "))
}

func (e *Environment) Keys() []string {
	return e.vars.Keys()
}

func (e *Environment) BoardConfig() *board.Config {
	return e.board
}

func (e *Environment) PackageDir(name string) (*paths.Path, error) {
	return e.packages.PackageDir(name)
}

func (e *Environment) AddCustomTarget(t *target.CustomTarget) {
	e.targets.Add(t)
}

func (e *Environment) Targets() *target.Registry {
	return e.targets
}

func (e *Environment) SetRunner(r runner.Runner) {
	e.runner = r
}

func (e *Environment) Runner() runner.Runner {
	return e.runner
}
