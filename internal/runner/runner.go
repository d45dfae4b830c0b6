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

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/arduino/go-paths-helper"
	"github.com/kballard/go-shellquote"
)

var ErrEmptyCommand = errors.New("empty command line")

// Runner executes an already expanded argument vector. No shell is involved.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

type RunnerFunc func(ctx context.Context, args []string) error

func (f RunnerFunc) Run(ctx context.Context, args []string) error {
	return f(ctx, args)
}

// Process runs the command as a child process, streaming its output.
type Process struct {
	Stdout io.Writer
	Stderr io.Writer
	// Env is added to the current environment.
	Env EnvVars
}

type EnvVars map[string]string

// AsList returns the variables as sorted "KEY=value" entries.
func (e EnvVars) AsList() []string {
	list := make([]string, 0, len(e))
	for k, v := range e {
		list = append(list, k+"="+v)
	}
	slices.Sort(list)
	return list
}

func (p *Process) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrEmptyCommand
	}

	proc, err := paths.NewProcess(p.Env.AsList(), args...)
	if err != nil {
		return fmt.Errorf("failed to create command: %w", err)
	}
	if p.Stdout != nil {
		proc.RedirectStdoutTo(p.Stdout)
	}
	if p.Stderr != nil {
		proc.RedirectStderrTo(p.Stderr)
	}

	slog.Debug("running command", slog.String("cmd", Quote(args)))
	if err := proc.RunWithinContext(ctx); err != nil {
		return fmt.Errorf("command %q failed: %w", args[0], err)
	}
	return nil
}

// DryRun prints the command line instead of running it.
type DryRun struct {
	Out io.Writer
}

func (d *DryRun) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrEmptyCommand
	}
	_, err := fmt.Fprintln(d.Out, Quote(args))
	return err
}

// Quote renders args as a single shell-safe string, for display only.
func Quote(args []string) string {
	return shellquote.Join(args...)
}
