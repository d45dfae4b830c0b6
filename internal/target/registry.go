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

package target

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

var (
	ErrTargetNotFound  = errors.New("target not found")
	ErrDependencyCycle = errors.New("dependency cycle")
)

// Registry holds the custom targets in registration order.
type Registry struct {
	order   []string
	targets map[string]*CustomTarget
}

func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]*CustomTarget)}
}

// Add registers t. A target registered with an already used name replaces
// the previous one but keeps its position.
func (r *Registry) Add(t *CustomTarget) {
	if _, found := r.targets[t.Name]; !found {
		r.order = append(r.order, t.Name)
	}
	r.targets[t.Name] = t
}

func (r *Registry) Get(name string) (*CustomTarget, bool) {
	t, found := r.targets[name]
	return t, found
}

func (r *Registry) List() []*CustomTarget {
	res := make([]*CustomTarget, 0, len(r.order))
	for _, name := range r.order {
		res = append(res, r.targets[name])
	}
	return res
}

func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

type RunOptions struct {
	// OnProgress receives the message of every VerboseAction before it runs.
	OnProgress func(message string)
}

// Run executes the dependencies of the named target, each at most once, and
// then its actions in order. The first failing action stops the run.
func (r *Registry) Run(ctx context.Context, name string, opts RunOptions) error {
	if opts.OnProgress == nil {
		opts.OnProgress = func(string) {}
	}
	done := map[string]bool{}
	return r.run(ctx, name, opts, done, nil)
}

func (r *Registry) run(ctx context.Context, name string, opts RunOptions, done map[string]bool, stack []string) error {
	if done[name] {
		return nil
	}
	if slices.Contains(stack, name) {
		return fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(append(stack, name), " -> "))
	}
	t, found := r.targets[name]
	if !found {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, name)
	}

	stack = append(stack, name)
	for _, dep := range t.Dependencies {
		if err := r.run(ctx, dep, opts, done, stack); err != nil {
			return err
		}
	}

	slog.Debug("running target", slog.String("target", name), slog.Int("actions", len(t.Actions)))
	for i, action := range t.Actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		label := fmt.Sprintf("action %d", i+1)
		if v, ok := action.(*VerboseAction); ok {
			label = v.Message
			opts.OnProgress(v.Message)
		}
		if err := action.Run(ctx); err != nil {
			return fmt.Errorf("%s: %s: %w", name, label, err)
		}
	}
	done[name] = true
	return nil
}
