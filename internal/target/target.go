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
)

// Action is a single step of a custom target.
type Action interface {
	Run(ctx context.Context) error
}

type ActionFunc func(ctx context.Context) error

func (f ActionFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// VerboseAction is an action announced by a progress message before it runs.
type VerboseAction struct {
	Action  Action
	Message string
}

func NewVerboseAction(action Action, message string) *VerboseAction {
	return &VerboseAction{Action: action, Message: message}
}

func (v *VerboseAction) Run(ctx context.Context) error {
	return v.Action.Run(ctx)
}

// CustomTarget is a named unit of work that can be invoked by name.
type CustomTarget struct {
	Name         string
	Title        string
	Description  string
	Dependencies []string
	Actions      []Action
}
