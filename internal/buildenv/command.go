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

package buildenv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	properties "github.com/arduino/go-properties-orderedmap"
)

var ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

const maxListDepth = 10

var (
	listReference = regexp.MustCompile(`^\{([^{}\s]+)\}$`)
	placeholder   = regexp.MustCompile(`\{([^{}\s]+)\}`)
)

// Command expands the command line template stored in key into an argument
// vector. The template is split into arguments first and every argument is
// expanded on its own, so substituted values never need shell quoting.
// Placeholders are substituted once: braces inside a value are kept verbatim.
func (e *Environment) Command(key string) ([]string, error) {
	template, ok := e.vars.GetOk(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	parts, err := properties.SplitQuotedString(template, `"'`, false)
	if err != nil {
		return nil, fmt.Errorf("invalid command line in %s: %w", key, err)
	}

	var args []string
	for _, part := range parts {
		expanded, err := e.expandArg(part, 0)
		if err != nil {
			return nil, fmt.Errorf("%w in %s", err, key)
		}
		args = append(args, expanded...)
	}
	return args, nil
}

func (e *Environment) expandArg(arg string, depth int) ([]string, error) {
	if m := listReference.FindStringSubmatch(arg); m != nil && depth < maxListDepth {
		if list, ok := e.lists[m[1]]; ok {
			var res []string
			for _, item := range list {
				expanded, err := e.expandArg(item, depth+1)
				if err != nil {
					return nil, err
				}
				res = append(res, expanded...)
			}
			return res, nil
		}
	}

	for _, m := range placeholder.FindAllStringSubmatch(arg, -1) {
		if e.vars.IsPropertyMissingInExpandPropsInString(m[1], arg) {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, m[1])
		}
	}
	return []string{placeholder.ReplaceAllStringFunc(arg, func(ref string) string {
		return e.vars.Get(ref[1 : len(ref)-1])
	})}, nil
}

// CommandAction runs the command line template stored in Key through the
// environment runner.
type CommandAction struct {
	env *Environment
	Key string
}

func (e *Environment) CommandAction(key string) *CommandAction {
	return &CommandAction{env: e, Key: key}
}

func (a *CommandAction) Args() ([]string, error) {
	return a.env.Command(a.Key)
}

func (a *CommandAction) Run(ctx context.Context) error {
	args, err := a.Args()
	if err != nil {
		return err
	}
	return a.env.runner.Run(ctx, args)
}

// AutodetectUploadPort fills UPLOAD_PORT using the port detector, unless
// the port has already been given.
func (e *Environment) AutodetectUploadPort(ctx context.Context) error {
	if port := e.Get(KeyUploadPort); port != "" {
		slog.Debug("using configured upload port", slog.String("port", port))
		return nil
	}

	port, err := e.detector.Detect(ctx)
	if err != nil {
		return err
	}
	slog.Info("auto-detected upload port", slog.String("port", port))
	e.Replace(KeyUploadPort, port)
	return nil
}
