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
	"github.com/spf13/cobra"

	"github.com/arduino/arduino-reset-cli/cmd/arduino-reset-cli/completion"
	"github.com/arduino/arduino-reset-cli/cmd/arduino-reset-cli/internal/servicelocator"
	"github.com/arduino/arduino-reset-cli/cmd/feedback"
	"github.com/arduino/arduino-reset-cli/internal/buildenv"
)

func NewTargetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Manage the custom targets of the build environment",
	}

	cmd.AddCommand(
		newListCmd(),
		newShowCmd(),
		newRunCmd(),
	)

	return cmd
}

func loadEnvironment() *buildenv.Environment {
	env, err := servicelocator.GetEnvironment()
	if err != nil {
		feedback.Fatal(err.Error(), feedback.ErrBadArgument)
	}
	return env
}

func targetNames() cobra.CompletionFunc {
	return completion.TargetNames(func(cmd *cobra.Command) ([]string, error) {
		// Completion does not run the root PersistentPreRun.
		servicelocator.SetOverrides(servicelocator.OverridesFromCommand(cmd))
		env, err := servicelocator.GetEnvironment()
		if err != nil {
			return nil, err
		}
		return env.Targets().Names(), nil
	})
}
