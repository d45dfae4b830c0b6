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

package version

import (
	"fmt"

	"github.com/spf13/cobra"
	semver "go.bug.st/relaxed-semver"

	"github.com/arduino/arduino-reset-cli/cmd/arduino-reset-cli/internal/servicelocator"
	"github.com/arduino/arduino-reset-cli/cmd/feedback"
	"github.com/arduino/arduino-reset-cli/internal/resettarget"
)

const ProgramName = "Arduino Reset CLI"

func NewVersionCmd(clientVersion string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Arduino Reset CLI",
		Run: func(cmd *cobra.Command, args []string) {
			toolVersion, err := getToolVersion(servicelocator.GetPackageResolver().Version)
			if err != nil {
				feedback.Warnf("Warning: cannot get the version of %s: %v", resettarget.ToolPackage, err)
			}

			result := versionResult{
				Name:        ProgramName,
				Version:     clientVersion,
				ToolVersion: toolVersion,
			}

			feedback.PrintResult(result)
		},
	}
	return cmd
}

func getToolVersion(version func(name string) (*semver.RelaxedVersion, error)) (string, error) {
	v, err := version(resettarget.ToolPackage)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return v.String(), nil
}

type versionResult struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	ToolVersion string `json:"esptool_version,omitempty"`
}

func (r versionResult) String() string {
	resultMessage := fmt.Sprintf("%s version %s", ProgramName, r.Version)

	if r.ToolVersion != "" {
		resultMessage = fmt.Sprintf("%s\nesptool package version: %s",
			resultMessage, r.ToolVersion)
	}
	return resultMessage
}

func (r versionResult) Data() interface{} {
	return r
}
