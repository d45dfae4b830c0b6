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

// Package resettarget registers the reset_target custom target, which resets
// an ESP32 through esptool.py.
package resettarget

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/arduino/go-paths-helper"

	"github.com/arduino/arduino-reset-cli/internal/board"
	"github.com/arduino/arduino-reset-cli/internal/buildenv"
	"github.com/arduino/arduino-reset-cli/internal/target"
)

const (
	TargetName        = "reset_target"
	TargetTitle       = "Reset ESP32 target"
	TargetDescription = "This command resets ESP32 target via esptoolpy"

	ToolPackage  = "tool-esptoolpy"
	ToolFilename = "esptool.py"
	DefaultMCU   = "esp32"

	KeyTool  = "RESETTOOL"
	KeyFlags = "RESETFLAGS"
	KeyCmd   = "RESETCMD"

	CommandTemplate = `"{` + buildenv.KeyPythonExe + `}" "{` + KeyTool + `}" {` + KeyFlags + `}`

	DetectPortMessage = "Looking for target port..."
	ResetMessage      = "Resetting target"
)

// Environment is the part of the build environment the registrar needs.
type Environment interface {
	Replace(key, value string)
	ReplaceList(key string, values []string)
	BoardConfig() *board.Config
	PackageDir(name string) (*paths.Path, error)
	AddCustomTarget(t *target.CustomTarget)
	AutodetectUploadPort(ctx context.Context) error
	CommandAction(key string) *buildenv.CommandAction
}

var _ Environment = (*buildenv.Environment)(nil)

// Setup configures the reset command and registers the reset target.
func Setup(env Environment) {
	Configure(env)
	RegisterTarget(env)
}

// Configure stores the esptool path, its flags and the reset command line
// template in the environment.
//
// A tool package that cannot be resolved is not an error: the tool path
// degrades to the bare tool filename.
func Configure(env Environment) {
	var toolDir string
	if dir, err := env.PackageDir(ToolPackage); err != nil {
		slog.Debug("cannot resolve reset tool package", slog.String("package", ToolPackage), slog.Any("error", err))
	} else {
		toolDir = dir.String()
	}

	env.Replace(KeyTool, filepath.Join(toolDir, ToolFilename))
	env.ReplaceList(KeyFlags, Flags(env.BoardConfig().GetOr("build.mcu", DefaultMCU)))
	env.Replace(KeyCmd, CommandTemplate)
}

// Flags returns the esptool arguments that reset a chip of the given type.
// The upload port is left as a placeholder resolved at run time.
func Flags(mcu string) []string {
	return []string{
		"--no-stub",
		"--chip", mcu,
		"--port", "{" + buildenv.KeyUploadPort + "}",
		"flash_id",
	}
}

// RegisterTarget adds reset_target: autodetect the upload port, then run
// the reset command line.
func RegisterTarget(env Environment) {
	env.AddCustomTarget(&target.CustomTarget{
		Name:         TargetName,
		Title:        TargetTitle,
		Description:  TargetDescription,
		Dependencies: nil,
		Actions: []target.Action{
			target.NewVerboseAction(target.ActionFunc(env.AutodetectUploadPort), DetectPortMessage),
			target.NewVerboseAction(env.CommandAction(KeyCmd), ResetMessage),
		},
	})
}
