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

package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/arduino/go-paths-helper"
)

type Configuration struct {
	packagesDir *paths.Path
	boardFile   *paths.Path
	pythonExe   string
	uploadPort  string
	gpioChip    string
	gpioLine    int
	AllowRoot   bool
}

func NewFromEnv() (Configuration, error) {
	packagesDir := paths.New(os.Getenv("ARDUINO_RESET_CLI__PACKAGES_DIR"))
	if packagesDir == nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return Configuration{}, err
		}
		packagesDir = paths.New(home).Join(".platformio", "packages")
	}
	if !packagesDir.IsAbs() {
		wd, err := paths.Getwd()
		if err != nil {
			return Configuration{}, err
		}
		packagesDir = wd.JoinPath(packagesDir)
	}

	boardFile := paths.New(os.Getenv("ARDUINO_RESET_CLI__BOARD_FILE"))

	pythonExe := os.Getenv("PYTHONEXE")
	if pythonExe == "" {
		pythonExe = defaultPythonExe()
	}

	gpioLine := -1
	gpioChip := os.Getenv("ARDUINO_RESET_CLI__GPIO_CHIP")
	if v := os.Getenv("ARDUINO_RESET_CLI__GPIO_LINE"); v != "" {
		line, err := strconv.Atoi(v)
		if err != nil || line < 0 {
			return Configuration{}, fmt.Errorf("invalid ARDUINO_RESET_CLI__GPIO_LINE %q", v)
		}
		gpioLine = line
	}

	allowRoot := false
	if v := os.Getenv("ARDUINO_RESET_CLI__ALLOW_ROOT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Configuration{}, fmt.Errorf("invalid ARDUINO_RESET_CLI__ALLOW_ROOT %q: %w", v, err)
		}
		allowRoot = b
	}

	return Configuration{
		packagesDir: packagesDir,
		boardFile:   boardFile,
		pythonExe:   pythonExe,
		uploadPort:  os.Getenv("UPLOAD_PORT"),
		gpioChip:    gpioChip,
		gpioLine:    gpioLine,
		AllowRoot:   allowRoot,
	}, nil
}

func defaultPythonExe() string {
	if runtime.GOOS == "windows" {
		return "python.exe"
	}
	return "python3"
}

func (c *Configuration) PackagesDir() *paths.Path {
	return c.packagesDir
}

// BoardFile is the board manifest, nil when none is configured.
func (c *Configuration) BoardFile() *paths.Path {
	return c.boardFile
}

func (c *Configuration) PythonExe() string {
	return c.pythonExe
}

func (c *Configuration) UploadPort() string {
	return c.uploadPort
}

// GPIOResetLine returns the GPIO chip and line wired to the EN pin, if any.
func (c *Configuration) GPIOResetLine() (string, int, bool) {
	if c.gpioChip == "" || c.gpioLine < 0 {
		return "", 0, false
	}
	return c.gpioChip, c.gpioLine, true
}
