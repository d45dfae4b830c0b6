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

package resettarget

import (
	"context"
	"fmt"

	"github.com/arduino/arduino-reset-cli/internal/micro"
	"github.com/arduino/arduino-reset-cli/internal/target"
)

const GPIOTargetName = "reset_target_gpio"

type lineResetter interface {
	Reset() error
}

// RegisterGPIOTarget adds reset_target_gpio, for boards whose EN pin is
// wired to a GPIO line of the host.
func RegisterGPIOTarget(env Environment, line micro.ResetLine) {
	registerGPIOTarget(env, line, fmt.Sprintf("%s line %d", line.Chip, line.Line))
}

func registerGPIOTarget(env Environment, line lineResetter, where string) {
	env.AddCustomTarget(&target.CustomTarget{
		Name:        GPIOTargetName,
		Title:       "Reset ESP32 target via GPIO",
		Description: "This command resets ESP32 target by pulsing its EN pin on " + where,
		Actions: []target.Action{
			target.NewVerboseAction(target.ActionFunc(func(ctx context.Context) error {
				return line.Reset()
			}), "Pulsing EN line"),
		},
	})
}
