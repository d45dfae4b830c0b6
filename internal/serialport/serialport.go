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

package serialport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.bug.st/serial/enumerator"
)

var ErrNoPortFound = errors.New("no upload port found")

// Detector finds the serial port a board is attached to.
type Detector interface {
	Detect(ctx context.Context) (string, error)
}

// USB vendor IDs of the bridges commonly found on ESP32 boards, in order of
// preference.
var knownVIDs = []string{
	"303A", // Espressif (native USB)
	"10C4", // Silicon Labs CP210x
	"1A86", // WCH CH340/CH9102
	"0403", // FTDI
}

type EnumeratorDetector struct {
	list func() ([]*enumerator.PortDetails, error)
}

func NewDetector() *EnumeratorDetector {
	return &EnumeratorDetector{list: enumerator.GetDetailedPortsList}
}

func (d *EnumeratorDetector) Detect(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ports, err := d.list()
	if err != nil {
		return "", fmt.Errorf("cannot enumerate serial ports: %w", err)
	}
	for _, p := range ports {
		slog.Debug("found serial port",
			slog.String("name", p.Name),
			slog.Bool("usb", p.IsUSB),
			slog.String("vid", p.VID),
			slog.String("pid", p.PID),
		)
	}
	port, ok := pickPort(ports)
	if !ok {
		return "", ErrNoPortFound
	}
	return port, nil
}

func pickPort(ports []*enumerator.PortDetails) (string, bool) {
	for _, vid := range knownVIDs {
		for _, p := range ports {
			if p.IsUSB && strings.EqualFold(p.VID, vid) {
				return p.Name, true
			}
		}
	}
	for _, p := range ports {
		if p.IsUSB {
			return p.Name, true
		}
	}
	return "", false
}
