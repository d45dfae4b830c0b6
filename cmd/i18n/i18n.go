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

package i18n

import (
	"github.com/leonelquinteros/gotext"
)

// Init loads the translations for the given locale from dir. Messages
// without a translation are printed as they are.
func Init(dir string, locale string) {
	gotext.Configure(dir, locale, "arduino-reset-cli")
}

// Tr returns msg translated to the selected locale and formatted with args.
func Tr(msg string, args ...any) string {
	return gotext.Get(msg, args...)
}
