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

package packages

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/arduino/go-paths-helper"
	semver "go.bug.st/relaxed-semver"
)

var ErrPackageNotFound = errors.New("package not found")

const manifestFile = "package.json"

// Resolver locates installed tool packages inside a packages directory
// (one sub-directory per package, e.g. "tool-esptoolpy").
type Resolver struct {
	dir *paths.Path
}

func NewResolver(dir *paths.Path) *Resolver {
	return &Resolver{dir: dir}
}

func (r *Resolver) Dir() *paths.Path {
	return r.dir
}

// PackageDir returns the installation directory of the named package.
func (r *Resolver) PackageDir(name string) (*paths.Path, error) {
	if r.dir == nil || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrPackageNotFound, name)
	}
	pkgDir := r.dir.Join(name)
	info, err := pkgDir.Stat()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrPackageNotFound, name)
		}
		return nil, fmt.Errorf("cannot access package %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrPackageNotFound, pkgDir.String())
	}
	return pkgDir, nil
}

// Version reads the version declared in the package manifest. A package
// without manifest has a nil version.
func (r *Resolver) Version(name string) (*semver.RelaxedVersion, error) {
	pkgDir, err := r.PackageDir(name)
	if err != nil {
		return nil, err
	}

	content, err := pkgDir.Join(manifestFile).ReadFile()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read manifest of package %q: %w", name, err)
	}

	var manifest struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("cannot decode manifest of package %q: %w", name, err)
	}
	if manifest.Version == "" {
		return nil, nil
	}
	return semver.ParseRelaxed(manifest.Version), nil
}
