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

package portlock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arduino/go-paths-helper"
	"github.com/gofrs/flock"
	"github.com/gosimple/slug"

	"github.com/arduino/arduino-reset-cli/internal/runner"
)

var ErrPortBusy = errors.New("upload port is in use")

const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

type UnlockFunc func() error

// LockFilePath returns the lock file guarding port inside dir.
func LockFilePath(dir *paths.Path, port string) *paths.Path {
	return dir.Join("arduino-reset-cli-" + slug.Make(port) + ".lock")
}

// Acquire takes an exclusive lock on port, so that two resets cannot talk to
// the same board at the same time.
func Acquire(ctx context.Context, dir *paths.Path, port string) (UnlockFunc, error) {
	fileLock := flock.New(LockFilePath(dir, port).String())

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrPortBusy, port)
		}
		return nil, fmt.Errorf("failed trying to acquire lock for %s: %w", fileLock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrPortBusy, port)
	}

	return func() error {
		if err := fileLock.Unlock(); err != nil {
			return fmt.Errorf("failed to unlock file lock for %s: %w", fileLock.Path(), err)
		}
		return nil
	}, nil
}

// Runner holds the lock of the current upload port while the wrapped runner
// executes. The port is read at run time because it is only known once
// autodetection has completed.
type Runner struct {
	Next runner.Runner
	Dir  *paths.Path
	Port func() string
}

func NewRunner(next runner.Runner, port func() string) *Runner {
	return &Runner{Next: next, Dir: paths.TempDir(), Port: port}
}

func (r *Runner) Run(ctx context.Context, args []string) error {
	port := r.Port()
	if port == "" {
		return r.Next.Run(ctx, args)
	}

	unlock, err := Acquire(ctx, r.Dir, port)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			slog.Error("failed to release port lock", "port", port, "error", err)
		}
	}()
	return r.Next.Run(ctx, args)
}
