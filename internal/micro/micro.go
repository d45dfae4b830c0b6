package micro

import (
	"errors"
	"time"
)

const DefaultPulse = 10 * time.Millisecond

var ErrUnsupported = errors.New("gpio reset is not supported on this platform")

// ResetLine describes the GPIO line wired to the EN pin of the microcontroller.
type ResetLine struct {
	Chip  string
	Line  int
	Pulse time.Duration
}

// Reset holds the EN line low for the pulse duration and then releases it,
// restarting the microcontroller.
func (r ResetLine) Reset() error {
	if err := r.Disable(); err != nil {
		return err
	}

	pulse := r.Pulse
	if pulse <= 0 {
		pulse = DefaultPulse
	}
	time.Sleep(pulse)

	return r.Enable()
}

func (r ResetLine) Enable() error {
	return setLine(r.Chip, r.Line, 1)
}

func (r ResetLine) Disable() error {
	return setLine(r.Chip, r.Line, 0)
}
