package serialport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func fakeDetector(ports []*enumerator.PortDetails, err error) *EnumeratorDetector {
	return &EnumeratorDetector{list: func() ([]*enumerator.PortDetails, error) { return ports, err }}
}

func TestDetect(t *testing.T) {
	testCases := []struct {
		name     string
		ports    []*enumerator.PortDetails
		expected string
		err      error
	}{
		{
			name: "prefer espressif native usb",
			ports: []*enumerator.PortDetails{
				{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001"},
				{Name: "/dev/ttyACM0", IsUSB: true, VID: "303a", PID: "1001"},
			},
			expected: "/dev/ttyACM0",
		},
		{
			name: "prefer known bridge over unknown usb device",
			ports: []*enumerator.PortDetails{
				{Name: "/dev/ttyACM1", IsUSB: true, VID: "2341", PID: "0043"},
				{Name: "/dev/ttyUSB1", IsUSB: true, VID: "10C4", PID: "EA60"},
			},
			expected: "/dev/ttyUSB1",
		},
		{
			name: "fallback to first usb port",
			ports: []*enumerator.PortDetails{
				{Name: "/dev/ttyS0"},
				{Name: "/dev/ttyACM3", IsUSB: true, VID: "2341", PID: "0043"},
			},
			expected: "/dev/ttyACM3",
		},
		{
			name:  "no usb ports",
			ports: []*enumerator.PortDetails{{Name: "/dev/ttyS0"}},
			err:   ErrNoPortFound,
		},
		{
			name: "no ports at all",
			err:  ErrNoPortFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			port, err := fakeDetector(tc.ports, nil).Detect(context.Background())
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, port)
		})
	}
}

func TestDetectEnumerationError(t *testing.T) {
	boom := errors.New("permission denied")
	_, err := fakeDetector(nil, boom).Detect(context.Background())
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "cannot enumerate serial ports")
}
