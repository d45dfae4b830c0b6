package micro

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResetMissingChip(t *testing.T) {
	line := ResetLine{Chip: "gpiochip-does-not-exist", Line: 38}
	err := line.Reset()
	require.Error(t, err)
	if runtime.GOOS != "linux" {
		require.ErrorIs(t, err, ErrUnsupported)
	} else {
		require.ErrorContains(t, err, "cannot open gpio chip gpiochip-does-not-exist")
	}
}
