package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrWithoutTranslations(t *testing.T) {
	require.Equal(t, "Invalid output format: yaml", Tr("Invalid output format: %s", "yaml"))
	require.Equal(t, "Resetting target", Tr("Resetting target"))
}
