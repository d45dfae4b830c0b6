package config

import (
	"path/filepath"
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv(t *testing.T) {
	packagesDir := t.TempDir()
	t.Setenv("ARDUINO_RESET_CLI__PACKAGES_DIR", packagesDir)
	t.Setenv("ARDUINO_RESET_CLI__BOARD_FILE", "boards/esp32dev.json")
	t.Setenv("PYTHONEXE", "/opt/penv/bin/python")
	t.Setenv("UPLOAD_PORT", "/dev/ttyUSB3")
	t.Setenv("ARDUINO_RESET_CLI__GPIO_CHIP", "gpiochip1")
	t.Setenv("ARDUINO_RESET_CLI__GPIO_LINE", "38")
	t.Setenv("ARDUINO_RESET_CLI__ALLOW_ROOT", "true")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	require.Equal(t, packagesDir, cfg.PackagesDir().String())
	require.Equal(t, filepath.Join("boards", "esp32dev.json"), cfg.BoardFile().String())
	require.Equal(t, "/opt/penv/bin/python", cfg.PythonExe())
	require.Equal(t, "/dev/ttyUSB3", cfg.UploadPort())
	require.True(t, cfg.AllowRoot)

	chip, line, ok := cfg.GPIOResetLine()
	require.True(t, ok)
	require.Equal(t, "gpiochip1", chip)
	require.Equal(t, 38, line)
}

func TestNewFromEnvDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("ARDUINO_RESET_CLI__PACKAGES_DIR", "")
	t.Setenv("ARDUINO_RESET_CLI__BOARD_FILE", "")
	t.Setenv("PYTHONEXE", "")
	t.Setenv("UPLOAD_PORT", "")
	t.Setenv("ARDUINO_RESET_CLI__GPIO_CHIP", "")
	t.Setenv("ARDUINO_RESET_CLI__GPIO_LINE", "")
	t.Setenv("ARDUINO_RESET_CLI__ALLOW_ROOT", "")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	require.Equal(t, paths.New(home, ".platformio", "packages").String(), cfg.PackagesDir().String())
	require.Nil(t, cfg.BoardFile())
	require.NotEmpty(t, cfg.PythonExe())
	require.Empty(t, cfg.UploadPort())
	require.False(t, cfg.AllowRoot)

	_, _, ok := cfg.GPIOResetLine()
	require.False(t, ok)
}

func TestNewFromEnvRelativePackagesDir(t *testing.T) {
	t.Setenv("ARDUINO_RESET_CLI__PACKAGES_DIR", "packages")
	cfg, err := NewFromEnv()
	require.NoError(t, err)

	wd, err := paths.Getwd()
	require.NoError(t, err)
	require.Equal(t, wd.Join("packages").String(), cfg.PackagesDir().String())
}

func TestNewFromEnvInvalidValues(t *testing.T) {
	t.Setenv("ARDUINO_RESET_CLI__GPIO_LINE", "not-a-number")
	_, err := NewFromEnv()
	require.ErrorContains(t, err, "invalid ARDUINO_RESET_CLI__GPIO_LINE")

	t.Setenv("ARDUINO_RESET_CLI__GPIO_LINE", "")
	t.Setenv("ARDUINO_RESET_CLI__ALLOW_ROOT", "maybe")
	_, err = NewFromEnv()
	require.ErrorContains(t, err, "invalid ARDUINO_RESET_CLI__ALLOW_ROOT")
}
