package servicelocator

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/arduino/go-paths-helper"
	"github.com/spf13/cobra"

	"github.com/arduino/arduino-reset-cli/internal/board"
	"github.com/arduino/arduino-reset-cli/internal/buildenv"
	"github.com/arduino/arduino-reset-cli/internal/config"
	"github.com/arduino/arduino-reset-cli/internal/micro"
	"github.com/arduino/arduino-reset-cli/internal/packages"
	"github.com/arduino/arduino-reset-cli/internal/resettarget"
)

// Overrides are the command line values taking precedence over the
// configuration.
type Overrides struct {
	BoardFile  string
	BoardMCU   string
	UploadPort string
}

const (
	FlagBoardFile  = "board-file"
	FlagBoardMCU   = "board-mcu"
	FlagUploadPort = "upload-port"
)

// AddOverrideFlags declares the override flags as persistent flags of cmd.
func AddOverrideFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(FlagBoardFile, "", "Board manifest (JSON or YAML) describing the target hardware")
	flags.String(FlagBoardMCU, "", "MCU of the target board, overrides build.mcu of the board manifest")
	flags.StringP(FlagUploadPort, "p", "", "Serial port of the target board, autodetected if empty")
}

// OverridesFromCommand reads the override flags of an already parsed command,
// inherited persistent flags included.
func OverridesFromCommand(cmd *cobra.Command) Overrides {
	var o Overrides
	o.BoardFile, _ = cmd.Flags().GetString(FlagBoardFile)
	o.BoardMCU, _ = cmd.Flags().GetString(FlagBoardMCU)
	o.UploadPort, _ = cmd.Flags().GetString(FlagUploadPort)
	return o
}

var (
	cfg       config.Configuration
	overrides Overrides
)

func Init(configuration config.Configuration) {
	cfg = configuration
}

func SetOverrides(o Overrides) {
	overrides = o
}

func GetConfiguration() config.Configuration {
	return cfg
}

var (
	GetPackageResolver = sync.OnceValue(func() *packages.Resolver {
		return packages.NewResolver(cfg.PackagesDir())
	})

	GetBoardConfig = sync.OnceValues(func() (*board.Config, error) {
		boardFile := cfg.BoardFile()
		if overrides.BoardFile != "" {
			boardFile = paths.New(overrides.BoardFile)
		}

		b := board.New()
		if boardFile != nil {
			loaded, err := board.Load(boardFile)
			if err != nil {
				return nil, fmt.Errorf("invalid board file %s: %w", boardFile, err)
			}
			b = loaded
		}
		if overrides.BoardMCU != "" {
			b.Set("build.mcu", overrides.BoardMCU)
		}
		return b, nil
	})

	// GetEnvironment returns the build environment with all the custom
	// targets registered.
	GetEnvironment = sync.OnceValues(func() (*buildenv.Environment, error) {
		b, err := GetBoardConfig()
		if err != nil {
			return nil, err
		}

		vars := map[string]string{buildenv.KeyPythonExe: cfg.PythonExe()}
		uploadPort := cfg.UploadPort()
		if overrides.UploadPort != "" {
			uploadPort = overrides.UploadPort
		}
		if uploadPort != "" {
			vars[buildenv.KeyUploadPort] = uploadPort
		}

		env := buildenv.New(
			buildenv.WithBoard(b),
			buildenv.WithPackages(GetPackageResolver()),
			buildenv.WithVars(vars),
		)
		resettarget.Setup(env)

		if chip, line, ok := cfg.GPIOResetLine(); ok {
			slog.Debug("registering gpio reset target", slog.String("chip", chip), slog.Int("line", line))
			resettarget.RegisterGPIOTarget(env, micro.ResetLine{Chip: chip, Line: line})
		}
		return env, nil
	})
)
