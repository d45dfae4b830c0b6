package resettarget

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arduino/arduino-reset-cli/internal/board"
	"github.com/arduino/arduino-reset-cli/internal/buildenv"
	"github.com/arduino/arduino-reset-cli/internal/packages"
	"github.com/arduino/arduino-reset-cli/internal/runner"
	"github.com/arduino/arduino-reset-cli/internal/target"
)

type stubDetector struct {
	port string
	err  error
}

func (d stubDetector) Detect(ctx context.Context) (string, error) {
	return d.port, d.err
}

func packagesDirWithEsptool(t *testing.T) *paths.Path {
	dir := paths.New(t.TempDir())
	require.NoError(t, dir.Join(ToolPackage).MkdirAll())
	return dir
}

func TestConfigureDefaultsChipToESP32(t *testing.T) {
	env := buildenv.New()
	Configure(env)

	flags := env.GetList(KeyFlags)
	require.Equal(t, []string{"--no-stub", "--chip", "esp32", "--port", "{UPLOAD_PORT}", "flash_id"}, flags)
}

func TestConfigureUsesBoardMCU(t *testing.T) {
	b := board.New()
	b.Set("build.mcu", "esp32s3")
	env := buildenv.New(buildenv.WithBoard(b))
	Configure(env)

	flags := env.GetList(KeyFlags)
	i := slices.Index(flags, "--chip")
	require.NotEqual(t, -1, i)
	require.Equal(t, "esp32s3", flags[i+1])
}

func TestConfigureToolPath(t *testing.T) {
	t.Run("resolvable package directory", func(t *testing.T) {
		dir := packagesDirWithEsptool(t)
		env := buildenv.New(buildenv.WithPackages(packages.NewResolver(dir)))
		Configure(env)
		require.Equal(t, dir.Join(ToolPackage, ToolFilename).String(), env.Get(KeyTool))
	})

	t.Run("unresolvable package directory", func(t *testing.T) {
		env := buildenv.New(buildenv.WithPackages(packages.NewResolver(paths.New(t.TempDir()))))
		Configure(env)
		require.Equal(t, ToolFilename, env.Get(KeyTool))
	})
}

func TestCommandTemplateReferencesStoredVariables(t *testing.T) {
	env := buildenv.New()
	Configure(env)

	template := env.Get(KeyCmd)
	require.Equal(t, `"{PYTHONEXE}" "{RESETTOOL}" {RESETFLAGS}`, template)
	for _, key := range []string{buildenv.KeyPythonExe, KeyTool, KeyFlags} {
		require.Contains(t, template, "{"+key+"}")
	}

	env.Replace(buildenv.KeyPythonExe, "python3")
	env.Replace(buildenv.KeyUploadPort, "/dev/ttyUSB0")
	args, err := env.Command(KeyCmd)
	require.NoError(t, err)
	expected := []string{"python3", "esptool.py", "--no-stub", "--chip", "esp32", "--port", "/dev/ttyUSB0", "flash_id"}
	if diff := cmp.Diff(expected, args); diff != "" {
		t.Errorf("unexpected reset command (-want +got):\n%s", diff)
	}
}

func TestRegisterTarget(t *testing.T) {
	env := buildenv.New()
	Setup(env)

	tgt, found := env.Targets().Get(TargetName)
	require.True(t, found)
	require.Equal(t, TargetTitle, tgt.Title)
	require.Equal(t, TargetDescription, tgt.Description)
	require.Nil(t, tgt.Dependencies)
	require.Len(t, tgt.Actions, 2)

	detect, ok := tgt.Actions[0].(*target.VerboseAction)
	require.True(t, ok)
	require.Equal(t, DetectPortMessage, detect.Message)

	reset, ok := tgt.Actions[1].(*target.VerboseAction)
	require.True(t, ok)
	require.Equal(t, ResetMessage, reset.Message)
	cmdAction, ok := reset.Action.(*buildenv.CommandAction)
	require.True(t, ok)
	require.Equal(t, KeyCmd, cmdAction.Key)
}

func TestRunResetTarget(t *testing.T) {
	dir := packagesDirWithEsptool(t)
	b := board.New()
	b.Set("build.mcu", "esp32c3")

	var executed [][]string
	env := buildenv.New(
		buildenv.WithBoard(b),
		buildenv.WithPackages(packages.NewResolver(dir)),
		buildenv.WithPortDetector(stubDetector{port: "/dev/ttyACM0"}),
		buildenv.WithVars(map[string]string{buildenv.KeyPythonExe: "/usr/bin/python3"}),
		buildenv.WithRunner(runner.RunnerFunc(func(ctx context.Context, args []string) error {
			executed = append(executed, args)
			return nil
		})),
	)
	Setup(env)

	var progress []string
	err := env.Targets().Run(context.Background(), TargetName, target.RunOptions{
		OnProgress: func(message string) { progress = append(progress, message) },
	})
	require.NoError(t, err)
	require.Equal(t, []string{DetectPortMessage, ResetMessage}, progress)
	require.Equal(t, [][]string{{
		"/usr/bin/python3",
		dir.Join(ToolPackage, ToolFilename).String(),
		"--no-stub", "--chip", "esp32c3", "--port", "/dev/ttyACM0", "flash_id",
	}}, executed)
}

func TestRunResetTargetWithoutPort(t *testing.T) {
	var executed bool
	noPort := errors.New("no upload port found")
	env := buildenv.New(
		buildenv.WithPortDetector(stubDetector{err: noPort}),
		buildenv.WithRunner(runner.RunnerFunc(func(ctx context.Context, args []string) error {
			executed = true
			return nil
		})),
	)
	Setup(env)

	err := env.Targets().Run(context.Background(), TargetName, target.RunOptions{})
	require.ErrorIs(t, err, noPort)
	require.EqualError(t, err, "reset_target: Looking for target port...: no upload port found")
	require.False(t, executed)
}

type countingLine struct {
	resets int
	err    error
}

func (l *countingLine) Reset() error {
	l.resets++
	return l.err
}

func TestGPIOTarget(t *testing.T) {
	env := buildenv.New()
	line := &countingLine{}
	registerGPIOTarget(env, line, "gpiochip1 line 38")

	tgt, found := env.Targets().Get(GPIOTargetName)
	require.True(t, found)
	require.Contains(t, tgt.Description, "gpiochip1 line 38")

	require.NoError(t, env.Targets().Run(context.Background(), GPIOTargetName, target.RunOptions{}))
	require.Equal(t, 1, line.resets)

	line.err = errors.New("line busy")
	require.ErrorContains(t, env.Targets().Run(context.Background(), GPIOTargetName, target.RunOptions{}), "line busy")
}

func TestResetCommandWithBracesInPackagesDir(t *testing.T) {
	dir := paths.New(t.TempDir(), "{build}")
	require.NoError(t, dir.Join(ToolPackage).MkdirAll())

	env := buildenv.New(
		buildenv.WithPackages(packages.NewResolver(dir)),
		buildenv.WithVars(map[string]string{
			buildenv.KeyPythonExe:  "python3",
			buildenv.KeyUploadPort: "/dev/ttyUSB0",
		}),
	)
	Setup(env)

	args, err := env.Command(KeyCmd)
	require.NoError(t, err)
	expected := []string{
		"python3", dir.Join(ToolPackage, ToolFilename).String(),
		"--no-stub", "--chip", "esp32", "--port", "/dev/ttyUSB0", "flash_id",
	}
	if diff := cmp.Diff(expected, args); diff != "" {
		t.Errorf("unexpected reset command (-want +got):\n%s", diff)
	}
}
