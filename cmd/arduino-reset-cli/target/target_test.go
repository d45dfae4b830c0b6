package target

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arduino/arduino-reset-cli/internal/board"
	"github.com/arduino/arduino-reset-cli/internal/buildenv"
	"github.com/arduino/arduino-reset-cli/internal/resettarget"
)

func newTestEnvironment(uploadPort string) *buildenv.Environment {
	b := board.New()
	b.Set("build.mcu", "esp32s2")
	vars := map[string]string{buildenv.KeyPythonExe: "python3"}
	if uploadPort != "" {
		vars[buildenv.KeyUploadPort] = uploadPort
	}
	env := buildenv.New(buildenv.WithBoard(b), buildenv.WithVars(vars))
	resettarget.Setup(env)
	return env
}

func TestDryRun(t *testing.T) {
	env := newTestEnvironment("/dev/ttyUSB0")

	var stdout, stderr bytes.Buffer
	var progress []string
	err := runTarget(context.Background(), env, resettarget.TargetName, true, &stdout, &stderr,
		func(message string) { progress = append(progress, message) })
	require.NoError(t, err)

	require.Equal(t, "python3 esptool.py --no-stub --chip esp32s2 --port /dev/ttyUSB0 flash_id\n", stdout.String())
	require.Empty(t, stderr.String())
	require.Equal(t, []string{resettarget.DetectPortMessage, resettarget.ResetMessage}, progress)
}

func TestShowResult(t *testing.T) {
	env := newTestEnvironment("")
	tgt, found := env.Targets().Get(resettarget.TargetName)
	require.True(t, found)

	res := newTargetShowResult(env, tgt)
	require.Len(t, res.Actions, 2)
	require.Equal(t, resettarget.DetectPortMessage, res.Actions[0].Message)
	require.Empty(t, res.Actions[0].Template)
	require.Equal(t, `"{PYTHONEXE}" "{RESETTOOL}" {RESETFLAGS}`, res.Actions[1].Template)
	require.Nil(t, res.Actions[1].Command)
	require.Contains(t, res.String(), "2. Resetting target")

	env.Replace(buildenv.KeyUploadPort, "COM5")
	res = newTargetShowResult(env, tgt)
	require.Equal(t, []string{"python3", "esptool.py", "--no-stub", "--chip", "esp32s2", "--port", "COM5", "flash_id"}, res.Actions[1].Command)
	require.Contains(t, res.String(), "python3 esptool.py --no-stub --chip esp32s2 --port COM5 flash_id")
}

func TestListResult(t *testing.T) {
	env := newTestEnvironment("")
	res := newTargetListResult(env.Targets().List())

	require.Equal(t, []targetInfo{{
		Name:        resettarget.TargetName,
		Title:       resettarget.TargetTitle,
		Description: resettarget.TargetDescription,
	}}, res.Targets)
	require.Contains(t, res.String(), "reset_target")
}

func TestRunResultString(t *testing.T) {
	require.Equal(t, "Target reset_target completed on /dev/ttyUSB0", runResult{Target: "reset_target", UploadPort: "/dev/ttyUSB0"}.String())
	require.Equal(t, "Target noop completed", runResult{Target: "noop"}.String())
	require.Empty(t, runResult{Target: "reset_target", DryRun: true}.String())
	require.Equal(t, "boom", runResult{Error: "boom"}.ErrorString())
}
