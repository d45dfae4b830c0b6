package target

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/arduino/arduino-reset-cli/cmd/feedback"
	"github.com/arduino/arduino-reset-cli/cmd/i18n"
	"github.com/arduino/arduino-reset-cli/internal/buildenv"
	"github.com/arduino/arduino-reset-cli/internal/portlock"
	"github.com/arduino/arduino-reset-cli/internal/resettarget"
	"github.com/arduino/arduino-reset-cli/internal/runner"
	"github.com/arduino/arduino-reset-cli/internal/target"
)

func newRunCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "run <target>",
		Short: "Run a custom target",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runHandler(cmd.Context(), args[0], dryRun)
		},
		ValidArgsFunction: targetNames(),
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the commands instead of running them")
	return cmd
}

// NewResetCmd is a shortcut for "target run reset_target".
func NewResetCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: resettarget.TargetTitle,
		Long:  resettarget.TargetDescription,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runHandler(cmd.Context(), resettarget.TargetName, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the reset command instead of running it")
	return cmd
}

func runHandler(ctx context.Context, name string, dryRun bool) {
	env := loadEnvironment()
	stdout, stderr, output := feedback.OutputStreams()

	err := runTarget(ctx, env, name, dryRun, stdout, stderr, feedback.Step)
	res := runResult{
		Target:     name,
		UploadPort: env.Get(buildenv.KeyUploadPort),
		DryRun:     dryRun,
	}
	if feedback.GetFormat() != feedback.Text {
		if o := output(); !o.Empty() {
			res.Output = o
		}
	}

	if err != nil {
		if errors.Is(err, target.ErrTargetNotFound) {
			feedback.Fatal(i18n.Tr("Target %s not found", name), feedback.ErrBadArgument)
		}
		res.Error = err.Error()
		feedback.FatalResult(res, feedback.ErrTargetFailed)
	}
	feedback.PrintResult(res)
}

func runTarget(ctx context.Context, env *buildenv.Environment, name string, dryRun bool, stdout, stderr io.Writer, onProgress func(string)) error {
	if dryRun {
		env.SetRunner(&runner.DryRun{Out: stdout})
	} else {
		env.SetRunner(portlock.NewRunner(
			&runner.Process{
				Stdout: stdout,
				Stderr: stderr,
				// esptool progress is printed line by line.
				Env: runner.EnvVars{"PYTHONUNBUFFERED": "1"},
			},
			func() string { return env.Get(buildenv.KeyUploadPort) },
		))
	}
	return env.Targets().Run(ctx, name, target.RunOptions{OnProgress: onProgress})
}

type runResult struct {
	Target     string                        `json:"target"`
	UploadPort string                        `json:"upload_port,omitempty"`
	DryRun     bool                          `json:"dry_run,omitempty"`
	Error      string                        `json:"error,omitempty"`
	Output     *feedback.OutputStreamsResult `json:"output,omitempty"`
}

func (r runResult) String() string {
	if r.Error != "" || r.DryRun {
		return ""
	}
	if r.UploadPort != "" {
		return i18n.Tr("Target %s completed on %s", r.Target, r.UploadPort)
	}
	return i18n.Tr("Target %s completed", r.Target)
}

func (r runResult) ErrorString() string {
	return r.Error
}

func (r runResult) Data() interface{} {
	return r
}
