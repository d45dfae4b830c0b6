package config

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arduino/arduino-reset-cli/cmd/arduino-reset-cli/internal/servicelocator"
	"github.com/arduino/arduino-reset-cli/cmd/feedback"
	"github.com/arduino/arduino-reset-cli/internal/buildenv"
	"github.com/arduino/arduino-reset-cli/internal/resettarget"
	"github.com/arduino/arduino-reset-cli/pkg/tablestyle"
)

func NewConfigCmd() *cobra.Command {
	appCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage arduino-reset-cli config",
	}

	appCmd.AddCommand(newConfigGetCmd())

	return appCmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "get configuration",
		Run: func(cmd *cobra.Command, args []string) {
			getConfigHandler()
		},
	}
}

func getConfigHandler() {
	env, err := servicelocator.GetEnvironment()
	if err != nil {
		feedback.Fatal(err.Error(), feedback.ErrBadArgument)
	}
	cfg := servicelocator.GetConfiguration()

	res := configResult{
		PackagesDir: cfg.PackagesDir().String(),
		PythonExe:   env.Get(buildenv.KeyPythonExe),
		UploadPort:  env.Get(buildenv.KeyUploadPort),
		MCU:         env.BoardConfig().GetOr("build.mcu", resettarget.DefaultMCU),
		ResetTool:   env.Get(resettarget.KeyTool),
		ResetFlags:  env.GetList(resettarget.KeyFlags),
		ResetCmd:    env.Get(resettarget.KeyCmd),
	}
	if boardFile := cfg.BoardFile(); boardFile != nil {
		res.BoardFile = boardFile.String()
	}
	if v, err := servicelocator.GetPackageResolver().Version(resettarget.ToolPackage); err != nil {
		feedback.Warnf("Cannot find %s: %v", resettarget.ToolPackage, err)
	} else if v != nil {
		res.ToolVersion = v.String()
	}
	feedback.PrintResult(res)
}

type configResult struct {
	PackagesDir string   `json:"packages_dir"`
	BoardFile   string   `json:"board_file,omitempty"`
	PythonExe   string   `json:"python_exe"`
	UploadPort  string   `json:"upload_port,omitempty"`
	MCU         string   `json:"mcu"`
	ToolVersion string   `json:"tool_version,omitempty"`
	ResetTool   string   `json:"reset_tool"`
	ResetFlags  []string `json:"reset_flags"`
	ResetCmd    string   `json:"reset_cmd"`
}

func (r configResult) String() string {
	return tablestyle.KeyValue([][2]string{
		{"Packages Directory", r.PackagesDir},
		{"Board File", r.BoardFile},
		{"Python", r.PythonExe},
		{"Upload Port", r.UploadPort},
		{"MCU", r.MCU},
		{"Esptool Version", r.ToolVersion},
		{resettarget.KeyTool, r.ResetTool},
		{resettarget.KeyFlags, strings.Join(r.ResetFlags, " ")},
		{resettarget.KeyCmd, r.ResetCmd},
	})
}

func (r configResult) Data() interface{} {
	return r
}
