package target

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.bug.st/f"

	"github.com/arduino/arduino-reset-cli/cmd/feedback"
	"github.com/arduino/arduino-reset-cli/internal/target"
	"github.com/arduino/arduino-reset-cli/pkg/tablestyle"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered custom targets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			env := loadEnvironment()
			feedback.PrintResult(newTargetListResult(env.Targets().List()))
		},
	}
}

type targetInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type targetListResult struct {
	Targets []targetInfo `json:"targets"`
}

func newTargetListResult(targets []*target.CustomTarget) targetListResult {
	return targetListResult{
		Targets: f.Map(targets, func(t *target.CustomTarget) targetInfo {
			return targetInfo{Name: t.Name, Title: t.Title, Description: t.Description}
		}),
	}
}

func (r targetListResult) String() string {
	t := table.NewWriter()
	t.SetStyle(tablestyle.CustomCleanStyle)
	t.AppendHeader(table.Row{"NAME", "TITLE", "DESCRIPTION"})

	for _, info := range r.Targets {
		t.AppendRow(table.Row{info.Name, info.Title, info.Description})
	}
	return t.Render()
}

func (r targetListResult) Data() interface{} {
	return r
}
