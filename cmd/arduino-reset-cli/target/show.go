package target

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arduino/arduino-reset-cli/cmd/feedback"
	"github.com/arduino/arduino-reset-cli/cmd/i18n"
	"github.com/arduino/arduino-reset-cli/internal/buildenv"
	"github.com/arduino/arduino-reset-cli/internal/runner"
	"github.com/arduino/arduino-reset-cli/internal/target"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <target>",
		Short: "Show the actions of a custom target",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env := loadEnvironment()
			t, found := env.Targets().Get(args[0])
			if !found {
				feedback.Fatal(i18n.Tr("Target %s not found", args[0]), feedback.ErrBadArgument)
			}
			feedback.PrintResult(newTargetShowResult(env, t))
		},
		ValidArgsFunction: targetNames(),
	}
}

type actionInfo struct {
	Message  string   `json:"message,omitempty"`
	Template string   `json:"template,omitempty"`
	Command  []string `json:"command,omitempty"`
}

type targetShowResult struct {
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Dependencies []string     `json:"dependencies,omitempty"`
	Actions      []actionInfo `json:"actions"`
}

func newTargetShowResult(env *buildenv.Environment, t *target.CustomTarget) targetShowResult {
	res := targetShowResult{
		Name:         t.Name,
		Title:        t.Title,
		Description:  t.Description,
		Dependencies: t.Dependencies,
	}
	for _, action := range t.Actions {
		var info actionInfo
		if v, ok := action.(*target.VerboseAction); ok {
			info.Message = v.Message
			action = v.Action
		}
		if c, ok := action.(*buildenv.CommandAction); ok {
			info.Template = env.Get(c.Key)
			// The command can be expanded only once every placeholder is known.
			if args, err := c.Args(); err == nil {
				info.Command = args
			}
		}
		res.Actions = append(res.Actions, info)
	}
	return res
}

func (r targetShowResult) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Name:         %s\n", r.Name))
	b.WriteString(fmt.Sprintf("Title:        %s\n", r.Title))
	b.WriteString(fmt.Sprintf("Description:  %s\n", r.Description))
	if len(r.Dependencies) > 0 {
		b.WriteString(fmt.Sprintf("Dependencies: %s\n", strings.Join(r.Dependencies, ", ")))
	}
	b.WriteString("Actions:\n")
	for i, a := range r.Actions {
		message := a.Message
		if message == "" {
			message = "-"
		}
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, message))
		if len(a.Command) > 0 {
			b.WriteString(fmt.Sprintf("     %s\n", runner.Quote(a.Command)))
		} else if a.Template != "" {
			b.WriteString(fmt.Sprintf("     %s\n", a.Template))
		}
	}
	return b.String()
}

func (r targetShowResult) Data() interface{} {
	return r
}
