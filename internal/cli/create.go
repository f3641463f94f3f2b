package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/devkit/internal/scaffold"
	"github.com/dshills/devkit/internal/ui"
)

var flagCreateType string

var createCmd = &cobra.Command{
	Use:     "create [name]",
	Aliases: []string{"c"},
	Short:   "Create a new project file",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := reporterFor(cmd)
		req := scaffold.Request{Type: flagCreateType}
		if len(args) == 1 {
			req.Name = args[0]
		}

		req, err := scaffold.Resolve(req, newPrompter(cmd))
		if err != nil {
			r.Fail("Failed to create project.")
			r.Error(err)
			if errors.Is(err, ui.ErrNotInteractive) {
				exitCode = ExitUsageError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		r.Info("Scaffolding %s project: %s...", req.Type, req.Name)
		if _, err := scaffold.Create(req); err != nil {
			r.Fail("Failed to create project.")
			r.Error(err)
			exitCode = ExitRuntimeError
			return nil
		}
		r.Success("Successfully created project: %s", req.Name)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&flagCreateType, "type", "t", "", "Type of project (Node.js, Python, Go)")
}
