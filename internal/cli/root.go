package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/devkit/internal/config"
	"github.com/dshills/devkit/internal/github"
	"github.com/dshills/devkit/internal/providers"
	"github.com/dshills/devkit/internal/ui"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "devkit",
	Short: "Developer toolkit for LLM-assisted workflows",
	Long:  "devkit bundles a codebase into LLM-ready context, reviews changes with an LLM, and scaffolds projects.",
}

// Run loads .env from the working directory, executes the root command and
// returns an exit code.
func Run() int {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return execute(os.Args[1:])
}

func execute(args []string) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

func reporterFor(cmd *cobra.Command) *ui.Reporter {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func isAuthError(err error) bool {
	return providers.IsAuthError(err) || errors.Is(err, github.ErrUnauthorized)
}

// fail reports err and returns the matching exit code.
func fail(r *ui.Reporter, err error) int {
	r.Error(err)
	if isAuthError(err) {
		return ExitAuthError
	}
	return ExitRuntimeError
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print devkit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "devkit version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(copycodeCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(githubCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(versionCmd)
}
