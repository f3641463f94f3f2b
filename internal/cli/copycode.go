package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/devkit/internal/bundle"
	"github.com/dshills/devkit/internal/clipboard"
	"github.com/dshills/devkit/internal/config"
	"github.com/dshills/devkit/internal/selector"
	"github.com/dshills/devkit/internal/ui"
)

var (
	flagCopyOutput     string
	flagCopyDryRun     bool
	flagCopyDir        string
	flagCopyIgnoreFile string
)

// systemClipboard and newPrompter are replaced in tests.
var systemClipboard bundle.Clipboard = clipboard.System{}

var newPrompter = func(cmd *cobra.Command) *ui.Prompter {
	return ui.NewPrompter(os.Stdin, cmd.ErrOrStderr())
}

var copycodeCmd = &cobra.Command{
	Use:     "copycode",
	Aliases: []string{"cp"},
	Short:   "Copy codebase context to clipboard for LLMs",
	Long: "Collect every non-ignored text file under a directory into one payload " +
		"(file tree plus fenced contents) and copy it to the clipboard, write it to a file, " +
		"or preview the selection with --dry-run.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]string{}
		if flagCopyIgnoreFile != "" {
			overrides["bundle.ignoreFile"] = flagCopyIgnoreFile
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		r := reporterFor(cmd)
		root, err := filepath.Abs(flagCopyDir)
		if err != nil {
			exitCode = fail(r, fmt.Errorf("resolving %s: %w", flagCopyDir, err))
			return nil
		}

		b := newBundler(cfg, r, newPrompter(cmd))
		_, err = b.Run(cmd.Context(), root, bundle.Options{
			Output: flagCopyOutput,
			DryRun: flagCopyDryRun,
		})
		if err != nil && !errors.Is(err, bundle.ErrNoFilesFound) {
			// Run has already reported the failure.
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func newBundler(cfg config.Config, r *ui.Reporter, p *ui.Prompter) *bundle.Bundler {
	sel := selector.New(selector.Options{
		IgnoreFile:   cfg.Bundle.IgnoreFile,
		ExtraIgnores: cfg.Bundle.ExtraIgnores,
		Concurrency:  cfg.Bundle.Concurrency,
	})
	return bundle.New(
		bundle.Config{
			LargeOutputLimit: cfg.Bundle.LargeOutputLimit,
			Concurrency:      cfg.Bundle.Concurrency,
		},
		bundle.Deps{
			Selector:  sel,
			Clipboard: systemClipboard,
			Confirm:   confirmLarge(p),
			Reporter:  r,
		},
	)
}

// confirmLarge asks before an oversized payload goes to the clipboard. The
// default answer is no.
func confirmLarge(p *ui.Prompter) bundle.ConfirmFunc {
	return func(int) (bool, error) {
		return p.Confirm("Copying this might freeze your clipboard. Proceed?", false)
	}
}

func init() {
	copycodeCmd.Flags().StringVarP(&flagCopyOutput, "output", "o", "", "Output result to a file instead of clipboard")
	copycodeCmd.Flags().BoolVarP(&flagCopyDryRun, "dry-run", "d", false, "Dry run: only list files and stats")
	copycodeCmd.Flags().StringVar(&flagCopyDir, "dir", ".", "Directory to bundle")
	copycodeCmd.Flags().StringVar(&flagCopyIgnoreFile, "ignore-file", "", "Ignore rules file relative to --dir (default .gitignore)")
}
