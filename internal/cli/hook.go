package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/devkit/internal/gitctx"
)

const (
	hookMarkerStart = "# >>> devkit pre-commit hook >>>"
	hookMarkerEnd   = "# <<< devkit pre-commit hook <<<"
)

var hookFormat string

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage git pre-commit hook",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Run devkit review on every commit",
	Long: "Install a pre-commit hook that reviews staged changes before each commit. " +
		"The review is advisory: the hook never blocks the commit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := reporterFor(cmd)
		hookPath, err := getHookPath(cmd)
		if err != nil {
			exitCode = fail(r, err)
			return nil
		}

		section := generateHookScript(hookFormat)

		existing, err := os.ReadFile(hookPath)
		if err != nil && !os.IsNotExist(err) {
			exitCode = fail(r, fmt.Errorf("reading hook file: %w", err))
			return nil
		}

		var content string
		if os.IsNotExist(err) || len(existing) == 0 {
			content = "#!/bin/sh\n" + section
		} else {
			content = replaceHookSection(string(existing), section)
		}

		if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
			exitCode = fail(r, fmt.Errorf("creating hooks directory: %w", err))
			return nil
		}
		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			exitCode = fail(r, fmt.Errorf("writing hook file: %w", err))
			return nil
		}

		r.Success("Installed devkit pre-commit hook at %s", hookPath)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove devkit pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := reporterFor(cmd)
		hookPath, err := getHookPath(cmd)
		if err != nil {
			exitCode = fail(r, err)
			return nil
		}

		existing, err := os.ReadFile(hookPath)
		if err != nil {
			if os.IsNotExist(err) {
				r.Info("No pre-commit hook found.")
				return nil
			}
			exitCode = fail(r, fmt.Errorf("reading hook file: %w", err))
			return nil
		}

		content := removeHookSection(string(existing))

		// Only the shebang left: drop the file
		trimmed := strings.TrimSpace(content)
		if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
			if err := os.Remove(hookPath); err != nil {
				exitCode = fail(r, fmt.Errorf("removing hook file: %w", err))
				return nil
			}
			r.Success("Removed devkit pre-commit hook at %s", hookPath)
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			exitCode = fail(r, fmt.Errorf("writing hook file: %w", err))
			return nil
		}
		r.Success("Removed devkit section from %s", hookPath)
		return nil
	},
}

func getHookPath(cmd *cobra.Command) (string, error) {
	gitDir, err := gitctx.GitDir(cmd.Context(), ".")
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks", "pre-commit"), nil
}

func generateHookScript(format string) string {
	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	fmt.Fprintf(&b, "devkit review --format %s\n", format)
	b.WriteString("DEVKIT_EXIT=$?\n")
	b.WriteString("if [ $DEVKIT_EXIT -ne 0 ]; then\n")
	b.WriteString("  echo \"devkit: review did not complete (exit $DEVKIT_EXIT), allowing commit\"\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func replaceHookSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return before + section + after
}

func removeHookSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return before + after
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookInstallCmd.Flags().StringVar(&hookFormat, "format", "text", "Output format (text, markdown, json, html)")
}
