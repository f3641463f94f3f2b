// Devkit is a developer CLI for LLM-assisted workflows.
//
// It bundles a codebase into a single LLM-ready context payload, reviews
// staged changes or pull requests with an OpenAI-compatible model, and
// scaffolds projects.
//
// Usage:
//
//	devkit copycode                   # copy the project context to the clipboard
//	devkit copycode -o context.md     # write it to a file instead
//	devkit copycode --dry-run         # list the selected files and token estimate
//	devkit review                     # review staged changes
//	devkit review --unstaged          # review working tree changes
//	devkit github 42                  # review PR #42 and comment on it
//	devkit create my-app -t Go        # scaffold a project
package main
