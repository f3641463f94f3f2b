// Package scaffold implements the create command: it resolves a project
// name and template, asking for whichever the caller did not supply, and
// writes the project marker file.
package scaffold
