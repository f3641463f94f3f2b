// Package cli implements the devkit command tree with cobra.
//
// Commands report through ui.Reporter on the command's writers and record
// the process exit code in a package variable that Run returns: 0 success,
// 2 usage error, 3 authentication error, 4 runtime error.
package cli
