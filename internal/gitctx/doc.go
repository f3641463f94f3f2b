// Package gitctx reads diffs and repository metadata from a local git
// checkout by shelling out to git.
package gitctx
