// Package selector walks a project directory and decides which files belong
// in a context bundle.
//
// Exclusion is layered. Structural directories (.git, node_modules) are never
// entered during the walk. Every remaining file is then checked against the
// built-in noise list and, if present, the project's ignore file (.gitignore by
// default, gitignore dialect including negation). Matching ignores case, and a
// file under an excluded directory stays excluded. Files that survive both
// layers are sniffed with [IsBinary]; binary files are dropped.
//
// [Selector.Select] returns root-relative, slash-separated paths in walk order.
package selector
