// Package bundle concatenates a selected set of project files into one
// Markdown payload and delivers it to the clipboard or to a file.
//
// The payload starts with a file-structure block listing every selected
// path, followed by one fenced section per file:
//
//	# Project Context
//
//	## File Structure
//	```
//	a.txt
//	```
//
//
//	# File: a.txt
//	```
//	hello
//	```
//
// Clipboard payloads longer than Config.LargeOutputLimit characters are only
// written after the injected ConfirmFunc agrees. File output is never gated.
package bundle
