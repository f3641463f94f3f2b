package bundle

import (
	"errors"
	"fmt"
)

// ErrNoFilesFound is returned when the selector accepts nothing. It ends the
// invocation cleanly; no payload is built and no sink is touched.
var ErrNoFilesFound = errors.New("no valid files found")

// FileReadError reports a selected file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// SinkWriteError reports a failed write to the file or clipboard sink.
type SinkWriteError struct {
	Sink string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("writing to %s: %v", e.Sink, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }
