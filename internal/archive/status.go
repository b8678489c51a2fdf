// Package archive lists and extracts RAR archives by driving the external
// unrar binary and reshaping its textual output into structured results.
package archive

import (
	"errors"
	"fmt"
)

// Published status codes. The values are the raw wait statuses of the unrar
// process (exit code << 8) and are part of the stable interface; callers
// compare against them, so they must never be renumbered.
const (
	// StatusOK means the tool exited cleanly.
	StatusOK = 0

	// StatusBadArchive means a CRC check failed, which unrar also reports
	// for a wrong or missing password on an encrypted archive.
	StatusBadArchive = 768

	// StatusNotFound means the archive file is missing or could not be
	// opened as an archive.
	StatusNotFound = 2560
)

// ErrNoFile is returned when an operation is attempted without an archive
// file configured. The subprocess is never started in this case.
var ErrNoFile = errors.New("no archive file given")

// ToolError reports a non-zero exit of the unrar subprocess. Status holds
// the wait status (compare against StatusBadArchive, StatusNotFound) and
// Output the combined stdout/stderr text of the failed run.
type ToolError struct {
	Status int
	Output string
}

func (e *ToolError) Error() string {
	switch e.Status {
	case StatusBadArchive:
		return fmt.Sprintf("unrar exited with status %d (CRC failed or wrong password)", e.Status)
	case StatusNotFound:
		return fmt.Sprintf("unrar exited with status %d (archive missing or unreadable)", e.Status)
	default:
		return fmt.Sprintf("unrar exited with status %d", e.Status)
	}
}
