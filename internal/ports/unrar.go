// Package ports defines interfaces (contracts) for external dependencies.
// These enable dependency injection and testability via mock implementations.
package ports

// Unrar abstracts invocations of the external unrar binary.
// Production code uses the ExecUnrar adapter; tests use MockUnrar.
//
// All methods return the combined stdout/stderr text of the subprocess and
// its wait status (exit code shifted left by eight bits, as encoded by
// wait(2)). A zero status means the tool succeeded. The error return is
// reserved for failures to run the binary at all; a tool that ran and exited
// non-zero is reported through the status, not the error.
type Unrar interface {
	// List runs a verbose bare-format listing over the archive. The output
	// contains one slash-delimited member path per line.
	List(file, password string) (output string, status int, err error)

	// Extract extracts the archive into dest. When flatten is true the
	// archive's directory structure is discarded and all members land
	// directly in dest. When overwrite is true existing files are replaced
	// without prompting; otherwise they are kept.
	Extract(file, password, dest string, overwrite, flatten bool) (output string, status int, err error)
}
