package archive

import (
	"fmt"

	"github.com/8ware/unrarctl/internal/ports"
)

// Options configures a single listing or extraction run.
type Options struct {
	// File is the path to the archive. Mandatory; every operation fails
	// before starting the subprocess when it is empty.
	File string

	// Password unlocks encrypted archives. Empty means no password and
	// the tool is told never to prompt for one.
	Password string

	// Destination is the directory extraction writes into. Empty means
	// the current working directory. Ignored by listing.
	Destination string

	// Overwrite replaces existing files during extraction instead of
	// keeping them. Ignored by listing.
	Overwrite bool
}

// Service exposes the listing and extraction operations over an injected
// unrar port. Every call returns its result directly; there is no shared
// state between calls, so a Service is safe for concurrent use as long as
// the underlying port is.
type Service struct {
	unrar ports.Unrar
}

// New creates a Service driving the given unrar port.
func New(unrar ports.Unrar) *Service {
	return &Service{unrar: unrar}
}

// List returns the archive's directory structure as a Tree without
// extracting any data. On a non-zero tool status the tree is empty and the
// error is a *ToolError carrying the status and raw output.
func (s *Service) List(opts Options) (Tree, error) {
	if opts.File == "" {
		return nil, ErrNoFile
	}

	out, status, err := s.unrar.List(opts.File, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", opts.File, err)
	}
	if status != StatusOK {
		return Tree{}, &ToolError{Status: status, Output: out}
	}

	return BuildTree(out), nil
}

// Extract extracts the archive into opts.Destination, recreating its
// internal directory structure. It returns the extracted member paths in
// extraction order. On a non-zero tool status the slice is empty and the
// error is a *ToolError.
func (s *Service) Extract(opts Options) ([]string, error) {
	return s.extract(opts, false)
}

// ExtractFlat is Extract without the directory structure: all members land
// directly in the destination.
func (s *Service) ExtractFlat(opts Options) ([]string, error) {
	return s.extract(opts, true)
}

func (s *Service) extract(opts Options, flatten bool) ([]string, error) {
	if opts.File == "" {
		return nil, ErrNoFile
	}

	out, status, err := s.unrar.Extract(opts.File, opts.Password, opts.Destination, opts.Overwrite, flatten)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", opts.File, err)
	}
	if status != StatusOK {
		return []string{}, &ToolError{Status: status, Output: out}
	}

	return ParseExtracted(out), nil
}
