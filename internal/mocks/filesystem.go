package mocks

import (
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/8ware/unrarctl/internal/ports"
)

// MockFileSystem implements ports.FileSystem for testing with an in-memory
// set of paths. Directories are marked with a trailing slash in Files.
type MockFileSystem struct {
	// Files maps path to file size. A trailing slash marks a directory.
	Files map[string]int64

	// CreatedDirs records every MkdirAll call in order.
	CreatedDirs []string

	// Errors allows simulating errors for specific operations.
	Errors struct {
		ReadDir  error
		Stat     error
		MkdirAll error
	}
}

// NewMockFileSystem creates an empty mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{Files: make(map[string]int64)}
}

// ReadDir returns the direct children of the named directory.
func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if m.Errors.ReadDir != nil {
		return nil, m.Errors.ReadDir
	}

	prefix := strings.TrimSuffix(name, "/") + "/"
	if name == "." || name == "" {
		prefix = ""
	}

	seen := make(map[string]bool)
	var entries []os.DirEntry
	for path, size := range m.Files {
		if !strings.HasPrefix(path, prefix) || path == prefix {
			continue
		}
		rest := strings.TrimPrefix(path, prefix)
		child := rest
		dir := false
		if i := strings.Index(rest, "/"); i >= 0 {
			child = rest[:i]
			dir = true
		}
		if seen[child] {
			continue
		}
		seen[child] = true
		entries = append(entries, mockDirEntry{name: child, dir: dir, size: size})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Stat returns info for the named path.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.Errors.Stat != nil {
		return nil, m.Errors.Stat
	}
	if size, ok := m.Files[name]; ok {
		return mockFileInfo{name: name, size: size}, nil
	}
	if _, ok := m.Files[strings.TrimSuffix(name, "/")+"/"]; ok {
		return mockFileInfo{name: name, dir: true}, nil
	}
	return nil, os.ErrNotExist
}

// MkdirAll records the directory creation.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.Errors.MkdirAll != nil {
		return m.Errors.MkdirAll
	}
	m.CreatedDirs = append(m.CreatedDirs, path)
	m.Files[strings.TrimSuffix(path, "/")+"/"] = 0
	return nil
}

type mockDirEntry struct {
	name string
	dir  bool
	size int64
}

func (e mockDirEntry) Name() string { return e.name }
func (e mockDirEntry) IsDir() bool  { return e.dir }
func (e mockDirEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}
func (e mockDirEntry) Info() (fs.FileInfo, error) {
	return mockFileInfo{name: e.name, size: e.size, dir: e.dir}, nil
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i mockFileInfo) Name() string { return i.name }
func (i mockFileInfo) Size() int64  { return i.size }
func (i mockFileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.dir }
func (i mockFileInfo) Sys() any           { return nil }

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
