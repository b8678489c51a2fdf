// Package mocks provides mock implementations of the ports interfaces.
package mocks

import "github.com/8ware/unrarctl/internal/ports"

// UnrarCall records one invocation of the mock.
type UnrarCall struct {
	Op        string // "list" or "extract"
	File      string
	Password  string
	Dest      string
	Overwrite bool
	Flatten   bool
}

// MockUnrar implements ports.Unrar for testing with scripted results.
type MockUnrar struct {
	// ListOutput, ListStatus and ListErr script the result of List.
	ListOutput string
	ListStatus int
	ListErr    error

	// ExtractOutput, ExtractStatus and ExtractErr script the result of Extract.
	ExtractOutput string
	ExtractStatus int
	ExtractErr    error

	// Calls records every invocation in order.
	Calls []UnrarCall
}

// NewMockUnrar creates a new mock unrar client.
func NewMockUnrar() *MockUnrar {
	return &MockUnrar{}
}

// List returns the scripted listing result.
func (m *MockUnrar) List(file, password string) (string, int, error) {
	m.Calls = append(m.Calls, UnrarCall{Op: "list", File: file, Password: password})
	if m.ListErr != nil {
		return "", 0, m.ListErr
	}
	return m.ListOutput, m.ListStatus, nil
}

// Extract returns the scripted extraction result.
func (m *MockUnrar) Extract(file, password, dest string, overwrite, flatten bool) (string, int, error) {
	m.Calls = append(m.Calls, UnrarCall{
		Op:        "extract",
		File:      file,
		Password:  password,
		Dest:      dest,
		Overwrite: overwrite,
		Flatten:   flatten,
	})
	if m.ExtractErr != nil {
		return "", 0, m.ExtractErr
	}
	return m.ExtractOutput, m.ExtractStatus, nil
}

// Compile-time check that MockUnrar implements ports.Unrar.
var _ ports.Unrar = (*MockUnrar)(nil)
