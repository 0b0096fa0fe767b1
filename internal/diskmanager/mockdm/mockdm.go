// Package mockdm provides an in-memory disk manager for testing
package mockdm

import (
	"bytes"
	"errors"
	"io/fs"
	"sync"

	"github.com/MikhailWahib/skipkv/internal/diskmanager"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("mockdm: injected failure")

// MockFile implements diskmanager.FileHandle for testing purposes.
// Written data becomes visible to the manager on Close.
type MockFile struct {
	dm     *MockDiskManager
	path   string
	buf    bytes.Buffer
	write  bool
	closed bool
	// failWrite makes every Write return ErrInjected
	failWrite bool
}

func (m *MockFile) Read(p []byte) (int, error) {
	if m.closed {
		return 0, fs.ErrClosed
	}
	return m.buf.Read(p)
}

func (m *MockFile) Write(p []byte) (int, error) {
	if m.closed {
		return 0, fs.ErrClosed
	}
	if m.failWrite {
		return 0, ErrInjected
	}
	return m.buf.Write(p)
}

// Sync simulates syncing file contents to disk
func (m *MockFile) Sync() error {
	return nil
}

// Close commits written data to the owning manager
func (m *MockFile) Close() error {
	if m.closed {
		return fs.ErrClosed
	}
	m.closed = true
	if m.write {
		m.dm.mu.Lock()
		m.dm.files[m.path] = append([]byte(nil), m.buf.Bytes()...)
		m.dm.mu.Unlock()
	}
	return nil
}

// MockDiskManager implements diskmanager.DiskManager in memory
type MockDiskManager struct {
	mu    sync.Mutex
	files map[string][]byte

	// FailCreate makes Create return ErrInjected
	FailCreate bool
	// FailOpen makes Open return ErrInjected
	FailOpen bool
	// FailWrite makes writes to created files return ErrInjected
	FailWrite bool
}

var _ diskmanager.DiskManager = (*MockDiskManager)(nil)

// NewMockDiskManager creates a new MockDiskManager instance
func NewMockDiskManager() *MockDiskManager {
	return &MockDiskManager{
		files: make(map[string][]byte),
	}
}

// Create returns an empty writable mock file
func (dm *MockDiskManager) Create(path string) (diskmanager.FileHandle, error) {
	if dm.FailCreate {
		return nil, ErrInjected
	}
	return &MockFile{dm: dm, path: path, write: true, failWrite: dm.FailWrite}, nil
}

// Open returns a readable copy of a stored mock file
func (dm *MockDiskManager) Open(path string) (diskmanager.FileHandle, error) {
	if dm.FailOpen {
		return nil, ErrInjected
	}
	dm.mu.Lock()
	data, exists := dm.files[path]
	dm.mu.Unlock()
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	f := &MockFile{dm: dm, path: path}
	f.buf.Write(data)
	return f, nil
}

// SetFile stores data at path, replacing any previous content
func (dm *MockDiskManager) SetFile(path string, data []byte) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.files[path] = append([]byte(nil), data...)
}

// File returns the committed content at path
func (dm *MockDiskManager) File(path string) ([]byte, bool) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	data, ok := dm.files[path]
	return data, ok
}
