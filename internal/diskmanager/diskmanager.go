// Package diskmanager abstracts the file operations used to persist SkipKV data.
package diskmanager

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MikhailWahib/skipkv/internal/logger"
)

// FileHandle is an open data file. Handles are scoped to a single dump or
// load and must be closed by the caller.
type FileHandle interface {
	io.Reader
	io.Writer
	// Sync commits the current contents of the file to stable storage.
	Sync() error
	// Close closes the file handle, rendering it unusable for I/O.
	Close() error
}

// DiskManager defines methods for file operations.
type DiskManager interface {
	// Create opens path for writing, truncating any existing file and
	// creating missing parent directories.
	Create(path string) (FileHandle, error)
	// Open opens path for reading.
	Open(path string) (FileHandle, error)
}

type diskManager struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewDiskManager creates a DiskManager backed by the local filesystem.
func NewDiskManager() DiskManager {
	return &diskManager{dirPerm: 0755, filePerm: 0644}
}

func (dm *diskManager) Create(path string) (FileHandle, error) {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, dm.dirPerm); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Storage.Info().Str("dir", dir).Msg("created dir")
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, dm.filePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for writing: %w", path, err)
	}
	return file, nil
}

func (dm *diskManager) Open(path string) (FileHandle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for reading: %w", path, err)
	}
	return file, nil
}
