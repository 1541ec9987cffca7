// Package diskmanager owns file access for interface files and solver output.
// Every codec stream opens and closes its file through a DiskManager so that
// tests can swap in the in-memory implementation from mockdm.
package diskmanager

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ErrAccessConflict is returned when a path that is already open is opened
// again with a different access mode, e.g. written while being read.
var ErrAccessConflict = errors.New("file already open with another access mode")

// FileHandle is the random-access view of one file that record streams use.
// *os.File satisfies it.
type FileHandle interface {
	ReadAt(b []byte, off int64) (int, error)
	WriteAt(b []byte, off int64) (int, error)
	Close() error
	// Sync flushes a written interface file before its stream reports success.
	Sync() error
	// Stat gives the file size, which bounds every record read.
	Stat() (os.FileInfo, error)
}

// NewFileHandle returns file as a FileHandle.
func NewFileHandle(file *os.File) FileHandle { return file }

// DiskManager is the file layer under record streams and the printed-output
// reader.
type DiskManager interface {
	// Open returns the handle for path, reusing a handle that is already
	// open with the same access mode.
	Open(path string, flags int, perm os.FileMode) (FileHandle, error)
	// Exists reports whether a regular file is present at path.
	Exists(path string) bool
	// Delete closes path if open and removes it. A missing file is not an error.
	Delete(path string) error
	// List returns the names of regular files in dir whose name contains
	// filter, in directory order. An empty filter matches every file.
	List(dir string, filter string) ([]string, error)
	// Close releases the handle for path. Closing a path that is not open
	// does nothing.
	Close(path string) error
}

type openFile struct {
	handle FileHandle
	access int
}

type diskManager struct {
	mu   sync.Mutex
	open map[string]openFile
}

// NewDiskManager returns a DiskManager over the local filesystem.
func NewDiskManager() DiskManager {
	return &diskManager{open: make(map[string]openFile)}
}

func accessMode(flags int) int {
	return flags & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR)
}

func (dm *diskManager) Open(path string, flags int, perm os.FileMode) (FileHandle, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	access := accessMode(flags)
	if f, ok := dm.open[path]; ok {
		if f.access != access {
			return nil, fmt.Errorf("open %s: %w", path, ErrAccessConflict)
		}
		return f.handle, nil
	}
	file, err := os.OpenFile(path, flags, perm)
	if err != nil {
		return nil, err
	}
	dm.open[path] = openFile{handle: NewFileHandle(file), access: access}
	return file, nil
}

func (dm *diskManager) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (dm *diskManager) Delete(path string) error {
	dm.mu.Lock()
	if f, ok := dm.open[path]; ok {
		delete(dm.open, path)
		_ = f.handle.Close()
	}
	dm.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (dm *diskManager) List(dir string, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.Contains(e.Name(), filter) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (dm *diskManager) Close(path string) error {
	dm.mu.Lock()
	f, ok := dm.open[path]
	delete(dm.open, path)
	dm.mu.Unlock()

	if !ok {
		return nil
	}
	if err := f.handle.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
