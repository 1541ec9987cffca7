// Package mockdm provides an in-memory disk manager for codec tests
package mockdm

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/terrapower/armicontrib-dif3d/internal/diskmanager"
)

// MockFile implements diskmanager.FileHandle over a byte slice
type MockFile struct {
	mu   sync.Mutex
	data []byte
	name string
}

// WriteAt writes len(b) bytes to the file starting at byte offset off
func (m *MockFile) WriteAt(b []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	requiredLen := int(off) + len(b)
	if requiredLen > len(m.data) {
		newData := make([]byte, requiredLen)
		copy(newData, m.data)
		m.data = newData
	}
	return copy(m.data[off:], b), nil
}

// ReadAt reads len(b) bytes from the file starting at byte offset off
func (m *MockFile) ReadAt(b []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(b, m.data[off:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

// Close closes the mock file
func (m *MockFile) Close() error {
	return nil
}

// Sync is a no-op for in-memory files
func (m *MockFile) Sync() error {
	return nil
}

// Stat returns file information
func (m *MockFile) Stat() (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &testFileInfo{size: int64(len(m.data)), name: filepath.Base(m.name)}, nil
}

// Bytes returns a copy of the file contents
func (m *MockFile) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

type testFileInfo struct {
	size int64
	name string
}

func (m *testFileInfo) Name() string       { return m.name }
func (m *testFileInfo) Size() int64        { return m.size }
func (m *testFileInfo) Mode() os.FileMode  { return 0644 }
func (m *testFileInfo) ModTime() time.Time { return time.Now() }
func (m *testFileInfo) IsDir() bool        { return false }
func (m *testFileInfo) Sys() any           { return nil }

// MockDiskManager implements diskmanager.DiskManager in memory
type MockDiskManager struct {
	mu    sync.Mutex
	files map[string]*MockFile
}

// NewMockDiskManager creates a new MockDiskManager instance
func NewMockDiskManager() *MockDiskManager {
	return &MockDiskManager{
		files: make(map[string]*MockFile),
	}
}

// Open opens a mock file. Missing files are created only with os.O_CREATE,
// and os.O_TRUNC empties an existing one.
func (dm *MockDiskManager) Open(path string, flags int, _ os.FileMode) (diskmanager.FileHandle, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if file, exists := dm.files[path]; exists {
		if flags&os.O_TRUNC != 0 {
			file.mu.Lock()
			file.data = file.data[:0]
			file.mu.Unlock()
		}
		return file, nil
	}
	if flags&os.O_CREATE == 0 {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	file := &MockFile{
		data: []byte{},
		name: path,
	}
	dm.files[path] = file
	return file, nil
}

// Put installs raw file contents at path
func (dm *MockDiskManager) Put(path string, data []byte) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	dm.files[path] = &MockFile{data: buf, name: path}
}

// File returns the mock file at path, if any
func (dm *MockDiskManager) File(path string) (*MockFile, bool) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	f, ok := dm.files[path]
	return f, ok
}

// Exists reports whether a mock file is present
func (dm *MockDiskManager) Exists(path string) bool {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	_, ok := dm.files[path]
	return ok
}

// Delete removes a mock file
func (dm *MockDiskManager) Delete(path string) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.files, path)
	return nil
}

// List returns base names of mock files under dir matching the filter
func (dm *MockDiskManager) List(dir string, filter string) ([]string, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	var files []string
	for name := range dm.files {
		if filepath.Dir(name) != filepath.Clean(dir) {
			continue
		}
		base := filepath.Base(name)
		if filter == "" || strings.Contains(base, filter) {
			files = append(files, base)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Close closes a mock file
func (dm *MockDiskManager) Close(_ string) error {
	return nil
}
