package record

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/terrapower/armicontrib-dif3d/internal/diskmanager"
)

// Stream is a sequential record reader or writer over one file.
type Stream struct {
	dm     diskmanager.DiskManager
	fh     diskmanager.FileHandle
	path   string
	file   string
	mode   Mode
	layout Layout
	offset int64
	size   int64
	count  int
	closed bool
}

// Open opens path for record I/O. A read stream on a missing file fails with
// ErrNotFound; a write stream creates or truncates the file.
func Open(dm diskmanager.DiskManager, path string, mode Mode, layout Layout) (*Stream, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	flags := os.O_RDONLY
	if mode == Write {
		flags = os.O_CREATE | os.O_RDWR | os.O_TRUNC
	}

	fh, err := dm.Open(path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFound(path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	s := &Stream{
		dm:     dm,
		fh:     fh,
		path:   path,
		file:   filepath.Base(path),
		mode:   mode,
		layout: layout,
	}
	if mode == Read {
		info, err := fh.Stat()
		if err != nil {
			_ = dm.Close(path)
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		s.size = info.Size()
	}
	return s, nil
}

// Mode returns the stream direction.
func (s *Stream) Mode() Mode { return s.mode }

// File returns the base name of the underlying file.
func (s *Stream) File() string { return s.file }

// Offset returns the byte offset of the next record.
func (s *Stream) Offset() int64 { return s.offset }

// Count returns the number of complete records processed so far.
func (s *Stream) Count() int { return s.count }

// Remaining returns the number of unread bytes in a read stream.
func (s *Stream) Remaining() int64 {
	if s.mode != Read {
		return 0
	}
	return s.size - s.offset
}

// Close syncs a write stream and releases the file handle.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var syncErr error
	if s.mode == Write {
		syncErr = s.fh.Sync()
	}
	if err := s.dm.Close(s.path); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}
	if syncErr != nil {
		return fmt.Errorf("failed to sync %s: %w", s.path, syncErr)
	}
	return nil
}

// Record processes exactly one record. fn runs the field operations for the
// record; in read mode it must consume the whole payload.
func (s *Stream) Record(name string, fn func(r *Record) error) error {
	if s.closed {
		return fmt.Errorf("record %s: stream %s is closed", name, s.file)
	}
	if s.mode == Read {
		return s.readRecord(name, fn)
	}
	return s.writeRecord(name, fn)
}

func (s *Stream) readRecord(name string, fn func(r *Record) error) error {
	m := int64(s.layout.MarkerSize)
	if s.Remaining() < 2*m {
		return s.formatError(name, s.offset, "truncated stream: record marker missing")
	}

	head := make([]byte, m)
	if err := s.readFull(head, s.offset); err != nil {
		return s.formatError(name, s.offset, err.Error())
	}
	length := s.decodeMarker(head)
	if length < 0 {
		return s.formatError(name, s.offset, fmt.Sprintf("negative record length %d", length))
	}
	if length > s.Remaining()-2*m {
		return s.formatError(name, s.offset,
			fmt.Sprintf("truncated stream: record declares %d bytes, %d remain", length, s.Remaining()-2*m))
	}

	payload := make([]byte, length)
	if err := s.readFull(payload, s.offset+m); err != nil {
		return s.formatError(name, s.offset+m, err.Error())
	}
	tail := make([]byte, m)
	if err := s.readFull(tail, s.offset+m+length); err != nil {
		return s.formatError(name, s.offset+m+length, err.Error())
	}
	if trailing := s.decodeMarker(tail); trailing != length {
		return s.formatError(name, s.offset+m+length,
			fmt.Sprintf("leading marker %d does not match trailing marker %d", length, trailing))
	}

	r := &Record{
		stream: s,
		name:   name,
		base:   s.offset + m,
		buf:    payload,
	}
	if err := r.finish(fn(r)); err != nil {
		return err
	}
	if r.pos != len(payload) {
		return s.formatError(name, r.base+int64(r.pos),
			fmt.Sprintf("record holds %d bytes, fields consumed %d", len(payload), r.pos))
	}

	s.offset += 2*m + length
	s.count++
	return nil
}

func (s *Stream) writeRecord(name string, fn func(r *Record) error) error {
	m := s.layout.MarkerSize
	r := &Record{
		stream: s,
		name:   name,
		base:   s.offset + int64(m),
		buf:    make([]byte, 0, 64),
	}
	if err := r.finish(fn(r)); err != nil {
		return err
	}

	length := len(r.buf)
	if m == DefaultMarkerSize && length > math.MaxInt32 {
		return s.formatError(name, s.offset, fmt.Sprintf("record of %d bytes exceeds a 4-byte marker", length))
	}

	out := make([]byte, 2*m+length)
	s.encodeMarker(out[:m], int64(length))
	copy(out[m:], r.buf)
	s.encodeMarker(out[m+length:], int64(length))

	n, err := s.fh.WriteAt(out, s.offset)
	if err != nil {
		return fmt.Errorf("failed to write record %s to %s: %w", name, s.file, err)
	}
	s.offset += int64(n)
	s.count++
	return nil
}

func (s *Stream) readFull(b []byte, off int64) error {
	if len(b) == 0 {
		return nil
	}
	n, err := s.fh.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil {
		err = fmt.Errorf("short read")
	}
	return fmt.Errorf("truncated stream: read %d of %d bytes: %v", n, len(b), err)
}

func (s *Stream) decodeMarker(b []byte) int64 {
	if len(b) == LongMarkerSize {
		return int64(s.layout.Order.Uint64(b))
	}
	return int64(int32(s.layout.Order.Uint32(b)))
}

func (s *Stream) encodeMarker(b []byte, length int64) {
	if len(b) == LongMarkerSize {
		s.layout.Order.PutUint64(b, uint64(length))
		return
	}
	s.layout.Order.PutUint32(b, uint32(int32(length)))
}

func (s *Stream) formatError(recordName string, offset int64, reason string) error {
	return &FormatError{
		File:   s.file,
		Record: recordName,
		Offset: offset,
		Reason: reason,
	}
}
