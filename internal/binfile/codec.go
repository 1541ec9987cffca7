package binfile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/terrapower/armicontrib-dif3d/internal/diskmanager"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
)

// Codec reads and writes interface files through a disk manager.
type Codec struct {
	dm     diskmanager.DiskManager
	layout record.Layout
	logger *zap.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for per-file debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLayout overrides the default little-endian, 4-byte-marker layout.
func WithLayout(layout record.Layout) Option {
	return func(c *Codec) { c.layout = layout }
}

// NewCodec creates a Codec. A nil disk manager uses the local filesystem.
func NewCodec(dm diskmanager.DiskManager, opts ...Option) *Codec {
	if dm == nil {
		dm = diskmanager.NewDiskManager()
	}
	c := &Codec{
		dm:     dm,
		layout: record.DefaultLayout(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layout returns the record layout used by the codec.
func (c *Codec) Layout() record.Layout { return c.layout }

// DiskManager returns the disk manager used by the codec.
func (c *Codec) DiskManager() diskmanager.DiskManager { return c.dm }

// ReadBinary decodes the file at path with schema. On any failure it returns
// a nil container; a partially decoded file is never handed out. Records
// after the last step are left unread and counted in Container.Trailing.
func (c *Codec) ReadBinary(schema Schema, path string) (*Container, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	st, err := record.Open(c.dm, path, record.Read, c.layout)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			c.logger.Warn("failed to close interface file", zap.String("path", path), zap.Error(cerr))
		}
	}()

	cont := NewContainer(schema)
	if err := replay(schema, &exchange{st: st, c: cont}); err != nil {
		return nil, fmt.Errorf("failed to read %s file %s: %w", schema.Name, path, err)
	}

	cont.Trailing = st.Remaining()
	if cont.Trailing > 0 {
		c.logger.Warn("interface file has records the schema does not read",
			zap.String("format", schema.Name),
			zap.String("path", path),
			zap.Int64("trailing_bytes", cont.Trailing),
		)
	}
	c.logger.Debug("read interface file",
		zap.String("format", schema.Name),
		zap.String("path", path),
		zap.Int("records", st.Count()),
		zap.Int64("bytes", st.Offset()),
	)
	return cont, nil
}

// WriteBinary encodes cont at path using the schema it carries. A failed
// write removes the partial file.
func (c *Codec) WriteBinary(cont *Container, path string) error {
	if cont == nil {
		return errors.New("binfile: nil container")
	}
	schema := cont.Schema
	if err := schema.Validate(); err != nil {
		return err
	}
	st, err := record.Open(c.dm, path, record.Write, c.layout)
	if err != nil {
		return err
	}

	werr := replay(schema, &exchange{st: st, c: cont})
	cerr := st.Close()
	if werr != nil {
		if derr := c.dm.Delete(path); derr != nil {
			c.logger.Warn("failed to remove partial interface file", zap.String("path", path), zap.Error(derr))
		}
		return fmt.Errorf("failed to write %s file %s: %w", schema.Name, path, werr)
	}
	if cerr != nil {
		return cerr
	}

	c.logger.Debug("wrote interface file",
		zap.String("format", schema.Name),
		zap.String("path", path),
		zap.Int("records", st.Count()),
		zap.Int64("bytes", st.Offset()),
	)
	return nil
}

func replay(schema Schema, x *exchange) error {
	for _, step := range schema.Steps {
		if when := step.predicate(); when != nil && !when(x.c.Metadata) {
			continue
		}
		if err := step.run(x); err != nil {
			return err
		}
	}
	return nil
}
