// Package memfs provides an in-memory scheme for the 'mem:' URL scheme. It
// implements the full POSIX-like open semantics (create, exclusive create,
// truncate, append) over a concurrent map of path to shared byte buffer,
// without touching any OS resource.
package memfs

import (
	"context"
	"io"
	"io/fs"
	"net/url"
	"sync"

	"github.com/hairyhenderson/go-vfsimpl"
	"github.com/hairyhenderson/go-vfsimpl/internal"
)

// MemFS stores node content keyed by URL path. The buffer backing a path is
// shared between the store and every node opened from it, so content
// written through one handle is visible to all others, and a force-remove
// truncates content out from under still-open handles.
type MemFS struct {
	mu      sync.RWMutex
	storage map[string]*buffer
}

// New returns an empty in-memory store.
func New() *MemFS {
	return &MemFS{storage: map[string]*buffer{}}
}

var _ vfsimpl.Scheme = (*MemFS)(nil)

// A buffer's lifetime is its longest holder: the map entry or any
// still-open node. Locking is multiple-readers-xor-single-writer per
// individual read/write/seek call; there is no snapshot isolation across a
// sequence of calls.
type buffer struct {
	mu   sync.RWMutex
	data []byte
}

func (m *MemFS) lookup(path string) (*buffer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buf, ok := m.storage[path]

	return buf, ok
}

// GetNode - implements [vfsimpl.Scheme].
func (m *MemFS) GetNode(ctx context.Context, _ *vfsimpl.VFS, u *url.URL, opts vfsimpl.NodeGetOptions) (vfsimpl.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := m.open(u, opts)
	if err != nil {
		return nil, err
	}

	var cursor int64
	if opts.IsAppend() {
		buf.mu.RLock()
		cursor = int64(len(buf.data))
		buf.mu.RUnlock()
	}

	node := &memNode{
		buf:      buf,
		cursor:   cursor,
		readable: opts.IsRead(),
		writable: opts.IsWrite(),
		path:     u.String(),
	}

	return node, nil
}

func (m *MemFS) open(u *url.URL, opts vfsimpl.NodeGetOptions) (*buffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := internal.NodePath(u)

	if buf, ok := m.storage[path]; ok {
		if opts.IsCreateNew() {
			return nil, vfsimpl.ExistError("open", u)
		}

		if opts.IsTruncate() {
			buf.mu.Lock()
			buf.data = buf.data[:0]
			buf.mu.Unlock()
		}

		return buf, nil
	}

	if !opts.IsCreate() {
		return nil, vfsimpl.NotExistError("open", u)
	}

	buf := &buffer{}
	m.storage[path] = buf

	return buf, nil
}

// RemoveNode - implements [vfsimpl.Scheme]. With force set, the shared
// buffer is cleared in place as well, so nodes still holding it read empty
// content from then on.
func (m *MemFS) RemoveNode(ctx context.Context, _ *vfsimpl.VFS, u *url.URL, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := internal.NodePath(u)

	m.mu.Lock()
	buf, ok := m.storage[path]
	delete(m.storage, path)
	m.mu.Unlock()

	if !ok {
		return vfsimpl.NotExistError("remove", u)
	}

	if force {
		buf.mu.Lock()
		buf.data = nil
		buf.mu.Unlock()
	}

	return nil
}

// Metadata - implements [vfsimpl.Scheme]. Sizes are always exact.
func (m *MemFS) Metadata(ctx context.Context, _ *vfsimpl.VFS, u *url.URL) (vfsimpl.NodeMetadata, error) {
	if err := ctx.Err(); err != nil {
		return vfsimpl.NodeMetadata{}, err
	}

	buf, ok := m.lookup(internal.NodePath(u))
	if !ok {
		return vfsimpl.NodeMetadata{}, vfsimpl.NotExistError("metadata", u)
	}

	buf.mu.RLock()
	size := int64(len(buf.data))
	buf.mu.RUnlock()

	return vfsimpl.NodeMetadata{IsNode: true, MinSize: size, MaxSize: size}, nil
}

// ReadDir - implements [vfsimpl.Scheme]. The store has no real hierarchy: a
// "directory" is a path-string prefix, and non-matching paths are skipped
// lazily as the listing is drained.
func (m *MemFS) ReadDir(ctx context.Context, _ *vfsimpl.VFS, u *url.URL) (vfsimpl.DirIter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := internal.NodePath(u)
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}

	m.mu.RLock()
	paths := make([]string, 0, len(m.storage))
	for path := range m.storage {
		paths = append(paths, path)
	}
	m.mu.RUnlock()

	i := 0

	return vfsimpl.DirIterFunc(func(ctx context.Context) (*vfsimpl.NodeEntry, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for ; i < len(paths); i++ {
			path := paths[i]
			if len(path) < len(prefix) || path[:len(prefix)] != prefix {
				continue
			}

			i++

			return &vfsimpl.NodeEntry{URL: &url.URL{Scheme: u.Scheme, Path: path, OmitHost: true}}, nil
		}

		return nil, nil
	}), nil
}

type memNode struct {
	buf      *buffer
	cursor   int64
	readable bool
	writable bool
	path     string
}

var _ vfsimpl.Node = (*memNode)(nil)

func (n *memNode) IsReader() bool { return n.readable }
func (n *memNode) IsWriter() bool { return n.writable }
func (n *memNode) IsSeeker() bool { return true }

// Read copies from the shared buffer at the private cursor. Reading at or
// past end-of-content is end-of-stream, not a failure.
func (n *memNode) Read(p []byte) (int, error) {
	if n.buf == nil {
		return 0, &vfsimpl.NodeError{Op: "read", Path: n.path, Err: fs.ErrClosed}
	}

	if !n.readable {
		return 0, &vfsimpl.NodeError{Op: "read", Path: n.path, Err: vfsimpl.ErrNotPermitted}
	}

	n.buf.mu.RLock()
	defer n.buf.mu.RUnlock()

	if n.cursor >= int64(len(n.buf.data)) {
		return 0, io.EOF
	}

	amt := copy(p, n.buf.data[n.cursor:])
	n.cursor += int64(amt)

	return amt, nil
}

// Write splices into the shared buffer at the cursor: entirely past the end
// appends, entirely in bounds overwrites in place, and a write straddling
// the end overwrites the in-bounds tail then appends the remainder.
func (n *memNode) Write(p []byte) (int, error) {
	if n.buf == nil {
		return 0, &vfsimpl.NodeError{Op: "write", Path: n.path, Err: fs.ErrClosed}
	}

	if !n.writable {
		return 0, &vfsimpl.NodeError{Op: "write", Path: n.path, Err: vfsimpl.ErrNotPermitted}
	}

	n.buf.mu.Lock()
	defer n.buf.mu.Unlock()

	size := int64(len(n.buf.data))

	switch {
	case n.cursor >= size:
		n.buf.data = append(n.buf.data, p...)
	case n.cursor+int64(len(p)) <= size:
		copy(n.buf.data[n.cursor:], p)
	default:
		inBounds := size - n.cursor
		copy(n.buf.data[n.cursor:], p[:inBounds])
		n.buf.data = append(n.buf.data, p[inBounds:]...)
	}

	n.cursor += int64(len(p))

	return len(p), nil
}

// Seek clamps the resulting cursor to [0, len]; it never grows the buffer.
func (n *memNode) Seek(offset int64, whence int) (int64, error) {
	if n.buf == nil {
		return 0, &vfsimpl.NodeError{Op: "seek", Path: n.path, Err: fs.ErrClosed}
	}

	n.buf.mu.RLock()
	size := int64(len(n.buf.data))
	n.buf.mu.RUnlock()

	var cursor int64

	switch whence {
	case io.SeekStart:
		cursor = offset
	case io.SeekEnd:
		cursor = size + offset
	case io.SeekCurrent:
		cursor = n.cursor + offset
	default:
		return 0, &vfsimpl.NodeError{Op: "seek", Path: n.path, Err: vfsimpl.ErrNotPermitted}
	}

	if cursor < 0 {
		cursor = 0
	} else if cursor > size {
		cursor = size
	}

	n.cursor = cursor

	return n.cursor, nil
}

// Close releases the node's hold on the shared buffer. No flush or sync.
func (n *memNode) Close() error {
	n.buf = nil

	return nil
}
