// Package embedfs adapts any fs.FS - most usefully an embed.FS of assets
// compiled into the binary - into a read-only scheme. Lookups are static;
// nodes are seekable readers over the embedded content.
package embedfs

import (
	"bytes"
	"context"
	"io/fs"
	"net/url"
	"strings"

	"github.com/hairyhenderson/go-vfsimpl"
)

// EmbedFS serves nodes from a wrapped fs.FS.
type EmbedFS struct {
	fsys fs.FS
}

// New returns a scheme wrapping fsys.
func New(fsys fs.FS) *EmbedFS {
	return &EmbedFS{fsys: fsys}
}

var _ vfsimpl.Scheme = (*EmbedFS)(nil)

// fs.FS paths are unrooted; URL paths are absolute.
func fsName(u *url.URL) string {
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "."
	}

	return name
}

// GetNode - implements [vfsimpl.Scheme]. Only read-mode opens are
// permitted; the whole asset is materialized so the node can seek.
func (e *EmbedFS) GetNode(ctx context.Context, _ *vfsimpl.VFS, u *url.URL, opts vfsimpl.NodeGetOptions) (vfsimpl.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.IsWrite() || !opts.IsRead() {
		return nil, vfsimpl.AccessError("open", u)
	}

	content, err := fs.ReadFile(e.fsys, fsName(u))
	if err != nil {
		return nil, vfsimpl.NotExistError("open", u)
	}

	return &embedNode{r: bytes.NewReader(content)}, nil
}

// RemoveNode - implements [vfsimpl.Scheme]. Embedded assets cannot be
// removed.
func (e *EmbedFS) RemoveNode(ctx context.Context, _ *vfsimpl.VFS, u *url.URL, _ bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return vfsimpl.AccessError("remove", u)
}

// Metadata - implements [vfsimpl.Scheme].
func (e *EmbedFS) Metadata(ctx context.Context, _ *vfsimpl.VFS, u *url.URL) (vfsimpl.NodeMetadata, error) {
	if err := ctx.Err(); err != nil {
		return vfsimpl.NodeMetadata{}, err
	}

	fi, err := fs.Stat(e.fsys, fsName(u))
	if err != nil {
		return vfsimpl.NodeMetadata{}, vfsimpl.NotExistError("metadata", u)
	}

	if fi.IsDir() {
		return vfsimpl.NodeMetadata{IsNode: false}, nil
	}

	return vfsimpl.NodeMetadata{IsNode: true, MinSize: fi.Size(), MaxSize: fi.Size()}, nil
}

// ReadDir - implements [vfsimpl.Scheme].
func (e *EmbedFS) ReadDir(ctx context.Context, _ *vfsimpl.VFS, u *url.URL) (vfsimpl.DirIter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(e.fsys, fsName(u))
	if err != nil {
		return nil, vfsimpl.NotExistError("readdir", u)
	}

	dir := strings.TrimSuffix(u.Path, "/")
	i := 0

	return vfsimpl.DirIterFunc(func(ctx context.Context) (*vfsimpl.NodeEntry, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if i >= len(entries) {
			return nil, nil
		}

		entry := entries[i]
		i++

		return &vfsimpl.NodeEntry{
			URL: &url.URL{Scheme: u.Scheme, Path: dir + "/" + entry.Name(), OmitHost: true},
		}, nil
	}), nil
}

type embedNode struct {
	vfsimpl.DenyWrite

	r *bytes.Reader
}

var _ vfsimpl.Node = (*embedNode)(nil)

func (n *embedNode) IsReader() bool { return true }
func (n *embedNode) IsSeeker() bool { return true }

func (n *embedNode) Read(p []byte) (int, error) { return n.r.Read(p) }

func (n *embedNode) Seek(offset int64, whence int) (int64, error) {
	return n.r.Seek(offset, whence)
}

func (n *embedNode) Close() error { return nil }
