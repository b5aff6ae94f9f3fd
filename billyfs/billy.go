// Package billyfs adapts a [billy.Filesystem] into a scheme, giving access
// to the go-billy ecosystem of back-ends (notably its in-memory and chroot
// filesystems) through the VFS.
package billyfs

import (
	"context"
	"net/url"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/hairyhenderson/go-vfsimpl"
)

// BillyFS serves nodes from a wrapped billy filesystem.
type BillyFS struct {
	bfs billy.Filesystem
}

// New returns a scheme wrapping bfs.
func New(bfs billy.Filesystem) *BillyFS {
	return &BillyFS{bfs: bfs}
}

var _ vfsimpl.Scheme = (*BillyFS)(nil)

// GetNode - implements [vfsimpl.Scheme].
func (b *BillyFS) GetNode(ctx context.Context, _ *vfsimpl.VFS, u *url.URL, opts vfsimpl.NodeGetOptions) (vfsimpl.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := b.bfs.OpenFile(u.Path, opts.OpenFlag(), 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vfsimpl.NotExistError("open", u)
		}

		if os.IsExist(err) {
			return nil, vfsimpl.ExistError("open", u)
		}

		return nil, err
	}

	return &billyNode{
		file:     file,
		readable: opts.IsRead(),
		writable: opts.IsWrite(),
	}, nil
}

// RemoveNode - implements [vfsimpl.Scheme]. Directories are removed
// recursively only when force is set.
func (b *BillyFS) RemoveNode(ctx context.Context, _ *vfsimpl.VFS, u *url.URL, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var err error
	if force {
		err = util.RemoveAll(b.bfs, u.Path)
	} else {
		err = b.bfs.Remove(u.Path)
	}

	if os.IsNotExist(err) {
		return vfsimpl.NotExistError("remove", u)
	}

	return err
}

// Metadata - implements [vfsimpl.Scheme].
func (b *BillyFS) Metadata(ctx context.Context, _ *vfsimpl.VFS, u *url.URL) (vfsimpl.NodeMetadata, error) {
	if err := ctx.Err(); err != nil {
		return vfsimpl.NodeMetadata{}, err
	}

	fi, err := b.bfs.Stat(u.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return vfsimpl.NodeMetadata{}, vfsimpl.NotExistError("metadata", u)
		}

		return vfsimpl.NodeMetadata{}, err
	}

	if fi.IsDir() {
		return vfsimpl.NodeMetadata{IsNode: false}, nil
	}

	return vfsimpl.NodeMetadata{IsNode: true, MinSize: fi.Size(), MaxSize: fi.Size()}, nil
}

// ReadDir - implements [vfsimpl.Scheme].
func (b *BillyFS) ReadDir(ctx context.Context, _ *vfsimpl.VFS, u *url.URL) (vfsimpl.DirIter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fis, err := b.bfs.ReadDir(u.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vfsimpl.NotExistError("readdir", u)
		}

		return nil, err
	}

	dir := u.Path
	if dir == "" || dir[len(dir)-1] != '/' {
		dir += "/"
	}

	i := 0

	return vfsimpl.DirIterFunc(func(ctx context.Context) (*vfsimpl.NodeEntry, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if i >= len(fis) {
			return nil, nil
		}

		fi := fis[i]
		i++

		return &vfsimpl.NodeEntry{
			URL: &url.URL{Scheme: u.Scheme, Path: dir + fi.Name(), OmitHost: true},
		}, nil
	}), nil
}

type billyNode struct {
	file     billy.File
	readable bool
	writable bool
}

var _ vfsimpl.Node = (*billyNode)(nil)

func (n *billyNode) IsReader() bool { return n.readable }
func (n *billyNode) IsWriter() bool { return n.writable }
func (n *billyNode) IsSeeker() bool { return true }

func (n *billyNode) Read(p []byte) (int, error) {
	if !n.readable {
		return 0, &vfsimpl.NodeError{Op: "read", Path: n.file.Name(), Err: vfsimpl.ErrNotPermitted}
	}

	return n.file.Read(p)
}

func (n *billyNode) Write(p []byte) (int, error) {
	if !n.writable {
		return 0, &vfsimpl.NodeError{Op: "write", Path: n.file.Name(), Err: vfsimpl.ErrNotPermitted}
	}

	return n.file.Write(p)
}

func (n *billyNode) Seek(offset int64, whence int) (int64, error) {
	return n.file.Seek(offset, whence)
}

func (n *billyNode) Close() error {
	return n.file.Close()
}
