// Package filefs provides an OS filesystem scheme for 'file:' URLs. It is a
// thin adapter: each node URL's path is translated to a native path under
// the configured root, and the platform primitives do the rest.
package filefs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hairyhenderson/go-vfsimpl"
)

// FileFS serves nodes from the tree of files rooted at a directory.
type FileFS struct {
	root string
}

// New returns a filesystem scheme rooted at the directory root. An empty
// root serves absolute URL paths as-is.
func New(root string) *FileFS {
	return &FileFS{root: root}
}

// NewFromURL returns a filesystem scheme rooted at the directory named by
// the URL's path. Windows drive letters and UNC hosts are supported.
func NewFromURL(u *url.URL) *FileFS {
	return New(pathForRoot(u))
}

var _ vfsimpl.Scheme = (*FileFS)(nil)

// return the correct filesystem path for the given root URL. Supports
// Windows paths and UNCs as well
func pathForRoot(u *url.URL) string {
	if u.Path == "" {
		return ""
	}

	rootPath := u.Path
	if len(rootPath) >= 3 {
		if rootPath[0] == '/' && rootPath[2] == ':' {
			rootPath = rootPath[1:]
		}
	}

	// a file:// URL with a host part should be interpreted as a UNC
	switch u.Host {
	case ".":
		rootPath = "//./" + rootPath
	case "":
		// nothin'
	default:
		rootPath = "//" + u.Host + rootPath
	}

	return rootPath
}

// fsPath translates a node URL into a native path confined under the root.
func (f *FileFS) fsPath(u *url.URL) string {
	// Clean resolves any ".." so the result cannot escape the root.
	p := path.Clean("/" + u.Path)

	return filepath.Join(f.root, filepath.FromSlash(p))
}

// GetNode - implements [vfsimpl.Scheme]. With create set, missing parent
// directories are created first.
func (f *FileFS) GetNode(ctx context.Context, _ *vfsimpl.VFS, u *url.URL, opts vfsimpl.NodeGetOptions) (vfsimpl.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fsPath := f.fsPath(u)

	if opts.IsCreate() {
		if err := os.MkdirAll(filepath.Dir(fsPath), 0o755); err != nil {
			return nil, err
		}
	}

	file, err := os.OpenFile(fsPath, opts.OpenFlag(), 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vfsimpl.NotExistError("open", u)
		}

		if os.IsExist(err) {
			return nil, vfsimpl.ExistError("open", u)
		}

		return nil, err
	}

	return &fileNode{
		file:     file,
		readable: opts.IsRead(),
		writable: opts.IsWrite(),
	}, nil
}

// RemoveNode - implements [vfsimpl.Scheme]. Directories are only removed
// recursively when force is set.
func (f *FileFS) RemoveNode(ctx context.Context, _ *vfsimpl.VFS, u *url.URL, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fsPath := f.fsPath(u)

	fi, err := os.Stat(fsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return vfsimpl.NotExistError("remove", u)
		}

		return err
	}

	if fi.IsDir() && force {
		return os.RemoveAll(fsPath)
	}

	return os.Remove(fsPath)
}

// Metadata - implements [vfsimpl.Scheme]. Sizes are exact.
func (f *FileFS) Metadata(ctx context.Context, _ *vfsimpl.VFS, u *url.URL) (vfsimpl.NodeMetadata, error) {
	if err := ctx.Err(); err != nil {
		return vfsimpl.NodeMetadata{}, err
	}

	fi, err := os.Stat(f.fsPath(u))
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
func (f *FileFS) ReadDir(ctx context.Context, _ *vfsimpl.VFS, u *url.URL) (vfsimpl.DirIter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(f.fsPath(u))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vfsimpl.NotExistError("readdir", u)
		}

		return nil, err
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

type fileNode struct {
	file     *os.File
	readable bool
	writable bool
}

var _ vfsimpl.Node = (*fileNode)(nil)

func (n *fileNode) IsReader() bool { return n.readable }
func (n *fileNode) IsWriter() bool { return n.writable }
func (n *fileNode) IsSeeker() bool { return true }

func (n *fileNode) Read(p []byte) (int, error) {
	if !n.readable {
		return 0, &vfsimpl.NodeError{Op: "read", Path: n.file.Name(), Err: vfsimpl.ErrNotPermitted}
	}

	return n.file.Read(p)
}

func (n *fileNode) Write(p []byte) (int, error) {
	if !n.writable {
		return 0, &vfsimpl.NodeError{Op: "write", Path: n.file.Name(), Err: vfsimpl.ErrNotPermitted}
	}

	return n.file.Write(p)
}

func (n *fileNode) Seek(offset int64, whence int) (int64, error) {
	return n.file.Seek(offset, whence)
}

func (n *fileNode) Close() error {
	return n.file.Close()
}
