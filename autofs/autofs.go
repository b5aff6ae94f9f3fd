// Package autofs provides a virtual filesystem pre-registered with all of the
// self-contained schemes supported by this module. Using this package will
// compile all of those schemes into the resulting binary, so unless you need
// every one of them, use vfsimpl.New and register schemes individually instead.
package autofs

import (
	"context"

	"github.com/hairyhenderson/go-vfsimpl"
	"github.com/hairyhenderson/go-vfsimpl/datafs"
	"github.com/hairyhenderson/go-vfsimpl/filefs"
	"github.com/hairyhenderson/go-vfsimpl/memfs"
)

// New returns a virtual filesystem with the "mem", "file", and "data" schemes
// already registered. Composite schemes like overlayfs and symlinkfs need
// per-instance configuration, so they must be registered by the caller.
func New() *vfsimpl.VFS {
	v := vfsimpl.New()

	// none of these registrations can fail on a fresh VFS
	_ = v.RegisterScheme("mem", memfs.New())
	_ = v.RegisterScheme("file", filefs.New("/"))
	_ = v.RegisterScheme("data", datafs.New())

	return v
}

// GetNode opens the node addressed by the given URL, using a filesystem
// populated by [New]. If no scheme can be found for the URL, an error will be
// returned.
func GetNode(ctx context.Context, u string, opts vfsimpl.NodeGetOptions) (vfsimpl.Node, error) {
	return New().GetNodeAt(ctx, u, opts)
}
