// Package overlayfs provides a composite scheme that layers other schemes
// union-mount style. Requests fall through the layers in declared order, so
// a read/write "scratch" layer can transparently shadow read-only layers
// beneath it, while writers never silently fall through to a layer that
// cannot satisfy the request.
package overlayfs

import (
	"context"
	"net/url"

	"github.com/hairyhenderson/go-vfsimpl"
)

type access int

const (
	accessRead access = iota
	accessWrite
	accessReadWrite
)

// Layer pairs a scheme with its declared access mode. Declaration order is
// significant: it is the lookup order.
type Layer struct {
	scheme vfsimpl.Scheme
	access access
}

// Read declares a layer that is only consulted by read-mode opens.
func Read(s vfsimpl.Scheme) Layer {
	return Layer{scheme: s, access: accessRead}
}

// Write declares a layer that is only consulted by write-mode opens and by
// removals.
func Write(s vfsimpl.Scheme) Layer {
	return Layer{scheme: s, access: accessWrite}
}

// ReadWrite declares a layer consulted by both read- and write-mode opens,
// and by removals.
func ReadWrite(s vfsimpl.Scheme) Layer {
	return Layer{scheme: s, access: accessReadWrite}
}

// OverlayFS resolves every operation through an ordered list of layers. The
// layer list is assembled at construction and must not be modified once the
// scheme is serving requests.
type OverlayFS struct {
	layers []Layer
}

// New returns an overlay over the given layers, in priority order. The
// signature requires at least one layer: an empty overlay is a programmer
// error, not a runtime condition.
func New(first Layer, rest ...Layer) *OverlayFS {
	return &OverlayFS{layers: append([]Layer{first}, rest...)}
}

var _ vfsimpl.Scheme = (*OverlayFS)(nil)

// Append adds layers after the existing ones. Setup-time only.
func (o *OverlayFS) Append(layers ...Layer) *OverlayFS {
	o.layers = append(o.layers, layers...)

	return o
}

// Prepend adds layers before the existing ones. Setup-time only.
func (o *OverlayFS) Prepend(layers ...Layer) *OverlayFS {
	o.layers = append(append([]Layer{}, layers...), o.layers...)

	return o
}

func (l Layer) eligible(opts vfsimpl.NodeGetOptions) bool {
	switch l.access {
	case accessRead:
		return opts.IsRead()
	case accessWrite:
		return opts.IsWrite()
	default:
		return opts.IsRead() || opts.IsWrite()
	}
}

// GetNode - implements [vfsimpl.Scheme]. Layers are attempted in declared
// order, filtered by their access mode against the requested options; the
// first success wins. Per-layer failures are swallowed: if no layer is both
// eligible and successful, the aggregate failure is always
// [vfsimpl.ErrNodeNotExist], even when the true per-layer cause was an I/O
// error. That trades diagnostic precision for simple fallback semantics.
func (o *OverlayFS) GetNode(ctx context.Context, v *vfsimpl.VFS, u *url.URL, opts vfsimpl.NodeGetOptions) (vfsimpl.Node, error) {
	for _, layer := range o.layers {
		if !layer.eligible(opts) {
			continue
		}

		if node, err := layer.scheme.GetNode(ctx, v, u, opts); err == nil {
			return node, nil
		}
	}

	return nil, vfsimpl.NotExistError("open", u)
}

// RemoveNode - implements [vfsimpl.Scheme]. Only Write and ReadWrite layers
// are considered, in declared order; Read-only layers are always skipped.
func (o *OverlayFS) RemoveNode(ctx context.Context, v *vfsimpl.VFS, u *url.URL, force bool) error {
	for _, layer := range o.layers {
		if layer.access == accessRead {
			continue
		}

		if err := layer.scheme.RemoveNode(ctx, v, u, force); err == nil {
			return nil
		}
	}

	return vfsimpl.NotExistError("remove", u)
}

// Metadata - implements [vfsimpl.Scheme]. Every layer is tried regardless
// of its declared access mode, in declared order, and the first success is
// returned. This is deliberately asymmetric with GetNode's mode filtering.
func (o *OverlayFS) Metadata(ctx context.Context, v *vfsimpl.VFS, u *url.URL) (vfsimpl.NodeMetadata, error) {
	for _, layer := range o.layers {
		if md, err := layer.scheme.Metadata(ctx, v, u); err == nil {
			return md, nil
		}
	}

	return vfsimpl.NodeMetadata{}, vfsimpl.NotExistError("metadata", u)
}

// ReadDir - implements [vfsimpl.Scheme]. Every layer's successful listing
// is collected, then drained as a stack: the last-declared layer's entries
// come out first, popping to the next once exhausted. Entries are not
// deduplicated across layers - duplicate paths are possible and
// intentional.
func (o *OverlayFS) ReadDir(ctx context.Context, v *vfsimpl.VFS, u *url.URL) (vfsimpl.DirIter, error) {
	var iters []vfsimpl.DirIter

	for _, layer := range o.layers {
		if it, err := layer.scheme.ReadDir(ctx, v, u); err == nil {
			iters = append(iters, it)
		}
	}

	if len(iters) == 0 {
		return nil, vfsimpl.NotExistError("readdir", u)
	}

	return &stackIter{iters: iters}, nil
}

// stackIter drains the top (last-pushed) iterator first.
type stackIter struct {
	iters []vfsimpl.DirIter
}

func (s *stackIter) Next(ctx context.Context) (*vfsimpl.NodeEntry, error) {
	for len(s.iters) > 0 {
		top := s.iters[len(s.iters)-1]

		entry, err := top.Next(ctx)
		if err != nil {
			return nil, err
		}

		if entry != nil {
			return entry, nil
		}

		s.iters = s.iters[:len(s.iters)-1]
	}

	return nil, nil
}
