package vfsimpl

import (
	"context"
	"net/url"
)

// Scheme is the back-end contract: every storage back-end, simple or
// composite, implements these four operations. The owning [VFS] is passed to
// each call so composite schemes (overlays, symlinks) can recurse through
// the full registry; simple back-ends ignore it.
//
// Back-end-specific extensions live behind a type assertion on the concrete
// scheme type (see [SchemeAs]), never in this interface.
type Scheme interface {
	// GetNode opens the node at u according to opts, returning a capability
	// object representing one open instance of the path.
	GetNode(ctx context.Context, v *VFS, u *url.URL, opts NodeGetOptions) (Node, error)

	// RemoveNode removes the node at u. When force is set, back-ends that
	// share content between the store and open handles also clear the
	// content in place, so still-open handles observe the removal.
	RemoveNode(ctx context.Context, v *VFS, u *url.URL, force bool) error

	// Metadata describes the node at u without opening it.
	Metadata(ctx context.Context, v *VFS, u *url.URL) (NodeMetadata, error)

	// ReadDir lists the nodes under u as a lazy, forward-only stream.
	ReadDir(ctx context.Context, v *VFS, u *url.URL) (DirIter, error)
}

// SizeUnknown marks a NodeMetadata size bound the back-end cannot report
// cheaply.
const SizeUnknown int64 = -1

// NodeMetadata describes a node. Some back-ends cannot report an exact
// length without performing the full open (a data URI before decoding, for
// example), so length is a range: MinSize is always valid, and MaxSize is
// either an exact upper bound or [SizeUnknown].
type NodeMetadata struct {
	// IsNode is false when the path names a directory-like container
	// rather than a readable node.
	IsNode bool

	MinSize int64
	MaxSize int64
}

// ExactSize returns the node's size when the back-end reported it exactly.
func (m NodeMetadata) ExactSize() (int64, bool) {
	if m.MaxSize != SizeUnknown && m.MinSize == m.MaxSize {
		return m.MinSize, true
	}

	return 0, false
}

// NodeEntry is one element of a directory listing.
type NodeEntry struct {
	URL *url.URL
}

// DirIter is a lazy, forward-only, non-restartable directory listing. Next
// returns nil once the listing is exhausted. Composite schemes may produce
// duplicate entries across layers; callers that need a deduplicated view
// must post-process.
type DirIter interface {
	Next(ctx context.Context) (*NodeEntry, error)
}

// DirIterFunc adapts a function to the DirIter interface.
type DirIterFunc func(ctx context.Context) (*NodeEntry, error)

// Next calls f.
func (f DirIterFunc) Next(ctx context.Context) (*NodeEntry, error) {
	return f(ctx)
}

// EmptyDirIter returns an exhausted listing.
func EmptyDirIter() DirIter {
	return DirIterFunc(func(context.Context) (*NodeEntry, error) {
		return nil, nil
	})
}

// ReadDirAll drains it into a slice. Mostly useful in tests and small
// listings; large back-ends should be consumed entry by entry.
func ReadDirAll(ctx context.Context, it DirIter) ([]NodeEntry, error) {
	var entries []NodeEntry

	for {
		entry, err := it.Next(ctx)
		if err != nil {
			return entries, err
		}

		if entry == nil {
			return entries, nil
		}

		entries = append(entries, *entry)
	}
}
