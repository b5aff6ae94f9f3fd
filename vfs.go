package vfsimpl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
)

// VFS owns a name-to-[Scheme] registry and dispatches each operation to the
// back-end registered for the URL's scheme name.
//
// The registry is read-mostly: register schemes during setup, then perform
// lookups during steady-state. Registering concurrently with lookups is not
// guaranteed safe, and is a deliberate simplification.
type VFS struct {
	schemes map[string]Scheme
}

// New returns a VFS with no schemes registered.
func New() *VFS {
	return &VFS{schemes: map[string]Scheme{}}
}

// RegisterScheme registers s under the given scheme name. Registration is
// append-only per name: registering a taken name fails with
// [ErrSchemeAlreadyRegistered].
func (v *VFS) RegisterScheme(name string, s Scheme) error {
	if _, ok := v.schemes[name]; ok {
		return fmt.Errorf("%w: %q", ErrSchemeAlreadyRegistered, name)
	}

	v.schemes[name] = s

	return nil
}

// Scheme returns the scheme registered under name, or [ErrSchemeNotFound].
func (v *VFS) Scheme(name string) (Scheme, error) {
	s, ok := v.schemes[name]
	if !ok {
		return nil, schemeNotFoundError(name)
	}

	return s, nil
}

// Schemes returns the sorted names of all registered schemes.
func (v *VFS) Schemes() []string {
	names := make([]string, 0, len(v.schemes))
	for name := range v.schemes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// SchemeAs returns the scheme registered under name as its concrete type,
// for access to back-end-specific extensions (linking symlinks, for
// example). Fails with [ErrSchemeWrongType] when the registered scheme is
// of a different type.
func SchemeAs[T Scheme](v *VFS, name string) (T, error) {
	var zero T

	s, err := v.Scheme(name)
	if err != nil {
		return zero, err
	}

	t, ok := s.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T", ErrSchemeWrongType, name, s)
	}

	return t, nil
}

// GetNode opens the node at u according to opts, dispatching on u's scheme
// name.
func (v *VFS) GetNode(ctx context.Context, u *url.URL, opts NodeGetOptions) (Node, error) {
	s, err := v.Scheme(u.Scheme)
	if err != nil {
		return nil, err
	}

	return s.GetNode(ctx, v, u, opts)
}

// RemoveNode removes the node at u, dispatching on u's scheme name.
func (v *VFS) RemoveNode(ctx context.Context, u *url.URL, force bool) error {
	s, err := v.Scheme(u.Scheme)
	if err != nil {
		return err
	}

	return s.RemoveNode(ctx, v, u, force)
}

// Metadata describes the node at u, dispatching on u's scheme name.
func (v *VFS) Metadata(ctx context.Context, u *url.URL) (NodeMetadata, error) {
	s, err := v.Scheme(u.Scheme)
	if err != nil {
		return NodeMetadata{}, err
	}

	return s.Metadata(ctx, v, u)
}

// ReadDir lists the nodes under u, dispatching on u's scheme name.
func (v *VFS) ReadDir(ctx context.Context, u *url.URL) (DirIter, error) {
	s, err := v.Scheme(u.Scheme)
	if err != nil {
		return nil, err
	}

	return s.ReadDir(ctx, v, u)
}

// GetNodeAt is GetNode for a string URL, parsing it first.
func (v *VFS) GetNodeAt(ctx context.Context, rawURL string, opts NodeGetOptions) (Node, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	return v.GetNode(ctx, u, opts)
}

// RemoveNodeAt is RemoveNode for a string URL, parsing it first.
func (v *VFS) RemoveNodeAt(ctx context.Context, rawURL string, force bool) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	return v.RemoveNode(ctx, u, force)
}

// MetadataAt is Metadata for a string URL, parsing it first.
func (v *VFS) MetadataAt(ctx context.Context, rawURL string) (NodeMetadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return NodeMetadata{}, err
	}

	return v.Metadata(ctx, u)
}

// ReadDirAt is ReadDir for a string URL, parsing it first.
func (v *VFS) ReadDirAt(ctx context.Context, rawURL string) (DirIter, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	return v.ReadDir(ctx, u)
}
