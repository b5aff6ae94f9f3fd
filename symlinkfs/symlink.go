// Package symlinkfs provides a composite scheme that redirects registered
// path prefixes to arbitrary target URLs. Resolution is longest-prefix
// match over a path-segment trie, and the resolved destination is looked up
// recursively through the owning VFS, so links may point into any other
// scheme - including other symlink scopes.
package symlinkfs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hairyhenderson/go-vfsimpl"
	"github.com/hairyhenderson/go-vfsimpl/internal"
)

// MaxPathSegments is the maximum depth of a registered link path.
const MaxPathSegments = 16

// ErrLinkExists is returned by [SymlinkFS.Link] when the path already has a
// target registered; remove it with [SymlinkFS.Unlink] first.
var ErrLinkExists = errors.New("symlink already registered for path")

// symlinkNode is one trie node, exclusively owned by its SymlinkFS; the
// root node represents the empty path. Nodes are created lazily as Link
// calls walk the trie and live for the scheme's lifetime.
type symlinkNode struct {
	baseURL  *url.URL
	children map[string]*symlinkNode
}

// SymlinkFS maps registered path prefixes to base URLs.
type SymlinkFS struct {
	root symlinkNode
}

// New returns a SymlinkFS with no links registered.
func New() *SymlinkFS {
	return &SymlinkFS{}
}

var _ vfsimpl.Scheme = (*SymlinkFS)(nil)

func validateFrom(from string) ([]string, error) {
	// Parsing with a placeholder scheme surfaces stray URL components
	// (host, query, fragment) that a link path must not carry.
	u, err := url.Parse("x:" + from)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(u.Path, "/"):
		return nil, fmt.Errorf("link path %q has a trailing slash", from)
	case u.Host != "":
		return nil, fmt.Errorf("link path %q has a host, must only be a path", from)
	case u.Fragment != "":
		return nil, fmt.Errorf("link path %q has a fragment, must only be a path", from)
	case u.RawQuery != "":
		return nil, fmt.Errorf("link path %q has a query, must only be a path", from)
	}

	if u.Opaque != "" {
		return nil, fmt.Errorf("relative link path %q is not allowed", from)
	}

	// the empty path links the trie root
	if u.Path == "" {
		return nil, nil
	}

	segments := strings.Split(u.Path[1:], "/")
	if len(segments) > MaxPathSegments {
		return nil, fmt.Errorf("link path %q exceeds the depth limit of %d segments", from, MaxPathSegments)
	}

	return segments, nil
}

// Link registers the absolute path from as a redirect to the base URL to.
// from must have no trailing slash, host, query or fragment, and at most
// [MaxPathSegments] segments; the empty string links the root, which also
// serves opaque (non-rooted) URLs. Linking an already-linked path fails
// with [ErrLinkExists].
func (s *SymlinkFS) Link(from string, to *url.URL) error {
	segments, err := validateFrom(from)
	if err != nil {
		return err
	}

	node := &s.root
	for _, segment := range segments {
		if node.children == nil {
			node.children = map[string]*symlinkNode{}
		}

		child, ok := node.children[segment]
		if !ok {
			child = &symlinkNode{}
			node.children[segment] = child
		}

		node = child
	}

	if node.baseURL != nil {
		return fmt.Errorf("%w: %q", ErrLinkExists, from)
	}

	node.baseURL = internal.CloneURL(to)

	return nil
}

// Unlink removes the target registered at from. The trie nodes themselves
// are kept; only the registration is cleared.
func (s *SymlinkFS) Unlink(from string) error {
	segments, err := validateFrom(from)
	if err != nil {
		return err
	}

	node := &s.root
	for _, segment := range segments {
		child, ok := node.children[segment]
		if !ok {
			return fmt.Errorf("no symlink registered for path %q: %w", from, vfsimpl.ErrNodeNotExist)
		}

		node = child
	}

	if node.baseURL == nil {
		return fmt.Errorf("no symlink registered for path %q: %w", from, vfsimpl.ErrNodeNotExist)
	}

	node.baseURL = nil

	return nil
}

// ResolveDest resolves u against the registered links: the most specific
// registered prefix with a target wins (longest-prefix match), and the
// path suffix past that prefix is merged onto the target URL. Opaque URLs
// resolve only through the root link. If no matching prefix (including the
// root) has a target, the node does not exist.
func (s *SymlinkFS) ResolveDest(u *url.URL) (*url.URL, error) {
	if u.Opaque != "" || !strings.HasPrefix(u.Path, "/") {
		if s.root.baseURL == nil {
			return nil, vfsimpl.NotExistError("resolve", u)
		}

		return mergeURLs(s.root.baseURL, u, internal.NodePath(u))
	}

	segments := strings.Split(u.Path[1:], "/")
	if len(segments) > MaxPathSegments {
		segments = segments[:MaxPathSegments]
	}

	matched := -1 // number of segments consumed by the best match, -1 = none

	if s.root.baseURL != nil {
		matched = 0
	}

	best := &s.root
	node := &s.root

	for i, segment := range segments {
		child, ok := node.children[segment]
		if !ok {
			break
		}

		node = child
		if node.baseURL != nil {
			best = node
			matched = i + 1
		}
	}

	if matched < 0 {
		return nil, vfsimpl.NotExistError("resolve", u)
	}

	suffix := u.Path
	for _, segment := range segments[:matched] {
		suffix = suffix[len(segment)+1:]
	}

	return mergeURLs(best.baseURL, u, suffix)
}

// mergeURLs merges the suffix and the requested URL's components onto the
// base URL. Components the base already defines must not also appear on the
// requested URL - that conflict is a hard error, never silently overridden.
// Queries are the exception: both may define one, and they concatenate.
func mergeURLs(base, u *url.URL, suffix string) (*url.URL, error) {
	dest := internal.CloneURL(base)

	path := internal.NodePath(base) + suffix
	if strings.HasPrefix(path, "/") {
		dest.Opaque = ""
		dest.Path = path
	} else {
		dest.Opaque = path
		dest.Path = ""
	}

	if u.Host != "" {
		if base.Host != "" {
			return nil, fmt.Errorf("symlink for %q cannot override host", u)
		}

		// the port is attached separately below, after its own conflict
		// check
		dest.Host = u.Hostname()
	}

	username := u.User.Username()
	password, hasPassword := u.User.Password()

	if username != "" || hasPassword {
		baseUsername := base.User.Username()
		_, baseHasPassword := base.User.Password()

		if username != "" && baseUsername != "" {
			return nil, fmt.Errorf("symlink for %q cannot override username", u)
		}

		if hasPassword && baseHasPassword {
			return nil, fmt.Errorf("symlink for %q cannot override password", u)
		}

		if username == "" {
			username = baseUsername
		}

		if !hasPassword {
			password, hasPassword = base.User.Password()
		}

		if hasPassword {
			dest.User = url.UserPassword(username, password)
		} else {
			dest.User = url.User(username)
		}
	}

	if port := u.Port(); port != "" {
		if base.Port() != "" {
			return nil, fmt.Errorf("symlink for %q cannot override port", u)
		}

		dest.Host += ":" + port
	}

	if u.Fragment != "" {
		if base.Fragment != "" {
			return nil, fmt.Errorf("symlink for %q cannot override fragment", u)
		}

		dest.Fragment = u.Fragment
	}

	if u.RawQuery != "" {
		if base.RawQuery != "" {
			dest.RawQuery = base.RawQuery + "&" + u.RawQuery
		} else {
			dest.RawQuery = u.RawQuery
		}
	}

	dest.OmitHost = dest.Host == "" && dest.User == nil

	return dest, nil
}

// GetNode - implements [vfsimpl.Scheme], resolving the destination URL and
// delegating the open back through the owning VFS.
func (s *SymlinkFS) GetNode(ctx context.Context, v *vfsimpl.VFS, u *url.URL, opts vfsimpl.NodeGetOptions) (vfsimpl.Node, error) {
	dest, err := s.ResolveDest(u)
	if err != nil {
		return nil, err
	}

	return v.GetNode(ctx, dest, opts)
}

// RemoveNode - implements [vfsimpl.Scheme].
func (s *SymlinkFS) RemoveNode(ctx context.Context, v *vfsimpl.VFS, u *url.URL, force bool) error {
	dest, err := s.ResolveDest(u)
	if err != nil {
		return err
	}

	return v.RemoveNode(ctx, dest, force)
}

// Metadata - implements [vfsimpl.Scheme].
func (s *SymlinkFS) Metadata(ctx context.Context, v *vfsimpl.VFS, u *url.URL) (vfsimpl.NodeMetadata, error) {
	dest, err := s.ResolveDest(u)
	if err != nil {
		return vfsimpl.NodeMetadata{}, err
	}

	return v.Metadata(ctx, dest)
}

// ReadDir - implements [vfsimpl.Scheme].
func (s *SymlinkFS) ReadDir(ctx context.Context, v *vfsimpl.VFS, u *url.URL) (vfsimpl.DirIter, error) {
	dest, err := s.ResolveDest(u)
	if err != nil {
		return nil, err
	}

	return v.ReadDir(ctx, dest)
}

// Builder assembles a SymlinkFS fluently. Links are setup-time programmer
// input, so an invalid or duplicate link panics rather than returning an
// error.
type Builder struct {
	scheme *SymlinkFS
}

// NewBuilder returns a Builder for a fresh SymlinkFS.
func NewBuilder() *Builder {
	return &Builder{scheme: New()}
}

// Link registers from as a redirect to the URL to, panicking on an invalid
// or duplicate path.
func (b *Builder) Link(from string, to *url.URL) *Builder {
	if err := b.scheme.Link(from, to); err != nil {
		panic(err)
	}

	return b
}

// Build returns the assembled scheme.
func (b *Builder) Build() *SymlinkFS {
	return b.scheme
}
