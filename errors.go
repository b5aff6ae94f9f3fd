package vfsimpl

import (
	"errors"
	"fmt"
	"net/url"
)

// Sentinel errors reported by the VFS and its schemes. Back-ends wrap these
// (usually in a *NodeError) so callers can match with errors.Is.
var (
	// ErrNodeNotExist is returned when no node exists at the requested URL.
	// Composite schemes also return it as the aggregate failure once every
	// alternative layer or link has been exhausted, even when an individual
	// layer failed for a different reason.
	ErrNodeNotExist = errors.New("node does not exist")

	// ErrNodeExist is returned when a node already exists at the requested
	// URL and the options demanded exclusive creation.
	ErrNodeExist = errors.New("node already exists")

	// ErrNotPermitted is returned when an operation is structurally
	// disallowed for the given URL and options combination - for example a
	// write-mode open against a read-only back-end, or a read against a
	// node opened write-only. Back-ends must fail with this rather than
	// silently downgrading the request.
	ErrNotPermitted = errors.New("operation not permitted")

	// ErrSchemeAlreadyRegistered is returned by [VFS.RegisterScheme] when
	// the name is taken. Registration is append-only.
	ErrSchemeAlreadyRegistered = errors.New("scheme already registered")

	// ErrSchemeNotFound is returned when no scheme is registered for the
	// URL's scheme name.
	ErrSchemeNotFound = errors.New("scheme not found")

	// ErrSchemeWrongType is returned by [SchemeAs] when the registered
	// scheme is not of the requested concrete type.
	ErrSchemeWrongType = errors.New("scheme is of the wrong type")
)

// NodeError records an error from a node or scheme operation, along with the
// operation and the URL (or path) it was attempted on.
type NodeError struct {
	Op   string
	Path string
	Err  error
}

func (e *NodeError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *NodeError) Unwrap() error { return e.Err }

// NotExistError returns an ErrNodeNotExist wrapped with the operation and URL.
func NotExistError(op string, u *url.URL) error {
	return &NodeError{Op: op, Path: u.String(), Err: ErrNodeNotExist}
}

// ExistError returns an ErrNodeExist wrapped with the operation and URL.
func ExistError(op string, u *url.URL) error {
	return &NodeError{Op: op, Path: u.String(), Err: ErrNodeExist}
}

// AccessError returns an ErrNotPermitted wrapped with the operation and URL.
func AccessError(op string, u *url.URL) error {
	return &NodeError{Op: op, Path: u.String(), Err: ErrNotPermitted}
}

func schemeNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrSchemeNotFound, name)
}
