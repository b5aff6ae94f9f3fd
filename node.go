package vfsimpl

import "io"

// Node is an open handle to one addressed item. Whether reading, writing and
// seeking are supported depends on the back-end and on the options the node
// was opened with; the capability methods report this truthfully, and an
// unsupported operation fails with an error matching [ErrNotPermitted]
// rather than silently doing nothing.
//
// Operations issued on the same Node execute in the order issued. Closing a
// node releases its resources and nothing else - there is no implicit flush
// or sync.
type Node interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// IsReader reports whether Read is supported on this handle.
	IsReader() bool

	// IsWriter reports whether Write is supported on this handle.
	IsWriter() bool

	// IsSeeker reports whether Seek is supported on this handle.
	IsSeeker() bool
}

// DenyRead is embeddable by nodes that do not support reading.
type DenyRead struct{}

// IsReader - implements part of [Node].
func (DenyRead) IsReader() bool { return false }

// Read - implements io.Reader, always failing with [ErrNotPermitted].
func (DenyRead) Read([]byte) (int, error) {
	return 0, &NodeError{Op: "read", Path: "", Err: ErrNotPermitted}
}

// DenyWrite is embeddable by nodes that do not support writing.
type DenyWrite struct{}

// IsWriter - implements part of [Node].
func (DenyWrite) IsWriter() bool { return false }

// Write - implements io.Writer, always failing with [ErrNotPermitted].
func (DenyWrite) Write([]byte) (int, error) {
	return 0, &NodeError{Op: "write", Path: "", Err: ErrNotPermitted}
}

// DenySeek is embeddable by nodes that do not support seeking.
type DenySeek struct{}

// IsSeeker - implements part of [Node].
func (DenySeek) IsSeeker() bool { return false }

// Seek - implements io.Seeker, always failing with [ErrNotPermitted].
func (DenySeek) Seek(int64, int) (int64, error) {
	return 0, &NodeError{Op: "seek", Path: "", Err: ErrNotPermitted}
}
