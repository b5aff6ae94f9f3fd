package vfsimpl

import (
	"os"
	"strings"
)

// NodeGetOptions describes the requested open mode for [VFS.GetNode] and
// [Scheme.GetNode]. The six flags mirror the POSIX open() flags, with the
// same derived relationships: truncate and create each imply write, and
// createNew implies both write and create.
//
// The zero value requests nothing and will be rejected by most back-ends;
// build options fluently instead:
//
//	opts := vfsimpl.NewNodeGetOptions().Read(true).Write(true).Create(true)
//
// Options are advisory to each back-end - a back-end is free to reject a
// combination it cannot honor (a read-only back-end rejects any
// write-requiring combination with [ErrNotPermitted]).
type NodeGetOptions struct {
	read      bool
	write     bool
	append    bool
	truncate  bool
	create    bool
	createNew bool
}

// NewNodeGetOptions returns an empty option set ready for fluent
// construction.
func NewNodeGetOptions() NodeGetOptions {
	return NodeGetOptions{}
}

// Read sets whether the node should be opened for reading.
func (o NodeGetOptions) Read(read bool) NodeGetOptions {
	o.read = read

	return o
}

// Write sets whether the node should be opened for writing. Clearing write
// also clears every flag that implies it.
func (o NodeGetOptions) Write(write bool) NodeGetOptions {
	o.write = write
	if !write {
		o.append = false
		o.truncate = false
		o.create = false
		o.createNew = false
	}

	return o
}

// Append positions the cursor at end-of-content on open rather than at 0.
// Setting append implies write.
func (o NodeGetOptions) Append(app bool) NodeGetOptions {
	o.append = app
	if app {
		o.write = true
	}

	return o
}

// Truncate clears any existing content on open. Setting truncate implies
// write.
func (o NodeGetOptions) Truncate(truncate bool) NodeGetOptions {
	o.truncate = truncate
	if truncate {
		o.write = true
	}

	return o
}

// Create requests that the node be created if it does not already exist.
// Setting create implies write.
func (o NodeGetOptions) Create(create bool) NodeGetOptions {
	o.create = create
	if create {
		o.write = true
	} else {
		o.createNew = false
	}

	return o
}

// CreateNew requests atomic creation: the node must not already exist.
// Setting createNew implies write and create.
func (o NodeGetOptions) CreateNew(createNew bool) NodeGetOptions {
	o.createNew = createNew
	if createNew {
		o.write = true
		o.create = true
	}

	return o
}

// IsRead reports whether the node is to be opened for reading.
func (o NodeGetOptions) IsRead() bool { return o.read }

// IsWrite reports whether the node is to be opened for writing.
func (o NodeGetOptions) IsWrite() bool { return o.write }

// IsAppend reports whether the cursor starts at end-of-content.
func (o NodeGetOptions) IsAppend() bool { return o.append }

// IsTruncate reports whether existing content is cleared on open.
func (o NodeGetOptions) IsTruncate() bool { return o.truncate }

// IsCreate reports whether a missing node is created on open.
func (o NodeGetOptions) IsCreate() bool { return o.create }

// IsCreateNew reports whether the open must create the node exclusively.
func (o NodeGetOptions) IsCreateNew() bool { return o.createNew }

// OpenFlag translates the options into an os.OpenFile flag value, for
// back-ends that delegate to the OS.
func (o NodeGetOptions) OpenFlag() int {
	var flag int

	switch {
	case o.read && o.write:
		flag = os.O_RDWR
	case o.write:
		flag = os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}

	if o.append {
		flag |= os.O_APPEND
	}

	if o.truncate {
		flag |= os.O_TRUNC
	}

	if o.create {
		flag |= os.O_CREATE
	}

	if o.createNew {
		flag |= os.O_EXCL
	}

	return flag
}

func (o NodeGetOptions) String() string {
	flags := make([]string, 0, 6)

	for _, f := range []struct {
		name string
		set  bool
	}{
		{"read", o.read},
		{"write", o.write},
		{"append", o.append},
		{"truncate", o.truncate},
		{"create", o.create},
		{"create_new", o.createNew},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}

	return "[" + strings.Join(flags, ",") + "]"
}
