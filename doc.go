// Package vfsimpl provides a virtual filesystem layer that unifies
// heterogeneous storage back-ends - in-memory buffers, data URIs, embedded
// assets, the OS filesystem - behind a single URL-addressed interface. A
// [VFS] maps URL scheme names to pluggable [Scheme] back-ends and dispatches
// node operations to whichever back-end serves a given URL.
//
// Composite schemes are provided as well: the overlayfs package layers
// multiple back-ends union-mount style, and the symlinkfs package redirects
// path prefixes to arbitrary target URLs. Because composite schemes resolve
// through the same Scheme contract (recursing through the owning VFS where
// needed), they compose to arbitrary depth.
package vfsimpl
