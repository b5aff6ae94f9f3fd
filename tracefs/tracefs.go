// Package tracefs instruments a scheme for distributed tracing operations.
// The OpenTelemetry API is supported.
//
// This is not a storage back-end, but a wrapper around an existing scheme:
// register the wrapped scheme in place of the original and every VFS
// operation dispatched to it, along with every read, write and seek on the
// nodes it returns, will be recorded as a span.
//
// In order to report traces, an OTel [trace.TracerProvider] must first be
// set up. The details of this are outside the scope of this module, but see
// the vfscli example in this repository's examples directory for one
// approach. A [trace.TracerProvider] can optionally be passed to [New]
// using [WithTracerProvider].
package tracefs

import (
	"context"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/hairyhenderson/go-vfsimpl"
)

const tracerName = "github.com/hairyhenderson/go-vfsimpl/tracefs"

// TraceFS wraps a scheme, adding trace spans for each operation.
type TraceFS struct {
	scheme vfsimpl.Scheme
	tracer trace.Tracer
}

// New returns a scheme that instruments the given scheme. Options can be
// provided to configure the behaviour of the instrumented scheme.
func New(scheme vfsimpl.Scheme, opts ...Option) *TraceFS {
	cfg := config{}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.tp == nil {
		cfg.tp = otel.GetTracerProvider()
	}

	return &TraceFS{
		scheme: scheme,
		tracer: cfg.tp.Tracer(tracerName),
	}
}

var _ vfsimpl.Scheme = (*TraceFS)(nil)

func (t *TraceFS) attribs(u *url.URL) trace.SpanStartEventOption {
	return trace.WithAttributes(
		URL(u.String()),
		SchemeType(fmt.Sprintf("%T", t.scheme)),
	)
}

// GetNode - implements [vfsimpl.Scheme]. The returned node is itself
// wrapped so its reads, writes and seeks are recorded.
func (t *TraceFS) GetNode(ctx context.Context, v *vfsimpl.VFS, u *url.URL, opts vfsimpl.NodeGetOptions) (vfsimpl.Node, error) {
	ctx, span := t.tracer.Start(ctx, "vfs.GetNode", t.attribs(u),
		trace.WithAttributes(Options(opts.String())))
	defer span.End()

	node, err := t.scheme.GetNode(ctx, v, u, opts)
	if err != nil {
		return nil, recordError(span, err)
	}

	return wrapNode(ctx, node, u, t.tracer), nil
}

// RemoveNode - implements [vfsimpl.Scheme].
func (t *TraceFS) RemoveNode(ctx context.Context, v *vfsimpl.VFS, u *url.URL, force bool) error {
	ctx, span := t.tracer.Start(ctx, "vfs.RemoveNode", t.attribs(u))
	defer span.End()

	return recordError(span, t.scheme.RemoveNode(ctx, v, u, force))
}

// Metadata - implements [vfsimpl.Scheme].
func (t *TraceFS) Metadata(ctx context.Context, v *vfsimpl.VFS, u *url.URL) (vfsimpl.NodeMetadata, error) {
	ctx, span := t.tracer.Start(ctx, "vfs.Metadata", t.attribs(u))
	defer span.End()

	md, err := t.scheme.Metadata(ctx, v, u)
	if err == nil {
		span.SetAttributes(NodeSize(md.MinSize))
	}

	return md, recordError(span, err)
}

// ReadDir - implements [vfsimpl.Scheme]. One span covers the listing call;
// draining the returned iterator is not traced per-entry.
func (t *TraceFS) ReadDir(ctx context.Context, v *vfsimpl.VFS, u *url.URL) (vfsimpl.DirIter, error) {
	ctx, span := t.tracer.Start(ctx, "vfs.ReadDir", t.attribs(u))
	defer span.End()

	it, err := t.scheme.ReadDir(ctx, v, u)

	return it, recordError(span, err)
}

// recordError records the given error on the span, and returns it. It does
// not set the span's status to error.
func recordError(span trace.Span, err error) error {
	span.RecordError(err)

	return err
}
