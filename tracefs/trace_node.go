package tracefs

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hairyhenderson/go-vfsimpl"
)

// wrapNode wraps a node so its byte-stream operations are recorded as
// spans under the GetNode span's context.
func wrapNode(ctx context.Context, node vfsimpl.Node, u *url.URL, tracer trace.Tracer) vfsimpl.Node {
	return &traceNode{ctx: ctx, node: node, url: u.String(), tracer: tracer}
}

type traceNode struct {
	ctx    context.Context
	node   vfsimpl.Node
	url    string
	tracer trace.Tracer
}

var _ vfsimpl.Node = (*traceNode)(nil)

func (n *traceNode) IsReader() bool { return n.node.IsReader() }
func (n *traceNode) IsWriter() bool { return n.node.IsWriter() }
func (n *traceNode) IsSeeker() bool { return n.node.IsSeeker() }

func (n *traceNode) Read(p []byte) (int, error) {
	_, span := n.tracer.Start(n.ctx, "node.Read", trace.WithAttributes(URL(n.url)))
	defer span.End()

	amt, err := n.node.Read(p)

	span.SetAttributes(NodeBytesRead(amt))

	return amt, recordError(span, err)
}

func (n *traceNode) Write(p []byte) (int, error) {
	_, span := n.tracer.Start(n.ctx, "node.Write", trace.WithAttributes(URL(n.url)))
	defer span.End()

	amt, err := n.node.Write(p)

	span.SetAttributes(NodeBytesWritten(amt))

	return amt, recordError(span, err)
}

func (n *traceNode) Seek(offset int64, whence int) (int64, error) {
	_, span := n.tracer.Start(n.ctx, "node.Seek", trace.WithAttributes(URL(n.url)))
	defer span.End()

	pos, err := n.node.Seek(offset, whence)

	span.SetAttributes(
		attribute.Int64("node.offset", offset),
		attribute.Int("node.seek_whence", whence),
		attribute.Int64("node.seek_result", pos),
	)

	return pos, recordError(span, err)
}

func (n *traceNode) Close() error {
	_, span := n.tracer.Start(n.ctx, "node.Close", trace.WithAttributes(URL(n.url)))
	defer span.End()

	return recordError(span, n.node.Close())
}
