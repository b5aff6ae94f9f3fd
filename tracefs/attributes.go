package tracefs

import (
	"go.opentelemetry.io/otel/attribute"
)

const (
	schemeTypeKey = attribute.Key("vfs.scheme_type")
	urlKey        = attribute.Key("vfs.url")
	optionsKey    = attribute.Key("vfs.options")

	sizeKey         = attribute.Key("node.size")
	bytesReadKey    = attribute.Key("node.bytes_read")
	bytesWrittenKey = attribute.Key("node.bytes_written")
)

// The concrete type of the scheme being operated on.
//
// Type: string
// Required: No
// Examples: "*memfs.MemFS", "*overlayfs.OverlayFS"
func SchemeType(name string) attribute.KeyValue {
	return schemeTypeKey.String(name)
}

// The URL being operated on.
//
// Type: string
// Required: Yes
// Examples: "mem:/scratch/foo.txt", "file:///tmp/foo"
func URL(u string) attribute.KeyValue {
	return urlKey.String(u)
}

// The open-mode options requested by a GetNode call.
//
// Type: string
// Required: No
// Examples: "[read,write,create]"
func Options(opts string) attribute.KeyValue {
	return optionsKey.String(opts)
}

// The size of the node, as reported by Metadata.
//
// Type: int64
// Required: No
func NodeSize(size int64) attribute.KeyValue {
	return sizeKey.Int64(size)
}

// The number of bytes read by a node.Read call.
//
// Type: int
// Required: No
func NodeBytesRead(n int) attribute.KeyValue {
	return bytesReadKey.Int(n)
}

// The number of bytes written by a node.Write call.
//
// Type: int
// Required: No
func NodeBytesWritten(n int) attribute.KeyValue {
	return bytesWrittenKey.Int(n)
}
