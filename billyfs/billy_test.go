package billyfs

import (
	"context"
	"io"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hairyhenderson/go-vfsimpl"
	"github.com/hairyhenderson/go-vfsimpl/internal/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNode(t *testing.T) {
	ctx := context.Background()

	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "/hello.txt", []byte("hello world"), 0o644))

	b := New(bfs)

	node, err := b.GetNode(ctx, nil, tests.MustURL("billy:/hello.txt"),
		vfsimpl.NewNodeGetOptions().Read(true))
	require.NoError(t, err)

	assert.True(t, node.IsReader())
	assert.False(t, node.IsWriter())
	assert.True(t, node.IsSeeker())

	content, err := io.ReadAll(node)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
	require.NoError(t, node.Close())

	_, err = b.GetNode(ctx, nil, tests.MustURL("billy:/missing"),
		vfsimpl.NewNodeGetOptions().Read(true))
	require.ErrorIs(t, err, vfsimpl.ErrNodeNotExist)

	_, err = b.GetNode(ctx, nil, tests.MustURL("billy:/hello.txt"),
		vfsimpl.NewNodeGetOptions().CreateNew(true))
	require.ErrorIs(t, err, vfsimpl.ErrNodeExist)
}

func TestWriteRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := New(memfs.New())

	node, err := b.GetNode(ctx, nil, tests.MustURL("billy:/new/out.txt"),
		vfsimpl.NewNodeGetOptions().Write(true).Create(true))
	require.NoError(t, err)

	_, err = node.Write([]byte("written"))
	require.NoError(t, err)

	_, err = node.Read(make([]byte, 1))
	require.ErrorIs(t, err, vfsimpl.ErrNotPermitted)

	require.NoError(t, node.Close())

	node, err = b.GetNode(ctx, nil, tests.MustURL("billy:/new/out.txt"),
		vfsimpl.NewNodeGetOptions().Read(true))
	require.NoError(t, err)

	content, err := io.ReadAll(node)
	require.NoError(t, err)
	assert.Equal(t, "written", string(content))

	_, err = node.Write([]byte("no"))
	require.ErrorIs(t, err, vfsimpl.ErrNotPermitted)
}

func TestRemoveNode(t *testing.T) {
	ctx := context.Background()

	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "/dir/a", []byte("a"), 0o644))
	require.NoError(t, util.WriteFile(bfs, "/dir/b", []byte("b"), 0o644))

	b := New(bfs)

	require.NoError(t, b.RemoveNode(ctx, nil, tests.MustURL("billy:/dir/a"), false))

	_, err := b.Metadata(ctx, nil, tests.MustURL("billy:/dir/a"))
	require.ErrorIs(t, err, vfsimpl.ErrNodeNotExist)

	// recursive removal needs force
	require.NoError(t, b.RemoveNode(ctx, nil, tests.MustURL("billy:/dir"), true))

	_, err = b.Metadata(ctx, nil, tests.MustURL("billy:/dir/b"))
	require.ErrorIs(t, err, vfsimpl.ErrNodeNotExist)
}

func TestMetadata(t *testing.T) {
	ctx := context.Background()

	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "/sized", []byte("12345"), 0o644))

	b := New(bfs)

	md, err := b.Metadata(ctx, nil, tests.MustURL("billy:/sized"))
	require.NoError(t, err)
	assert.True(t, md.IsNode)

	size, exact := md.ExactSize()
	assert.True(t, exact)
	assert.Equal(t, int64(5), size)
}

func TestReadDir(t *testing.T) {
	ctx := context.Background()

	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "/dir/a", []byte("a"), 0o644))
	require.NoError(t, util.WriteFile(bfs, "/dir/b", []byte("b"), 0o644))

	b := New(bfs)

	it, err := b.ReadDir(ctx, nil, tests.MustURL("billy:/dir"))
	require.NoError(t, err)

	entries, err := vfsimpl.ReadDirAll(ctx, it)
	require.NoError(t, err)

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.URL.String()
	}

	sort.Strings(names)
	assert.Equal(t, []string{"billy:/dir/a", "billy:/dir/b"}, names)
}
