package filefs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/hairyhenderson/go-vfsimpl"
	"github.com/hairyhenderson/go-vfsimpl/internal/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

func setupFileSystem(t *testing.T) *fs.Dir {
	tmpDir := fs.NewDir(t, "go-vfsimplTests",
		fs.WithFile("hello.txt", "hello world\n"),
		fs.WithDir("sub",
			fs.WithFile("subfile.txt", "hi there"),
		),
	)
	t.Cleanup(tmpDir.Remove)

	return tmpDir
}

func TestPathForRoot(t *testing.T) {
	testdata := []struct {
		in  string
		out string
	}{
		{"file:", ""},
		{"file:/", "/"},
		{"file:///", "/"},
		{"file:///tmp/foo", "/tmp/foo"},
		{"file:///C:/Users/", "C:/Users/"},
		{"file:///C:/Program%20Files", "C:/Program Files"},
		{"file://./C:/Users/", "//./C:/Users/"},
		{"file://somehost/Share/foo", "//somehost/Share/foo"},
		{"file://invalid", ""},
		{"file://host/j", "//host/j"},
	}

	for _, d := range testdata {
		assert.Equal(t, d.out, pathForRoot(tests.MustURL(d.in)))
	}
}

func TestGetNode(t *testing.T) {
	ctx := context.Background()
	tmpDir := setupFileSystem(t)
	f := NewFromURL(tests.MustURL("file://" + tmpDir.Path()))

	node, err := f.GetNode(ctx, nil, tests.MustURL("file:/hello.txt"),
		vfsimpl.NewNodeGetOptions().Read(true))
	require.NoError(t, err)

	assert.True(t, node.IsReader())
	assert.False(t, node.IsWriter())
	assert.True(t, node.IsSeeker())

	b, err := io.ReadAll(node)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(b))
	require.NoError(t, node.Close())

	_, err = f.GetNode(ctx, nil, tests.MustURL("file:/missing.txt"),
		vfsimpl.NewNodeGetOptions().Read(true))
	require.ErrorIs(t, err, vfsimpl.ErrNodeNotExist)

	_, err = f.GetNode(ctx, nil, tests.MustURL("file:/hello.txt"),
		vfsimpl.NewNodeGetOptions().CreateNew(true))
	require.ErrorIs(t, err, vfsimpl.ErrNodeExist)
}

func TestGetNodeCreate(t *testing.T) {
	ctx := context.Background()
	tmpDir := setupFileSystem(t)
	f := New(tmpDir.Path())

	// create makes missing parent directories too
	node, err := f.GetNode(ctx, nil, tests.MustURL("file:/new/dir/out.txt"),
		vfsimpl.NewNodeGetOptions().Write(true).Create(true))
	require.NoError(t, err)

	_, err = node.Write([]byte("created"))
	require.NoError(t, err)
	require.NoError(t, node.Close())

	b, err := os.ReadFile(filepath.Join(tmpDir.Path(), "new", "dir", "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "created", string(b))
}

func TestNodePermissions(t *testing.T) {
	ctx := context.Background()
	tmpDir := setupFileSystem(t)
	f := New(tmpDir.Path())

	node, err := f.GetNode(ctx, nil, tests.MustURL("file:/hello.txt"),
		vfsimpl.NewNodeGetOptions().Read(true))
	require.NoError(t, err)

	_, err = node.Write([]byte("no"))
	require.ErrorIs(t, err, vfsimpl.ErrNotPermitted)
	require.NoError(t, node.Close())

	node, err = f.GetNode(ctx, nil, tests.MustURL("file:/hello.txt"),
		vfsimpl.NewNodeGetOptions().Write(true))
	require.NoError(t, err)

	_, err = node.Read(make([]byte, 1))
	require.ErrorIs(t, err, vfsimpl.ErrNotPermitted)
	require.NoError(t, node.Close())
}

func TestRemoveNode(t *testing.T) {
	ctx := context.Background()
	tmpDir := setupFileSystem(t)
	f := New(tmpDir.Path())

	require.NoError(t, f.RemoveNode(ctx, nil, tests.MustURL("file:/hello.txt"), false))
	assert.NoFileExists(t, filepath.Join(tmpDir.Path(), "hello.txt"))

	err := f.RemoveNode(ctx, nil, tests.MustURL("file:/hello.txt"), false)
	require.ErrorIs(t, err, vfsimpl.ErrNodeNotExist)

	// a non-empty directory needs force
	err = f.RemoveNode(ctx, nil, tests.MustURL("file:/sub"), false)
	require.Error(t, err)

	require.NoError(t, f.RemoveNode(ctx, nil, tests.MustURL("file:/sub"), true))
	assert.NoDirExists(t, filepath.Join(tmpDir.Path(), "sub"))
}

func TestMetadata(t *testing.T) {
	ctx := context.Background()
	tmpDir := setupFileSystem(t)
	f := New(tmpDir.Path())

	md, err := f.Metadata(ctx, nil, tests.MustURL("file:/hello.txt"))
	require.NoError(t, err)
	assert.True(t, md.IsNode)

	size, exact := md.ExactSize()
	assert.True(t, exact)
	assert.Equal(t, int64(12), size)

	md, err = f.Metadata(ctx, nil, tests.MustURL("file:/sub"))
	require.NoError(t, err)
	assert.False(t, md.IsNode)

	_, err = f.Metadata(ctx, nil, tests.MustURL("file:/missing"))
	require.ErrorIs(t, err, vfsimpl.ErrNodeNotExist)
}

func TestReadDir(t *testing.T) {
	ctx := context.Background()
	tmpDir := setupFileSystem(t)
	f := New(tmpDir.Path())

	it, err := f.ReadDir(ctx, nil, tests.MustURL("file:/"))
	require.NoError(t, err)

	entries, err := vfsimpl.ReadDirAll(ctx, it)
	require.NoError(t, err)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.URL.String()
	}

	sort.Strings(names)
	assert.Equal(t, []string{"file:/hello.txt", "file:/sub"}, names)

	_, err = f.ReadDir(ctx, nil, tests.MustURL("file:/nope"))
	require.ErrorIs(t, err, vfsimpl.ErrNodeNotExist)
}
