package vfsimpl

import (
	"context"
	"net/url"
	"testing"

	"github.com/hairyhenderson/go-vfsimpl/internal/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheme struct {
	name string
	md   NodeMetadata
}

var _ Scheme = (*fakeScheme)(nil)

func (s *fakeScheme) GetNode(_ context.Context, _ *VFS, u *url.URL, opts NodeGetOptions) (Node, error) {
	if !opts.IsRead() {
		return nil, AccessError("get", u)
	}

	return nil, NotExistError("get", u)
}

func (s *fakeScheme) RemoveNode(_ context.Context, _ *VFS, u *url.URL, _ bool) error {
	return NotExistError("remove", u)
}

func (s *fakeScheme) Metadata(_ context.Context, _ *VFS, _ *url.URL) (NodeMetadata, error) {
	return s.md, nil
}

func (s *fakeScheme) ReadDir(_ context.Context, _ *VFS, _ *url.URL) (DirIter, error) {
	return EmptyDirIter(), nil
}

func TestRegisterScheme(t *testing.T) {
	v := New()

	assert.Empty(t, v.Schemes())

	require.NoError(t, v.RegisterScheme("foo", &fakeScheme{name: "foo"}))
	require.NoError(t, v.RegisterScheme("bar", &fakeScheme{name: "bar"}))

	err := v.RegisterScheme("foo", &fakeScheme{name: "dup"})
	require.ErrorIs(t, err, ErrSchemeAlreadyRegistered)

	assert.Equal(t, []string{"bar", "foo"}, v.Schemes())

	s, err := v.Scheme("foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", s.(*fakeScheme).name)

	_, err = v.Scheme("qux")
	require.ErrorIs(t, err, ErrSchemeNotFound)
}

func TestSchemeAs(t *testing.T) {
	v := New()
	require.NoError(t, v.RegisterScheme("foo", &fakeScheme{name: "foo"}))

	s, err := SchemeAs[*fakeScheme](v, "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", s.name)

	_, err = SchemeAs[*fakeScheme](v, "missing")
	require.ErrorIs(t, err, ErrSchemeNotFound)

	type otherScheme struct{ *fakeScheme }

	_, err = SchemeAs[otherScheme](v, "foo")
	require.ErrorIs(t, err, ErrSchemeWrongType)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	v := New()
	require.NoError(t, v.RegisterScheme("foo", &fakeScheme{
		name: "foo",
		md:   NodeMetadata{IsNode: true, MinSize: 3, MaxSize: 3},
	}))

	_, err := v.GetNode(ctx, tests.MustURL("bar:/a"), NewNodeGetOptions().Read(true))
	require.ErrorIs(t, err, ErrSchemeNotFound)

	_, err = v.GetNode(ctx, tests.MustURL("foo:/a"), NewNodeGetOptions())
	require.ErrorIs(t, err, ErrNotPermitted)

	_, err = v.GetNode(ctx, tests.MustURL("foo:/a"), NewNodeGetOptions().Read(true))
	require.ErrorIs(t, err, ErrNodeNotExist)

	err = v.RemoveNode(ctx, tests.MustURL("foo:/a"), false)
	require.ErrorIs(t, err, ErrNodeNotExist)

	md, err := v.Metadata(ctx, tests.MustURL("foo:/a"))
	require.NoError(t, err)

	size, exact := md.ExactSize()
	assert.True(t, exact)
	assert.Equal(t, int64(3), size)

	it, err := v.ReadDir(ctx, tests.MustURL("foo:/"))
	require.NoError(t, err)

	entries, err := ReadDirAll(ctx, it)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDispatchStringURLs(t *testing.T) {
	ctx := context.Background()

	v := New()
	require.NoError(t, v.RegisterScheme("foo", &fakeScheme{name: "foo"}))

	_, err := v.GetNodeAt(ctx, ":bogus/url", NewNodeGetOptions().Read(true))
	require.Error(t, err)

	_, err = v.GetNodeAt(ctx, "foo:/a", NewNodeGetOptions().Read(true))
	require.ErrorIs(t, err, ErrNodeNotExist)

	err = v.RemoveNodeAt(ctx, "foo:/a", false)
	require.ErrorIs(t, err, ErrNodeNotExist)

	_, err = v.MetadataAt(ctx, ":bogus/url")
	require.Error(t, err)

	_, err = v.ReadDirAt(ctx, "foo:/")
	require.NoError(t, err)
}

func TestReadDirAll(t *testing.T) {
	ctx := context.Background()

	urls := []*url.URL{
		tests.MustURL("foo:/a"),
		tests.MustURL("foo:/b"),
	}

	i := 0
	it := DirIterFunc(func(context.Context) (*NodeEntry, error) {
		if i >= len(urls) {
			return nil, nil
		}

		entry := &NodeEntry{URL: urls[i]}
		i++

		return entry, nil
	})

	entries, err := ReadDirAll(ctx, it)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "foo:/a", entries[0].URL.String())
	assert.Equal(t, "foo:/b", entries[1].URL.String())
}
