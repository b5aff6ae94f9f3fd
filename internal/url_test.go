package internal

import (
	"testing"

	"github.com/hairyhenderson/go-vfsimpl/internal/tests"
	"github.com/stretchr/testify/assert"
)

func TestNodePath(t *testing.T) {
	assert.Equal(t, "/a/b", NodePath(tests.MustURL("mem:/a/b")))
	assert.Equal(t, "a/b", NodePath(tests.MustURL("mem:a/b")))
	assert.Equal(t, "", NodePath(tests.MustURL("mem:")))
	assert.Equal(t, "/share/f", NodePath(tests.MustURL("file://host/share/f")))
}

func TestCloneURL(t *testing.T) {
	u := tests.MustURL("https://user:pw@example.com/p?q=1#frag")

	c := CloneURL(u)
	assert.Equal(t, u.String(), c.String())

	c.Path = "/other"
	c.User = nil
	assert.Equal(t, "/p", u.Path)
	assert.Equal(t, "user", u.User.Username())
}
