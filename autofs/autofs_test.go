package autofs

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/hairyhenderson/go-vfsimpl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v := New()

	assert.Equal(t, []string{"data", "file", "mem"}, v.Schemes())

	// the returned VFS accepts further registrations
	require.NoError(t, v.RegisterScheme("data2", nil))

	err := v.RegisterScheme("mem", nil)
	require.ErrorIs(t, err, vfsimpl.ErrSchemeAlreadyRegistered)
}

func TestGetNode(t *testing.T) {
	ctx := context.Background()

	node, err := GetNode(ctx, "data:,hello%20world", vfsimpl.NewNodeGetOptions().Read(true))
	require.NoError(t, err)

	b, err := io.ReadAll(node)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(b))

	_, err = GetNode(ctx, "bogus:/x", vfsimpl.NewNodeGetOptions().Read(true))
	require.ErrorIs(t, err, vfsimpl.ErrSchemeNotFound)
}

func ExampleGetNode() {
	ctx := context.Background()

	node, _ := GetNode(ctx, "data:,hello%20world", vfsimpl.NewNodeGetOptions().Read(true))

	b, _ := io.ReadAll(node)
	fmt.Printf("%s\n", b)

	// Output:
	// hello world
}
