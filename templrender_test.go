package tplcmp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplComponent(t *testing.T) {
	reg := testRegistry(t, MustComponent("greet", `<p>{{ name }}</p>`))

	var buf strings.Builder
	c := reg.Templ("greet", map[string]any{"name": "Ada"})
	require.NoError(t, c.Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Ada")
	assert.Contains(t, buf.String(), MarkerAttr)
}

func TestTemplComponentError(t *testing.T) {
	reg := NewRegistry()

	var buf strings.Builder
	err := reg.Templ("ghost", nil).Render(context.Background(), &buf)
	require.ErrorIs(t, err, ErrUnknownComponent)
	assert.Empty(t, buf.String())
}

func TestTemplTemplate(t *testing.T) {
	reg := NewRegistry()
	tpl, err := Compile("page", `Hello {{ who }}`)
	require.NoError(t, err)

	var buf strings.Builder
	c := reg.TemplTemplate(tpl, map[string]any{"who": "world"})
	require.NoError(t, c.Render(context.Background(), &buf))
	assert.Equal(t, "Hello world", buf.String())
}
