package tplcmp

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForTag(t *testing.T) {
	reg := NewRegistry()

	t.Run("slice", func(t *testing.T) {
		res, err := TestRenderSource(reg,
			`{% for x in items %}{{ x }},{% endfor %}`,
			map[string]any{"items": []any{"a", "b", "c"}})
		require.NoError(t, err)
		assert.Equal(t, "a,b,c,", res.HTML)
	})

	t.Run("forloop counters", func(t *testing.T) {
		res, err := TestRenderSource(reg,
			`{% for x in items %}{{ forloop.index }}:{{ x }}{% if not forloop.last %} {% endif %}{% endfor %}`,
			map[string]any{"items": []any{"a", "b"}})
		require.NoError(t, err)
		assert.Equal(t, "1:a 2:b", res.HTML)
	})

	t.Run("map iterates by sorted key", func(t *testing.T) {
		res, err := TestRenderSource(reg,
			`{% for v in m %}{{ v }}{% endfor %}`,
			map[string]any{"m": map[string]any{"b": 2, "a": 1, "c": 3}})
		require.NoError(t, err)
		assert.Equal(t, "123", res.HTML)
	})

	t.Run("empty collection", func(t *testing.T) {
		res, err := TestRenderSource(reg,
			`[{% for x in items %}{{ x }}{% endfor %}]`,
			map[string]any{"items": []any{}})
		require.NoError(t, err)
		assert.Equal(t, "[]", res.HTML)
	})

	t.Run("loop variable does not leak", func(t *testing.T) {
		_, err := TestRenderSource(reg,
			`{% for x in items %}{% endfor %}{{ x }}`,
			map[string]any{"items": []any{1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undefined variable")
	})

	t.Run("malformed header", func(t *testing.T) {
		_, err := TestRenderSource(reg, `{% for x items %}{% endfor %}`,
			map[string]any{"items": []any{1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "for tag expects")
	})

	t.Run("non-iterable", func(t *testing.T) {
		_, err := TestRenderSource(reg, `{% for x in n %}{% endfor %}`,
			map[string]any{"n": 42})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot iterate")
	})
}

func TestIfTag(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		src  string
		data map[string]any
		want string
	}{
		{"true", `{% if ok %}yes{% endif %}`, map[string]any{"ok": true}, "yes"},
		{"false", `{% if ok %}yes{% endif %}`, map[string]any{"ok": false}, ""},
		{"negated", `{% if not ok %}no{% endif %}`, map[string]any{"ok": false}, "no"},
		{"empty string falsy", `{% if s %}yes{% endif %}`, map[string]any{"s": ""}, ""},
		{"non-empty slice truthy", `{% if xs %}yes{% endif %}`, map[string]any{"xs": []any{1}}, "yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := TestRenderSource(reg, tt.src, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.HTML)
		})
	}

	t.Run("too many args", func(t *testing.T) {
		_, err := TestRenderSource(reg, `{% if a b %}x{% endif %}`,
			map[string]any{"a": 1, "b": 2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single condition")
	})
}

func TestWithTag(t *testing.T) {
	reg := NewRegistry()

	res, err := TestRenderSource(reg,
		`{% with a="x" b=n %}{{ a }}{{ b }}{% endwith %}`,
		map[string]any{"n": 7})
	require.NoError(t, err)
	assert.Equal(t, "x7", res.HTML)

	// Bindings are scoped to the block.
	_, err = TestRenderSource(reg, `{% with a="x" %}{% endwith %}{{ a }}`, nil)
	require.Error(t, err)
}

func TestCustomTagHandler(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterTag("upper", TagHandlerFunc(func(rc *RenderContext, inv *Invocation, body NodeList, w io.Writer) error {
		var buf strings.Builder
		if err := rc.RenderNodes(body, &buf); err != nil {
			return err
		}
		_, err := io.WriteString(w, strings.ToUpper(buf.String()))
		return err
	}))

	// Custom block tags must be declared at compile time; the default
	// compile treats unknown foreign tags as inline.
	tpl, err := CompileWithOptions("page", `{% upper %}{{ v }}{% endupper %}`, CompileOptions{
		BlockTags: append(DefaultBlockTags(), "upper"),
	})
	require.NoError(t, err)

	res, err := reg.RenderTemplate(context.Background(), tpl, map[string]any{"v": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "HI", res.HTML)
}

func TestCustomTagBodyParticipatesInFillExtraction(t *testing.T) {
	// A handler that routes body content through RenderNodes keeps fill
	// extraction working inside it.
	reg := testRegistry(t, MustComponent("card", `{% slot "s" %}fb{% endslot %}`))
	reg.RegisterTag("section", TagHandlerFunc(func(rc *RenderContext, inv *Invocation, body NodeList, w io.Writer) error {
		return rc.RenderNodes(body, w)
	}))

	src := `{% component "card" %}{% section %}{% fill "s" %}inside{% endfill %}{% endsection %}{% endcomponent %}`
	tpl, err := CompileWithOptions("page", src, CompileOptions{
		BlockTags: append(DefaultBlockTags(), "section"),
	})
	require.NoError(t, err)

	res, err := reg.RenderTemplate(context.Background(), tpl, nil)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "inside")
}

func TestIterate(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want []any
	}{
		{"nil", nil, nil},
		{"slice", []int{1, 2}, []any{1, 2}},
		{"array", [2]string{"a", "b"}, []any{"a", "b"}},
		{"map sorted", map[string]int{"b": 2, "a": 1}, []any{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := iterate(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := iterate(42)
	require.Error(t, err)
	assert.Equal(t, "cannot iterate int", fmt.Sprint(err))
}
