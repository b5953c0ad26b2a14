package tplcmp

import "testing"

func TestInjectMarker(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "simple element",
			html: `<div>hi</div>`,
			want: `<div data-tplc-id="card-1234">hi</div>`,
		},
		{
			name: "element with attributes",
			html: `<div class="x">hi</div>`,
			want: `<div class="x" data-tplc-id="card-1234">hi</div>`,
		},
		{
			name: "self-closing element",
			html: `<br/>`,
			want: `<br data-tplc-id="card-1234"/>`,
		},
		{
			name: "leading whitespace",
			html: "\n  <p>x</p>",
			want: "\n  <p data-tplc-id=\"card-1234\">x</p>",
		},
		{
			name: "comment before element",
			html: `<!-- note --><p>x</p>`,
			want: `<!-- note --><p data-tplc-id="card-1234">x</p>`,
		},
		{
			name: "already marked element wraps in comments",
			html: `<span data-tplc-id="inner-51c1c73e">i</span>`,
			want: `<!--tplc:card-1234--><span data-tplc-id="inner-51c1c73e">i</span><!--/tplc:card-1234-->`,
		},
		{
			name: "no element wraps in comments",
			html: `plain text`,
			want: `<!--tplc:card-1234-->plain text<!--/tplc:card-1234-->`,
		},
		{
			name: "empty output",
			html: ``,
			want: `<!--tplc:card-1234--><!--/tplc:card-1234-->`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := injectMarker(tt.html, "card-1234")
			if got != tt.want {
				t.Errorf("injectMarker() = %q, want %q", got, tt.want)
			}
		})
	}
}
