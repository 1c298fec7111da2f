package commands

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/passages/pkg/operation"
	"github.com/walteh/passages/pkg/search"
)

func TestTerminalPreview(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	long := strings.Repeat("x", 100) + "cat" + strings.Repeat("y", 100)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "flattens_lines",
			text: "The cat\nsat\ton the mat",
			want: "The cat sat on the mat",
		},
		{
			name: "windows_long_text",
			text: long,
			want: "…" + strings.Repeat("x", 24) + "cat" + strings.Repeat("y", 45) + "…",
		},
		{
			name: "multibyte_boundary",
			text: strings.Repeat("é", 40) + "cat",
			want: "…" + strings.Repeat("é", 12) + "cat",
		},
	}

	p, err := search.Compile(search.Query{RawPattern: "cat"})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := terminalPreview(p, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTMLResults(t *testing.T) {
	got := htmlResults([]operation.SearchRow{
		{PassageID: `a"b`, NameHTML: "Start", NumMatches: 2, PreviewHTML: "x"},
	})
	assert.Equal(t,
		"<ol class=\"results\">\n"+
			"<li class=\"result\" data-passage=\"a&quot;b\"><span class=\"name\">Start</span> <span class=\"count\">2</span><div class=\"preview\">x</div></li>\n"+
			"</ol>\n",
		got)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", indent("a\nb", "  "))
}
