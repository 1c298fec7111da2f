package commands

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/walteh/passages/pkg/operation"
	"github.com/walteh/passages/pkg/search"
)

const (
	previewWidth = 72 // bytes of passage text shown per row
	previewLead  = 24 // bytes kept before the first match
)

var matchColor = color.New(color.Bold, color.FgYellow)

// terminalPreview flattens text to one line and colors every match, showing a
// window that starts shortly before the first match.
func terminalPreview(p *search.Pattern, text string) (string, error) {
	flat := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, text)

	spans, err := p.Spans(flat)
	if err != nil {
		return "", err
	}

	start := 0
	if len(spans) > 0 && spans[0][0] > previewLead {
		start = spans[0][0] - previewLead
		for start < len(flat) && !utf8.RuneStart(flat[start]) {
			start++
		}
	}

	end := len(flat)
	if start+previewWidth < end {
		end = start + previewWidth
		for end > start && !utf8.RuneStart(flat[end]) {
			end--
		}
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("…")
	}

	pos := start
	for _, span := range spans {
		from, to := max(span[0], pos), min(span[1], end)
		if from >= to {
			continue
		}
		b.WriteString(flat[pos:from])
		b.WriteString(matchColor.Sprint(flat[from:to]))
		pos = to
	}
	b.WriteString(flat[pos:end])

	if end < len(flat) {
		b.WriteString("…")
	}

	return b.String(), nil
}

// htmlResults renders search rows as an ordered list of highlighted previews.
func htmlResults(rows []operation.SearchRow) string {
	var b strings.Builder
	b.WriteString("<ol class=\"results\">\n")
	for _, row := range rows {
		fmt.Fprintf(&b,
			"<li class=\"result\" data-passage=\"%s\"><span class=\"name\">%s</span> <span class=\"count\">%d</span><div class=\"preview\">%s</div></li>\n",
			search.EscapeHTML(row.PassageID), row.NameHTML, row.NumMatches, row.PreviewHTML)
	}
	b.WriteString("</ol>\n")
	return b.String()
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
