// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/walteh/passages/pkg/passage"
)

// 🖍️ Highlighted is the escaped HTML preview of one passage
type Highlighted struct {
	NameHTML string
	BodyHTML string
}

// sentinel pairs are taken from the private use areas; a pair is only used
// when neither rune occurs in the text being highlighted
var sentinelRanges = [][2]rune{
	{0xE000, 0xF8FF},
	{0xF0000, 0xFFFFD},
	{0x100000, 0x10FFFD},
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"`", "&#x60;",
)

// EscapeHTML escapes s for use as HTML text or a quoted attribute value.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Highlight renders both the name and the text of doc.
func (p *Pattern) Highlight(doc *passage.Passage, includeNames bool) (Highlighted, error) {
	name, err := p.HighlightName(doc.Name, includeNames)
	if err != nil {
		return Highlighted{}, err
	}

	body, err := p.HighlightPreview(doc.Text)
	if err != nil {
		return Highlighted{}, err
	}

	return Highlighted{NameHTML: name, BodyHTML: body}, nil
}

// HighlightName escapes name and, only when includeNames is set, highlights its matches.
func (p *Pattern) HighlightName(name string, includeNames bool) (string, error) {
	if !includeNames {
		return EscapeHTML(name), nil
	}
	return p.HighlightPreview(name)
}

// HighlightPreview escapes body and wraps every match in the pattern's markup.
//
// Matches are first bracketed by two sentinel runes that do not occur in body,
// the result is escaped, and only then are the sentinels rewritten into markup.
// Escaping never sees the markup and body can never produce it.
func (p *Pattern) HighlightPreview(body string) (string, error) {
	if p.Empty() {
		return EscapeHTML(body), nil
	}

	start, end, ok := pickSentinels(body)
	if !ok {
		return "", ErrNoSentinel
	}

	marked, err := p.re.ReplaceFunc(body, func(m regexp2.Match) string {
		return string(start) + m.GroupByNumber(1).String() + string(end)
	}, -1, -1)
	if err != nil {
		return "", p.scanError(err)
	}

	escaped := EscapeHTML(marked)

	return strings.NewReplacer(
		string(start), p.openMarkup,
		string(end), p.closeMarkup,
	).Replace(escaped), nil
}

func pickSentinels(s string) (rune, rune, bool) {
	for _, rng := range sentinelRanges {
		for r := rng[0]; r+1 <= rng[1]; r += 2 {
			if !strings.ContainsRune(s, r) && !strings.ContainsRune(s, r+1) {
				return r, r + 1, true
			}
		}
	}
	return 0, 0, false
}
