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
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/dlclark/regexp2/syntax"
	"github.com/samber/lo"
	"github.com/walteh/passages/pkg/passage"
	"gitlab.com/tozd/go/errors"
)

// 📊 Summary is the result of a ReplaceAll
type Summary struct {
	PassagesMatched   int // passages with at least one match
	TotalReplacements int // matches replaced across all passages
}

// Replace substitutes every match in doc's text, and in its name when
// includeNames is set, with replacement. The replacement uses the engine's
// substitution syntax ($1, $$, ...). Both fields are computed before either is
// assigned, so a failed scan leaves doc untouched. It returns the number of
// matches that were replaced.
func (p *Pattern) Replace(doc *passage.Passage, replacement string, includeNames bool) (int, error) {
	count, err := p.Count(doc, includeNames)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	if err := p.apply(doc, replacement, includeNames); err != nil {
		return 0, err
	}

	return count, nil
}

// ReplaceAll runs Replace over docs in order. Passages without matches are
// skipped and left untouched; the others add one to PassagesMatched and their
// match count to TotalReplacements.
func (p *Pattern) ReplaceAll(docs []*passage.Passage, replacement string, includeNames bool) (Summary, error) {
	var summary Summary

	if p.Empty() {
		return summary, nil
	}

	for _, doc := range docs {
		count, err := p.Count(doc, includeNames)
		if err != nil {
			return summary, errors.Errorf("counting matches in passage %q: %w", doc.Name, err)
		}
		if count == 0 {
			continue
		}

		if err := p.apply(doc, replacement, includeNames); err != nil {
			return summary, errors.Errorf("replacing in passage %q: %w", doc.Name, err)
		}

		summary.PassagesMatched++
		summary.TotalReplacements += count
	}

	return summary, nil
}

// ReplaceString substitutes every match in s with replacement. Text outside
// the matches is copied byte for byte, invalid UTF-8 included.
func (p *Pattern) ReplaceString(s, replacement string) (string, error) {
	if p.Empty() {
		return s, nil
	}

	data, err := p.replacerData(replacement)
	if err != nil {
		return "", errors.Errorf("parsing replacement %q: %w", replacement, err)
	}

	// regexp2 reports rune offsets
	offsets := runeOffsets(s)

	var b strings.Builder
	prev := 0
	m, err := p.re.FindStringMatch(s)
	for err == nil && m != nil {
		from, to := offsets[m.Index], offsets[m.Index+m.Length]
		b.WriteString(s[prev:from])
		expand(&b, data, m, s, offsets)
		prev = to
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return "", p.scanError(err)
	}
	b.WriteString(s[prev:])

	return b.String(), nil
}

// replacerData parses replacement with the engine's own substitution parser,
// so $n, ${name}, $$, $&, $`, $', $+ and $_ mean what they mean to regexp2.
func (p *Pattern) replacerData(replacement string) (*syntax.ReplacerData, error) {
	numbers := p.re.GetGroupNumbers()

	// group number to slot, only needed when numbers are not 0..n-1
	var caps map[int]int
	for slot, num := range numbers {
		if slot != num {
			caps = lo.SliceToMap(lo.Range(len(numbers)), func(i int) (int, int) { return numbers[i], i })
			break
		}
	}

	var capnames map[string]int
	names := p.re.GetGroupNames()
	if lo.SomeBy(names, func(name string) bool { _, err := strconv.Atoi(name); return err != nil }) {
		capnames = lo.SliceToMap(names, func(name string) (string, int) { return name, p.re.GroupNumberFromName(name) })
	}

	return syntax.NewReplacerData(replacement, caps, len(numbers), capnames, syntax.RegexOptions(p.flags))
}

// Rule encoding of syntax.ReplacerData: a rule >= 0 indexes Strings, a rule
// below -replaceSpecials names a group slot, the rest are the specials.
const (
	replaceSpecials     = 4
	replaceLeftPortion  = -1
	replaceRightPortion = -2
	replaceLastGroup    = -3
	replaceWholeString  = -4
)

// expand writes the substitution for m, slicing group text out of s by byte
// offset rather than re-encoding the engine's runes.
func expand(b *strings.Builder, data *syntax.ReplacerData, m *regexp2.Match, s string, offsets []int) {
	groups := m.Groups()
	group := func(slot int) {
		if slot < 0 || slot >= len(groups) || len(groups[slot].Captures) == 0 {
			return
		}
		g := groups[slot]
		b.WriteString(s[offsets[g.Index]:offsets[g.Index+g.Length]])
	}

	for _, r := range data.Rules {
		switch {
		case r >= 0:
			b.WriteString(data.Strings[r])
		case r < -replaceSpecials:
			group(-replaceSpecials - 1 - r)
		default:
			switch -replaceSpecials - 1 - r {
			case replaceLeftPortion:
				b.WriteString(s[:offsets[m.Index]])
			case replaceRightPortion:
				b.WriteString(s[offsets[m.Index+m.Length]:])
			case replaceLastGroup:
				group(len(groups) - 1)
			case replaceWholeString:
				b.WriteString(s)
			}
		}
	}
}

func (p *Pattern) apply(doc *passage.Passage, replacement string, includeNames bool) error {
	text, err := p.ReplaceString(doc.Text, replacement)
	if err != nil {
		return err
	}

	name := doc.Name
	if includeNames {
		name, err = p.ReplaceString(doc.Name, replacement)
		if err != nil {
			return err
		}
	}

	doc.Text = text
	doc.Name = name

	return nil
}
