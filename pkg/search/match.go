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
	"github.com/walteh/passages/pkg/passage"
	"gitlab.com/tozd/go/errors"
)

// Count returns the number of non-overlapping matches in doc's text, plus
// its name when includeNames is set. It never caches: every call rescans.
func (p *Pattern) Count(doc *passage.Passage, includeNames bool) (int, error) {
	if p.Empty() {
		return 0, nil
	}

	total, err := p.CountString(doc.Text)
	if err != nil {
		return 0, err
	}

	if includeNames {
		n, err := p.CountString(doc.Name)
		if err != nil {
			return 0, err
		}
		total += n
	}

	return total, nil
}

// CountString returns the number of non-overlapping matches in s.
func (p *Pattern) CountString(s string) (int, error) {
	if p.Empty() {
		return 0, nil
	}

	count := 0
	m, err := p.re.FindStringMatch(s)
	for err == nil && m != nil {
		count++
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return 0, p.scanError(err)
	}

	return count, nil
}

// Spans returns the [start, end) byte offsets of every match of group 1 in s.
func (p *Pattern) Spans(s string) ([][2]int, error) {
	if p.Empty() {
		return nil, nil
	}

	// regexp2 reports rune offsets
	offsets := runeOffsets(s)

	var spans [][2]int
	m, err := p.re.FindStringMatch(s)
	for err == nil && m != nil {
		g := m.GroupByNumber(1)
		spans = append(spans, [2]int{offsets[g.Index], offsets[g.Index+g.Length]})
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, p.scanError(err)
	}

	return spans, nil
}

func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// scanError maps an engine error during a scan. The only runtime failure the
// engine reports is an exceeded MatchTimeout.
func (p *Pattern) scanError(err error) error {
	return errors.Errorf("%w: %s: %v", ErrMatchTimeout, p.String(), err)
}
