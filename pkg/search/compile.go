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
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
)

const (
	// DefaultOpenMarkup starts a highlighted span in previews
	DefaultOpenMarkup = `<span class="highlight">`
	// DefaultCloseMarkup ends a highlighted span in previews
	DefaultCloseMarkup = `</span>`
)

// 🔎 Query is what the user typed plus the search checkboxes
type Query struct {
	RawPattern    string // search text, literal unless IsRegex
	IsRegex       bool   // treat RawPattern as regex syntax
	CaseSensitive bool   // match case exactly
	IncludeNames  bool   // also search passage names
}

// ⚙️ Options tunes a compiled Pattern
type Options struct {
	// MatchTimeout bounds a single scan; zero means no bound
	MatchTimeout time.Duration

	// OpenMarkup and CloseMarkup wrap highlighted spans; empty uses the defaults
	OpenMarkup  string
	CloseMarkup string
}

// 🧩 Pattern is the compiled, capture-grouped form of a Query.
// It is read-only once built and safe for concurrent use.
type Pattern struct {
	query  Query
	source string
	re     *regexp2.Regexp // nil for the empty pattern
	flags  regexp2.RegexOptions

	openMarkup  string
	closeMarkup string
}

// Compile builds a Pattern with default Options.
func Compile(q Query) (*Pattern, error) {
	return CompileWithOptions(q, Options{})
}

// CompileWithOptions builds a Pattern from q. An empty RawPattern yields the
// empty pattern; regex text that does not compile yields a *CompileError.
func CompileWithOptions(q Query, opts Options) (*Pattern, error) {
	p := &Pattern{
		query:       q,
		openMarkup:  opts.OpenMarkup,
		closeMarkup: opts.CloseMarkup,
	}
	if p.openMarkup == "" {
		p.openMarkup = DefaultOpenMarkup
	}
	if p.closeMarkup == "" {
		p.closeMarkup = DefaultCloseMarkup
	}

	if q.RawPattern == "" {
		return p, nil
	}

	p.flags = regexp2.RegexOptions(regexp2.ECMAScript)
	if !q.CaseSensitive {
		p.flags |= regexp2.IgnoreCase
	}

	source := q.RawPattern
	if q.IsRegex {
		// Text such as "a)(b" only balances once wrapped, which would leave
		// group 1 covering part of the match.
		if _, err := regexp2.Compile(source, p.flags); err != nil {
			return nil, &CompileError{
				Reason:  ReasonInvalidPattern,
				Pattern: q.RawPattern,
				Err:     err,
			}
		}
	} else {
		source = EscapeLiteral(source)
	}
	p.source = "(" + source + ")"

	re, err := regexp2.Compile(p.source, p.flags)
	if err != nil {
		return nil, &CompileError{
			Reason:  ReasonInvalidPattern,
			Pattern: q.RawPattern,
			Err:     err,
		}
	}
	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}
	p.re = re

	return p, nil
}

// EscapeLiteral prefixes every regex metacharacter and whitespace rune in s
// with a backslash so the result matches s literally.
func EscapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if isLiteralMeta(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isLiteralMeta(r rune) bool {
	switch r {
	case '-', '[', ']', '{', '}', '(', ')', '*', '+', '?', '.', ',', '\\', '^', '$', '|', '#':
		return true
	}
	return unicode.IsSpace(r)
}

// Empty reports whether this is the empty pattern, which matches nothing.
func (p *Pattern) Empty() bool {
	return p.re == nil
}

// Source returns the compiled source, including the outer capture group.
// It is empty for the empty pattern.
func (p *Pattern) Source() string {
	return p.source
}

// Query returns the query this pattern was compiled from.
func (p *Pattern) Query() Query {
	return p.query
}

func (p *Pattern) String() string {
	if p.Empty() {
		return "<empty>"
	}
	flags := "g"
	if !p.query.CaseSensitive {
		flags += "i"
	}
	return "/" + p.source + "/" + flags
}
