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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestEscapeLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain_text", input: "cat", want: "cat"},
		{name: "dot", input: "a.b", want: `a\.b`},
		{name: "space", input: "a b", want: `a\ b`},
		{name: "tab_and_newline", input: "a\tb\n", want: "a\\\tb\\\n"},
		{name: "all_metacharacters", input: `-[]{}()*+?.,\^$|#`, want: `\-\[\]\{\}\(\)\*\+\?\.\,\\\^\$\|\#`},
		{name: "unicode_untouched", input: "héllo/wörld", want: "héllo/wörld"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLiteral(tt.input))
		})
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		query      Query
		wantEmpty  bool
		wantSource string
		wantString string
	}{
		{
			name:      "empty_pattern",
			query:     Query{RawPattern: "", IsRegex: true},
			wantEmpty: true,
		},
		{
			name:       "literal_wraps_escaped_source",
			query:      Query{RawPattern: "a.b"},
			wantSource: `(a\.b)`,
			wantString: `/(a\.b)/gi`,
		},
		{
			name:       "regex_kept_verbatim",
			query:      Query{RawPattern: "c.t", IsRegex: true, CaseSensitive: true},
			wantSource: "(c.t)",
			wantString: "/(c.t)/g",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.query)
			require.NoError(t, err)
			require.NotNil(t, p)

			assert.Equal(t, tt.wantEmpty, p.Empty())
			assert.Equal(t, tt.wantSource, p.Source())
			assert.Equal(t, tt.query, p.Query())
			if tt.wantString != "" {
				assert.Equal(t, tt.wantString, p.String())
			}
		})
	}
}

func TestCompile_InvalidPattern(t *testing.T) {
	for _, raw := range []string{"[", "(", "a)", "*", "a)(b", "x)|(y"} {
		t.Run(raw, func(t *testing.T) {
			p, err := Compile(Query{RawPattern: raw, IsRegex: true})
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrInvalidPattern), "error should be ErrInvalidPattern: %v", err)

			var cerr *CompileError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, ReasonInvalidPattern, cerr.Reason)
			assert.Equal(t, raw, cerr.Pattern)
			assert.NotNil(t, cerr.Unwrap())
		})
	}
}

func TestCompile_InvalidRegexIsFineAsLiteral(t *testing.T) {
	p, err := Compile(Query{RawPattern: "[(*", IsRegex: false})
	require.NoError(t, err)

	n, err := p.CountString("x [(* y [(*")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCompile_Markup(t *testing.T) {
	p, err := CompileWithOptions(Query{RawPattern: "x"}, Options{OpenMarkup: "<mark>", CloseMarkup: "</mark>"})
	require.NoError(t, err)

	got, err := p.HighlightPreview("axb")
	require.NoError(t, err)
	assert.Equal(t, "a<mark>x</mark>b", got)
}
