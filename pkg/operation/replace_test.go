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

package operation

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/passages/pkg/passage"
	"github.com/walteh/passages/pkg/search"
	"gitlab.com/tozd/go/errors"
)

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name        string
		query       search.Query
		replacement string
		wantSummary search.Summary
		wantChanged []string // passage ids with a Change, in order
		check       func(t *testing.T, c *passage.Collection, result *ReplaceResult)
	}{
		{
			name:        "text_only",
			query:       search.Query{RawPattern: "cat"},
			replacement: "dog",
			wantSummary: search.Summary{PassagesMatched: 2, TotalReplacements: 3},
			wantChanged: []string{"1", "3"},
			check: func(t *testing.T, c *passage.Collection, result *ReplaceResult) {
				p, _ := c.Get("1")
				assert.Equal(t, "The dog sat. A dog ran.", p.Text)
				p, _ = c.Get("2")
				assert.Equal(t, "Cat house", p.Name, "names are left alone")
				assert.Equal(t, 2, result.Changes[0].Replacements)
				assert.False(t, result.Changes[0].Renamed())
			},
		},
		{
			name:        "with_names",
			query:       search.Query{RawPattern: "cat", IncludeNames: true},
			replacement: "dog",
			wantSummary: search.Summary{PassagesMatched: 3, TotalReplacements: 4},
			wantChanged: []string{"1", "2", "3"},
			check: func(t *testing.T, c *passage.Collection, result *ReplaceResult) {
				p, _ := c.Get("2")
				assert.Equal(t, "dog house", p.Name)
				assert.True(t, result.Changes[1].Renamed())
				assert.Equal(t, "Cat house", result.Changes[1].OldName)
				assert.Equal(t, result.Changes[1].OldText, result.Changes[1].NewText, "only the name changed")
			},
		},
		{
			name:        "regex_group_reference",
			query:       search.Query{RawPattern: "c(a)t", IsRegex: true},
			replacement: "[$1]",
			wantSummary: search.Summary{PassagesMatched: 2, TotalReplacements: 3},
			wantChanged: []string{"1", "3"},
			check: func(t *testing.T, c *passage.Collection, result *ReplaceResult) {
				p, _ := c.Get("1")
				assert.Equal(t, "The [cat] sat. A [CAT] ran.", p.Text, "$1 is the whole match")
			},
		},
		{
			name:        "no_matches",
			query:       search.Query{RawPattern: "wolf"},
			replacement: "dog",
			wantSummary: search.Summary{},
		},
		{
			name:        "empty_pattern",
			query:       search.Query{},
			replacement: "dog",
			wantSummary: search.Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCollection()

			result, err := ReplaceAll(testContext(t), Options{
				Pattern:  mustCompile(t, tt.query),
				Passages: c,
			}, tt.replacement)
			require.NoError(t, err, "ReplaceAll should succeed")

			assert.Equal(t, tt.wantSummary, result.Summary, "summary should match")
			assert.Empty(t, result.Files, "nothing is written without a file manager")

			var changed []string
			for _, ch := range result.Changes {
				changed = append(changed, ch.PassageID)
			}
			assert.Equal(t, tt.wantChanged, changed, "changed passages should match")

			if tt.check != nil {
				tt.check(t, c, result)
			}
		})
	}
}

func TestReplaceAll_ThenSearchFindsNothing(t *testing.T) {
	c := testCollection()
	opts := Options{
		Pattern:  mustCompile(t, search.Query{RawPattern: "cat", IncludeNames: true}),
		Passages: c,
	}

	_, err := ReplaceAll(testContext(t), opts, "dog")
	require.NoError(t, err)

	result, err := Search(testContext(t), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PassagesMatched)
}

func TestReplaceAll_Diffs(t *testing.T) {
	c := testCollection()

	result, err := ReplaceAll(testContext(t), Options{
		Pattern:  mustCompile(t, search.Query{RawPattern: "cat"}),
		Passages: c,
	}, "dog")
	require.NoError(t, err)
	require.NotEmpty(t, result.Changes)

	dmp := diffmatchpatch.New()
	for _, ch := range result.Changes {
		assert.Equal(t, ch.OldText, dmp.DiffText1(ch.Diffs), "diff should rebuild the old text")
		assert.Equal(t, ch.NewText, dmp.DiffText2(ch.Diffs), "diff should rebuild the new text")
		assert.Contains(t, ch.Patch(), "@@", "patch should have a hunk header")
		assert.Contains(t, ch.Pretty(), "dog")
	}
}

func TestReplaceInPassage(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		wantSummary search.Summary
		wantErr     error
	}{
		{name: "by_id", id: "1", wantSummary: search.Summary{PassagesMatched: 1, TotalReplacements: 2}},
		{name: "by_name", id: "Garden", wantSummary: search.Summary{PassagesMatched: 1, TotalReplacements: 1}},
		{name: "no_match_in_passage", id: "2", wantSummary: search.Summary{}},
		{name: "unknown_passage", id: "Cellar", wantErr: ErrPassageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCollection()

			result, err := ReplaceInPassage(testContext(t), Options{
				Pattern:  mustCompile(t, search.Query{RawPattern: "cat"}),
				Passages: c,
			}, tt.id, "dog")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error should wrap %v", tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSummary, result.Summary)

			assert.Len(t, c.Changed(), tt.wantSummary.PassagesMatched, "only the chosen passage may change")
		})
	}
}

func TestReplaceOperation(t *testing.T) {
	c := testCollection()
	opts := Options{
		Pattern:  mustCompile(t, search.Query{RawPattern: "cat"}),
		Passages: c,
	}

	all := NewReplaceOperation(opts, "dog", "")
	require.NoError(t, all.Execute(testContext(t)))
	assert.Equal(t, 3, all.Result.TotalReplacements)

	one := NewReplaceOperation(opts, "dog", "missing")
	err := one.Execute(testContext(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPassageNotFound))
	assert.Nil(t, one.Result)
}
