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
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/passages/pkg/passage"
	"github.com/walteh/passages/pkg/search"
)

const (
	hlOpen  = `<span class="highlight">`
	hlClose = `</span>`
)

func testCollection() *passage.Collection {
	return passage.NewCollection(
		passage.New("1", "Intro", "The cat sat. A CAT ran."),
		passage.New("2", "Cat house", "no felines here"),
		passage.New("3", "Garden", "<b>cat</b>"),
	)
}

func mustCompile(t *testing.T, q search.Query) *search.Pattern {
	t.Helper()
	p, err := search.Compile(q)
	require.NoError(t, err, "compiling %q should succeed", q.RawPattern)
	return p
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name      string
		query     search.Query
		wantEmpty bool
		wantRows  []SearchRow
	}{
		{
			name:  "text_only",
			query: search.Query{RawPattern: "cat"},
			wantRows: []SearchRow{
				{
					Number:      1,
					PassageID:   "1",
					PassageName: "Intro",
					NumMatches:  2,
					NameHTML:    "Intro",
					PreviewHTML: "The " + hlOpen + "cat" + hlClose + " sat. A " + hlOpen + "CAT" + hlClose + " ran.",
				},
				{
					Number:      2,
					PassageID:   "3",
					PassageName: "Garden",
					NumMatches:  1,
					NameHTML:    "Garden",
					PreviewHTML: "&lt;b&gt;" + hlOpen + "cat" + hlClose + "&lt;/b&gt;",
				},
			},
		},
		{
			name:  "with_names",
			query: search.Query{RawPattern: "cat", IncludeNames: true},
			wantRows: []SearchRow{
				{Number: 1, PassageID: "1", PassageName: "Intro", NumMatches: 2, NameHTML: "Intro",
					PreviewHTML: "The " + hlOpen + "cat" + hlClose + " sat. A " + hlOpen + "CAT" + hlClose + " ran."},
				{Number: 2, PassageID: "2", PassageName: "Cat house", NumMatches: 1,
					NameHTML: hlOpen + "Cat" + hlClose + " house", PreviewHTML: "no felines here"},
				{Number: 3, PassageID: "3", PassageName: "Garden", NumMatches: 1, NameHTML: "Garden",
					PreviewHTML: "&lt;b&gt;" + hlOpen + "cat" + hlClose + "&lt;/b&gt;"},
			},
		},
		{
			name:  "case_sensitive",
			query: search.Query{RawPattern: "CAT", CaseSensitive: true},
			wantRows: []SearchRow{
				{Number: 1, PassageID: "1", PassageName: "Intro", NumMatches: 1, NameHTML: "Intro",
					PreviewHTML: "The cat sat. A " + hlOpen + "CAT" + hlClose + " ran."},
			},
		},
		{
			name:     "no_matches",
			query:    search.Query{RawPattern: "dog"},
			wantRows: nil,
		},
		{
			name:      "empty_pattern",
			query:     search.Query{},
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)

			result, err := Search(ctx, Options{
				Pattern:  mustCompile(t, tt.query),
				Passages: testCollection(),
			})
			require.NoError(t, err, "Search should succeed")

			for i := range result.Rows {
				require.NotNil(t, result.Rows[i].Passage, "row should point at its passage")
				assert.Equal(t, result.Rows[i].PassageID, result.Rows[i].Passage.ID)
				result.Rows[i].Passage = nil
			}

			assert.Equal(t, tt.wantEmpty, result.Empty, "empty flag should match")
			assert.Equal(t, tt.wantRows, result.Rows, "rows should match")
			assert.Equal(t, len(tt.wantRows), result.PassagesMatched, "passages matched should equal row count")
		})
	}
}

func TestSearch_TotalMatches(t *testing.T) {
	result, err := Search(testContext(t), Options{
		Pattern:  mustCompile(t, search.Query{RawPattern: "cat", IncludeNames: true}),
		Passages: testCollection(),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalMatches())
}

func TestSearch_Validation(t *testing.T) {
	_, err := Search(context.Background(), Options{Passages: testCollection()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern is required")

	_, err = Search(context.Background(), Options{Pattern: mustCompile(t, search.Query{RawPattern: "x"})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passages are required")
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err := Search(ctx, Options{
		Pattern:  mustCompile(t, search.Query{RawPattern: "cat"}),
		Passages: testCollection(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchOperation(t *testing.T) {
	op := NewSearchOperation(Options{
		Pattern:  mustCompile(t, search.Query{RawPattern: "cat"}),
		Passages: testCollection(),
	})

	require.NoError(t, op.Execute(testContext(t)))
	require.NotNil(t, op.Result)
	assert.Equal(t, 2, op.Result.PassagesMatched)
}
