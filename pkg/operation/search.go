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

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/walteh/passages/pkg/passage"
	"gitlab.com/tozd/go/errors"
)

// 📋 SearchRow is one matching passage in a search result
type SearchRow struct {
	Number      int    // 1-based position in the result list
	PassageID   string // id of the matching passage
	PassageName string // raw passage name
	Source      string // file the passage was loaded from
	NumMatches  int    // matches in the text, plus the name when names are searched
	NameHTML    string // escaped name, highlighted when names are searched
	PreviewHTML string // escaped and highlighted passage text

	Passage *passage.Passage
}

// 📊 SearchResult lists the passages a query matched
type SearchResult struct {
	Rows            []SearchRow
	PassagesMatched int
	// Empty is set when the query had no pattern, so nothing was searched
	Empty bool
}

// TotalMatches sums the matches of every row.
func (r *SearchResult) TotalMatches() int {
	return lo.SumBy(r.Rows, func(row SearchRow) int {
		return row.NumMatches
	})
}

// Search counts and highlights every passage in opts.Passages, keeping only
// passages with at least one match, in collection order.
func Search(ctx context.Context, opts Options) (*SearchResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)

	if opts.Pattern.Empty() {
		logger.Debug().Msg("empty pattern, nothing to search")
		return &SearchResult{Empty: true}, nil
	}

	includeNames := opts.includeNames()
	result := &SearchResult{}

	for _, p := range opts.Passages.All() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("searching: %w", err)
		}

		n, err := opts.Pattern.Count(p, includeNames)
		if err != nil {
			return nil, errors.Errorf("searching passage %q: %w", p.Name, err)
		}
		if n == 0 {
			continue
		}

		hl, err := opts.Pattern.Highlight(p, includeNames)
		if err != nil {
			return nil, errors.Errorf("highlighting passage %q: %w", p.Name, err)
		}

		result.Rows = append(result.Rows, SearchRow{
			Number:      len(result.Rows) + 1,
			PassageID:   p.ID,
			PassageName: p.Name,
			Source:      p.Source,
			NumMatches:  n,
			NameHTML:    hl.NameHTML,
			PreviewHTML: hl.BodyHTML,
			Passage:     p,
		})
	}

	result.PassagesMatched = len(result.Rows)

	logger.Debug().
		Str("pattern", opts.Pattern.String()).
		Int("passages", opts.Passages.Len()).
		Int("passages_matched", result.PassagesMatched).
		Msg("search complete")

	return result, nil
}
