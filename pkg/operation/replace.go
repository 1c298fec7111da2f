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
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/passages/pkg/passage"
	"github.com/walteh/passages/pkg/search"
	"github.com/walteh/passages/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ✏️ Change records what a replacement did to one passage
type Change struct {
	PassageID    string
	Source       string
	OldName      string
	NewName      string
	OldText      string
	NewText      string
	Replacements int
	// Diffs is the semantic diff from OldText to NewText
	Diffs []diffmatchpatch.Diff
}

// Renamed reports whether the replacement changed the passage name.
func (c Change) Renamed() bool {
	return c.OldName != c.NewName
}

// Patch returns the text change as a patch in diff-match-patch text form.
func (c Change) Patch() string {
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(c.OldText, c.Diffs))
}

// Pretty returns the text change with insertions and deletions colored for a
// terminal.
func (c Change) Pretty() string {
	return diffmatchpatch.New().DiffPrettyText(c.Diffs)
}

// 📊 ReplaceResult is the outcome of ReplaceAll or ReplaceInPassage
type ReplaceResult struct {
	search.Summary
	Changes []Change
	// Files lists the sources written back, empty when Options.Files is nil
	Files []status.FileInfo
}

// ReplaceAll replaces every match across opts.Passages. Each passage is
// counted before any is edited, so a failed count leaves the collection
// untouched. When opts.Files is set the changed sources are written back.
func ReplaceAll(ctx context.Context, opts Options, replacement string) (*ReplaceResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return replace(ctx, opts, opts.Passages.All(), replacement)
}

// ReplaceInPassage replaces every match in the passage with the given id or
// name. Other passages are left alone.
func ReplaceInPassage(ctx context.Context, opts Options, id, replacement string) (*ReplaceResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	p, ok := opts.Passages.Lookup(id)
	if !ok {
		return nil, errors.Errorf("passage %q: %w", id, ErrPassageNotFound)
	}

	return replace(ctx, opts, []*passage.Passage{p}, replacement)
}

type snapshot struct {
	name, text string
	count      int
}

func replace(ctx context.Context, opts Options, docs []*passage.Passage, replacement string) (*ReplaceResult, error) {
	logger := zerolog.Ctx(ctx)
	includeNames := opts.includeNames()

	before := make([]snapshot, len(docs))
	for i, p := range docs {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("replacing: %w", err)
		}
		n, err := opts.Pattern.Count(p, includeNames)
		if err != nil {
			return nil, errors.Errorf("counting matches in passage %q: %w", p.Name, err)
		}
		before[i] = snapshot{name: p.Name, text: p.Text, count: n}
	}

	summary, err := opts.Pattern.ReplaceAll(docs, replacement, includeNames)
	if err != nil {
		return nil, errors.Errorf("replacing: %w", err)
	}

	dmp := diffmatchpatch.New()
	changes := lo.FilterMap(docs, func(p *passage.Passage, i int) (Change, bool) {
		if before[i].count == 0 {
			return Change{}, false
		}
		return Change{
			PassageID:    p.ID,
			Source:       p.Source,
			OldName:      before[i].name,
			NewName:      p.Name,
			OldText:      before[i].text,
			NewText:      p.Text,
			Replacements: before[i].count,
			Diffs:        dmp.DiffCleanupSemantic(dmp.DiffMain(before[i].text, p.Text, false)),
		}, true
	})

	result := &ReplaceResult{
		Summary: summary,
		Changes: changes,
	}

	logger.Debug().
		Str("pattern", opts.Pattern.String()).
		Int("passages_matched", summary.PassagesMatched).
		Int("total_replacements", summary.TotalReplacements).
		Msg("replace complete")

	if opts.Files == nil || summary.PassagesMatched == 0 {
		return result, nil
	}

	files, err := Save(ctx, opts.Passages, opts.Files)
	result.Files = files
	return result, err
}
