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

package passage

import (
	"context"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files read at once when none is set.
const DefaultConcurrency = 4

// 📥 LoadOptions selects the files to read
type LoadOptions struct {
	Patterns    []string // doublestar globs relative to the loader's root
	Ignore      []string // doublestar globs of files to skip
	Format      Format   // FormatAuto picks per file
	Concurrency int      // files read in parallel
}

// Load reads every file in fsys matched by opts.Patterns and not by
// opts.Ignore. Files are visited in sorted path order and passages keep their
// in-file order, so the collection order is deterministic.
func Load(ctx context.Context, fsys fs.FS, opts LoadOptions) (*Collection, error) {
	logger := zerolog.Ctx(ctx)

	files, err := Glob(fsys, opts.Patterns, opts.Ignore)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("files", len(files)).Strs("patterns", opts.Patterns).Msg("loading passages")

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	loaded := make([][]*Passage, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := fs.ReadFile(fsys, file)
			if err != nil {
				return errors.Errorf("reading %s: %w", file, err)
			}

			passages, err := Decode(opts.Format, file, data)
			if err != nil {
				return errors.Errorf("decoding %s: %w", file, err)
			}

			logger.Trace().Str("file", file).Int("passages", len(passages)).Msg("loaded source")
			loaded[i] = passages
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewCollection(lo.Flatten(loaded)...), nil
}

// Glob expands patterns against fsys, drops ignored paths and returns the
// remaining files sorted and without duplicates.
func Glob(fsys fs.FS, patterns, ignore []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, errors.Errorf("no source patterns given")
	}

	for _, pattern := range append(append([]string{}, patterns...), ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	files = lo.Reject(lo.Uniq(files), func(file string, _ int) bool {
		return lo.SomeBy(ignore, func(pattern string) bool {
			return doublestar.MatchUnvalidated(pattern, file)
		})
	})

	sort.Strings(files)

	return files, nil
}
