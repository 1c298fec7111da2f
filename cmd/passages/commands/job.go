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

package commands

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/passages/cmd/passages/opts"
	"github.com/walteh/passages/pkg/config"
	"github.com/walteh/passages/pkg/passage"
	"gitlab.com/tozd/go/errors"
)

// jobFlags are the query and source flags shared by search and replace
type jobFlags struct {
	regex         bool
	caseSensitive bool
	includeNames  bool
	timeout       time.Duration
	ignore        []string
	format        string
	concurrency   int
	baseDir       string
}

func (f *jobFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.regex, "regex", "r", false, "treat the pattern as a regular expression")
	fl.BoolVarP(&f.caseSensitive, "case-sensitive", "s", false, "match letter case exactly")
	fl.BoolVarP(&f.includeNames, "names", "n", false, "also match passage names")
	fl.DurationVar(&f.timeout, "timeout", 0, "match time limit per passage (0 for none)")
	fl.StringSliceVar(&f.ignore, "ignore", nil, "glob of files to skip, may be repeated")
	fl.StringVar(&f.format, "format", "", "source format: auto, twee or text")
	fl.IntVar(&f.concurrency, "concurrency", 0, "number of files read in parallel")
	fl.StringVar(&f.baseDir, "dir", "", "directory the source globs are relative to")
}

// buildConfig merges the config file, positional args and changed flags into
// a validated job. pattern and replacement are left as configured when nil.
func buildConfig(cmd *cobra.Command, root *opts.RootOpts, f *jobFlags, pattern, replacement *string, sources []string) (*config.Config, error) {
	cfg := &config.Config{}
	if root.ConfigFile != "" {
		loaded, err := config.Load(cmd.Context(), root.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if pattern != nil {
		cfg.Query.Pattern = *pattern
	}
	if replacement != nil {
		cfg.Replacement = replacement
	}
	if len(sources) > 0 {
		cfg.Sources = sources
	}

	fl := cmd.Flags()
	if fl.Changed("regex") {
		cfg.Query.Regex = f.regex
	}
	if fl.Changed("case-sensitive") {
		cfg.Query.CaseSensitive = f.caseSensitive
	}
	if fl.Changed("names") {
		cfg.Query.IncludeNames = f.includeNames
	}
	if fl.Changed("timeout") {
		cfg.MatchTimeout = f.timeout.String()
	}
	if fl.Changed("ignore") {
		cfg.IgnorePatterns = f.ignore
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if fl.Changed("dir") {
		cfg.BaseDir = f.baseDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid job: %w", err)
	}

	zerolog.Ctx(cmd.Context()).Debug().Str("job", cfg.String()).Str("base_dir", cfg.BaseDir).Msg("resolved job")

	return cfg, nil
}

// loadPassages reads the job's sources from its base dir.
func loadPassages(ctx context.Context, cfg *config.Config) (*passage.Collection, error) {
	coll, err := passage.Load(ctx, os.DirFS(cfg.BaseDir), cfg.LoadOptions())
	if err != nil {
		return nil, errors.Errorf("loading passages: %w", err)
	}
	return coll, nil
}
