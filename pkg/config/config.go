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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/passages/pkg/passage"
	"github.com/walteh/passages/pkg/search"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔎 QueryArgs is the search query as written in a config file
type QueryArgs struct {
	Pattern       string `json:"pattern" yaml:"pattern"`
	Regex         bool   `json:"regex,omitempty" yaml:"regex,omitempty"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
	IncludeNames  bool   `json:"include_names,omitempty" yaml:"include_names,omitempty"`
}

// 🖍️ HighlightArgs overrides the preview markup
type HighlightArgs struct {
	Open  string `json:"open,omitempty" yaml:"open,omitempty"`
	Close string `json:"close,omitempty" yaml:"close,omitempty"`
}

// 📚 Config represents a complete search or replace job
type Config struct {
	Query          QueryArgs      `json:"query" yaml:"query"`
	Replacement    *string        `json:"replacement,omitempty" yaml:"replacement,omitempty"`         // nil for search-only jobs
	Sources        []string       `json:"sources" yaml:"sources"`                                     // doublestar globs
	IgnorePatterns []string       `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"` // doublestar globs
	BaseDir        string         `json:"base_dir,omitempty" yaml:"base_dir,omitempty"`               // globs are relative to this
	Format         string         `json:"format,omitempty" yaml:"format,omitempty"`                   // auto, twee or text
	MatchTimeout   string         `json:"match_timeout,omitempty" yaml:"match_timeout,omitempty"`     // Go duration
	Highlight      *HighlightArgs `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Write          bool           `json:"write,omitempty" yaml:"write,omitempty"`
	Concurrency    int            `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`

	format  passage.Format
	timeout time.Duration
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Globs in a config file are relative to the file unless told otherwise
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	} else if !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Sources) == 0 {
		return errors.Errorf("sources is required")
	}
	for _, pattern := range append(append([]string{}, cfg.Sources...), cfg.IgnorePatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	format, err := passage.ParseFormat(cfg.Format)
	if err != nil {
		return errors.Errorf("format: %w", err)
	}
	cfg.format = format
	cfg.Format = string(format)

	cfg.timeout = 0
	if cfg.MatchTimeout != "" {
		d, err := time.ParseDuration(cfg.MatchTimeout)
		if err != nil {
			return errors.Errorf("match_timeout: %w", err)
		}
		if d < 0 {
			return errors.Errorf("match_timeout must not be negative")
		}
		cfg.timeout = d
	}

	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative")
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = passage.DefaultConcurrency
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}

	if cfg.Write && cfg.Replacement == nil {
		return errors.Errorf("write requires a replacement")
	}

	// Fail early on regex text the engine will reject
	if _, err := cfg.Compile(); err != nil {
		return errors.Errorf("query: %w", err)
	}

	return nil
}

// SearchQuery returns the engine query for this job.
func (cfg *Config) SearchQuery() search.Query {
	return search.Query{
		RawPattern:    cfg.Query.Pattern,
		IsRegex:       cfg.Query.Regex,
		CaseSensitive: cfg.Query.CaseSensitive,
		IncludeNames:  cfg.Query.IncludeNames,
	}
}

// SearchOptions returns the engine options for this job.
func (cfg *Config) SearchOptions() search.Options {
	opts := search.Options{MatchTimeout: cfg.timeout}
	if cfg.Highlight != nil {
		opts.OpenMarkup = cfg.Highlight.Open
		opts.CloseMarkup = cfg.Highlight.Close
	}
	return opts
}

// Compile compiles the job's query.
func (cfg *Config) Compile() (*search.Pattern, error) {
	return search.CompileWithOptions(cfg.SearchQuery(), cfg.SearchOptions())
}

// LoadOptions returns the passage loading options for this job.
func (cfg *Config) LoadOptions() passage.LoadOptions {
	return passage.LoadOptions{
		Patterns:    cfg.Sources,
		Ignore:      cfg.IgnorePatterns,
		Format:      cfg.PassageFormat(),
		Concurrency: cfg.Concurrency,
	}
}

// PassageFormat returns the validated source format.
func (cfg *Config) PassageFormat() passage.Format {
	if cfg.format == "" {
		return passage.FormatAuto
	}
	return cfg.format
}

// Timeout returns the validated match timeout; zero means none.
func (cfg *Config) Timeout() time.Duration {
	return cfg.timeout
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q", cfg.Query.Pattern)
	if cfg.Replacement != nil {
		fmt.Fprintf(&b, " -> %q", *cfg.Replacement)
	}
	fmt.Fprintf(&b, " in %s", strings.Join(cfg.Sources, ","))
	return b.String()
}
