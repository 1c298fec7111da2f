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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "passages.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Query struct {
			Pattern       string `hcl:"pattern"`
			Regex         bool   `hcl:"regex,optional"`
			CaseSensitive bool   `hcl:"case_sensitive,optional"`
			IncludeNames  bool   `hcl:"include_names,optional"`
		} `hcl:"query,block"`
		Replacement    *string  `hcl:"replacement,optional"`
		Sources        []string `hcl:"sources"`
		IgnorePatterns []string `hcl:"ignore_patterns,optional"`
		BaseDir        string   `hcl:"base_dir,optional"`
		Format         string   `hcl:"format,optional"`
		MatchTimeout   string   `hcl:"match_timeout,optional"`
		Highlight      *struct {
			Open  string `hcl:"open,optional"`
			Close string `hcl:"close,optional"`
		} `hcl:"highlight,block"`
		Write       bool `hcl:"write,optional"`
		Concurrency int  `hcl:"concurrency,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Query: QueryArgs{
			Pattern:       hclCfg.Query.Pattern,
			Regex:         hclCfg.Query.Regex,
			CaseSensitive: hclCfg.Query.CaseSensitive,
			IncludeNames:  hclCfg.Query.IncludeNames,
		},
		Replacement:    hclCfg.Replacement,
		Sources:        hclCfg.Sources,
		IgnorePatterns: hclCfg.IgnorePatterns,
		BaseDir:        hclCfg.BaseDir,
		Format:         hclCfg.Format,
		MatchTimeout:   hclCfg.MatchTimeout,
		Write:          hclCfg.Write,
		Concurrency:    hclCfg.Concurrency,
	}

	if hclCfg.Highlight != nil {
		cfg.Highlight = &HighlightArgs{
			Open:  hclCfg.Highlight.Open,
			Close: hclCfg.Highlight.Close,
		}
	}

	return cfg, nil
}
