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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	replacement := "dog"

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_passage_result",
			op: func(t *testing.T, logger *Logger) {
				logger.LogPassageResult(context.Background(), PassageResult{
					Number:  1,
					Name:    "Start",
					Source:  "story.twee",
					Matches: 2,
					Preview: "a cat sat",
				})
			},
			wantLogs: []string{
				"✓   1. Start                          2 matches        a cat sat",
			},
		},
		{
			name: "log_search_query",
			op: func(t *testing.T, logger *Logger) {
				logger.StartQuery(context.Background(), QueryOperation{
					Pattern: "/(cat)/gi",
					Sources: []string{"story/*.twee", "notes/*.txt"},
				})
			},
			wantLogs: []string{
				"[searching story/*.twee, notes/*.txt]",
				"◆ /(cat)/gi",
			},
		},
		{
			name: "log_replace_query",
			op: func(t *testing.T, logger *Logger) {
				logger.StartQuery(context.Background(), QueryOperation{
					Pattern:     "/(cat)/gi",
					Replacement: &replacement,
					Sources:     []string{"story/*.twee"},
					DryRun:      true,
				})
			},
			wantLogs: []string{
				"[replacing in story/*.twee]",
				`◆ /(cat)/gi → "dog" (dry run)`,
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("searching passages")
			},
			wantLogs: []string{
				"passages • searching passages",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
		{
			name: "log_raw",
			op: func(t *testing.T, logger *Logger) {
				logger.Raw("<li>x</li>\n")
			},
			wantLogs: []string{
				"<li>x</li>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.InfoLevel)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestPassageResultFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		r    PassageResult
		want string
	}{
		{
			name: "search_match",
			r:    PassageResult{Number: 1, Name: "Start", Matches: 2, Preview: "a cat sat"},
			want: "    ✓   1. Start                          2 matches        a cat sat",
		},
		{
			name: "single_match",
			r:    PassageResult{Number: 12, Name: "Attic", Matches: 1},
			want: "    ✓  12. Attic                          1 match         ",
		},
		{
			name: "replaced",
			r:    PassageResult{Number: 2, Name: "Cellar", Matches: 1, Replacements: 1, Preview: "a dog"},
			want: "    ⟳   2. Cellar                         1 replacement    a dog",
		},
		{
			name: "no_matches",
			r:    PassageResult{Number: 3, Name: "Empty"},
			want: "    -   3. Empty                          no matches      ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(io.Discard, zerolog.Disabled)
			assert.Equal(t, tt.want, logger.formatPassageResult(tt.r), "formatted output should match")
		})
	}
}
