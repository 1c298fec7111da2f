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
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"story/main.twee":     {Data: []byte(":: Start\ncat one\n\n:: Next\ncat two\n")},
		"story/extra.tw":      {Data: []byte(":: Extra\nno match\n")},
		"notes/Cat.txt":       {Data: []byte("a note about dogs")},
		"notes/draft/old.txt": {Data: []byte("old cat")},
		"notes/skip.log":      {Data: []byte("log")},
	}
}

func TestGlob(t *testing.T) {
	tests := []struct {
		name      string
		patterns  []string
		ignore    []string
		want      []string
		wantError string
	}{
		{
			name:     "recursive_glob",
			patterns: []string{"**/*.txt"},
			want:     []string{"notes/Cat.txt", "notes/draft/old.txt"},
		},
		{
			name:     "multiple_patterns_sorted_and_unique",
			patterns: []string{"story/*", "story/main.twee"},
			want:     []string{"story/extra.tw", "story/main.twee"},
		},
		{
			name:     "ignore_patterns",
			patterns: []string{"**"},
			ignore:   []string{"**/draft/**", "*/*.log"},
			want:     []string{"notes/Cat.txt", "story/extra.tw", "story/main.twee"},
		},
		{
			name:      "no_patterns",
			wantError: "no source patterns",
		},
		{
			name:      "invalid_pattern",
			patterns:  []string{"[a"},
			wantError: "invalid glob pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Glob(testFS(), tt.patterns, tt.ignore)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := zerolog.Nop().WithContext(context.Background())

	col, err := Load(ctx, testFS(), LoadOptions{
		Patterns:    []string{"**/*.twee", "**/*.tw", "notes/*.txt"},
		Concurrency: 2,
	})
	require.NoError(t, err)

	names := lo.Map(col.All(), func(p *Passage, _ int) string { return p.Name })
	assert.Equal(t, []string{"Cat", "Extra", "Start", "Next"}, names, "sorted by file, then by position in file")

	cat, ok := col.Get("notes/Cat.txt")
	require.True(t, ok)
	assert.Equal(t, FormatText, cat.Format)
	assert.Equal(t, "a note about dogs", cat.Text)

	start, ok := col.Lookup("Start")
	require.True(t, ok)
	assert.Equal(t, "story/main.twee", start.Source)
	assert.Equal(t, "cat one", start.Text)

	assert.Equal(t, []string{"notes/Cat.txt", "story/extra.tw", "story/main.twee"}, col.Sources())
	assert.Len(t, col.BySource("story/main.twee"), 2)
}

func TestLoad_ForcedFormat(t *testing.T) {
	ctx := zerolog.Nop().WithContext(context.Background())

	col, err := Load(ctx, testFS(), LoadOptions{
		Patterns: []string{"story/main.twee"},
		Format:   FormatText,
	})
	require.NoError(t, err)
	require.Equal(t, 1, col.Len())
	assert.Equal(t, "main", col.All()[0].Name)
}

func TestLoad_DecodeError(t *testing.T) {
	ctx := zerolog.Nop().WithContext(context.Background())

	fsys := fstest.MapFS{"bad.twee": {Data: []byte(":: A [oops\n")}}

	_, err := Load(ctx, fsys, LoadOptions{Patterns: []string{"*.twee"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding bad.twee")
}
