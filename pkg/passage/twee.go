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
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"
)

const tweeHeaderPrefix = "::"

// ParseTwee reads twee 3 source. Anything before the first passage header is
// ignored. A "pid" metadata value becomes the passage ID; otherwise the ID is
// derived from source and position so it is stable across loads of the file.
func ParseTwee(r io.Reader, source string) ([]*Passage, error) {
	var (
		passages []*Passage
		current  *Passage
		body     []string
		lineNo   int
	)

	flush := func() {
		if current == nil {
			return
		}
		text := strings.Join(trimTrailingBlank(body), "\n")
		current.Text = text
		current.loadedText = text
		passages = append(passages, current)
		body = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.HasPrefix(line, tweeHeaderPrefix) {
			flush()

			name, tags, meta, err := parseTweeHeader(line[len(tweeHeaderPrefix):])
			if err != nil {
				return nil, errors.Errorf("%s:%d: %w", source, lineNo, err)
			}

			id := tweeID(source, len(passages))
			if pid, ok := meta["pid"]; ok {
				id = fmt.Sprint(pid)
			}

			current = &Passage{
				ID:         id,
				Name:       name,
				Tags:       tags,
				Metadata:   meta,
				Source:     source,
				Format:     FormatTwee,
				loadedName: name,
			}
			continue
		}

		if current == nil {
			continue
		}

		if strings.HasPrefix(line, `\`+tweeHeaderPrefix) {
			line = line[1:]
		}
		body = append(body, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading %s: %w", source, err)
	}

	flush()

	return passages, nil
}

// WriteTwee writes passages as twee 3 source, separated by one blank line.
func WriteTwee(w io.Writer, passages []*Passage) error {
	bw := bufio.NewWriter(w)

	for i, p := range passages {
		if i > 0 {
			if _, err := bw.WriteString("\n\n"); err != nil {
				return errors.Errorf("writing separator: %w", err)
			}
		}

		header, err := formatTweeHeader(p)
		if err != nil {
			return errors.Errorf("passage %q: %w", p.Name, err)
		}
		if _, err := bw.WriteString(header + "\n"); err != nil {
			return errors.Errorf("writing header: %w", err)
		}

		lines := strings.Split(p.Text, "\n")
		for j, line := range lines {
			if strings.HasPrefix(line, tweeHeaderPrefix) {
				line = `\` + line
			}
			if j > 0 {
				line = "\n" + line
			}
			if _, err := bw.WriteString(line); err != nil {
				return errors.Errorf("writing body: %w", err)
			}
		}
	}

	if len(passages) > 0 {
		if _, err := bw.WriteString("\n"); err != nil {
			return errors.Errorf("writing trailer: %w", err)
		}
	}

	return bw.Flush()
}

// EncodeTwee returns passages as twee 3 source.
func EncodeTwee(passages []*Passage) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTwee(&buf, passages); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseTweeHeader(s string) (string, []string, map[string]any, error) {
	var (
		name    strings.Builder
		escaped bool
		i       int
	)

	// name runs to the first unescaped '[' or '{'
	for i < len(s) {
		c := s[i]
		if escaped {
			name.WriteByte(c)
			escaped = false
			i++
			continue
		}
		if c == '\\' {
			escaped = true
			i++
			continue
		}
		if c == '[' || c == '{' {
			break
		}
		name.WriteByte(c)
		i++
	}

	rest := strings.TrimSpace(s[i:])
	n := strings.TrimSpace(name.String())
	if n == "" {
		return "", nil, nil, errors.Errorf("passage header without a name")
	}

	var tags []string
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, nil, errors.Errorf("unterminated tag block in passage %q", n)
		}
		tags = strings.Fields(rest[1:end])
		rest = strings.TrimSpace(rest[end+1:])
	}

	var meta map[string]any
	if strings.HasPrefix(rest, "{") {
		if err := json.Unmarshal([]byte(rest), &meta); err != nil {
			return "", nil, nil, errors.Errorf("decoding metadata of passage %q: %w", n, err)
		}
		rest = ""
	}

	if rest != "" {
		return "", nil, nil, errors.Errorf("unexpected text %q after header of passage %q", rest, n)
	}

	return n, tags, meta, nil
}

func formatTweeHeader(p *Passage) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", errors.Errorf("passage has no name")
	}

	var b strings.Builder
	b.WriteString(tweeHeaderPrefix + " ")
	b.WriteString(escapeTweeName(p.Name))

	if len(p.Tags) > 0 {
		b.WriteString(" [" + strings.Join(p.Tags, " ") + "]")
	}

	if len(p.Metadata) > 0 {
		meta, err := json.Marshal(p.Metadata)
		if err != nil {
			return "", errors.Errorf("encoding metadata: %w", err)
		}
		b.WriteString(" ")
		b.Write(meta)
	}

	return b.String(), nil
}

var tweeNameEscaper = strings.NewReplacer(
	`\`, `\\`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

func escapeTweeName(name string) string {
	return tweeNameEscaper.Replace(name)
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

func tweeID(source string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("twee:%s#%d", source, index))).String()
}
