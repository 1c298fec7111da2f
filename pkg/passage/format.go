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
	"bytes"
	"path"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🗂️ Format is how a source file encodes its passages
type Format string

const (
	FormatAuto Format = "auto" // pick by file extension
	FormatTwee Format = "twee" // many passages per file
	FormatText Format = "text" // one passage per file, named after the file
)

// ParseFormat validates a format name. Empty means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatTwee, FormatText:
		return f, nil
	default:
		return "", errors.Errorf("unknown passage format %q", s)
	}
}

// Resolve turns FormatAuto into a concrete format for file.
func (f Format) Resolve(file string) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(path.Ext(file)) {
	case ".twee", ".tw", ".tw2", ".tw3":
		return FormatTwee
	default:
		return FormatText
	}
}

// Decode parses data loaded from source.
func Decode(format Format, source string, data []byte) ([]*Passage, error) {
	switch format.Resolve(source) {
	case FormatTwee:
		return ParseTwee(bytes.NewReader(data), source)
	default:
		p := New(source, TextName(source), string(data))
		p.Source = source
		p.Format = FormatText
		return []*Passage{p}, nil
	}
}

// Encode renders passages that share a source back into file content.
func Encode(format Format, source string, passages []*Passage) ([]byte, error) {
	switch format.Resolve(source) {
	case FormatTwee:
		return EncodeTwee(passages)
	default:
		if len(passages) != 1 {
			return nil, errors.Errorf("text source %s holds %d passages, want 1", source, len(passages))
		}
		return []byte(passages[0].Text), nil
	}
}

// TextName is the passage name of a text file: its base name without extension.
func TextName(file string) string {
	base := path.Base(file)
	return strings.TrimSuffix(base, path.Ext(base))
}

// TargetPath is where p should be written. Text passages follow their name,
// so a renamed text passage moves to a new file next to the old one.
func TargetPath(p *Passage) (string, error) {
	if p.Format != FormatText || p.Name == TextName(p.Source) {
		return p.Source, nil
	}
	if strings.TrimSpace(p.Name) == "" || strings.ContainsAny(p.Name, `/\`) || p.Name == "." || p.Name == ".." {
		return "", errors.Errorf("passage name %q is not a valid file name", p.Name)
	}
	return path.Join(path.Dir(p.Source), p.Name+path.Ext(p.Source)), nil
}
