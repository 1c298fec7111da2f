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
	"github.com/samber/lo"
)

// 📄 Passage is a single named unit of text in a story
type Passage struct {
	ID       string         // stable for the lifetime of the passage
	Name     string         // passage name, searchable when names are included
	Text     string         // passage body
	Tags     []string       // twee tags, kept as-is
	Metadata map[string]any // twee metadata block, kept as-is
	Source   string         // file the passage was loaded from
	Format   Format         // how Source is encoded

	// loaded* hold the name and text as read so callers can tell what changed
	loadedName string
	loadedText string
}

// New creates a passage whose current content is also its loaded content.
func New(id, name, text string) *Passage {
	return &Passage{
		ID:         id,
		Name:       name,
		Text:       text,
		loadedName: name,
		loadedText: text,
	}
}

// Changed reports whether the name or text differ from what was loaded.
func (p *Passage) Changed() bool {
	return p.Name != p.loadedName || p.Text != p.loadedText
}

// Original returns the name and text as they were loaded.
func (p *Passage) Original() (name, text string) {
	return p.loadedName, p.loadedText
}

// MarkSaved makes the current content the new baseline for Changed.
func (p *Passage) MarkSaved() {
	p.loadedName = p.Name
	p.loadedText = p.Text
}

// 📚 Collection is an ordered set of passages
type Collection struct {
	passages []*Passage
}

// NewCollection wraps passages, keeping their order.
func NewCollection(passages ...*Passage) *Collection {
	return &Collection{passages: passages}
}

// All returns the passages in order. The slice is shared with the collection.
func (c *Collection) All() []*Passage {
	return c.passages
}

// Len returns the number of passages.
func (c *Collection) Len() int {
	return len(c.passages)
}

// Add appends passages to the end of the collection.
func (c *Collection) Add(passages ...*Passage) {
	c.passages = append(c.passages, passages...)
}

// Get finds a passage by ID.
func (c *Collection) Get(id string) (*Passage, bool) {
	return lo.Find(c.passages, func(p *Passage) bool {
		return p.ID == id
	})
}

// Lookup finds a passage by ID, falling back to an exact name match.
func (c *Collection) Lookup(idOrName string) (*Passage, bool) {
	if p, ok := c.Get(idOrName); ok {
		return p, true
	}
	return lo.Find(c.passages, func(p *Passage) bool {
		return p.Name == idOrName
	})
}

// Counter counts matches in a passage.
type Counter interface {
	Count(p *Passage, includeNames bool) (int, error)
}

// Matching returns the passages with at least one match, in order.
func (c *Collection) Matching(m Counter, includeNames bool) ([]*Passage, error) {
	var out []*Passage
	for _, p := range c.passages {
		n, err := m.Count(p, includeNames)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

// Changed returns the passages whose content differs from what was loaded.
func (c *Collection) Changed() []*Passage {
	return lo.Filter(c.passages, func(p *Passage, _ int) bool {
		return p.Changed()
	})
}

// Sources returns the distinct source files in first-seen order.
func (c *Collection) Sources() []string {
	return lo.Uniq(lo.FilterMap(c.passages, func(p *Passage, _ int) (string, bool) {
		return p.Source, p.Source != ""
	}))
}

// BySource returns the passages loaded from source, in order.
func (c *Collection) BySource(source string) []*Passage {
	return lo.Filter(c.passages, func(p *Passage, _ int) bool {
		return p.Source == source
	})
}
