/*
Package search finds, previews and replaces matches of a user query across passages.

	            +-------------+
	            |    Query    |
	            | (user text) |
	            +------+------+
	                   |
	                Compile
	                   |
	            +------+------+
	            |   Pattern   |
	            | "(<source>)"|
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  Count  |   |Highlight|   | Replace |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Turns raw search text plus flags into a single compiled Pattern
- Counts matches in a passage name and text
- Renders an HTML preview with matched spans wrapped in highlight markup
- Replaces matches in one passage or across a whole collection

🔄 Flow:
1. Compile escapes literal text (or keeps regex text verbatim) and wraps it
   in exactly one capture group
2. Count, Highlight and Replace all consume that same Pattern, so they
   always agree on what a match is
3. ReplaceAll counts first and only touches passages with at least one match

⚡ Key Rules:
- An empty query compiles to the empty pattern: zero matches, escape-only
  previews, no replacements
- Invalid regex text fails in Compile with ErrInvalidPattern and never
  reaches the other operations
- Previews are escaped before markup is added; passage content cannot
  produce tags
- includeNames is honored the same way by count, highlight and replace

🔍 Example:

	p, err := search.Compile(search.Query{RawPattern: "cat", IncludeNames: true})
	if errors.Is(err, search.ErrInvalidPattern) {
		// show a syntax error instead of "no results"
	}

	n, _ := p.Count(doc, true)
	preview, _ := p.Highlight(doc, true)
	summary, _ := p.ReplaceAll(docs, "dog", true)
*/
package search
