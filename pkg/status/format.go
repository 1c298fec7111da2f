package status

import (
	"fmt"
)

// Formatter defines how file writes and search results are described to a user
type Formatter interface {
	// FormatFileOperation formats a file write status message
	FormatFileOperation(path string, status FileStatus) string

	// FormatSearchSummary describes how many passages matched a search
	FormatSearchSummary(passagesMatched int) string

	// FormatReplaceSummary describes a finished replace across passages
	FormatReplaceSummary(totalReplacements, passagesMatched int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// Plural picks one or many by n and formats n into it.
func Plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf(one, n)
	}
	return fmt.Sprintf(many, n)
}

// FormatFileOperation formats a file write status message with emojis
func (f *DefaultFormatter) FormatFileOperation(path string, status FileStatus) string {
	switch status {
	case StatusNew:
		return fmt.Sprintf("✨ Created %s", path)
	case StatusModified:
		return fmt.Sprintf("📝 Modified %s", path)
	case StatusDeleted:
		return fmt.Sprintf("🗑️  Removed %s", path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

// FormatSearchSummary returns "N passages match." or the no-results message
func (f *DefaultFormatter) FormatSearchSummary(passagesMatched int) string {
	if passagesMatched == 0 {
		return "No matching passages found."
	}
	return Plural(passagesMatched, "%d passage matches.", "%d passages match.")
}

// FormatReplaceSummary returns "N replacements were made in M passages"
func (f *DefaultFormatter) FormatReplaceSummary(totalReplacements, passagesMatched int) string {
	replacements := Plural(totalReplacements, "%d replacement was made in", "%d replacements were made in")
	passages := Plural(passagesMatched, "%d passage", "%d passages")
	return fmt.Sprintf("%s %s", replacements, passages)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
