// Package operation runs searches and replacements over a loaded collection
package operation

import (
	"context"

	"github.com/walteh/passages/pkg/passage"
	"github.com/walteh/passages/pkg/search"
	"github.com/walteh/passages/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrPassageNotFound is returned when a passage id or name is not in the collection.
var ErrPassageNotFound = errors.Base("passage not found")

// 🎯 Operation is a unit of work the Runner can execute
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains what every operation works on
type Options struct {
	// Pattern is the compiled query
	Pattern *search.Pattern
	// Passages is the collection searched and edited in place
	Passages *passage.Collection
	// Files writes changed sources back; nil keeps changes in memory
	Files *status.Manager
}

func (o Options) validate() error {
	if o.Pattern == nil {
		return errors.Errorf("pattern is required")
	}
	if o.Passages == nil {
		return errors.Errorf("passages are required")
	}
	return nil
}

func (o Options) includeNames() bool {
	return o.Pattern.Query().IncludeNames
}

// 🔍 SearchOperation wraps Search for the Runner
type SearchOperation struct {
	Options
	Result *SearchResult
}

// NewSearchOperation creates a search operation
func NewSearchOperation(opts Options) *SearchOperation {
	return &SearchOperation{Options: opts}
}

// Execute runs the search and stores its result
func (op *SearchOperation) Execute(ctx context.Context) error {
	result, err := Search(ctx, op.Options)
	op.Result = result
	return err
}

// 🔄 ReplaceOperation wraps ReplaceAll and ReplaceInPassage for the Runner
type ReplaceOperation struct {
	Options
	Replacement string
	// PassageID limits the replacement to one passage, by id or name
	PassageID string
	Result    *ReplaceResult
}

// NewReplaceOperation creates a replace operation
func NewReplaceOperation(opts Options, replacement, passageID string) *ReplaceOperation {
	return &ReplaceOperation{
		Options:     opts,
		Replacement: replacement,
		PassageID:   passageID,
	}
}

// Execute runs the replacement and stores its result. A failed write-back
// still stores the result so the files written so far can be reported.
func (op *ReplaceOperation) Execute(ctx context.Context) error {
	var (
		result *ReplaceResult
		err    error
	)
	if op.PassageID != "" {
		result, err = ReplaceInPassage(ctx, op.Options, op.PassageID, op.Replacement)
	} else {
		result, err = ReplaceAll(ctx, op.Options, op.Replacement)
	}
	op.Result = result
	return err
}
