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
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/passages/pkg/status"
)

// 🎨 Display configuration
const (
	rowIndent   = 4  // spaces to indent result rows
	numberWidth = 4  // Width for the row number
	nameWidth   = 30 // Base width for passage name
	countWidth  = 16 // Width for the match count
)

// 🎯 PassageResult is one result row for a matching passage
type PassageResult struct {
	Number       int    // 1-based position in the result list
	Name         string // Passage name, already rendered for the console
	Source       string // File the passage was loaded from
	Matches      int    // Matches found by the search
	Replacements int    // Replacements made, zero for a search
	Preview      string // Single line preview, already rendered
}

// 📦 QueryOperation describes the search or replace being run
type QueryOperation struct {
	Pattern     string   // Compiled pattern as shown to the user
	Replacement *string  // Nil for a search
	Sources     []string // Source globs
	DryRun      bool     // Whether changes are only previewed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *QueryOperation
	results   []PassageResult
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatPassageResult formats a result row for display
func (l *Logger) formatPassageResult(r PassageResult) string {
	var symbol rune
	var symbolColor color.Attribute
	var count string
	switch {
	case r.Replacements > 0:
		symbol = '⟳'
		symbolColor = color.FgBlue
		count = status.Plural(r.Replacements, "%d replacement", "%d replacements")
	case r.Matches > 0:
		symbol = '✓'
		symbolColor = color.FgGreen
		count = status.Plural(r.Matches, "%d match", "%d matches")
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		count = "no matches"
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", rowIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%*s", numberWidth, fmt.Sprintf("%d.", r.Number)),
		fmt.Sprintf("%-*s", nameWidth, r.Name),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", countWidth, count)))

	if r.Preview != "" {
		line += " " + r.Preview
	}
	return line
}

// 📝 LogPassageResult logs a result row
func (l *Logger) LogPassageResult(ctx context.Context, r PassageResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, r)

	fmt.Fprintln(l.console, l.formatPassageResult(r))

	l.zlog.Info().
		Int("number", r.Number).
		Str("passage", r.Name).
		Str("source", r.Source).
		Int("matches", r.Matches).
		Int("replacements", r.Replacements).
		Msg("passage result")
}

// 📝 StartQuery starts a new search or replace operation
func (l *Logger) StartQuery(ctx context.Context, op QueryOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.results = nil

	verb := "searching"
	if op.Replacement != nil {
		verb = "replacing in"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", verb,
		color.New(color.FgCyan).Sprint(strings.Join(op.Sources, ", ")))

	line := fmt.Sprintf("%s %s",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Pattern))
	if op.Replacement != nil {
		line += fmt.Sprintf(" %s %s",
			color.New(color.Faint).Sprint("→"),
			color.New(color.FgYellow).Sprintf("%q", *op.Replacement))
	}
	if op.DryRun {
		line += " " + color.New(color.Faint).Sprint("(dry run)")
	}
	fmt.Fprintln(l.console, line)

	ev := l.zlog.Info().
		Str("pattern", op.Pattern).
		Strs("sources", op.Sources).
		Bool("dry_run", op.DryRun)
	if op.Replacement != nil {
		ev = ev.Str("replacement", *op.Replacement)
	}
	ev.Msg("starting query")
}

// 📝 EndQuery ends the current operation
func (l *Logger) EndQuery(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Info().
		Str("pattern", l.currentOp.Pattern).
		Int("results", len(l.results)).
		Msg("query complete")

	l.currentOp = nil
	l.results = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("passages")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Raw writes msg to the console unchanged
func (l *Logger) Raw(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
