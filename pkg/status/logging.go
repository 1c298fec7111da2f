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

package status

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints search and replace outcomes for a person at a terminal
type UserLogger struct {
	log       zerolog.Logger // for debug/error logging
	formatter Formatter
	writer    io.Writer
}

// 🎯 NewUserLogger creates a user logger that prints to w.
// A nil writer keeps pterm's default output.
func NewUserLogger(ctx context.Context, w io.Writer) *UserLogger {
	return &UserLogger{
		log:       *zerolog.Ctx(ctx),
		formatter: NewDefaultFormatter(),
		writer:    w,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	p := base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style})
	if u.writer != nil {
		p = p.WithWriter(u.writer)
	}
	return p
}

// 🔍 LogSearchSummary prints how many passages matched a search
func (u *UserLogger) LogSearchSummary(passagesMatched int) {
	msg := u.formatter.FormatSearchSummary(passagesMatched)
	if passagesMatched == 0 {
		u.printer(pterm.Warning, "🔍").Println(msg)
	} else {
		u.printer(pterm.Info, "🔍").Println(msg)
	}
	u.log.Info().Int("passages_matched", passagesMatched).Msg(msg)
}

// 🔄 LogReplaceSummary prints the totals of a finished replace
func (u *UserLogger) LogReplaceSummary(totalReplacements, passagesMatched int) {
	msg := u.formatter.FormatReplaceSummary(totalReplacements, passagesMatched)
	u.printer(pterm.Success, "🔄").Println(msg)
	u.log.Info().
		Int("total_replacements", totalReplacements).
		Int("passages_matched", passagesMatched).
		Msg(msg)
}

// 📝 LogFileChange prints a write-back result
func (u *UserLogger) LogFileChange(info FileInfo) {
	msg := u.formatter.FormatFileOperation(info.Path, info.Status)
	switch {
	case info.Error != nil:
		u.printer(pterm.Error, "❌").Println(msg)
		u.printer(pterm.Error, "❌").Println(u.formatter.FormatError(info.Error))
		u.log.Error().Err(info.Error).Msg(msg)
		return
	case info.Status == StatusDeleted:
		u.printer(pterm.Warning, "🗑️").Println(msg)
	case info.Status == StatusUnchanged:
		u.printer(pterm.Debug, "⏭️").Println(msg)
	default:
		u.printer(pterm.Success, "✨").Println(msg)
	}
	u.log.Info().Str("path", info.Path).Str("status", info.Status.String()).Msg(msg)
}

// ❌ LogError prints err with a short description
func (u *UserLogger) LogError(description string, err error) {
	u.printer(pterm.Error, "❌").Println(description)
	if err != nil {
		u.printer(pterm.Error, "❌").Println(u.formatter.FormatError(err))
	}
	u.log.Error().Err(err).Msg(description)
}
