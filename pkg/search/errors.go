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

package search

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ReasonInvalidPattern is the CompileError reason for regex text that does not compile.
const ReasonInvalidPattern = "invalid-pattern"

var (
	// ErrInvalidPattern is matched by every CompileError
	ErrInvalidPattern = errors.Base("invalid search pattern")

	// ErrMatchTimeout is returned when a scan runs past Options.MatchTimeout
	ErrMatchTimeout = errors.Base("search pattern exceeded match timeout")

	// ErrNoSentinel is returned when a text uses every reserved highlight rune
	ErrNoSentinel = errors.Base("no free highlight sentinel")
)

// ❌ CompileError reports regex text that the pattern engine rejected
type CompileError struct {
	Reason  string // always ReasonInvalidPattern
	Pattern string // raw user text
	Err     error  // engine error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrInvalidPattern.Error(), e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvalidPattern) hold for every CompileError.
func (e *CompileError) Is(target error) bool {
	return target == ErrInvalidPattern
}
