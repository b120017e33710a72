/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package code

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Code is the canonical, closed-set representation of an error code.
//
// It is defined as a separate type (not just string) so that call sites
// declare which values they expect and raw user input cannot be mixed with
// taxonomy entries by accident.
type Code string

var (
	// ErrCodeInvalid is returned when a value cannot be parsed as one of the
	// codes declared in this package.
	ErrCodeInvalid = errors.New("errkit: invalid code")
)

// Ensure Code implements encoding.TextMarshaler / encoding.TextUnmarshaler
// so it can be embedded into larger config or API structs.
var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code. It is never part of the taxonomy.
var Empty Code = ""

// Parse takes a user-provided string, normalizes it and checks that it
// names a taxonomy entry.
func Parse(s string) (Code, error) {
	c := Code(Normalize(s))
	if err := Validate(c); err != nil {
		return Empty, err
	}
	return c, nil
}

// MustParse is the panic-on-error variant of Parse. It is useful in tests
// and in package-level var blocks.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize brings an arbitrary string closer to the canonical code form.
//
// It only performs obvious, non-lossy transformations:
//
//   - trims surrounding spaces;
//   - upper-cases the value;
//   - replaces '-' and inner spaces with '_'.
//
// It does NOT guarantee that the result is a known code.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate reports whether c is a member of the taxonomy.
func Validate(c Code) error {
	if !Known(c) {
		return ErrCodeInvalid
	}
	return nil
}

// Known reports whether c has a taxonomy entry.
func Known(c Code) bool {
	_, ok := messages[c]
	return ok
}

// Message returns the default, user-presentable message for c.
//
// Codes outside the taxonomy cannot be produced through Parse or the
// declared constants; for such a value the UnexpectedError message is
// returned so that callers always get something safe to show.
func Message(c Code) string {
	if m, ok := messages[c]; ok {
		return m
	}
	return messages[UnexpectedError]
}

// All returns every code of the taxonomy in declaration order.
// The returned slice is a copy and may be modified by the caller.
func All() []Code {
	out := make([]Code, len(ordered))
	copy(out, ordered)
	return out
}

// String returns the canonical string representation of the code.
func (c Code) String() string {
	return string(c)
}

// Message is a method form of the package-level Message.
func (c Code) Message() string {
	return Message(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
