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
	"encoding"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  NOT_FOUND  ", "NOT_FOUND"},
		{"to upper", "not_found", "NOT_FOUND"},
		{"dash to underscore", "not-found", "NOT_FOUND"},
		{"inner space", "database error", "DATABASE_ERROR"},
		{"mixed", "  rate-limit-Exceeded  ", "RATE_LIMIT_EXCEEDED"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Code
	}{
		{"canonical", "NOT_FOUND", NotFound},
		{"with spaces", "  UNAUTHORIZED  ", Unauthorized},
		{"lower", "database_error", DatabaseError},
		{"dash", "email-already-exists", EmailAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"unknown", "TEAPOT"},
		{"partial", "NOT"},
		{"punctuation", "NOT_FOUND!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", tt.in, got)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", tt.in, got)
			}
		})
	}
}

func TestTaxonomy_EveryCodeHasOneMessage(t *testing.T) {
	all := All()
	if len(all) != len(messages) {
		t.Fatalf("All() has %d codes, taxonomy has %d messages", len(all), len(messages))
	}
	seen := make(map[Code]bool, len(all))
	for _, c := range all {
		if seen[c] {
			t.Fatalf("code %q listed twice", c)
		}
		seen[c] = true
		if !Known(c) {
			t.Fatalf("code %q listed but not known", c)
		}
		if strings.TrimSpace(Message(c)) == "" {
			t.Fatalf("code %q has an empty message", c)
		}
		if c.Message() != Message(c) {
			t.Fatalf("method and function disagree for %q", c)
		}
	}
}

func TestMessage_UnknownFallsBackToUnexpected(t *testing.T) {
	if got := Message(Code("NOPE")); got != Message(UnexpectedError) {
		t.Fatalf("Message(unknown) = %q, want the unexpected-error message", got)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0] = Empty
	if All()[0] == Empty {
		t.Fatalf("All() must return a fresh slice")
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse should panic on invalid input")
		}
	}()
	_ = MustParse("NOT A CODE ??")
}

func TestMustParse_SucceedsOnValid(t *testing.T) {
	if c := MustParse("not_found"); c != NotFound {
		t.Fatalf("MustParse(valid) = %q, want %q", c, NotFound)
	}
}

func TestCode_MarshalText(t *testing.T) {
	text, err := DatabaseError.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() unexpected error: %v", err)
	}
	if string(text) != "DATABASE_ERROR" {
		t.Fatalf("MarshalText() = %q, want %q", string(text), "DATABASE_ERROR")
	}

	if _, err := Code("not-a-code").MarshalText(); err == nil {
		t.Fatalf("MarshalText() on unknown code must return error")
	}
}

func TestCode_UnmarshalText(t *testing.T) {
	var c Code
	if err := c.UnmarshalText([]byte("  not-found  ")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	if c != NotFound {
		t.Fatalf("UnmarshalText() = %q, want %q", c, NotFound)
	}

	var bad Code
	if err := bad.UnmarshalText([]byte("!@#")); err == nil {
		t.Fatalf("UnmarshalText() expected error for invalid input")
	}
}

func TestCode_ImplementsTextInterfaces(t *testing.T) {
	var _ encoding.TextMarshaler = (*Code)(nil)
	var _ encoding.TextUnmarshaler = (*Code)(nil)
}
