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

package errkit

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dirpx.dev/errkit/code"
)

type stringer struct{ s string }

func (s stringer) String() string { return s.s }

type panicky struct{}

func (panicky) Error() string { panic("no message for you") }

func TestInspect_Kinds(t *testing.T) {
	typed := New(code.NotFound)
	tests := []struct {
		name string
		in   any
		kind Kind
		msg  string
	}{
		{"typed", typed, KindTyped, typed.Message},
		{"wrapped typed", fmt.Errorf("ctx: %w", typed), KindTyped, typed.Message},
		{"generic", errors.New("boom"), KindGeneric, "boom"},
		{"stringer", stringer{"from stringer"}, KindGeneric, "from stringer"},
		{"nil", nil, KindOpaque, ""},
		{"string", "just a string", KindOpaque, ""},
		{"int", 42, KindOpaque, ""},
		{"panicking Error", panicky{}, KindOpaque, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Inspect(tt.in)
			if in.Kind != tt.kind {
				t.Fatalf("Kind = %s, want %s", in.Kind, tt.kind)
			}
			if in.Message != tt.msg {
				t.Fatalf("Message = %q, want %q", in.Message, tt.msg)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	typed := Create(code.NotFound, http.StatusNotFound, "")
	if got := Classify(typed); got != typed {
		t.Fatal("typed input must be returned unchanged")
	}
	if got := Classify(fmt.Errorf("wrap: %w", typed)); got != typed {
		t.Fatal("typed error must be found through a wrapping chain")
	}

	boom := errors.New("boom")
	g := Classify(boom)
	if g.Code != code.UnexpectedError {
		t.Fatalf("generic code = %s", g.Code)
	}
	if g.Message != code.Message(code.UnexpectedError)+" boom" {
		t.Fatalf("generic message = %q", g.Message)
	}
	if !errors.Is(g, boom) {
		t.Fatal("generic classification must keep the cause")
	}

	o := Classify(struct{ X int }{1})
	if o.Code != code.UnexpectedError || o.Message != code.Message(code.UnexpectedError) {
		t.Fatalf("opaque classification = %+v", o)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	inputs := []any{
		nil,
		"text",
		42,
		errors.New("boom"),
		stringer{"s"},
		panicky{},
		New(code.InvalidToken, WithStatus(http.StatusUnauthorized)),
		fmt.Errorf("wrapped: %w", New(code.AccountLocked)),
	}
	for _, in := range inputs {
		once := Classify(in)
		twice := Classify(once)
		if once != twice {
			t.Fatalf("Classify not idempotent for %#v", in)
		}
	}
}

func TestMessageOf(t *testing.T) {
	typed := Create(code.ValidationError, 400, "email")
	if got := MessageOf(typed); got != typed.Message {
		t.Fatalf("MessageOf(typed) = %q", got)
	}
	fallback := code.Message(code.UnexpectedError)
	for _, v := range []any{nil, errors.New("boom"), "x", panicky{}} {
		if got := MessageOf(v); got != fallback {
			t.Fatalf("MessageOf(%#v) = %q, want %q", v, got, fallback)
		}
	}
}

var errNoRows = errors.New("no rows")

func noRowsRule(err error) (*Error, bool) {
	if errors.Is(err, errNoRows) {
		return New(code.NotFound, WithStatus(http.StatusNotFound), WithCause(err)), true
	}
	return nil, false
}

func TestClassifier_FromFailure(t *testing.T) {
	c := NewClassifier(nil, func(error) (*Error, bool) { panic("bad rule") }, noRowsRule)

	typed := Fail(code.NotFound, "", http.StatusNotFound)
	if got := c.FromFailure(typed, code.DatabaseError); got != typed {
		t.Fatal("typed failure must pass through")
	}

	ruled := c.FromFailure(fmt.Errorf("query: %w", errNoRows), code.DatabaseError)
	if ruled.Code != code.NotFound || ruled.StatusCode != http.StatusNotFound {
		t.Fatalf("rule result = %+v", ruled)
	}

	plain := c.FromFailure(errors.New("boom"), code.DatabaseError, WithStatus(http.StatusServiceUnavailable))
	if plain.Code != code.DatabaseError {
		t.Fatalf("code = %s", plain.Code)
	}
	if plain.Message != code.Message(code.DatabaseError)+" boom" {
		t.Fatalf("message = %q", plain.Message)
	}
	if plain.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("options must apply after defaults, status = %d", plain.StatusCode)
	}

	opaque := c.FromFailure(42, code.RegistrationFailed)
	want := code.Message(code.RegistrationFailed) + " " + code.Message(code.UnexpectedError)
	if opaque.Message != want || opaque.StatusCode != http.StatusInternalServerError {
		t.Fatalf("opaque = %+v", opaque)
	}
}

func TestClassifier_ConvertOutcome(t *testing.T) {
	c := NewClassifier(noRowsRule)

	cases := []struct {
		name   string
		in     any
		want   Outcome
		status int
	}{
		{"typed", Fail(code.EmailAlreadyExists, "", http.StatusConflict), OutcomeTyped, http.StatusConflict},
		{"rule", fmt.Errorf("get: %w", errNoRows), OutcomeRule, http.StatusNotFound},
		{"plain", errors.New("boom"), OutcomeDefault, http.StatusInternalServerError},
		{"opaque", "text", OutcomeDefault, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, got := c.Convert(tc.in, code.DatabaseError)
			if got != tc.want {
				t.Fatalf("outcome = %d, want %d", got, tc.want)
			}
			if e.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", e.StatusCode, tc.status)
			}
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(noRowsRule)
	if got := c.Classify(errNoRows); got.Code != code.NotFound {
		t.Fatalf("rule not applied, code = %s", got.Code)
	}
	if got := c.Classify(errors.New("x")); got.Code != code.UnexpectedError {
		t.Fatalf("fallback code = %s", got.Code)
	}
}
