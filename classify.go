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

	"dirpx.dev/errkit/code"
)

// Kind tags the variant a failure value falls into.
type Kind uint8

const (
	// KindOpaque is anything that is neither typed nor carries a message:
	// nil, plain strings, numbers, arbitrary structs.
	KindOpaque Kind = iota
	// KindGeneric is an error (or fmt.Stringer) that is not a TypedError.
	KindGeneric
	// KindTyped is a TypedError, possibly found through a wrapping chain.
	KindTyped
)

func (k Kind) String() string {
	switch k {
	case KindTyped:
		return "typed"
	case KindGeneric:
		return "generic"
	default:
		return "opaque"
	}
}

// Inspection is the result of Inspect.
type Inspection struct {
	Kind Kind
	// Typed is set for KindTyped.
	Typed *Error
	// Err is the original value when it is an error.
	Err error
	// Message is the raw message for KindGeneric and the typed message for
	// KindTyped. Empty for KindOpaque.
	Message string
}

// Inspect determines the variant of v. It never panics, even when the
// value's Error or String method does.
func Inspect(v any) Inspection {
	switch x := v.(type) {
	case nil:
		return Inspection{Kind: KindOpaque}
	case error:
		var te *Error
		if errors.As(x, &te) && te != nil {
			return Inspection{Kind: KindTyped, Typed: te, Err: x, Message: te.Message}
		}
		if msg, ok := safeText(x.Error); ok {
			return Inspection{Kind: KindGeneric, Err: x, Message: msg}
		}
		return Inspection{Kind: KindOpaque, Err: x}
	case fmt.Stringer:
		if msg, ok := safeText(x.String); ok {
			return Inspection{Kind: KindGeneric, Err: errors.New(msg), Message: msg}
		}
	}
	return Inspection{Kind: KindOpaque}
}

// Classify maps any failure value to a TypedError:
//
//   - a TypedError is returned as is;
//   - a generic failure becomes UNEXPECTED_ERROR with its raw message
//     appended and the original error as cause;
//   - anything else becomes a bare UNEXPECTED_ERROR.
func Classify(v any) *Error {
	in := Inspect(v)
	switch in.Kind {
	case KindTyped:
		return in.Typed
	case KindGeneric:
		return New(code.UnexpectedError, WithInfo(in.Message), WithCause(in.Err))
	default:
		return New(code.UnexpectedError, WithCause(in.Err))
	}
}

// MessageOf returns the message of a TypedError, or the UNEXPECTED_ERROR
// taxonomy message for anything else.
func MessageOf(v any) string {
	if in := Inspect(v); in.Kind == KindTyped {
		return in.Typed.Message
	}
	return code.Message(code.UnexpectedError)
}

// Rule converts a generic failure into a TypedError. It reports false when
// it does not recognize err.
type Rule func(err error) (*Error, bool)

// Classifier is Classify with domain rules. Rules are consulted in order for
// generic failures only; the first match wins.
type Classifier struct {
	Rules []Rule
}

// NewClassifier returns a Classifier using rules.
func NewClassifier(rules ...Rule) Classifier {
	return Classifier{Rules: rules}
}

// Classify is the package-level Classify with rules applied first.
func (c Classifier) Classify(v any) *Error {
	in := Inspect(v)
	if in.Kind == KindGeneric {
		if e, ok := c.match(in.Err); ok {
			return e
		}
	}
	return Classify(v)
}

// FromFailure converts whatever a handler failed with into the TypedError
// sent to the client:
//
//   - a TypedError passes through untouched;
//   - a generic failure matching a rule becomes the rule's error;
//   - any other generic failure becomes defaultCode with status 500, its raw
//     message appended and the failure as cause;
//   - an opaque value becomes defaultCode with MessageOf(v) appended.
//
// opts are applied to every non-typed result, after the defaults above.
func (c Classifier) FromFailure(v any, defaultCode code.Code, opts ...Option) *Error {
	e, _ := c.Convert(v, defaultCode, opts...)
	return e
}

// Outcome names the FromFailure branch that produced an error.
type Outcome int

const (
	// OutcomeTyped means the failure already was a TypedError.
	OutcomeTyped Outcome = iota
	// OutcomeRule means a rule matched the failure.
	OutcomeRule
	// OutcomeDefault means the failure fell back to the default code.
	OutcomeDefault
)

// Convert is FromFailure that also reports which branch produced the result.
// Callers use it to adjust only fallback conversions and leave rule results
// alone.
func (c Classifier) Convert(v any, defaultCode code.Code, opts ...Option) (*Error, Outcome) {
	in := Inspect(v)
	var (
		e   *Error
		out = OutcomeDefault
	)
	switch in.Kind {
	case KindTyped:
		return in.Typed, OutcomeTyped
	case KindGeneric:
		if m, ok := c.match(in.Err); ok {
			e, out = m, OutcomeRule
		} else {
			e = New(defaultCode, WithStatus(DefaultStatus), WithInfo(in.Message), WithCause(in.Err))
		}
	default:
		e = New(defaultCode, WithInfo(MessageOf(v)), WithCause(in.Err))
	}
	for _, opt := range opts {
		e = opt(e)
	}
	return e, out
}

func (c Classifier) match(err error) (*Error, bool) {
	for _, r := range c.Rules {
		if r == nil {
			continue
		}
		if e, ok := safeRule(r, err); ok && e != nil {
			return e, true
		}
	}
	return nil, false
}

func safeRule(r Rule, err error) (e *Error, ok bool) {
	defer func() {
		if recover() != nil {
			e, ok = nil, false
		}
	}()
	return r(err)
}

func safeText(f func() string) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	return f(), true
}
