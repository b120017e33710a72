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

// Package errkit is the typed error core: a closed set of error codes
// (package code), a TypedError carrying code, message, HTTP status and
// origin, and a classifier that turns any failure value into a TypedError.
//
// Construct errors with New or Create; signal a failure from a handler with
// Fail; convert foreign failures at a boundary with Classify or
// Classifier.FromFailure.
package errkit

import (
	"errors"
	"fmt"
	"net/http"

	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/origin"
)

// DefaultStatus is the HTTP status of a TypedError created without one.
const DefaultStatus = http.StatusInternalServerError

// Error is the TypedError of the kit.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be safely shared and modified in a functional style.
type Error struct {
	// Code is the taxonomy member this error belongs to.
	Code code.Code

	// Message is the taxonomy message of Code, optionally followed by a
	// space and caller supplied detail.
	Message string

	// StatusCode is the HTTP status to respond with.
	StatusCode int

	// Origin is where the error was raised or converted, when known.
	Origin origin.Origin

	// Details is optional structured context. It is sanitized before it is
	// logged and never sent to clients. WithDetail/WithDetails always copy it.
	Details map[string]any

	// Cause holds the wrapped underlying error (if any).
	Cause error

	// Redacted hides the detail part of Message from clients: Public
	// returns the bare taxonomy message instead.
	Redacted bool

	logged bool
}

// New creates a TypedError with the taxonomy message of c and status 500,
// then applies opts in order.
//
//	return errkit.New(code.NotFound,
//	    errkit.WithStatus(http.StatusNotFound),
//	    errkit.WithInfo("user 42"),
//	)
func New(c code.Code, opts ...Option) *Error {
	e := &Error{Code: c, Message: code.Message(c), StatusCode: DefaultStatus}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Create is the positional form of New. A zero status keeps the default and
// an empty info adds nothing to the message.
func Create(c code.Code, status int, info string) *Error {
	return New(c, WithStatus(status), WithInfo(info))
}

// Fail builds the error a handler returns to signal a typed failure. The
// message is appended to the taxonomy message; status defaults to 500.
// Fail never logs: the wrapper that receives the error does.
//
//	if u == nil {
//	    return errkit.Fail(code.NotFound, "user "+id, http.StatusNotFound)
//	}
func Fail(c code.Code, message string, status ...int) *Error {
	st := DefaultStatus
	if len(status) > 0 && status[0] > 0 {
		st = status[0]
	}
	return Create(c, st, message)
}

// Error implements the built-in error interface as "<CODE>: <message>".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a TypedError with the same code. This lets
// callers test against sentinels like errkit.New(code.NotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return t.Code == e.Code
}

// Public returns the text safe to show to a client.
func (e *Error) Public() string {
	if e == nil {
		return code.Message(code.UnexpectedError)
	}
	if e.Redacted {
		return code.Message(e.Code)
	}
	return e.Message
}

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// ErrorStatus implements apis.StatusError.
func (e *Error) ErrorStatus() int { return e.StatusCode }

// ErrorOrigin implements apis.OriginError.
func (e *Error) ErrorOrigin() origin.Origin { return e.Origin }

// ErrorDetails implements apis.DetailedError.
func (e *Error) ErrorDetails() map[string]any { return e.Details }

// WithStatus returns a copy of e with the HTTP status replaced. Non-positive
// values are ignored.
func (e *Error) WithStatus(status int) *Error {
	if status <= 0 {
		return e
	}
	cp := *e
	cp.StatusCode = status
	return &cp
}

// WithInfo returns a copy of e whose message has " "+info appended.
func (e *Error) WithInfo(info string) *Error {
	if info == "" {
		return e
	}
	cp := *e
	cp.Message = cp.Message + " " + info
	return &cp
}

// WithMessage returns a copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithOrigin returns a copy of e with the given origin.
func (e *Error) WithOrigin(o origin.Origin) *Error {
	cp := *e
	cp.Origin = o
	return &cp
}

// WithRedacted returns a copy of e with Redacted set to v.
func (e *Error) WithRedacted(v bool) *Error {
	cp := *e
	cp.Redacted = v
	return &cp
}

// WithDetail returns a shallow copy of e with one extra key/value in Details.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a shallow copy of e with all provided kv merged into
// Details, kv winning on key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause attached.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
