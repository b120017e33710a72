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

import "dirpx.dev/errkit/origin"

// Option is a functional option for constructing or transforming an Error.
// It always takes an *Error and returns a (possibly new) *Error.
type Option func(*Error) *Error

// WithStatus sets the HTTP status. Zero keeps the default.
func WithStatus(status int) Option {
	return func(e *Error) *Error { return e.WithStatus(status) }
}

// WithInfo appends detail text to the taxonomy message.
func WithInfo(info string) Option {
	return func(e *Error) *Error { return e.WithInfo(info) }
}

// WithCause attaches a cause on construction.
func WithCause(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}

// WithOrigin records where the error was raised.
func WithOrigin(o origin.Origin) Option {
	return func(e *Error) *Error { return e.WithOrigin(o) }
}

// WithRedacted hides the detail text from clients.
func WithRedacted() Option {
	return func(e *Error) *Error { return e.WithRedacted(true) }
}

// WithDetail adds a single detail key/value on construction.
func WithDetail(k string, v any) Option {
	return func(e *Error) *Error { return e.WithDetail(k, v) }
}

// WithDetails merges multiple detail key/values on construction.
func WithDetails(kv map[string]any) Option {
	return func(e *Error) *Error { return e.WithDetails(kv) }
}
