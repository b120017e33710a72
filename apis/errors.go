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

package apis

import "dirpx.dev/errkit/origin"

// CodedError represents an error classified into a taxonomy code.
//
// Codes are stable and enumerable. They are the primary value adapters use
// to decide which status to return to the client.
type CodedError interface {
	error

	// ErrorCode returns the machine-readable error code, e.g. "NOT_FOUND".
	ErrorCode() string
}

// StatusError represents an error that carries the HTTP status it should be
// answered with.
type StatusError interface {
	error

	// ErrorStatus returns the HTTP status. Zero means "not specified".
	ErrorStatus() int
}

// OriginError represents an error that knows which component and operation
// raised it.
type OriginError interface {
	error

	ErrorOrigin() origin.Origin
}

// DetailedError represents an error that exposes structured context. The
// returned map must not be modified by the caller and may be nil.
type DetailedError interface {
	error

	ErrorDetails() map[string]any
}

// LoggedError is implemented by errors that know whether they have already
// been emitted by a logging pipeline.
type LoggedError interface {
	error

	Logged() bool
}
