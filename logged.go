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

import "dirpx.dev/errkit/apis"

// Logged reports whether e has already been emitted by a logging pipeline.
func (e *Error) Logged() bool { return e != nil && e.logged }

// MarkLogged returns a copy of e flagged as logged.
func (e *Error) MarkLogged() *Error {
	if e == nil || e.logged {
		return e
	}
	cp := *e
	cp.logged = true
	return &cp
}

type loggedError struct {
	err error
}

func (l *loggedError) Error() string { return l.err.Error() }
func (l *loggedError) Unwrap() error { return l.err }
func (l *loggedError) Logged() bool  { return true }

// MarkLogged flags err as already emitted so that outer layers do not log it
// again. A TypedError is copied with its marker set; any other error is
// wrapped. The result still matches err under errors.Is and errors.As.
func MarkLogged(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e.MarkLogged()
	}
	if IsLogged(err) {
		return err
	}
	return &loggedError{err: err}
}

// IsLogged reports whether any error in err's tree carries a logged marker.
func IsLogged(err error) bool {
	if err == nil {
		return false
	}
	if l, ok := err.(apis.LoggedError); ok && l.Logged() {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return IsLogged(u.Unwrap())
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if IsLogged(e) {
				return true
			}
		}
	}
	return false
}
