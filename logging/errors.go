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

package logging

import (
	"dirpx.dev/errkit"
	"dirpx.dev/errkit/adapter"
	"dirpx.dev/errkit/apis"
	"dirpx.dev/errkit/origin"
)

// HandleError classifies failure, logs it once at error level as
//
//	CODE: message[. additionalInfo]
//
// with the error descriptor as context, and returns the TypedError marked
// as logged. A failure that was already logged is classified and returned
// without a second event. additionalInfo goes into the line verbatim; it is
// not sanitized, so it must not carry secrets.
func (p *Pipeline) HandleError(o origin.Origin, action string, failure any, additionalInfo string) *errkit.Error {
	e := p.classifier.Classify(failure)
	if e.Origin.IsZero() {
		e = e.WithOrigin(o)
	}
	if err, ok := failure.(error); ok && errkit.IsLogged(err) {
		return e.MarkLogged()
	}

	msg := e.Error()
	if additionalInfo != "" {
		msg += ". " + additionalInfo
	}
	p.Error(o, action, msg, map[string]any{"error": adapter.ToDescriptor(e, apis.Status{})})
	return e.MarkLogged()
}

// LogSuccess logs an info "Success" event with data as metadata. A Notify
// among opts is shown as a success alert.
func (p *Pipeline) LogSuccess(o origin.Origin, message string, data any, opts ...Notify) {
	params := []any{map[string]any{"metadata": data}}
	for _, n := range opts {
		params = append(params, n)
	}
	p.log(LevelInfo, AlertSuccess, o, "Success", message, params)
}

// LogFailure logs an error "Failure" event carrying err.
func (p *Pipeline) LogFailure(o origin.Origin, message string, err any, opts ...Notify) {
	params := []any{map[string]any{"error": err}}
	for _, n := range opts {
		params = append(params, n)
	}
	p.log(LevelError, "", o, "Failure", message, params)
}
