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

// Package httpx turns handler failures into logged JSON error responses.
package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"dirpx.dev/errkit"
	"dirpx.dev/errkit/adapter"
	"dirpx.dev/errkit/apis"
	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/logging"
	"dirpx.dev/errkit/origin"
)

// HeaderRequestID is the header carrying the request id.
const HeaderRequestID = "X-Request-Id"

// HandlerFunc is an http handler that reports failure by returning an error.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrapper is a thin adapter that knows how to turn a failure into an HTTP
// response, logging it through the pipeline on the way.
type Wrapper struct {
	pipeline   *logging.Pipeline
	mapper     apis.Mapper
	classifier errkit.Classifier
	mapStatus  bool
	now        func() time.Time
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithMapper logs the status m resolves for each failure next to it.
func WithMapper(m apis.Mapper) Option {
	return func(w *Wrapper) { w.mapper = m }
}

// WithMappedStatus makes failures that fall back to the default code take the
// mapper's HTTP status for that code instead of 500. Typed errors and rule
// results keep their own status. It needs WithMapper.
func WithMappedStatus() Option {
	return func(w *Wrapper) { w.mapStatus = true }
}

// WithRules adds classification rules on top of the pipeline's own.
func WithRules(rules ...errkit.Rule) Option {
	return func(w *Wrapper) { w.classifier.Rules = append(w.classifier.Rules, rules...) }
}

// WithClock overrides the clock used for request metadata.
func WithClock(now func() time.Time) Option {
	return func(w *Wrapper) { w.now = now }
}

// NewWrapper returns a Wrapper logging through p. A nil p discards logs.
func NewWrapper(p *logging.Pipeline, opts ...Option) *Wrapper {
	if p == nil {
		p = logging.Discard()
	}
	w := &Wrapper{pipeline: p, now: time.Now}
	w.classifier.Rules = append(w.classifier.Rules, p.Classifier().Rules...)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Pipeline returns the pipeline w logs through.
func (w *Wrapper) Pipeline() *logging.Pipeline { return w.pipeline }

// Wrap adapts h into an http.Handler. A nil return passes through untouched;
// a returned error or a panic is classified and translated.
func (w *Wrapper) Wrap(component, operation string, defaultCode code.Code, h HandlerFunc) http.Handler {
	o := origin.New(component, operation)
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		cw := &committedWriter{ResponseWriter: rw}
		failure := run(h, cw, r)
		if failure == nil {
			return
		}
		e := w.FromFailure(failure, o, defaultCode)
		if cw.committed {
			w.Report(r, o, e)
			return
		}
		w.Translate(rw, r, o, e)
	})
}

// committedWriter records whether the handler already started the response.
type committedWriter struct {
	http.ResponseWriter
	committed bool
}

func (c *committedWriter) WriteHeader(status int) {
	c.committed = true
	c.ResponseWriter.WriteHeader(status)
}

func (c *committedWriter) Write(b []byte) (int, error) {
	c.committed = true
	return c.ResponseWriter.Write(b)
}

func (c *committedWriter) Flush() {
	if f, ok := c.ResponseWriter.(http.Flusher); ok {
		c.committed = true
		f.Flush()
	}
}

func (c *committedWriter) Unwrap() http.ResponseWriter { return c.ResponseWriter }

func run(h HandlerFunc, rw http.ResponseWriter, r *http.Request) (failure any) {
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler {
				panic(v)
			}
			failure = v
		}
	}()
	if err := h(rw, r); err != nil {
		return err
	}
	return nil
}

// FromFailure classifies a failure the way Wrap does. Typed errors and rule
// results keep their code and status; other failures get defaultCode with
// 500 unless WithMappedStatus is set. The result carries o when it had no
// origin and is marked logged when the failure already was.
func (w *Wrapper) FromFailure(v any, o origin.Origin, defaultCode code.Code) *errkit.Error {
	e, out := w.classifier.Convert(v, defaultCode)
	if out == errkit.OutcomeDefault && w.mapStatus && w.mapper != nil {
		e = e.WithStatus(w.mapper.HTTPStatus(defaultCode, o))
	}
	if e.Origin.IsZero() {
		e = e.WithOrigin(o)
	}
	if err, ok := v.(error); ok && errkit.IsLogged(err) {
		e = e.MarkLogged()
	}
	return e
}

// Translate logs e once, with the request metadata, and writes
// {"error": ..., "logged": true} with e's status. An error already marked
// logged is only written.
func (w *Wrapper) Translate(rw http.ResponseWriter, r *http.Request, o origin.Origin, e *errkit.Error) {
	if e == nil {
		e = errkit.New(code.UnexpectedError)
	}
	w.Report(r, o, e)
	status := e.StatusCode
	if status <= 0 {
		status = errkit.DefaultStatus
	}
	WriteJSON(rw, status, adapter.ToView(e))
}

// Report logs e with the request metadata unless it is already logged. Wrap
// uses it alone when the handler committed a response before failing.
func (w *Wrapper) Report(r *http.Request, o origin.Origin, e *errkit.Error) {
	if e == nil || e.Logged() {
		return
	}
	var st apis.Status
	if w.mapper != nil {
		st = w.mapper.Status(e.Code, e.Origin)
	}
	w.pipeline.Error(o, "API Error Occurred", string(e.Code)+": "+e.Message, map[string]any{
		"error":    adapter.ToDescriptor(e, st),
		"metadata": Metadata(r, w.now),
	})
}

// Metadata describes r for error logs. The request id defaults to "unknown".
// The URL is absolute: server requests carry only the path, so the scheme and
// r.Host are filled in.
func Metadata(r *http.Request, now func() time.Time) apis.RequestMetadata {
	if now == nil {
		now = time.Now
	}
	md := apis.RequestMetadata{RequestID: "unknown", Timestamp: now().UTC()}
	if r == nil {
		return md
	}
	if id := r.Header.Get(HeaderRequestID); id != "" {
		md.RequestID = id
	}
	md.Method = r.Method
	if r.URL != nil {
		md.URL = absoluteURL(r)
	}
	return md
}

func absoluteURL(r *http.Request) string {
	if r.URL.IsAbs() {
		return r.URL.String()
	}
	u := *r.URL
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	u.Host = r.Host
	if u.Host == "" {
		return r.URL.String()
	}
	return u.String()
}

// WriteJSON writes body as JSON with the given status.
func WriteJSON(rw http.ResponseWriter, status int, body any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(body)
}
