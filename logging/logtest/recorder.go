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

// Package logtest provides a recording slog.Handler for tests that need to
// count or inspect emitted events.
package logtest

import (
	"context"
	"log/slog"
	"sync"
)

// Recorder is a slog.Handler that keeps every record it handles.
type Recorder struct {
	store  *store
	attrs  []slog.Attr
	groups []string
}

type store struct {
	mu      sync.Mutex
	records []slog.Record
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{store: &store{}}
}

// Logger returns a slog.Logger writing to r.
func (r *Recorder) Logger() *slog.Logger { return slog.New(r) }

// Enabled accepts every level.
func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle stores a copy of rec with the attrs bound through WithAttrs.
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	rec = rec.Clone()
	if len(r.attrs) > 0 {
		rec.AddAttrs(r.attrs...)
	}
	r.store.mu.Lock()
	r.store.records = append(r.store.records, rec)
	r.store.mu.Unlock()
	return nil
}

// WithAttrs returns a Recorder sharing r's storage.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *r
	cp.attrs = append(append([]slog.Attr(nil), r.attrs...), attrs...)
	return &cp
}

// WithGroup returns a Recorder sharing r's storage. Groups are recorded but
// do not nest attributes.
func (r *Recorder) WithGroup(name string) slog.Handler {
	cp := *r
	cp.groups = append(append([]string(nil), r.groups...), name)
	return &cp
}

// Records returns a copy of everything recorded so far.
func (r *Recorder) Records() []slog.Record {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]slog.Record(nil), r.store.records...)
}

// Len returns the number of records.
func (r *Recorder) Len() int {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.records)
}

// Count returns the number of records at level l.
func (r *Recorder) Count(l slog.Level) int {
	n := 0
	for _, rec := range r.Records() {
		if rec.Level == l {
			n++
		}
	}
	return n
}

// Last returns the most recent record.
func (r *Recorder) Last() (slog.Record, bool) {
	recs := r.Records()
	if len(recs) == 0 {
		return slog.Record{}, false
	}
	return recs[len(recs)-1], true
}

// Messages returns the messages of all records in order.
func (r *Recorder) Messages() []string {
	recs := r.Records()
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.Message
	}
	return out
}

// Reset drops all records.
func (r *Recorder) Reset() {
	r.store.mu.Lock()
	r.store.records = nil
	r.store.mu.Unlock()
}

// Attrs flattens the attributes of rec into a map of resolved values.
func Attrs(rec slog.Record) map[string]any {
	out := make(map[string]any, rec.NumAttrs())
	rec.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Resolve().Any()
		return true
	})
	return out
}
