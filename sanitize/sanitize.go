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

// Package sanitize redacts sensitive values from structured data before it
// reaches a log sink.
//
// A Sanitizer walks maps, slices, arrays, pointers and structs and replaces
// the value of every key in its sensitive set with Redacted. Keys are
// compared case-insensitively. The walk is total: it never panics, stops at
// cycles and caps recursion at MaxDepth.
package sanitize

import (
	"encoding"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"time"
)

const (
	// Redacted replaces the value of a sensitive key.
	Redacted = "***"
	// Circular replaces a map, slice or pointer already on the current path.
	Circular = "[circular]"
	// Truncated replaces values nested deeper than MaxDepth.
	Truncated = "[max depth]"
	// MaxDepth bounds the recursion of a single Sanitize call.
	MaxDepth = 32
)

// DefaultKeys is the sensitive key set every Sanitizer starts from.
var DefaultKeys = []string{"password", "token", "secret", "apiKey"}

// Sanitizer holds a sensitive key set. It is immutable and safe for
// concurrent use.
type Sanitizer struct {
	keys map[string]struct{}
}

var std = New()

// Default returns the Sanitizer built from DefaultKeys.
func Default() *Sanitizer { return std }

// New returns a Sanitizer for DefaultKeys plus extraKeys. Blank keys are ignored.
func New(extraKeys ...string) *Sanitizer {
	s := &Sanitizer{keys: make(map[string]struct{}, len(DefaultKeys)+len(extraKeys))}
	for _, k := range DefaultKeys {
		s.keys[strings.ToLower(k)] = struct{}{}
	}
	for _, k := range extraKeys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			s.keys[k] = struct{}{}
		}
	}
	return s
}

// Keys returns the lower-cased sensitive key set, sorted.
func (s *Sanitizer) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsSensitive reports whether key names a sensitive value.
func (s *Sanitizer) IsSensitive(key string) bool {
	_, ok := s.keys[strings.ToLower(key)]
	return ok
}

// Sanitize returns a redacted copy of v using the default Sanitizer.
func Sanitize(v any) any { return std.Sanitize(v) }

// Sanitize returns a redacted copy of v. v itself is never modified.
//
// Maps become map[string]any with every key kept; slices and arrays become
// []any of the same length and order; exported struct fields become map
// entries named after their json tag. Errors become their message and text
// marshalers their text. JSON marshalers are decoded and walked, and
// fmt.Stringers not backed by a struct become their String text. Time
// values and scalars are kept as is.
func (s *Sanitizer) Sanitize(v any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("[unsanitizable %T]", v)
		}
	}()
	w := walker{s: s, path: make(map[visit]struct{})}
	return w.value(reflect.ValueOf(v), 0)
}

// ReplaceAttr is a slog.HandlerOptions.ReplaceAttr hook: it redacts
// attributes named like a sensitive key and sanitizes KindAny values.
func (s *Sanitizer) ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if s.IsSensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	if a.Value.Kind() == slog.KindAny {
		a.Value = slog.AnyValue(s.Sanitize(a.Value.Any()))
	}
	return a
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

type walker struct {
	s    *Sanitizer
	path map[visit]struct{}
}

var (
	timeType   = reflect.TypeOf(time.Time{})
	errType    = reflect.TypeOf((*error)(nil)).Elem()
	stringType = reflect.TypeOf("")
)

func (w *walker) value(v reflect.Value, depth int) any {
	if !v.IsValid() {
		return nil
	}
	if depth > MaxDepth {
		return Truncated
	}
	if leaf, ok := w.leaf(v, depth); ok {
		return leaf
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		if v.Kind() == reflect.Interface {
			return w.value(v.Elem(), depth)
		}
		return w.enter(v, func() any { return w.value(v.Elem(), depth+1) })
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		return w.enter(v, func() any { return w.mapValue(v, depth) })
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		return w.enter(v, func() any { return w.seq(v, depth) })
	case reflect.Array:
		return w.seq(v, depth)
	case reflect.Struct:
		return w.structValue(v, depth)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("<%s>", v.Type())
	default:
		return exported(v)
	}
}

// leaf handles values that are kept (or flattened) without recursion.
//
// A json.Marshaler is re-decoded and walked, since its encoding is what a
// JSON sink would print. A fmt.Stringer backed by a struct is walked like
// any other struct; the JSON sink ignores String.
func (w *walker) leaf(v reflect.Value, depth int) (any, bool) {
	t := v.Type()
	if t == timeType {
		return exported(v), true
	}
	if !v.CanInterface() {
		return nil, false
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil, false
	}
	if t.Implements(errType) {
		return errorText(v.Interface().(error)), true
	}
	switch x := v.Interface().(type) {
	case json.Marshaler:
		return w.decoded(x, depth), true
	case encoding.TextMarshaler:
		return marshalText(x), true
	case fmt.Stringer:
		if structBacked(reflect.TypeOf(x)) {
			return nil, false
		}
		return stringText(x), true
	}
	return nil, false
}

// decoded walks the JSON form of m as a generic value.
func (w *walker) decoded(m json.Marshaler, depth int) any {
	raw, err := marshalJSON(m)
	if err != nil {
		return fmt.Sprintf("<%T>", m)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Sprintf("<%T>", m)
	}
	return w.value(reflect.ValueOf(generic), depth+1)
}

func marshalJSON(m json.Marshaler) (raw []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("marshal %T: %v", m, r)
		}
	}()
	return json.Marshal(m)
}

func marshalText(m encoding.TextMarshaler) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("<%T>", m)
		}
	}()
	b, err := m.MarshalText()
	if err != nil {
		return fmt.Sprintf("<%T>", m)
	}
	return string(b)
}

func stringText(x fmt.Stringer) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("<%T>", x)
		}
	}()
	return x.String()
}

func structBacked(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// enter guards a reference value against cycles on the current path.
func (w *walker) enter(v reflect.Value, f func() any) any {
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if _, seen := w.path[key]; seen {
		return Circular
	}
	w.path[key] = struct{}{}
	defer delete(w.path, key)
	return f()
}

// mapValue renders keys as strings. A key not of type string that renders
// like another key is qualified with its type so no entry is lost.
func (w *walker) mapValue(v reflect.Value, depth int) any {
	out := make(map[string]any, v.Len())
	var others []mapEntry
	iter := v.MapRange()
	for iter.Next() {
		k, isString := keyString(iter.Key())
		if !isString {
			others = append(others, mapEntry{key: k, typ: keyType(iter.Key()), val: iter.Value()})
			continue
		}
		w.put(out, k, iter.Value(), depth)
	}
	sort.Slice(others, func(i, j int) bool {
		if others[i].key != others[j].key {
			return others[i].key < others[j].key
		}
		return others[i].typ < others[j].typ
	})
	for _, e := range others {
		k := e.key
		if _, taken := out[k]; taken {
			k = fmt.Sprintf("%s(%s)", e.key, e.typ)
		}
		for n := 2; ; n++ {
			if _, taken := out[k]; !taken {
				break
			}
			k = fmt.Sprintf("%s(%s)#%d", e.key, e.typ, n)
		}
		w.put(out, k, e.val, depth)
	}
	return out
}

type mapEntry struct {
	key string
	typ string
	val reflect.Value
}

func (w *walker) put(out map[string]any, k string, v reflect.Value, depth int) {
	if w.s.IsSensitive(k) {
		out[k] = Redacted
		return
	}
	out[k] = w.value(v, depth+1)
}

func (w *walker) seq(v reflect.Value, depth int) any {
	out := make([]any, v.Len())
	for i := range out {
		out[i] = w.value(v.Index(i), depth+1)
	}
	return out
}

func (w *walker) structValue(v reflect.Value, depth int) any {
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tn, _, _ := strings.Cut(tag, ",")
			if tn == "-" {
				continue
			}
			if tn != "" {
				name = tn
			}
		}
		if w.s.IsSensitive(name) || w.s.IsSensitive(f.Name) {
			out[name] = Redacted
			continue
		}
		out[name] = w.value(v.Field(i), depth+1)
	}
	return out
}

func keyString(k reflect.Value) (string, bool) {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String(), k.Type() == stringType
	}
	return fmt.Sprint(exported(k)), false
}

func keyType(k reflect.Value) string {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	return k.Type().String()
}

// exported returns the value behind v even when it was reached through an
// unexported field.
func exported(v reflect.Value) any {
	if v.CanInterface() {
		return v.Interface()
	}
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	}
	return fmt.Sprintf("<%s>", v.Type())
}

func errorText(err error) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("<%T>", err)
		}
	}()
	return err.Error()
}
