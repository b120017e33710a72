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

// Package segmenttrie is a segment-aware prefix index for dotted origin
// paths. It backs the per-code prefix rules of the mapper.
package segmenttrie

import (
	"errors"
	"sort"
	"strings"
)

// Trie maps dot-separated prefixes to values. Each node is one segment; the
// wildcard "*" matches exactly one segment. Lookups are longest-prefix-match
// on segment boundaries, so a more specific rule wins over a shorter one.
type Trie[T any] struct {
	// children contains next segments, including "*" for a single-segment wildcard.
	children map[string]*Trie[T]
	// hasVal marks that this node carries a value for the prefix ending here.
	hasVal bool
	val    T
	// pattern is the dotted prefix as inserted, set only when hasVal.
	pattern string
}

// ErrInvalidPrefix is returned when inserting a prefix that is empty, has
// empty segments, contains invalid characters, or consists only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// New creates an empty trie ready for inserts.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with a dot-separated prefix such as
// "billing.invoices" or "*.replica". Inserting the same prefix twice keeps
// the last value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil {
		return ErrInvalidPrefix
	}
	segs, ok := split(prefix)
	if !ok {
		return ErrInvalidPrefix
	}
	cur := t
	for _, s := range segs {
		child, exists := cur.children[s]
		if !exists {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match finds the value of the deepest prefix matching path.
// It returns the zero value and false when nothing matches.
func (t *Trie[T]) Match(path string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(path)
	return v, ok
}

// MatchWithPattern is Match that also returns the matched rule as it was
// inserted (possibly with "*"), for diagnostics.
func (t *Trie[T]) MatchWithPattern(path string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	best, bestDepth := (*Trie[T])(nil), -1
	t.walkMatch(path, 0, 0, func(n *Trie[T], depth int) {
		if depth > bestDepth {
			best, bestDepth = n, depth
		}
	})
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// walkMatch visits every valued node reachable by consuming path from byte
// offset off. Both the exact and the "*" branch are explored.
func (t *Trie[T]) walkMatch(path string, off, depth int, visit func(*Trie[T], int)) {
	if t.hasVal {
		visit(t, depth)
	}
	if off >= len(path) {
		return
	}
	end, ok := scanSegment(path, off)
	if !ok {
		return
	}
	seg := path[off:end]
	next := end
	if next < len(path) && path[next] == '.' {
		next++
	}
	if child, ok := t.children[seg]; ok {
		child.walkMatch(path, next, depth+1, visit)
	}
	if child, ok := t.children["*"]; ok {
		child.walkMatch(path, next, depth+1, visit)
	}
}

// Patterns returns every inserted prefix with its value, sorted by pattern.
func (t *Trie[T]) Patterns() []Entry[T] {
	if t == nil {
		return nil
	}
	var out []Entry[T]
	var walk func(n *Trie[T])
	walk = func(n *Trie[T]) {
		if n.hasVal {
			out = append(out, Entry[T]{Pattern: n.pattern, Value: n.val})
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t)
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}

// Entry is one inserted rule.
type Entry[T any] struct {
	Pattern string
	Value   T
}

// scanSegment returns the end offset of the [a-z][a-z0-9_]* segment that
// starts at off. It reports false when the segment is malformed.
func scanSegment(s string, off int) (int, bool) {
	if c := s[off]; c < 'a' || c > 'z' {
		return off, false
	}
	i := off + 1
	for i < len(s) && s[i] != '.' {
		if !segmentChar(s[i]) {
			return i, false
		}
		i++
	}
	return i, true
}

// split validates a prefix and returns its segments. At least one segment
// must be concrete: a prefix of only "*" would catch everything.
func split(s string) ([]string, bool) {
	if s == "" {
		return nil, false
	}
	segs := strings.Split(s, ".")
	concrete := false
	for _, seg := range segs {
		if !validSegment(seg) {
			return nil, false
		}
		if seg != "*" {
			concrete = true
		}
	}
	return segs, concrete
}

// validSegment reports whether seg is "*" or matches [a-z][a-z0-9_]*.
func validSegment(seg string) bool {
	if seg == "*" {
		return true
	}
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		if !segmentChar(seg[i]) {
			return false
		}
	}
	return true
}

func segmentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_'
}
