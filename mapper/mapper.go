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

package mapper

import (
	"fmt"
	"strings"

	"dirpx.dev/errkit/apis"
	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/mapper/internal/segmenttrie"
	"dirpx.dev/errkit/origin"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process:
//
//  1. Seed the builder with library defaults (HTTP & gRPC).
//  2. Apply user-provided options (defaults, overrides, prefix rules).
//  3. Normalize and validate all origin prefixes.
//  4. Build per-code segment tries supporting longest-prefix-match with '*'
//     as a single-segment wildcard.
//  5. Freeze all maps into fresh copies.
//
// Errors indicate invalid prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	httpTrie, err := buildTries(b.httpPrefixes, "HTTP", func(v int) int { return v })
	if err != nil {
		return nil, err
	}
	grpcTrie, err := buildTries(b.grpcPrefixes, "gRPC", codesOf)
	if err != nil {
		return nil, err
	}

	return &mapper{
		httpDefault:  freeze(b.httpDefaults),
		grpcDefault:  freezeGRPC(b.grpcDefaults),
		httpOverride: freeze(b.httpOverride),
		grpcOverride: freezeGRPC(b.grpcOverride),
		httpTrie:     httpTrie,
		grpcTrie:     grpcTrie,

		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// MustNew is New that panics on error, for package-level mappers built from
// constant rules.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func buildTries[T any](rules map[code.Code][]prefixRule, kind string, conv func(int) T) (map[code.Code]*segmenttrie.Trie[T], error) {
	out := make(map[code.Code]*segmenttrie.Trie[T], len(rules))
	for c, rs := range rules {
		if len(rs) == 0 {
			continue
		}
		t := segmenttrie.New[T]()
		for _, r := range rs {
			p, err := normalizeAndValidatePrefix(r.prefix)
			if err != nil {
				return nil, fmt.Errorf("mapper: invalid %s origin prefix %q for code %q: %w", kind, r.prefix, c, err)
			}
			if err := t.Insert(p, conv(r.val)); err != nil {
				return nil, fmt.Errorf("mapper: cannot insert %s prefix %q for code %q: %w", kind, p, c, err)
			}
		}
		out[c] = t
	}
	return freeze(out), nil
}

// mapper combines per-code defaults, exact overrides and per-code origin
// prefix tries. Lookups are O(depth) and safe for concurrent use.
type mapper struct {
	httpDefault map[code.Code]int
	grpcDefault map[code.Code]codes.Code

	httpOverride map[code.Code]int
	grpcOverride map[code.Code]codes.Code

	httpTrie map[code.Code]*segmenttrie.Trie[int]
	grpcTrie map[code.Code]*segmenttrie.Trie[codes.Code]

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// tier names the resolution step that produced a status.
type tier string

const (
	tierOverride tier = "override"
	tierPrefix   tier = "prefix"
	tierDefault  tier = "default"
	tierFallback tier = "fallback"
)

// resolve walks the tiers in order: override, origin LPM, default, fallback.
func resolve[T any](c code.Code, path string, override, def map[code.Code]T, tries map[code.Code]*segmenttrie.Trie[T], fallback T) (T, tier, string) {
	if v, ok := override[c]; ok {
		return v, tierOverride, ""
	}
	if t, ok := tries[c]; ok && path != "" {
		if v, ok, pat := t.MatchWithPattern(path); ok {
			return v, tierPrefix, pat
		}
	}
	if v, ok := def[c]; ok {
		return v, tierDefault, ""
	}
	return fallback, tierFallback, ""
}

// HTTPStatus resolves an HTTP status for the given code and origin.
func (m *mapper) HTTPStatus(c code.Code, o origin.Origin) int {
	v, _, _ := resolve(c, o.Path(), m.httpOverride, m.httpDefault, m.httpTrie, m.fallbackHTTP)
	return v
}

// GRPCStatus resolves a gRPC status for the given code and origin, using
// the same precedence as HTTPStatus.
func (m *mapper) GRPCStatus(c code.Code, o origin.Origin) codes.Code {
	v, _, _ := resolve(c, o.Path(), m.grpcOverride, m.grpcDefault, m.grpcTrie, m.fallbackGRPC)
	return v
}

// Status resolves both HTTP and gRPC using the same inputs.
func (m *mapper) Status(c code.Code, o origin.Origin) apis.Status {
	path := o.Path()
	h, _, _ := resolve(c, path, m.httpOverride, m.httpDefault, m.httpTrie, m.fallbackHTTP)
	g, _, _ := resolve(c, path, m.grpcOverride, m.grpcDefault, m.grpcTrie, m.fallbackGRPC)
	return apis.Status{HTTP: h, GRPC: g}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a (code, origin) pair:
//
//	code="DATABASE_ERROR" origin="billing.charge"
//	http: source=prefix pattern="billing" -> 503
//	grpc: source=default -> INTERNAL(13)
//
// source is one of override, prefix, default or fallback; pattern is the
// rule as stored in the trie (may contain "*").
func (m *mapper) Explain(c code.Code, o origin.Origin) string {
	path := o.Path()
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q origin=%q\n", c, path)

	h, src, pat := resolve(c, path, m.httpOverride, m.httpDefault, m.httpTrie, m.fallbackHTTP)
	_, _ = fmt.Fprintf(&b, "http: %s -> %d\n", source(src, pat), h)

	g, src, pat := resolve(c, path, m.grpcOverride, m.grpcDefault, m.grpcTrie, m.fallbackGRPC)
	_, _ = fmt.Fprintf(&b, "grpc: %s -> %s(%d)", source(src, pat), grpcName(g), int(g))

	return b.String()
}

func source(t tier, pattern string) string {
	if t == tierPrefix {
		return fmt.Sprintf("source=%s pattern=%q", t, pattern)
	}
	return "source=" + string(t)
}

// grpcName renders a gRPC code in SCREAMING_SNAKE form, e.g. RESOURCE_EXHAUSTED.
func grpcName(c codes.Code) string {
	var b strings.Builder
	lower := false
	for _, r := range c.String() {
		upper := r >= 'A' && r <= 'Z'
		if upper && lower {
			b.WriteByte('_')
		}
		lower = r >= 'a' && r <= 'z'
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// Rule is one origin prefix rule of a mapper, as reported by Rules.
type Rule struct {
	Code      code.Code
	Transport string // "http" or "grpc"
	Pattern   string
	Status    int
}

// Rules lists the prefix rules of m sorted by code, transport and pattern.
// It returns nil for mappers not built by New.
func Rules(m apis.Mapper) []Rule {
	mm, ok := m.(*mapper)
	if !ok {
		return nil
	}
	var out []Rule
	for _, c := range code.All() {
		for _, e := range mm.httpTrie[c].Patterns() {
			out = append(out, Rule{Code: c, Transport: "http", Pattern: e.Pattern, Status: e.Value})
		}
		for _, e := range mm.grpcTrie[c].Patterns() {
			out = append(out, Rule{Code: c, Transport: "grpc", Pattern: e.Pattern, Status: int(e.Value)})
		}
	}
	return out
}

// normalizeAndValidatePrefix ensures an origin prefix is canonical and valid.
func normalizeAndValidatePrefix(raw string) (string, error) {
	p := origin.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	segs := strings.Split(p, ".")
	allWild := true
	for _, seg := range segs {
		if seg == "*" {
			continue
		}
		allWild = false
		if err := origin.ValidatePath(seg); err != nil {
			return "", fmt.Errorf("invalid segment %q: %w", seg, err)
		}
	}
	if allWild {
		return "", fmt.Errorf("prefix cannot consist of '*' only")
	}
	return p, nil
}
