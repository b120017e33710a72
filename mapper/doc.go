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

// Package mapper provides deterministic, immutable mappings from taxonomy
// codes (dirpx.dev/errkit/code) and optional failure origins
// (dirpx.dev/errkit/origin) to transport-level statuses for HTTP and gRPC.
//
// # Overview
//
// A TypedError carries a code and, once a wrapper has seen it, the origin
// {component, operation} it was raised in. Transport layers need to turn
// that pair into concrete status codes. The mapper does that in a way that
// is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can change library defaults per Code;
//   - origin-aware: callers can add rules for specific components;
//   - dual: HTTP and gRPC are resolved with the same logic.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the Code;
//  2. per-Code longest-prefix-match (LPM) on the origin path;
//  3. per-Code default (library or user-adjusted);
//  4. global fallback (500 / codes.Internal).
//
// Origin paths are "."-separated (see origin.Origin.Path) and "*" in a
// prefix rule matches exactly one segment:
//
//	WithHTTPPrefix(code.DatabaseError, "billing", http.StatusServiceUnavailable)
//	WithHTTPPrefix(code.DatabaseError, "*.replica", http.StatusServiceUnavailable)
//
// The more specific prefix wins.
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(code.AccountLocked, http.StatusForbidden),
//	    mapper.WithHTTPPrefix(code.DatabaseError, "billing", 503),
//	)
//	if err != nil {
//	    // invalid prefix
//	}
//
//	st := m.Status(code.DatabaseError, origin.New("billing", "charge"))
//	// st.HTTP == 503, st.GRPC == codes.Internal
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a particular
// (code, origin) was resolved, including which tier matched and, for
// prefixes, which pattern was used. It is meant for inspection, not for
// machine parsing.
package mapper
