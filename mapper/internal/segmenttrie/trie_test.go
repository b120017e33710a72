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

package segmenttrie

import "testing"

func TestInsertAndMatch_Simple(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("billing", 503))
	must(t, tr.Insert("auth.login", 401))
	must(t, tr.Insert("userservice.createuser", 409))

	tests := []struct {
		path    string
		want    int
		pattern string
	}{
		{"billing.invoices.create", 503, "billing"},
		{"auth.login", 401, "auth.login"},
		{"userservice.createuser", 409, "userservice.createuser"},
	}
	for _, tt := range tests {
		v, ok, p := tr.MatchWithPattern(tt.path)
		if !ok || v != tt.want || p != tt.pattern {
			t.Fatalf("match %s => ok=%v v=%v p=%q; want v=%v p=%q", tt.path, ok, v, p, tt.want, tt.pattern)
		}
	}
	if _, ok := tr.Match("auth.logout"); ok {
		t.Fatalf("auth.logout must not match auth.login")
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("api.*.delete", 405))
	must(t, tr.Insert("api.users.delete", 403))

	// exact match wins at the same depth
	if v, ok, p := tr.MatchWithPattern("api.users.delete"); !ok || v != 403 || p != "api.users.delete" {
		t.Fatalf("exact must win over wildcard, got ok=%v v=%v p=%q", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("api.orders.delete.bulk"); !ok || v != 405 || p != "api.*.delete" {
		t.Fatalf("wildcard match failed: ok=%v v=%v p=%q", ok, v, p)
	}
	// wildcard matches exactly one segment, never zero
	if _, ok := tr.Match("api.delete"); ok {
		t.Fatalf("wildcard should not match zero segments")
	}
}

func TestLPM_PrefersDeeperEvenIfExactBranchExists(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("a.*.c", 7))
	must(t, tr.Insert("a.b", 1))

	if v, ok, p := tr.MatchWithPattern("a.b.c"); !ok || v != 7 || p != "a.*.c" {
		t.Fatalf("LPM must choose wildcard path: ok=%v v=%v p=%q", ok, v, p)
	}
}

func TestInsert_LastValueWins(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("auth", 1))
	must(t, tr.Insert("auth", 2))
	if v, _ := tr.Match("auth.login"); v != 2 {
		t.Fatalf("v = %d, want 2", v)
	}
}

func TestInvalidInputs(t *testing.T) {
	tr := New[int]()
	for _, bad := range []string{"", "UPPER.case", "a..b", "*", "*.*", "1a", "a.b-c"} {
		if err := tr.Insert(bad, 1); err != ErrInvalidPrefix {
			t.Fatalf("Insert(%q) = %v, want ErrInvalidPrefix", bad, err)
		}
	}
	var nilTrie *Trie[int]
	if err := nilTrie.Insert("a", 1); err != ErrInvalidPrefix {
		t.Fatalf("nil trie insert = %v", err)
	}
	if _, ok := nilTrie.Match("a"); ok {
		t.Fatalf("nil trie must not match")
	}

	must(t, tr.Insert("ok", 1))
	if _, ok := tr.Match("OK.case"); ok {
		t.Fatalf("match should be false for an invalid path")
	}
	if _, ok := tr.Match(""); ok {
		t.Fatalf("empty path must not match")
	}
}

func TestPatterns_Sorted(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("b.x", 2))
	must(t, tr.Insert("a", 1))
	must(t, tr.Insert("*.y", 3))

	got := tr.Patterns()
	want := []Entry[int]{{"*.y", 3}, {"a", 1}, {"b.x", 2}}
	if len(got) != len(want) {
		t.Fatalf("Patterns() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Patterns()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
