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
	"errors"
	"testing"

	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/origin"
	"google.golang.org/grpc/codes"
)

const sampleFile = `
fallback: {http: 502, grpc: 14}
http:
  overrides: {account_locked: 403}
  prefixes:
    DATABASE_ERROR:
      billing: 503
      billing.refund: 507
grpc:
  defaults: {NOT_FOUND: 5}
  prefixes:
    DATABASE_ERROR: {billing: 14}
`

func TestDecodeFile(t *testing.T) {
	f, err := DecodeFile([]byte(sampleFile))
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	opts, err := f.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	m, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := m.HTTPStatus(code.AccountLocked, origin.Origin{}); got != 403 {
		t.Fatalf("override: got %d", got)
	}
	if got := m.HTTPStatus(code.DatabaseError, origin.New("billing.refund", "create")); got != 507 {
		t.Fatalf("longest prefix: got %d", got)
	}
	if got := m.GRPCStatus(code.DatabaseError, origin.New("billing", "charge")); got != codes.Unavailable {
		t.Fatalf("grpc prefix: got %v", got)
	}
	if got := m.HTTPStatus("TEAPOT", origin.Origin{}); got != 502 {
		t.Fatalf("fallback: got %d", got)
	}
	if n := len(Rules(m)); n != 3 {
		t.Fatalf("rules: got %d, want 3", n)
	}
}

func TestDecodeFile_Errors(t *testing.T) {
	if _, err := DecodeFile([]byte("unknown: 1\n")); err == nil {
		t.Fatal("expected unknown field error")
	}
	f, err := DecodeFile([]byte("http:\n  overrides: {NOPE: 400}\n"))
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if _, err := f.Options(); !errors.Is(err, code.ErrCodeInvalid) {
		t.Fatalf("want ErrCodeInvalid, got %v", err)
	}
	if f, err := DecodeFile(nil); err != nil || f.Fallback != nil {
		t.Fatalf("empty input: %v %+v", err, f)
	}
}
