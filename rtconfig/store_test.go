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

package rtconfig

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetMergesPartialPatch(t *testing.T) {
	s := NewStore(Defaults(true))
	require.Equal(t, Config{LogFunctionCalls: true, LogFunctionResults: true, LogDebugInProduction: false}, s.Load())

	got := s.Set(Patch{LogDebugInProduction: Bool(true)})

	want := Config{LogFunctionCalls: true, LogFunctionResults: true, LogDebugInProduction: true}
	assert.Equal(t, want, got)
	assert.Equal(t, want, s.Load())
}

func TestStore_EmptyPatchIsNoop(t *testing.T) {
	s := NewStore(Defaults(false))
	before := s.Load()
	assert.True(t, Patch{}.IsEmpty())
	assert.Equal(t, before, s.Set(Patch{}))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore(Production)
	snap := s.Load()
	snap.LogFunctionCalls = true
	assert.False(t, s.Load().LogFunctionCalls)
}

func TestStore_Initialize(t *testing.T) {
	s := NewStore(Defaults(false))
	assert.Equal(t, Development, s.Initialize(true))
	assert.Equal(t, Development, s.Load())
	assert.Equal(t, Production, s.Initialize(false))
	assert.Equal(t, Config{}, s.Load())
}

func TestStore_ConcurrentSetsKeepUnrelatedFields(t *testing.T) {
	for round := 0; round < 50; round++ {
		s := NewStore(Production)
		patches := []Patch{
			{LogFunctionCalls: Bool(true)},
			{LogFunctionResults: Bool(true)},
			{LogDebugInProduction: Bool(true)},
		}
		var wg sync.WaitGroup
		for _, p := range patches {
			wg.Add(1)
			go func(p Patch) {
				defer wg.Done()
				s.Set(p)
			}(p)
		}
		wg.Wait()
		require.Equal(t, Development, s.Load(), "round %d", round)
	}
}

func TestDecodePatch(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
		want Patch
	}{
		{"yaml", ".yaml", "logFunctionCalls: false\nlogDebugInProduction: true\n", Patch{LogFunctionCalls: Bool(false), LogDebugInProduction: Bool(true)}},
		{"yml", "yml", "logFunctionResults: true\n", Patch{LogFunctionResults: Bool(true)}},
		{"json", ".json", `{"logDebugInProduction": true}`, Patch{LogDebugInProduction: Bool(true)}},
		{"toml", ".TOML", "logFunctionCalls = true\n", Patch{LogFunctionCalls: Bool(true)}},
		{"empty yaml", ".yaml", "", Patch{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePatch([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePatch_Errors(t *testing.T) {
	_, err := DecodePatch([]byte("x: 1"), ".ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DecodePatch([]byte("logEverything: true\n"), ".yaml")
	assert.Error(t, err, "unknown yaml keys are rejected")

	_, err = DecodePatch([]byte("logEverything = true\n"), ".toml")
	assert.Error(t, err, "unknown toml keys are rejected")

	_, err = DecodePatch([]byte("logFunctionCalls = \"yes\"\n"), ".toml")
	assert.Error(t, err)
}

func TestLoadPatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logDebugInProduction: true\n"), 0o600))

	p, err := LoadPatchFile(path)
	require.NoError(t, err)
	assert.Equal(t, Config{LogDebugInProduction: true}, Production.Merge(p))

	_, err = LoadPatchFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEncodeYAML(t *testing.T) {
	out, err := EncodeYAML(Development)
	require.NoError(t, err)
	assert.Equal(t, "logFunctionCalls: true\nlogFunctionResults: true\nlogDebugInProduction: true\n", string(out))
}
