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
	"sync/atomic"
)

// Config is always fully populated.
type Config struct {
	// LogFunctionCalls emits a debug event when a traced function starts.
	LogFunctionCalls bool `json:"logFunctionCalls" yaml:"logFunctionCalls" toml:"logFunctionCalls"`
	// LogFunctionResults emits an info event when a traced function returns.
	LogFunctionResults bool `json:"logFunctionResults" yaml:"logFunctionResults" toml:"logFunctionResults"`
	// LogDebugInProduction lets debug events through outside development.
	LogDebugInProduction bool `json:"logDebugInProduction" yaml:"logDebugInProduction" toml:"logDebugInProduction"`
}

// Development is the verbose preset.
var Development = Config{LogFunctionCalls: true, LogFunctionResults: true, LogDebugInProduction: true}

// Production is the silent preset.
var Production = Config{}

// Defaults returns the configuration a process starts with before any
// explicit override: function tracing on in development, debug output in
// production off either way.
func Defaults(development bool) Config {
	return Config{
		LogFunctionCalls:     development,
		LogFunctionResults:   development,
		LogDebugInProduction: false,
	}
}

// Preset returns Development or Production.
func Preset(development bool) Config {
	if development {
		return Development
	}
	return Production
}

// Patch is a partial Config. Nil fields are left untouched by Merge.
type Patch struct {
	LogFunctionCalls     *bool `json:"logFunctionCalls,omitempty" yaml:"logFunctionCalls,omitempty" toml:"logFunctionCalls,omitempty"`
	LogFunctionResults   *bool `json:"logFunctionResults,omitempty" yaml:"logFunctionResults,omitempty" toml:"logFunctionResults,omitempty"`
	LogDebugInProduction *bool `json:"logDebugInProduction,omitempty" yaml:"logDebugInProduction,omitempty" toml:"logDebugInProduction,omitempty"`
}

// Bool returns a pointer to v, for building a Patch inline.
func Bool(v bool) *bool { return &v }

// IsEmpty reports whether p sets nothing.
func (p Patch) IsEmpty() bool {
	return p.LogFunctionCalls == nil && p.LogFunctionResults == nil && p.LogDebugInProduction == nil
}

// Merge returns c with every field set in p applied.
func (c Config) Merge(p Patch) Config {
	if p.LogFunctionCalls != nil {
		c.LogFunctionCalls = *p.LogFunctionCalls
	}
	if p.LogFunctionResults != nil {
		c.LogFunctionResults = *p.LogFunctionResults
	}
	if p.LogDebugInProduction != nil {
		c.LogDebugInProduction = *p.LogDebugInProduction
	}
	return c
}

// Store owns the process configuration. The zero Store is not usable; use
// NewStore.
type Store struct {
	cur atomic.Pointer[Config]
}

// NewStore returns a Store holding initial.
func NewStore(initial Config) *Store {
	s := &Store{}
	s.Replace(initial)
	return s
}

// Load returns a snapshot of the current configuration.
func (s *Store) Load() Config {
	return *s.cur.Load()
}

// Replace swaps in c as a whole.
func (s *Store) Replace(c Config) {
	s.cur.Store(&c)
}

// Set merges p into the current configuration and returns the result.
// Fields absent from p keep their value even under concurrent Sets.
func (s *Store) Set(p Patch) Config {
	for {
		old := s.cur.Load()
		next := old.Merge(p)
		if s.cur.CompareAndSwap(old, &next) {
			return next
		}
	}
}

// Initialize resets the store to the preset for the given mode.
func (s *Store) Initialize(development bool) Config {
	c := Preset(development)
	s.Replace(c)
	return c
}
