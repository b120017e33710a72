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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"dirpx.dev/errkit/code"
	"gopkg.in/yaml.v3"
)

// File is the declarative form of the mapper options, as read from YAML or
// JSON:
//
//	fallback: {http: 500, grpc: 13}
//	http:
//	  overrides: {ACCOUNT_LOCKED: 403}
//	  prefixes:
//	    DATABASE_ERROR: {billing: 503}
//	grpc:
//	  prefixes:
//	    DATABASE_ERROR: {billing: 14}
type File struct {
	Fallback *struct {
		HTTP int `yaml:"http"`
		GRPC int `yaml:"grpc"`
	} `yaml:"fallback"`
	HTTP Table `yaml:"http"`
	GRPC Table `yaml:"grpc"`
}

// Table holds the statuses of one transport, keyed by code.
type Table struct {
	Defaults  map[string]int            `yaml:"defaults"`
	Overrides map[string]int            `yaml:"overrides"`
	Prefixes  map[string]map[string]int `yaml:"prefixes"`
}

// LoadFile reads a File and converts it to options.
func LoadFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapper: read %s: %w", path, err)
	}
	f, err := DecodeFile(data)
	if err != nil {
		return nil, err
	}
	return f.Options()
}

// DecodeFile decodes YAML or JSON. Unknown fields are rejected.
func DecodeFile(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("mapper: decode: %w", err)
	}
	return f, nil
}

// Options converts f. Codes are parsed and validated; the result is ordered
// so that building a mapper from the same file is deterministic.
func (f File) Options() ([]Option, error) {
	var opts []Option
	if f.Fallback != nil {
		opts = append(opts, WithFallback(f.Fallback.HTTP, f.Fallback.GRPC))
	}
	http, err := f.HTTP.options(WithHTTPDefault, WithHTTPOverride, WithHTTPPrefix)
	if err != nil {
		return nil, fmt.Errorf("mapper: http: %w", err)
	}
	grpc, err := f.GRPC.options(WithGRPCDefault, WithGRPCOverride, WithGRPCPrefix)
	if err != nil {
		return nil, fmt.Errorf("mapper: grpc: %w", err)
	}
	return append(append(opts, http...), grpc...), nil
}

func (t Table) options(
	def func(code.Code, int) Option,
	override func(code.Code, int) Option,
	prefix func(code.Code, string, int) Option,
) ([]Option, error) {
	var opts []Option
	for _, k := range sortedKeys(t.Defaults) {
		c, err := code.Parse(k)
		if err != nil {
			return nil, err
		}
		opts = append(opts, def(c, t.Defaults[k]))
	}
	for _, k := range sortedKeys(t.Overrides) {
		c, err := code.Parse(k)
		if err != nil {
			return nil, err
		}
		opts = append(opts, override(c, t.Overrides[k]))
	}
	for _, k := range sortedKeys(t.Prefixes) {
		c, err := code.Parse(k)
		if err != nil {
			return nil, err
		}
		for _, p := range sortedKeys(t.Prefixes[k]) {
			opts = append(opts, prefix(c, p, t.Prefixes[k][p]))
		}
	}
	return opts, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
