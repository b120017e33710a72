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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for patch files with an unknown extension.
var ErrUnsupportedFormat = errors.New("rtconfig: unsupported patch file format")

// LoadPatchFile reads a Patch from a .yaml, .yml, .json or .toml file.
// JSON is read with the YAML decoder, which accepts it.
func LoadPatchFile(path string) (Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Patch{}, fmt.Errorf("rtconfig: read %s: %w", path, err)
	}
	return DecodePatch(data, filepath.Ext(path))
}

// DecodePatch decodes data in the format named by ext (with or without the
// leading dot). Unknown fields are rejected.
func DecodePatch(data []byte, ext string) (Patch, error) {
	var p Patch
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml", "json":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return Patch{}, fmt.Errorf("rtconfig: decode yaml: %w", err)
		}
	case "toml":
		md, err := toml.Decode(string(data), &p)
		if err != nil {
			return Patch{}, fmt.Errorf("rtconfig: decode toml: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return Patch{}, fmt.Errorf("rtconfig: unknown toml key %q", undec[0].String())
		}
	default:
		return Patch{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return p, nil
}

// EncodeYAML renders c as YAML, for the CLI.
func EncodeYAML(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}
