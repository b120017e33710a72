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

// Package environ reads the process-level settings of the error kit from the
// environment, optionally seeded from .env files.
//
//	ENVIRONMENT         development (default) | production | any other name
//	LOG_LEVEL           error | warn | info (default) | debug
//	LOG_FORMAT          json | text (default: text in development, json otherwise)
//	LOG_SENSITIVE_KEYS  comma separated keys redacted on top of the defaults
//	LOG_CONFIG_FILE     runtime logging config patch (.yaml, .yml, .json, .toml)
//
// Settings are read once at start; changing the environment afterwards has
// no effect on a running pipeline.
package environ

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"dirpx.dev/errkit/logging"
	"github.com/joho/godotenv"
)

// Variable names.
const (
	KeyEnvironment   = "ENVIRONMENT"
	KeyLogLevel      = "LOG_LEVEL"
	KeyLogFormat     = "LOG_FORMAT"
	KeySensitiveKeys = "LOG_SENSITIVE_KEYS"
	KeyConfigFile    = "LOG_CONFIG_FILE"
)

// Environment names with special meaning.
const (
	Development = "development"
	Production  = "production"
)

// ErrInvalid is returned for a variable holding an unknown value.
var ErrInvalid = errors.New("environ: invalid value")

// Settings are the environment-derived settings.
type Settings struct {
	Environment       string
	LogLevel          logging.Level
	LogFormat         logging.Format
	SensitiveKeys     []string
	RuntimeConfigFile string
}

// Development reports whether the process runs in development mode.
func (s Settings) Development() bool { return s.Environment == Development }

// Defaults returns the settings of an empty environment.
func Defaults() Settings {
	return Settings{
		Environment: Development,
		LogLevel:    logging.LevelInfo,
		LogFormat:   logging.ParseFormat("", true),
	}
}

// Load reads files into the process environment (".env" when none given;
// missing files are skipped, existing variables win) and then the settings.
func Load(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("environ: load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the settings through lookup.
func FromLookup(lookup func(string) (string, bool)) (Settings, error) {
	get := func(k string) string {
		v, _ := lookup(k)
		return strings.TrimSpace(v)
	}

	s := Defaults()
	if v := get(KeyEnvironment); v != "" {
		s.Environment = strings.ToLower(v)
	}

	if v := get(KeyLogLevel); v != "" {
		l, ok := logging.LookupLevel(v)
		if !ok {
			return Settings{}, fmt.Errorf("%w: %s=%q", ErrInvalid, KeyLogLevel, v)
		}
		s.LogLevel = l
	}

	s.LogFormat = logging.ParseFormat("", s.Development())
	if v := get(KeyLogFormat); v != "" {
		f := logging.Format(strings.ToLower(v))
		if f != logging.FormatJSON && f != logging.FormatText {
			return Settings{}, fmt.Errorf("%w: %s=%q", ErrInvalid, KeyLogFormat, v)
		}
		s.LogFormat = f
	}

	for _, k := range strings.Split(get(KeySensitiveKeys), ",") {
		if k = strings.TrimSpace(k); k != "" {
			s.SensitiveKeys = append(s.SensitiveKeys, k)
		}
	}
	s.RuntimeConfigFile = get(KeyConfigFile)
	return s, nil
}
