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

package environ

import (
	"os"
	"path/filepath"
	"testing"

	"dirpx.dev/errkit/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	s, err := FromLookup(lookup(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.True(t, s.Development())
	assert.Equal(t, logging.LevelInfo, s.LogLevel)
	assert.Equal(t, logging.FormatText, s.LogFormat)
}

func TestFromLookup(t *testing.T) {
	s, err := FromLookup(lookup(map[string]string{
		KeyEnvironment:   "Production",
		KeyLogLevel:      "warning",
		KeySensitiveKeys: " ssn, cardNumber ,,",
		KeyConfigFile:    "/etc/errkit/logging.yaml",
	}))
	require.NoError(t, err)
	assert.Equal(t, Production, s.Environment)
	assert.False(t, s.Development())
	assert.Equal(t, logging.LevelWarn, s.LogLevel)
	assert.Equal(t, logging.FormatJSON, s.LogFormat)
	assert.Equal(t, []string{"ssn", "cardNumber"}, s.SensitiveKeys)
	assert.Equal(t, "/etc/errkit/logging.yaml", s.RuntimeConfigFile)
}

func TestFromLookup_ExplicitFormat(t *testing.T) {
	s, err := FromLookup(lookup(map[string]string{KeyEnvironment: "staging", KeyLogFormat: "TEXT"}))
	require.NoError(t, err)
	assert.False(t, s.Development())
	assert.Equal(t, logging.FormatText, s.LogFormat)
}

func TestFromLookup_Invalid(t *testing.T) {
	_, err := FromLookup(lookup(map[string]string{KeyLogLevel: "loud"}))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, KeyLogLevel)

	_, err = FromLookup(lookup(map[string]string{KeyLogFormat: "xml"}))
	assert.ErrorIs(t, err, ErrInvalid)
}

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad(t *testing.T) {
	unsetForTest(t, KeyEnvironment, KeyLogLevel, KeyLogFormat, KeySensitiveKeys, KeyConfigFile)

	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("ENVIRONMENT=production\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv(KeyLogLevel, "error")

	s, err := Load(filepath.Join(dir, "missing.env"), file)
	require.NoError(t, err)
	assert.Equal(t, Production, s.Environment)
	assert.Equal(t, logging.LevelError, s.LogLevel, "the process environment wins over the file")
}
