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

package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"error":   LevelError,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		" info ":  LevelInfo,
		"debug":   LevelDebug,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
	_, ok := LookupLevel("verbose")
	assert.False(t, ok)
}

func TestLevel_Order(t *testing.T) {
	assert.Less(t, LevelError, LevelWarn)
	assert.Less(t, LevelWarn, LevelInfo)
	assert.Less(t, LevelInfo, LevelDebug)
}

func TestLevel_StringAndSlog(t *testing.T) {
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, slog.LevelError, LevelError.Slog())
	assert.Equal(t, slog.LevelDebug, LevelDebug.Slog())

	var l Level
	assert.NoError(t, l.UnmarshalText([]byte("debug")))
	assert.Equal(t, LevelDebug, l)
	b, _ := LevelError.MarshalText()
	assert.Equal(t, "error", string(b))
}
