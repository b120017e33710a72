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

package kit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/environ"
	"dirpx.dev/errkit/logging"
	"dirpx.dev/errkit/mapper"
	"dirpx.dev/errkit/origin"
	"dirpx.dev/errkit/rtconfig"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
)

func production() environ.Settings {
	return environ.Settings{
		Environment:   environ.Production,
		LogLevel:      logging.LevelInfo,
		LogFormat:     logging.FormatJSON,
		SensitiveKeys: []string{"ssn"},
	}
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m))
		out = append(out, m)
	}
	return out
}

func TestNew_Production(t *testing.T) {
	var out, errOut bytes.Buffer
	k, err := New(production(), WithOutput(&out, &errOut))
	require.NoError(t, err)

	assert.Equal(t, rtconfig.Production, k.Config.Load())
	assert.True(t, k.Sanitizer.IsSensitive("SSN"))
	assert.False(t, k.Pipeline.Development())

	o := origin.New("UserService", "createUser")
	k.Pipeline.Info(o, "Creating", "ok", map[string]any{"ssn": "123-45-6789"})
	k.Pipeline.HandleError(o, "Creating", errors.New("boom"), "")

	info := lines(t, &out)
	require.Len(t, info, 1)
	assert.Equal(t, map[string]any{"ssn": "***"}, info[0]["context"])

	errs := lines(t, &errOut)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERROR", errs[0]["level"])
}

func TestNew_RuntimeConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logging.yaml")
	require.NoError(t, os.WriteFile(file, []byte("logDebugInProduction: true\n"), 0o600))

	s := production()
	s.RuntimeConfigFile = file
	k, err := New(s, WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	require.NoError(t, err)
	assert.True(t, k.Config.Load().LogDebugInProduction)
	assert.False(t, k.Config.Load().LogFunctionCalls)

	s.RuntimeConfigFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(s)
	assert.Error(t, err)
}

func TestNew_InvalidMapper(t *testing.T) {
	_, err := New(production(), WithMapperOptions(mapper.WithHTTPPrefix(code.NotFound, "Bad Prefix!", 404)))
	assert.Error(t, err)
}

func TestHandler_Postgres(t *testing.T) {
	var out, errOut bytes.Buffer
	k, err := New(production(), WithOutput(&out, &errOut), WithPostgres())
	require.NoError(t, err)

	h := k.Handler("UserAPI", "get", code.DatabaseError, func(http.ResponseWriter, *http.Request) error {
		return pgx.ErrNoRows
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/1", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"`+code.Message(code.NotFound)+`","logged":true}`, rr.Body.String())
	assert.Len(t, lines(t, &errOut), 1)
}

func TestHandler_ConvertedFailureIs500(t *testing.T) {
	var errOut bytes.Buffer
	k, err := New(production(), WithOutput(&bytes.Buffer{}, &errOut), WithPostgres())
	require.NoError(t, err)

	h := k.Handler("UserAPI", "get", code.NotFound, func(http.ResponseWriter, *http.Request) error {
		return errors.New("cache miss and lookup failed")
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	logged := lines(t, &errOut)
	require.Len(t, logged, 1)
	assert.Equal(t, "http://example.com/users/1", logged[0]["context"].(map[string]any)["metadata"].(map[string]any)["url"])
}

func TestUnaryInterceptor(t *testing.T) {
	k, err := New(production(), WithOutput(&bytes.Buffer{}, &bytes.Buffer{}),
		WithClock(func() time.Time { return time.Unix(0, 0) }))
	require.NoError(t, err)

	icpt := k.UnaryInterceptor(code.UnexpectedError)
	_, err = icpt(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/a.B/C"},
		func(context.Context, any) (any, error) { return nil, errors.New("x") })
	assert.Equal(t, codes.Internal, gstatus.Code(err))
}

func TestFromEnv(t *testing.T) {
	for _, key := range []string{environ.KeyEnvironment, environ.KeyLogLevel, environ.KeyLogFormat,
		environ.KeySensitiveKeys, environ.KeyConfigFile} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv(environ.KeyLogLevel, "debug")

	k, err := FromEnv(WithEnvFiles(filepath.Join(t.TempDir(), "none.env")), WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	require.NoError(t, err)
	assert.True(t, k.Settings.Development())
	assert.Equal(t, logging.LevelDebug, k.Pipeline.Threshold())
	assert.Equal(t, rtconfig.Defaults(true), k.Config.Load())
}
