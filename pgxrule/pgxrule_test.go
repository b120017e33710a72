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

package pgxrule

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dirpx.dev/errkit"
	"dirpx.dev/errkit/code"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     code.Code
		status   int
		redacted bool
	}{
		{"no rows", fmt.Errorf("load user: %w", pgx.ErrNoRows), code.NotFound, http.StatusNotFound, false},
		{"email taken", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			code.EmailAlreadyExists, http.StatusConflict, false},
		{"other unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "orders_pkey"},
			code.ValidationError, http.StatusConflict, false},
		{"not null", &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "name"},
			code.ValidationError, http.StatusBadRequest, false},
		{"too many connections", &pgconn.PgError{Code: pgerrcode.TooManyConnections},
			code.DatabaseError, http.StatusServiceUnavailable, true},
		{"syntax", fmt.Errorf("query: %w", &pgconn.PgError{Code: pgerrcode.SyntaxError, Message: "syntax error at or near"}),
			code.DatabaseError, http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Rule(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, tt.redacted, e.Redacted)
			assert.ErrorIs(t, e, tt.err)
		})
	}
}

func TestRule_Details(t *testing.T) {
	e, ok := Rule(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key", TableName: "users"})
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"sqlstate":   pgerrcode.UniqueViolation,
		"constraint": "users_email_key",
		"table":      "users",
	}, e.Details)
}

func TestRule_RedactedMessage(t *testing.T) {
	e, _ := Rule(&pgconn.PgError{Code: pgerrcode.UndefinedTable, Message: `relation "users" does not exist`})
	assert.Equal(t, code.Message(code.DatabaseError), e.Public())
}

func TestRule_Unrelated(t *testing.T) {
	_, ok := Rule(errors.New("boom"))
	assert.False(t, ok)
	_, ok = Rule(context.Canceled)
	assert.False(t, ok)
}

func TestRule_WithClassifier(t *testing.T) {
	c := errkit.NewClassifier(Rule)
	e := c.FromFailure(pgx.ErrNoRows, code.DatabaseError)
	assert.Equal(t, code.NotFound, e.Code)
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
}
