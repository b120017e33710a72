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

// Package pgxrule classifies pgx and PostgreSQL failures into typed errors.
//
// Register Rule with logging.WithRules, httpx.WithRules or grpcx.WithRules so
// that database failures returned by handlers keep a meaningful code.
package pgxrule

import (
	"errors"
	"net/http"
	"strings"

	"dirpx.dev/errkit"
	"dirpx.dev/errkit/code"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Rule maps:
//
//   - pgx.ErrNoRows to NOT_FOUND (404);
//   - a unique violation on an email constraint to EMAIL_ALREADY_EXISTS (409);
//   - other integrity violations to VALIDATION_ERROR (409 for unique, 400 otherwise);
//   - connection and resource failures to DATABASE_ERROR (503);
//   - any other PostgreSQL error to DATABASE_ERROR (500).
//
// Database errors are redacted: clients see the taxonomy message only, the
// SQLSTATE and constraint go to Details.
func Rule(err error) (*errkit.Error, bool) {
	if errors.Is(err, pgx.ErrNoRows) {
		return errkit.New(code.NotFound, errkit.WithStatus(http.StatusNotFound), errkit.WithCause(err)), true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPgError(pgErr, err), true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return database(err, http.StatusServiceUnavailable), true
	}
	return nil, false
}

func fromPgError(pgErr *pgconn.PgError, err error) *errkit.Error {
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		c := code.ValidationError
		if mentionsEmail(pgErr) {
			c = code.EmailAlreadyExists
		}
		return errkit.New(c,
			errkit.WithStatus(http.StatusConflict),
			errkit.WithCause(err),
			errkit.WithDetails(details(pgErr)))
	case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
		return errkit.New(code.ValidationError,
			errkit.WithStatus(http.StatusBadRequest),
			errkit.WithCause(err),
			errkit.WithDetails(details(pgErr)))
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsInsufficientResources(pgErr.Code),
		pgErr.Code == pgerrcode.AdminShutdown,
		pgErr.Code == pgerrcode.CannotConnectNow:
		return database(err, http.StatusServiceUnavailable).WithDetails(details(pgErr))
	}
	return database(err, http.StatusInternalServerError).WithDetails(details(pgErr))
}

func database(err error, status int) *errkit.Error {
	return errkit.New(code.DatabaseError,
		errkit.WithStatus(status),
		errkit.WithCause(err),
		errkit.WithRedacted())
}

func mentionsEmail(e *pgconn.PgError) bool {
	return strings.Contains(strings.ToLower(e.ConstraintName), "email") ||
		strings.Contains(strings.ToLower(e.ColumnName), "email")
}

func details(e *pgconn.PgError) map[string]any {
	d := map[string]any{"sqlstate": e.Code}
	if e.ConstraintName != "" {
		d["constraint"] = e.ConstraintName
	}
	if e.TableName != "" {
		d["table"] = e.TableName
	}
	return d
}
