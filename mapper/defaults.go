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
	"net/http"

	"dirpx.dev/errkit/code"
	"google.golang.org/grpc/codes"
)

// defaultHTTP defines the built-in HTTP mappings for the taxonomy.
// Handlers usually set StatusCode themselves; these values are used where a
// status has to be derived from the code alone (converted failures, gRPC
// error details, the CLI).
var defaultHTTP = map[code.Code]int{
	// authentication and authorization
	code.InvalidCredentials: http.StatusUnauthorized,
	code.InvalidToken:       http.StatusUnauthorized,
	code.Unauthorized:       http.StatusForbidden,
	code.AccountLocked:      http.StatusLocked,

	// client input
	code.ValidationError:    http.StatusBadRequest,
	code.RegistrationFailed: http.StatusBadRequest,
	code.EmailAlreadyExists: http.StatusConflict,
	code.NotFound:           http.StatusNotFound,
	code.RateLimitExceeded:  http.StatusTooManyRequests,

	// server side
	code.DatabaseError:   http.StatusInternalServerError,
	code.UnexpectedError: http.StatusInternalServerError,
}

// defaultGRPC defines the built-in gRPC mappings for the taxonomy.
var defaultGRPC = map[code.Code]codes.Code{
	code.InvalidCredentials: codes.Unauthenticated,
	code.InvalidToken:       codes.Unauthenticated,
	code.Unauthorized:       codes.PermissionDenied,
	code.AccountLocked:      codes.PermissionDenied,

	code.ValidationError:    codes.InvalidArgument,
	code.RegistrationFailed: codes.InvalidArgument,
	code.EmailAlreadyExists: codes.AlreadyExists,
	code.NotFound:           codes.NotFound,
	code.RateLimitExceeded:  codes.ResourceExhausted,

	code.DatabaseError:   codes.Internal,
	code.UnexpectedError: codes.Internal,
}

// DefaultHTTP returns the built-in HTTP status for c, or 500 when c has none.
func DefaultHTTP(c code.Code) int {
	if v, ok := defaultHTTP[c]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// DefaultGRPC returns the built-in gRPC code for c, or codes.Internal.
func DefaultGRPC(c code.Code) codes.Code {
	if v, ok := defaultGRPC[c]; ok {
		return v
	}
	return codes.Internal
}
