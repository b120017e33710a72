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

package code

// Authentication / account lifecycle
//
// These codes describe failures of sign-in, sign-up and credential checks.
const (
	// InvalidCredentials indicates that the supplied email/password pair
	// (or other primary credential) did not verify.
	//
	// Can be mapped to an HTTP 401.
	InvalidCredentials Code = "INVALID_CREDENTIALS"

	// AccountLocked indicates that the account exists but is temporarily
	// locked, typically after repeated failed attempts.
	//
	// Can be mapped to an HTTP 423.
	AccountLocked Code = "ACCOUNT_LOCKED"

	// RateLimitExceeded indicates that the caller made too many attempts in
	// the current window.
	//
	// Can be mapped to an HTTP 429.
	RateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"

	// RegistrationFailed indicates that a sign-up could not be completed for
	// a reason that is not worth exposing in detail.
	//
	// Can be mapped to an HTTP 400.
	RegistrationFailed Code = "REGISTRATION_FAILED"

	// EmailAlreadyExists indicates that a sign-up used an email address that
	// is already bound to an account.
	//
	// Can be mapped to an HTTP 409.
	EmailAlreadyExists Code = "EMAIL_ALREADY_EXISTS"
)

// Tokens and authorization
const (
	// InvalidToken indicates that a token is malformed, has a bad signature
	// or is past its expiry.
	//
	// Can be mapped to an HTTP 401.
	InvalidToken Code = "INVALID_TOKEN"

	// Unauthorized indicates that the caller is known but is not allowed to
	// perform the action.
	//
	// Can be mapped to an HTTP 403.
	Unauthorized Code = "UNAUTHORIZED"
)

// Resources, input and storage
const (
	// NotFound indicates that the requested entity does not exist.
	//
	// Can be mapped to an HTTP 404.
	NotFound Code = "NOT_FOUND"

	// ValidationError indicates that the request payload violates a
	// structural or semantic rule.
	//
	// Can be mapped to an HTTP 400.
	ValidationError Code = "VALIDATION_ERROR"

	// DatabaseError indicates that a storage operation failed.
	//
	// Can be mapped to an HTTP 500.
	DatabaseError Code = "DATABASE_ERROR"
)

// Fallback
const (
	// UnexpectedError is the code every unclassified failure degrades to.
	//
	// Can be mapped to an HTTP 500.
	UnexpectedError Code = "UNEXPECTED_ERROR"
)

// messages is the taxonomy: one default message per code.
var messages = map[Code]string{
	InvalidCredentials: "Invalid email or password",
	AccountLocked:      "Your account has been temporarily locked. Please try again later or contact support.",
	RateLimitExceeded:  "Too many attempts. Please try again later.",
	RegistrationFailed: "Registration failed. Please try again.",
	EmailAlreadyExists: "An account with this email already exists.",
	InvalidToken:       "Invalid or expired token.",
	Unauthorized:       "You are not authorized to perform this action.",
	NotFound:           "The requested resource was not found.",
	ValidationError:    "Validation error. Please check your input.",
	DatabaseError:      "A database error occurred. Please try again later.",
	UnexpectedError:    "An unexpected error occurred. Please try again.",
}

// ordered lists the taxonomy in declaration order for listings and tests.
var ordered = []Code{
	InvalidCredentials,
	AccountLocked,
	RateLimitExceeded,
	RegistrationFailed,
	EmailAlreadyExists,
	InvalidToken,
	Unauthorized,
	NotFound,
	ValidationError,
	DatabaseError,
	UnexpectedError,
}
