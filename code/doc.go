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

// Package code defines the closed taxonomy of errkit error codes.
//
// A code is the stable, machine-readable identity of a failure, such as
// "NOT_FOUND" or "DATABASE_ERROR". Every code carries exactly one default,
// user-presentable message. The set is closed: codes are declared in this
// package and never invented at runtime, so Parse rejects anything that is
// not listed in codes.go.
//
// Codes are:
//
//   - upper-cased;
//   - underscore-separated;
//   - suitable for JSON payloads, gRPC error details and log fields.
//
// The taxonomy carries no transport status. HTTP/gRPC statuses are chosen
// when an error is constructed, or resolved by errkit/mapper.
package code
