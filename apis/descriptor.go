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

package apis

import "time"

// ErrorDescriptor is the flat, log-friendly description of a TypedError.
//
// It uses strings and ints rather than the concrete value types so it can be
// sanitized and serialized by any slog handler.
type ErrorDescriptor struct {
	// Code is the taxonomy code, e.g. "NOT_FOUND".
	Code string `json:"code"`

	// Message is the full message, including detail text.
	Message string `json:"message"`

	// StatusCode is the HTTP status carried by the error.
	StatusCode int `json:"statusCode"`

	// HTTPStatus and GRPCCode are the statuses resolved by a Mapper, when
	// one was consulted. Zero means "not resolved".
	HTTPStatus int `json:"http_status,omitempty"`
	GRPCCode   int `json:"grpc_code,omitempty"`

	// Origin is "component -> operation" when the error recorded one.
	Origin string `json:"origin,omitempty"`

	// Cause is the text of the wrapped cause, if any.
	Cause string `json:"cause,omitempty"`

	// Details is the structured context of the error.
	Details map[string]any `json:"details,omitempty"`
}

// RequestMetadata identifies the request a failure happened in.
type RequestMetadata struct {
	RequestID string    `json:"requestId"`
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
}
