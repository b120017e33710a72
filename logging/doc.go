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

// Package logging is the logging pipeline of errkit.
//
// Every event goes through two gates before it is emitted: the level gate
// (a threshold fixed when the Pipeline is built) and, for debug events, the
// debug gate (development mode or the LogDebugInProduction runtime flag).
// An emitted event is sanitized, rendered as one line
//
//	[LEVEL] [2006-01-02T15:04:05.000Z] [component -> operation] [action]: message
//
// and written once to a log/slog sink. When the caller opts in and a
// Notifier is configured, the message is then forwarded to it.
//
// HandleError is the one place a failure is logged: it classifies, logs
// and returns the TypedError marked as logged, so outer layers that see it
// only translate it.
package logging
