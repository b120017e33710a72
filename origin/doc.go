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

// Package origin identifies where a log event or a failure came from.
//
// An Origin is a {component, operation} pair such as
// {"UserService", "createUser"}. It renders in two forms:
//
//   - String(): "UserService -> createUser", used in log lines;
//   - Path():   "userservice.createuser", a dot-separated canonical path
//     that mappers match prefix rules against.
//
// The zero Origin is valid and renders as "unknown -> unknown".
package origin
