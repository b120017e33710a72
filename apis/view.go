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

// ErrorView is the JSON body sent to a client after a failure has been
// translated. Logged is always true: the failure was recorded server side
// before the body was written.
type ErrorView struct {
	Error  string `json:"error"`
	Logged bool   `json:"logged"`
}

// MessageView is the body of an error response that is not a translated
// failure, e.g. a handler answering 400 on its own.
type MessageView struct {
	Error string `json:"error"`
}
