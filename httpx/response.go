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

package httpx

import (
	"net/http"
	"strconv"

	"dirpx.dev/errkit/apis"
	"dirpx.dev/errkit/logging"
	"dirpx.dev/errkit/origin"
	"github.com/google/uuid"
)

// WriteLogged writes body as JSON and logs the response at info level with
// the sanitized body as context.
func (w *Wrapper) WriteLogged(rw http.ResponseWriter, status int, body any, o origin.Origin) {
	WriteJSON(rw, status, body)
	w.pipeline.Info(o, "Response created", "Status: "+strconv.Itoa(status), body)
}

// WriteLoggedError writes {"error": message} and logs it at error level
// with an alert. status defaults to 500.
func (w *Wrapper) WriteLoggedError(rw http.ResponseWriter, message string, o origin.Origin, status ...int) {
	st := http.StatusInternalServerError
	if len(status) > 0 && status[0] > 0 {
		st = status[0]
	}
	WriteJSON(rw, st, apis.MessageView{Error: message})
	w.pipeline.Error(o, "Error response", "Status: "+strconv.Itoa(st)+", Message: "+message,
		logging.Notify{ShowAlert: true})
}

// RequestID assigns a random request id to requests that carry none and
// echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(HeaderRequestID, id)
		}
		rw.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(rw, r)
	})
}
