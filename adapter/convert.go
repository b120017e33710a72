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

package adapter

import (
	"dirpx.dev/errkit"
	"dirpx.dev/errkit/apis"
)

// ToDescriptor converts a TypedError together with its resolved transport
// status into a portable ErrorDescriptor. Pass the zero Status when no
// mapper was consulted.
//
// The descriptor is intended for structured logging. It carries the code,
// the full message and the concrete transport statuses.
func ToDescriptor(e *errkit.Error, st apis.Status) apis.ErrorDescriptor {
	if e == nil {
		return apis.ErrorDescriptor{}
	}
	d := apis.ErrorDescriptor{
		Code:       string(e.Code),
		Message:    e.Message,
		StatusCode: e.StatusCode,
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Details:    e.Details,
	}
	if !e.Origin.IsZero() {
		d.Origin = e.Origin.String()
	}
	if e.Cause != nil {
		d.Cause = e.Cause.Error()
	}
	return d
}

// ToView converts a TypedError into the client body. Only the public
// message leaves the process.
func ToView(e *errkit.Error) apis.ErrorView {
	return apis.ErrorView{Error: e.Public(), Logged: true}
}
