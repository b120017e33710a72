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

package logging

import (
	"dirpx.dev/errkit"
	"dirpx.dev/errkit/origin"
)

// Trace runs fn and logs around it according to the runtime configuration:
// a debug "Function called" event when LogFunctionCalls is set, an info
// "Function completed" event when LogFunctionResults is set, and always an
// error "Function error" event when fn fails or panics. The returned error
// is marked as logged; a panic is logged and re-raised.
func Trace[T any](p *Pipeline, o origin.Origin, fn func() (T, error)) (res T, err error) {
	cfg := p.cfg.Load()
	name := o.Operation
	if name == "" {
		name = origin.Unknown
	}
	if cfg.LogFunctionCalls {
		p.Debug(o, "Function called", "Executing "+name)
	}

	defer func() {
		if r := recover(); r != nil {
			p.Error(o, "Function error", "Error in "+name, map[string]any{"panic": r})
			panic(r)
		}
	}()

	res, err = fn()
	if err != nil {
		if !errkit.IsLogged(err) {
			p.Error(o, "Function error", "Error in "+name, map[string]any{"error": err})
		}
		return res, errkit.MarkLogged(err)
	}
	if cfg.LogFunctionResults {
		p.Info(o, "Function completed", name+" executed successfully")
	}
	return res, nil
}

// TraceErr is Trace for functions that only return an error.
func TraceErr(p *Pipeline, o origin.Origin, fn func() error) error {
	_, err := Trace(p, o, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}
