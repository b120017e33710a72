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

// Package ginx plugs the httpx translator into gin handlers.
package ginx

import (
	"net/http"

	"dirpx.dev/errkit"
	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/httpx"
	"dirpx.dev/errkit/origin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandlerFunc is a gin handler that reports failure by returning an error.
type HandlerFunc func(*gin.Context) error

// Wrap adapts h into a gin.HandlerFunc. Failures and panics are classified
// with defaultCode, logged once and written through w; the chain is aborted.
func Wrap(w *httpx.Wrapper, component, operation string, defaultCode code.Code, h HandlerFunc) gin.HandlerFunc {
	o := origin.New(component, operation)
	return func(c *gin.Context) {
		failure := run(h, c)
		if failure == nil {
			return
		}
		translate(w, c, o, w.FromFailure(failure, o, defaultCode))
		c.Abort()
	}
}

// translate only logs when the handler already wrote a response.
func translate(w *httpx.Wrapper, c *gin.Context, o origin.Origin, e *errkit.Error) {
	if c.Writer.Written() {
		w.Report(c.Request, o, e)
		return
	}
	w.Translate(c.Writer, c.Request, o, e)
}

func run(h HandlerFunc, c *gin.Context) (failure any) {
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler {
				panic(v)
			}
			failure = v
		}
	}()
	if err := h(c); err != nil {
		return err
	}
	return nil
}

// Recovery is a gin middleware translating panics from plain gin handlers.
// The operation is the matched route.
func Recovery(w *httpx.Wrapper, component string, defaultCode code.Code) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			o := origin.New(component, route(c))
			translate(w, c, o, w.FromFailure(v, o, defaultCode))
			c.Abort()
		}()
		c.Next()
	}
}

// Errors translates the last error attached with c.Error. When the handlers
// already wrote a response it is only logged.
func Errors(w *httpx.Wrapper, component string, defaultCode code.Code) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		last := c.Errors.Last()
		if last == nil {
			return
		}
		o := origin.New(component, route(c))
		translate(w, c, o, w.FromFailure(last.Err, o, defaultCode))
	}
}

func route(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

// RequestID is the gin form of httpx.RequestID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(httpx.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(httpx.HeaderRequestID, id)
		}
		c.Header(httpx.HeaderRequestID, id)
		c.Next()
	}
}
