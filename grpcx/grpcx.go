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

// Package grpcx translates handler failures into gRPC status errors.
//
// Every failure is classified, logged once through the pipeline and
// returned as a status carrying an errdetails.ErrorInfo (reason = error
// code) and an errdetails.RequestInfo.
package grpcx

import (
	"context"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/errkit"
	"dirpx.dev/errkit/adapter"
	"dirpx.dev/errkit/apis"
	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/logging"
	"dirpx.dev/errkit/mapper"
	"dirpx.dev/errkit/origin"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

const (
	// Domain is the ErrorInfo domain of translated errors.
	Domain = "errkit.dirpx.dev"

	// RequestIDKey is the incoming metadata key holding the request id.
	RequestIDKey = "x-request-id"
)

// Option configures the interceptors.
type Option func(*translator)

// WithRules adds classification rules on top of the pipeline's own.
func WithRules(rules ...errkit.Rule) Option {
	return func(t *translator) { t.classifier.Rules = append(t.classifier.Rules, rules...) }
}

// WithClock overrides the clock used for request metadata.
func WithClock(now func() time.Time) Option {
	return func(t *translator) { t.now = now }
}

// WithMappedStatus makes failures that fall back to the default code carry
// the mapper's HTTP status for that code instead of 500. Typed errors and
// rule results keep their own status.
func WithMappedStatus() Option {
	return func(t *translator) { t.mapStatus = true }
}

type translator struct {
	pipeline    *logging.Pipeline
	mapper      apis.Mapper
	classifier  errkit.Classifier
	defaultCode code.Code
	mapStatus   bool
	now         func() time.Time
}

func newTranslator(p *logging.Pipeline, m apis.Mapper, defaultCode code.Code, opts []Option) *translator {
	if p == nil {
		p = logging.Discard()
	}
	if m == nil {
		m = mapper.MustNew()
	}
	t := &translator{pipeline: p, mapper: m, defaultCode: defaultCode, now: time.Now}
	t.classifier.Rules = append(t.classifier.Rules, p.Classifier().Rules...)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that turns
// handler errors and panics into status errors. Errors that already carry a
// gRPC status are returned as-is. A nil m uses the default mapping.
func UnaryServerInterceptor(p *logging.Pipeline, m apis.Mapper, defaultCode code.Code, opts ...Option) grpc.UnaryServerInterceptor {
	t := newTranslator(p, m, defaultCode, opts)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				resp, err = nil, t.translate(ctx, info.FullMethod, r)
			}
		}()
		resp, err = handler(ctx, req)
		if err == nil || isStatus(err) {
			return resp, err
		}
		return nil, t.translate(ctx, info.FullMethod, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(p *logging.Pipeline, m apis.Mapper, defaultCode code.Code, opts ...Option) grpc.StreamServerInterceptor {
	t := newTranslator(p, m, defaultCode, opts)
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = t.translate(ss.Context(), info.FullMethod, r)
			}
		}()
		err = handler(srv, ss)
		if err == nil || isStatus(err) {
			return err
		}
		return t.translate(ss.Context(), info.FullMethod, err)
	}
}

func isStatus(err error) bool {
	_, ok := err.(interface{ GRPCStatus() *gstatus.Status })
	return ok
}

func (t *translator) translate(ctx context.Context, fullMethod string, failure any) error {
	o := MethodOrigin(fullMethod)
	e, out := t.classifier.Convert(failure, t.defaultCode)
	if out == errkit.OutcomeDefault && t.mapStatus {
		e = e.WithStatus(t.mapper.HTTPStatus(t.defaultCode, o))
	}
	if e.Origin.IsZero() {
		e = e.WithOrigin(o)
	}
	st := t.mapper.Status(e.Code, e.Origin)
	md := apis.RequestMetadata{
		RequestID: RequestID(ctx),
		Method:    fullMethod,
		Timestamp: t.now().UTC(),
	}

	err, _ := failure.(error)
	if !e.Logged() && (err == nil || !errkit.IsLogged(err)) {
		t.pipeline.Error(o, "RPC Error Occurred", string(e.Code)+": "+e.Message, map[string]any{
			"error":    adapter.ToDescriptor(e, st),
			"metadata": md,
		})
	}
	return Status(e, st, md).Err()
}

// Status builds the gRPC status for e. The message is e.Public().
func Status(e *errkit.Error, st apis.Status, md apis.RequestMetadata) *gstatus.Status {
	s := gstatus.New(st.GRPC, e.Public())
	info := &errdetails.ErrorInfo{
		Reason: string(e.Code),
		Domain: Domain,
		Metadata: map[string]string{
			"logged":      "true",
			"http_status": strconv.Itoa(e.StatusCode),
		},
	}
	if p := e.Origin.Path(); p != "" {
		info.Metadata["origin"] = p
	}
	req := &errdetails.RequestInfo{RequestId: md.RequestID, ServingData: md.Method}

	// A status without details is still a valid answer.
	if with, err := s.WithDetails(protoadapt.MessageV1Of(info), protoadapt.MessageV1Of(req)); err == nil {
		return with
	}
	return s
}

// MethodOrigin splits "/pkg.Service/Method" into component "pkg.Service"
// and operation "Method".
func MethodOrigin(fullMethod string) origin.Origin {
	m := strings.TrimPrefix(fullMethod, "/")
	if i := strings.LastIndex(m, "/"); i >= 0 {
		return origin.New(m[:i], m[i+1:])
	}
	return origin.New("", m)
}

// RequestID returns the x-request-id of the incoming metadata, or "unknown".
func RequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(RequestIDKey); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return "unknown"
}

// ExtractInfo pulls the ErrorInfo and RequestInfo out of a gRPC error.
// Useful in tests and client code.
func ExtractInfo(err error) (*errdetails.ErrorInfo, *errdetails.RequestInfo, bool) {
	if err == nil {
		return nil, nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, nil, false
	}
	var (
		info *errdetails.ErrorInfo
		req  *errdetails.RequestInfo
	)
	for _, d := range st.Details() {
		switch x := d.(type) {
		case *errdetails.ErrorInfo:
			info = x
		case *errdetails.RequestInfo:
			req = x
		}
	}
	return info, req, info != nil
}
