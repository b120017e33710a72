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

// Package kit assembles the error kit from environment settings: sanitizer,
// runtime config, slog sink, logging pipeline, status mapper and the
// transport wrappers built on top of them.
//
//	k, err := kit.FromEnv(kit.WithPostgres())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r := gin.New()
//	r.Use(k.GinRecovery("api"))
//	r.GET("/users/:id", k.Gin("UserAPI", "get", code.DatabaseError, getUser))
package kit

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"dirpx.dev/errkit"
	"dirpx.dev/errkit/apis"
	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/environ"
	"dirpx.dev/errkit/ginx"
	"dirpx.dev/errkit/grpcx"
	"dirpx.dev/errkit/httpx"
	"dirpx.dev/errkit/logging"
	"dirpx.dev/errkit/mapper"
	"dirpx.dev/errkit/pgxrule"
	"dirpx.dev/errkit/rtconfig"
	"dirpx.dev/errkit/sanitize"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
)

// Kit is the assembled stack. All fields are safe for concurrent use.
type Kit struct {
	Settings  environ.Settings
	Config    *rtconfig.Store
	Sanitizer *sanitize.Sanitizer
	Pipeline  *logging.Pipeline
	Mapper    apis.Mapper
	HTTP      *httpx.Wrapper

	now func() time.Time
}

type options struct {
	out, errOut io.Writer
	notifier    logging.Notifier
	rules       []errkit.Rule
	mapperOpts  []mapper.Option
	now         func() time.Time
	envFiles    []string
}

// Option configures New and FromEnv.
type Option func(*options)

// WithOutput replaces stdout and stderr as log destinations.
func WithOutput(out, errOut io.Writer) Option {
	return func(o *options) { o.out, o.errOut = out, errOut }
}

// WithNotifier forwards opted-in events to n.
func WithNotifier(n logging.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithRules adds classification rules used everywhere.
func WithRules(rules ...errkit.Rule) Option {
	return func(o *options) { o.rules = append(o.rules, rules...) }
}

// WithPostgres adds the pgx classification rule.
func WithPostgres() Option {
	return WithRules(pgxrule.Rule)
}

// WithMapperOptions configures the status mapper.
func WithMapperOptions(opts ...mapper.Option) Option {
	return func(o *options) { o.mapperOpts = append(o.mapperOpts, opts...) }
}

// WithClock overrides the clock of the pipeline and wrappers.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithEnvFiles sets the .env files FromEnv loads.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// FromEnv loads environ settings and calls New.
func FromEnv(opts ...Option) (*Kit, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s, err := environ.Load(o.envFiles...)
	if err != nil {
		return nil, err
	}
	return New(s, opts...)
}

// New builds a Kit from s.
func New(s environ.Settings, opts ...Option) (*Kit, error) {
	o := options{out: os.Stdout, errOut: os.Stderr, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	dev := s.Development()

	san := sanitize.New(s.SensitiveKeys...)
	store := rtconfig.NewStore(rtconfig.Defaults(dev))
	if s.RuntimeConfigFile != "" {
		p, err := rtconfig.LoadPatchFile(s.RuntimeConfigFile)
		if err != nil {
			return nil, fmt.Errorf("kit: runtime config: %w", err)
		}
		store.Set(p)
	}

	m, err := mapper.New(o.mapperOpts...)
	if err != nil {
		return nil, fmt.Errorf("kit: mapper: %w", err)
	}

	p := logging.New(
		logging.WithThreshold(s.LogLevel),
		logging.WithDevelopment(dev),
		logging.WithRuntimeConfig(store),
		logging.WithSanitizer(san),
		logging.WithSink(logging.NewSink(o.out, o.errOut, dev, s.LogFormat, san)),
		logging.WithNotifier(o.notifier),
		logging.WithRules(o.rules...),
		logging.WithClock(o.now),
	)

	return &Kit{
		Settings:  s,
		Config:    store,
		Sanitizer: san,
		Pipeline:  p,
		Mapper:    m,
		HTTP:      httpx.NewWrapper(p, httpx.WithMapper(m), httpx.WithClock(o.now)),
		now:       o.now,
	}, nil
}

// Handler wraps a net/http handler.
func (k *Kit) Handler(component, operation string, defaultCode code.Code, h httpx.HandlerFunc) http.Handler {
	return k.HTTP.Wrap(component, operation, defaultCode, h)
}

// Gin wraps a gin handler.
func (k *Kit) Gin(component, operation string, defaultCode code.Code, h ginx.HandlerFunc) gin.HandlerFunc {
	return ginx.Wrap(k.HTTP, component, operation, defaultCode, h)
}

// GinRecovery returns the gin panic middleware.
func (k *Kit) GinRecovery(component string) gin.HandlerFunc {
	return ginx.Recovery(k.HTTP, component, code.UnexpectedError)
}

// UnaryInterceptor returns the gRPC unary interceptor.
func (k *Kit) UnaryInterceptor(defaultCode code.Code) grpc.UnaryServerInterceptor {
	return grpcx.UnaryServerInterceptor(k.Pipeline, k.Mapper, defaultCode, grpcx.WithClock(k.now))
}

// StreamInterceptor returns the gRPC stream interceptor.
func (k *Kit) StreamInterceptor(defaultCode code.Code) grpc.StreamServerInterceptor {
	return grpcx.StreamServerInterceptor(k.Pipeline, k.Mapper, defaultCode, grpcx.WithClock(k.now))
}
