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
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"dirpx.dev/errkit"
	"dirpx.dev/errkit/origin"
	"dirpx.dev/errkit/rtconfig"
	"dirpx.dev/errkit/sanitize"
)

// TimeLayout is the timestamp layout embedded in every line (UTC).
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Pipeline emits log events. It is safe for concurrent use; the only
// mutable state it reads is its rtconfig.Store.
type Pipeline struct {
	threshold   Level
	development bool
	cfg         *rtconfig.Store
	sink        *slog.Logger
	notifier    Notifier
	sanitizer   *sanitize.Sanitizer
	classifier  errkit.Classifier
	now         func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithThreshold sets the least severe level that is emitted. Default info.
func WithThreshold(l Level) Option {
	return func(p *Pipeline) { p.threshold = l }
}

// WithDevelopment marks the process as running in development mode.
func WithDevelopment(dev bool) Option {
	return func(p *Pipeline) { p.development = dev }
}

// WithRuntimeConfig shares a runtime configuration store with the pipeline.
// Without it the pipeline owns a store seeded with rtconfig.Defaults.
func WithRuntimeConfig(s *rtconfig.Store) Option {
	return func(p *Pipeline) { p.cfg = s }
}

// WithSink sets the slog logger events are written to.
func WithSink(l *slog.Logger) Option {
	return func(p *Pipeline) { p.sink = l }
}

// WithNotifier sets the user-facing notifier. Nil disables notifications.
func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithSanitizer replaces the default sanitizer.
func WithSanitizer(s *sanitize.Sanitizer) Option {
	return func(p *Pipeline) { p.sanitizer = s }
}

// WithRules adds classification rules used by HandleError.
func WithRules(rules ...errkit.Rule) Option {
	return func(p *Pipeline) { p.classifier.Rules = append(p.classifier.Rules, rules...) }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New builds a Pipeline. Without WithSink it writes through NewSink to
// stdout/stderr.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{threshold: LevelInfo, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.sanitizer == nil {
		p.sanitizer = sanitize.Default()
	}
	if p.cfg == nil {
		p.cfg = rtconfig.NewStore(rtconfig.Defaults(p.development))
	}
	if p.sink == nil {
		p.sink = NewSink(os.Stdout, os.Stderr, p.development, "", p.sanitizer)
	}
	return p
}

// Discard returns a Pipeline that emits nothing anywhere, for tests and
// tools that need a pipeline but no output.
func Discard() *Pipeline {
	return New(WithSink(slog.New(slog.NewTextHandler(io.Discard, nil))), WithThreshold(LevelError-1))
}

// Config returns the runtime configuration store.
func (p *Pipeline) Config() *rtconfig.Store { return p.cfg }

// Development reports whether the pipeline runs in development mode.
func (p *Pipeline) Development() bool { return p.development }

// Threshold returns the level gate.
func (p *Pipeline) Threshold() Level { return p.threshold }

// Sanitizer returns the sanitizer applied to event context.
func (p *Pipeline) Sanitizer() *sanitize.Sanitizer { return p.sanitizer }

// Classifier returns the classifier HandleError uses.
func (p *Pipeline) Classifier() errkit.Classifier { return p.classifier }

// Logger returns the slog sink.
func (p *Pipeline) Logger() *slog.Logger { return p.sink }

// ShouldEmit reports whether l passes the level gate.
func (p *Pipeline) ShouldEmit(l Level) bool {
	return l <= p.threshold
}

// debugEnabled is the debug gate, independent of the level gate.
func (p *Pipeline) debugEnabled() bool {
	return p.development || p.cfg.Load().LogDebugInProduction
}

// Error logs at error level.
func (p *Pipeline) Error(o origin.Origin, action, message string, params ...any) {
	p.log(LevelError, "", o, action, message, params)
}

// Warn logs at warn level.
func (p *Pipeline) Warn(o origin.Origin, action, message string, params ...any) {
	p.log(LevelWarn, "", o, action, message, params)
}

// Info logs at info level.
func (p *Pipeline) Info(o origin.Origin, action, message string, params ...any) {
	p.log(LevelInfo, "", o, action, message, params)
}

// Debug logs at debug level when both the level and the debug gate pass.
func (p *Pipeline) Debug(o origin.Origin, action, message string, params ...any) {
	if !p.debugEnabled() {
		return
	}
	p.log(LevelDebug, "", o, action, message, params)
}

// DevDebug writes a debug line in development mode only. It bypasses the
// level gate and carries no timestamp in the line.
func (p *Pipeline) DevDebug(o origin.Origin, action, message string, params ...any) {
	if !p.development {
		return
	}
	_, ctx := splitParams(params)
	line := "[DEBUG] [" + o.String() + "] [" + action + "]: " + message
	p.sink.LogAttrs(context.Background(), slog.LevelDebug, line, p.attrs(o, action, ctx)...)
}

// log gates, formats, writes and notifies. alert overrides the
// level-derived notification kind when set.
func (p *Pipeline) log(l Level, alert AlertType, o origin.Origin, action, message string, params []any) {
	if !p.ShouldEmit(l) {
		return
	}
	n, ctx := splitParams(params)
	line := FormatLine(l, p.now(), o, action, message)
	p.sink.LogAttrs(context.Background(), l.Slog(), line, p.attrs(o, action, ctx)...)

	if p.notifier == nil || !n.wanted() {
		return
	}
	if alert == "" {
		alert = alertFor(l)
	}
	p.notify(message, alert, n.AlertOptions)
}

func (p *Pipeline) attrs(o origin.Origin, action string, ctx any) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("component", o.Component),
		slog.String("operation", o.Operation),
		slog.String("action", action),
	}
	if ctx != nil {
		attrs = append(attrs, slog.Any("context", p.sanitizer.Sanitize(ctx)))
	}
	return attrs
}

func (p *Pipeline) notify(message string, alert AlertType, opts map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			p.sink.LogAttrs(context.Background(), slog.LevelWarn, "notifier panicked",
				slog.Any("panic", r))
		}
	}()
	p.notifier.Notify(message, alert, opts)
}

// FormatLine renders the single-line form of an event.
func FormatLine(l Level, ts time.Time, o origin.Origin, action, message string) string {
	return "[" + upper(l) + "] [" + ts.UTC().Format(TimeLayout) + "] [" + o.String() + "] [" + action + "]: " + message
}

func upper(l Level) string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelDebug:
		return "DEBUG"
	default:
		return "INFO"
	}
}

// splitParams pulls Notify values out of params and returns what remains
// as the event context: nil, the single value, or a slice of values.
func splitParams(params []any) (Notify, any) {
	var n Notify
	rest := make([]any, 0, len(params))
	for _, v := range params {
		switch x := v.(type) {
		case Notify:
			n = x
		case *Notify:
			if x != nil {
				n = *x
			}
		default:
			rest = append(rest, v)
		}
	}
	switch len(rest) {
	case 0:
		return n, nil
	case 1:
		return n, rest[0]
	default:
		return n, rest
	}
}
