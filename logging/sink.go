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
	"strings"

	"dirpx.dev/errkit/sanitize"
)

// Format selects the slog handler of a sink.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat returns the named format, or the mode default (text in
// development, JSON otherwise) for an empty or unknown name.
func ParseFormat(s string, development bool) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON
	case FormatText:
		return FormatText
	}
	if development {
		return FormatText
	}
	return FormatJSON
}

// NewHandler builds a slog handler writing format to w. The handler lets
// every level through: gating is the pipeline's job. When s is set its
// ReplaceAttr hook redacts attributes logged by other code through the same
// sink.
func NewHandler(w io.Writer, format Format, s *sanitize.Sanitizer) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if s != nil {
		opts.ReplaceAttr = s.ReplaceAttr
	}
	if format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// NewSink builds the process sink. In development everything goes as text
// to errOut; otherwise records below warn go to out and the rest to errOut.
// An empty format picks the mode default.
func NewSink(out, errOut io.Writer, development bool, format Format, s *sanitize.Sanitizer) *slog.Logger {
	if format == "" {
		format = ParseFormat("", development)
	}
	if development {
		return slog.New(NewHandler(errOut, format, s))
	}
	return slog.New(SplitHandler(NewHandler(out, format, s), NewHandler(errOut, format, s), slog.LevelWarn))
}

// SplitHandler routes records at or above min to high and the rest to low.
func SplitHandler(low, high slog.Handler, min slog.Level) slog.Handler {
	return &splitHandler{low: low, high: high, min: min}
}

type splitHandler struct {
	low, high slog.Handler
	min       slog.Level
}

func (h *splitHandler) pick(l slog.Level) slog.Handler {
	if l >= h.min {
		return h.high
	}
	return h.low
}

func (h *splitHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.pick(l).Enabled(ctx, l)
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.pick(r.Level).Handle(ctx, r)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{low: h.low.WithAttrs(attrs), high: h.high.WithAttrs(attrs), min: h.min}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{low: h.low.WithGroup(name), high: h.high.WithGroup(name), min: h.min}
}
