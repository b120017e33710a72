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

package origin

import (
	"errors"
	"regexp"
	"strings"
)

// Unknown is rendered in place of an empty component or operation.
const Unknown = "unknown"

// MaxPathLength bounds the canonical path accepted by ParsePath.
const MaxPathLength = 128

const pathFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`

var pathRe = regexp.MustCompile(pathFmt)

var (
	// ErrPathInvalidFormat is returned when a path does not conform to the
	// canonical dotted form.
	ErrPathInvalidFormat = errors.New("errkit: invalid origin path format")
	// ErrPathInvalidLength is returned when a path is empty or too long.
	ErrPathInvalidLength = errors.New("errkit: invalid origin path length")
)

// Origin names the component and operation that produced an event.
type Origin struct {
	Component string `json:"component"`
	Operation string `json:"operation"`
}

// New returns an Origin with surrounding whitespace trimmed from both parts.
func New(component, operation string) Origin {
	return Origin{
		Component: strings.TrimSpace(component),
		Operation: strings.TrimSpace(operation),
	}
}

// IsZero reports whether neither part is set.
func (o Origin) IsZero() bool {
	return o.Component == "" && o.Operation == ""
}

// String renders "component -> operation".
func (o Origin) String() string {
	return orUnknown(o.Component) + " -> " + orUnknown(o.Operation)
}

// Path returns the canonical dotted path of the origin. Component and
// operation may themselves contain "." or "/" separated parts; each part is
// lower-cased and stripped down to [a-z0-9_] with a leading letter. Parts
// that end up empty are dropped.
func (o Origin) Path() string {
	segs := make([]string, 0, 4)
	segs = appendSegments(segs, o.Component)
	segs = appendSegments(segs, o.Operation)
	return strings.Join(segs, ".")
}

// Normalize brings a raw dotted path closer to canonical form: trims
// spaces, lower-cases, converts "/" to "." and "-" or " " to "_".
// It keeps "*" untouched so mapper prefix patterns can use it.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "/")
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// ValidatePath checks that p is a canonical, non-empty path.
func ValidatePath(p string) error {
	if len(p) == 0 || len(p) > MaxPathLength {
		return ErrPathInvalidLength
	}
	if !pathRe.MatchString(p) {
		return ErrPathInvalidFormat
	}
	return nil
}

// Parse accepts either "component -> operation" or a dotted path whose last
// segment is the operation ("auth.login" -> {"auth", "login"}).
func Parse(s string) (Origin, error) {
	s = strings.TrimSpace(s)
	if comp, op, ok := strings.Cut(s, "->"); ok {
		o := New(comp, op)
		if o.Component == "" || o.Operation == "" {
			return Origin{}, ErrPathInvalidFormat
		}
		return o, nil
	}
	p := Normalize(s)
	if err := ValidatePath(p); err != nil {
		return Origin{}, err
	}
	i := strings.LastIndexByte(p, '.')
	if i < 0 {
		return Origin{Component: p}, nil
	}
	return Origin{Component: p[:i], Operation: p[i+1:]}, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Origin {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return o
}

// MarshalText implements encoding.TextMarshaler.
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

func appendSegments(dst []string, raw string) []string {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "/", ".")
	for _, part := range strings.Split(raw, ".") {
		if seg := segment(part); seg != "" {
			dst = append(dst, seg)
		}
	}
	return dst
}

// segment reduces a raw part to [a-z][a-z0-9_]*.
func segment(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case (r >= '0' && r <= '9') || r == '_':
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		case r == '-' || r == ' ':
			if b.Len() > 0 {
				b.WriteByte('_')
			}
		}
	}
	return b.String()
}
