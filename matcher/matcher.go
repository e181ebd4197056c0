/*
   Copyright 2025 The DIRPX Authors.

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

// Package matcher provides the field matchers used by registry rules.
package matcher

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"dirpx.dev/ffx/apis"
)

// ErrEmptyName is returned when an exact matcher is built from "".
var ErrEmptyName = errors.New("ffx(matcher): empty field name")

// Exact matches a field whose string form equals name. Comparison is
// case-preserving.
func Exact(name string) apis.Matcher {
	return exact(name)
}

type exact string

func (e exact) Match(field string) bool { return field == string(e) }
func (exact) Exact() bool               { return true }
func (e exact) String() string          { return string(e) }

// Pattern compiles expr as a case-insensitive regular expression matcher.
func Pattern(expr string) (apis.Matcher, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("ffx(matcher): pattern %q: %w", expr, err)
	}
	return &pattern{expr: expr, re: re}, nil
}

// MustPattern is like Pattern but panics on an invalid expression.
// It is meant for package-level rule tables.
func MustPattern(expr string) apis.Matcher {
	m, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return m
}

type pattern struct {
	expr string
	re   *regexp.Regexp
}

func (p *pattern) Match(field string) bool { return p.re.MatchString(field) }
func (*pattern) Exact() bool               { return false }
func (p *pattern) String() string          { return p.expr }

// Excluding wraps m and rejects fields that start with any of the given
// prefixes (compared case-insensitively). RE2 has no look-behind, so this
// carries exclusions such as "name$ but not movie_name".
func Excluding(m apis.Matcher, prefixes ...string) apis.Matcher {
	lower := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p != "" {
			lower = append(lower, strings.ToLower(p))
		}
	}
	return &excluding{inner: m, prefixes: lower}
}

type excluding struct {
	inner    apis.Matcher
	prefixes []string
}

func (x *excluding) Match(field string) bool {
	lf := strings.ToLower(field)
	for _, p := range x.prefixes {
		if strings.HasPrefix(lf, p) {
			return false
		}
	}
	return x.inner.Match(field)
}

func (x *excluding) Exact() bool { return x.inner.Exact() }

func (x *excluding) String() string {
	return x.inner.String() + " except " + strings.Join(x.prefixes, ",")
}

// Key identifies a matcher by kind and text. Two matchers with the same key
// are interchangeable for registration purposes.
func Key(m apis.Matcher) string {
	if m.Exact() {
		return "exact:" + m.String()
	}
	return "pattern:" + m.String()
}
