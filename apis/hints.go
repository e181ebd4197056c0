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

package apis

import "strings"

// Hints describe what a single call site asks for. They are ephemeral and
// never persisted.
type Hints struct {
	// Enabled asks for pattern-based resolution.
	Enabled bool
	// Value pins a literal (integer or string) result.
	Value Value
	// Expr is an override expression evaluated against the generator
	// namespace, e.g. "Internet.password(min_length: 8)".
	Expr string
	// Generator is an explicit callable override.
	Generator Generator
}

// Requested reports whether the hints ask for any value at all.
func (h Hints) Requested() bool {
	return h.Enabled || h.Expr != "" || h.Generator != nil || literal(h.Value)
}

// Literal returns the pinned literal, if the hints carry one.
func (h Hints) Literal() (Value, bool) {
	if literal(h.Value) {
		return h.Value, true
	}
	return nil, false
}

func literal(v Value) bool {
	if _, ok := AsInt(v); ok {
		return true
	}
	_, ok := v.(string)
	return ok
}

// ParseHints converts a loosely typed call-site option into Hints.
//
// true enables resolution, integers and strings are pinned literals, and
// Generator or func() any values become callable overrides. Anything else
// (false, nil, unsupported types) yields hints that request nothing. A
// non-empty expr is always carried as the override expression.
func ParseHints(opt any, expr string) Hints {
	h := Hints{Expr: strings.TrimSpace(expr)}
	switch v := opt.(type) {
	case bool:
		h.Enabled = v
	case Generator:
		h.Generator = v
	case func() any:
		h.Generator = v
	default:
		if literal(v) {
			h.Value = v
		}
	}
	if h.Expr != "" || h.Generator != nil || h.Value != nil {
		// An override or literal implies the caller wants a value.
		h.Enabled = true
	}
	return h
}

// Request is a single resolution request.
type Request struct {
	// Field is the field identifier, e.g. "user_email".
	Field string
	// Hints carry the caller's intent for this field.
	Hints Hints
	// Default is the conventional generator for the input kind, if any.
	Default Generator
}
