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

// Package form wraps field-rendering functions so that, when the engine is
// enabled and a field asks for it, the field is pre-populated with a
// synthetic value.
//
// A field opts in with the "auto_faker" option: true for rule-based
// resolution, an integer or string literal to pin a value, or an
// apis.Generator. "auto_faker_class" carries an override expression such as
// "Internet.password(min_length: 8)". Both keys are removed before the
// wrapped function runs, and a caller-set "value" or "selected" is never
// replaced.
package form

import (
	"context"

	"dirpx.dev/ffx"
	"dirpx.dev/ffx/apis"
	uref "dirpx.dev/ffx/utils/reflect"
)

// Option keys read and written by the wrappers.
const (
	KeyAutoFaker      = "auto_faker"
	KeyAutoFakerClass = "auto_faker_class"
	KeyValue          = "value"
	KeySelected       = "selected"
	KeyInputHTML      = "input_html"
	KeyCollection     = "collection"
	KeyAs             = "as"
)

// Options are the keyword options of a rendering call.
type Options map[string]any

// Clone returns a shallow copy of o. It never returns nil.
func (o Options) Clone() Options {
	out := make(Options, len(o)+1)
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Has reports whether key is set.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// FieldFunc renders a single-value input.
type FieldFunc func(ctx context.Context, object, method string, opts Options) string

// Choice is one entry of a select input.
type Choice struct {
	Text  string
	Value apis.Value
}

// Values returns the values of choices.
func Values(choices []Choice) []apis.Value {
	out := make([]apis.Value, len(choices))
	for i, c := range choices {
		out[i] = c.Value
	}
	return out
}

// SelectFunc renders a select input over fixed choices.
type SelectFunc func(ctx context.Context, object, method string, choices []Choice, opts, html Options) string

// CollectionSelectFunc renders a select input over a collection of records.
// valueMethod names the member holding each record's value.
type CollectionSelectFunc func(ctx context.Context, object, method string, collection any, valueMethod, textMethod string, opts, html Options) string

// InputFunc renders a form-builder input whose HTML attributes live under
// the "input_html" option.
type InputFunc func(ctx context.Context, attribute string, opts Options) string

// Fields builds wrappers bound to Engine. A nil Engine follows the
// process-wide one.
type Fields struct {
	Engine apis.Engine
}

func (f Fields) engine() apis.Engine {
	if f.Engine == nil {
		return ffx.Shared()
	}
	return f.Engine
}

// Text wraps a text field. It has no kind default.
func (f Fields) Text(next FieldFunc) FieldFunc { return f.field(next, "") }

// Email wraps an email field.
func (f Fields) Email(next FieldFunc) FieldFunc { return f.field(next, KindEmail) }

// Phone wraps a phone field.
func (f Fields) Phone(next FieldFunc) FieldFunc { return f.field(next, KindPhone) }

// Number wraps a number field.
func (f Fields) Number(next FieldFunc) FieldFunc { return f.field(next, KindNumber) }

// Password wraps a password field.
func (f Fields) Password(next FieldFunc) FieldFunc { return f.field(next, KindPassword) }

// TextArea wraps a text area.
func (f Fields) TextArea(next FieldFunc) FieldFunc { return f.field(next, KindText) }

func (f Fields) field(next FieldFunc, kind Kind) FieldFunc {
	return func(ctx context.Context, object, method string, opts Options) string {
		return next(ctx, object, method, f.apply(ctx, method, opts, kind))
	}
}

// Select wraps a select input. Integer candidates are reconciled against the
// choice values.
func (f Fields) Select(next SelectFunc) SelectFunc {
	return func(ctx context.Context, object, method string, choices []Choice, opts, html Options) string {
		html = f.applySelect(ctx, method, html, Values(choices), true)
		return next(ctx, object, method, choices, opts, html)
	}
}

// CollectionSelect wraps a collection select. Integer candidates are
// reconciled against the valueMethod member of each record; a collection that
// cannot be read that way leaves the candidate unreconciled.
func (f Fields) CollectionSelect(next CollectionSelectFunc) CollectionSelectFunc {
	return func(ctx context.Context, object, method string, collection any, valueMethod, textMethod string, opts, html Options) string {
		values, err := uref.Pluck(collection, valueMethod)
		html = f.applySelect(ctx, method, html, values, err == nil)
		return next(ctx, object, method, collection, valueMethod, textMethod, opts, html)
	}
}

// Input wraps a form-builder input. The kind comes from the "as" option or
// the attribute name; collection inputs receive "selected", others
// "input_html.value".
func (f Fields) Input(next InputFunc) InputFunc {
	return func(ctx context.Context, attribute string, opts Options) string {
		return next(ctx, attribute, f.applyInput(ctx, attribute, opts))
	}
}

func (f Fields) apply(ctx context.Context, field string, opts Options, kind Kind) Options {
	out := strip(opts)
	e := f.engine()
	if !requested(opts) || !e.Enabled() {
		return out
	}
	if v, ok := f.resolve(ctx, e, field, opts, kind); ok && !out.Has(KeyValue) {
		out[KeyValue] = v
	}
	return out
}

func (f Fields) applySelect(ctx context.Context, field string, html Options, values []apis.Value, reconcile bool) Options {
	out := strip(html)
	e := f.engine()
	if !requested(html) || !e.Enabled() {
		return out
	}
	v, ok := f.resolve(ctx, e, field, html, "")
	if ok && reconcile {
		v, ok = e.Reconcile(v, values)
	}
	if ok && !out.Has(KeySelected) {
		out[KeySelected] = v
	}
	return out
}

func (f Fields) applyInput(ctx context.Context, attribute string, opts Options) Options {
	raw := opts[KeyInputHTML]
	html := inputHTML(raw)
	out := opts.Clone()
	if html != nil {
		out[KeyInputHTML] = sameShape(raw, strip(html))
	}

	e := f.engine()
	if !requested(html) || !e.Enabled() {
		return out
	}

	kind := DetectKind(attribute, opts[KeyAs])
	v, ok := f.resolve(ctx, e, attribute, html, kind)
	if !ok {
		return out
	}
	if opts.Has(KeyCollection) || collectionKind(kind) {
		if !out.Has(KeySelected) {
			out[KeySelected] = v
		}
		return out
	}
	if html.Has(KeyValue) {
		return out
	}
	h := strip(html)
	h[KeyValue] = v
	out[KeyInputHTML] = sameShape(raw, h)
	return out
}

func (f Fields) resolve(ctx context.Context, e apis.Engine, field string, opts Options, kind Kind) (apis.Value, bool) {
	expr, _ := opts[KeyAutoFakerClass].(string)
	req := apis.Request{
		Field:   field,
		Hints:   apis.ParseHints(opts[KeyAutoFaker], expr),
		Default: kindDefault(e, kind),
	}
	return e.Resolve(ctx, req)
}

func kindDefault(e apis.Engine, kind Kind) apis.Generator {
	expr, ok := DefaultExpr(kind)
	if !ok {
		return nil
	}
	g, err := e.Generator(expr)
	if err != nil {
		return nil
	}
	return g
}

// requested reports whether the auto_faker option is present and truthy.
func requested(opts Options) bool {
	v, ok := opts[KeyAutoFaker]
	if !ok || v == nil {
		return false
	}
	if b, isBool := v.(bool); isBool {
		return b
	}
	return true
}

// strip returns a copy of opts without the hint keys.
func strip(opts Options) Options {
	out := opts.Clone()
	delete(out, KeyAutoFaker)
	delete(out, KeyAutoFakerClass)
	return out
}

// sameShape returns h typed like the caller's original input_html value.
func sameShape(raw any, h Options) any {
	if _, ok := raw.(map[string]any); ok {
		return map[string]any(h)
	}
	return h
}

func inputHTML(v any) Options {
	switch h := v.(type) {
	case Options:
		return h
	case map[string]any:
		return Options(h)
	}
	return nil
}
