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

package form

import (
	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/matcher"
)

// Kind is the input kind of a field, as in a form builder's "as" option.
type Kind string

const (
	KindString       Kind = "string"
	KindText         Kind = "text"
	KindEmail        Kind = "email"
	KindPhone        Kind = "phone"
	KindPassword     Kind = "password"
	KindURL          Kind = "url"
	KindNumber       Kind = "number"
	KindInteger      Kind = "integer"
	KindSelect       Kind = "select"
	KindRadioButtons Kind = "radio_buttons"
	KindCheckBoxes   Kind = "check_boxes"
)

// defaultExprs are the conventional generators per kind. Choice kinds have
// none so association inference stays reachable for "*_id" fields.
var defaultExprs = map[Kind]string{
	KindString:   "Lorem.word",
	KindText:     "Lorem.paragraph",
	KindEmail:    "Internet.email",
	KindPhone:    "PhoneNumber.phone_number",
	KindPassword: "Internet.password",
	KindURL:      "Internet.url",
	KindNumber:   "Number.number(digits: 5)",
	KindInteger:  "Number.number(digits: 5)",
}

// DefaultExpr returns the namespace expression of kind's default generator.
func DefaultExpr(kind Kind) (string, bool) {
	expr, ok := defaultExprs[kind]
	return expr, ok
}

var detection = []struct {
	m    apis.Matcher
	kind Kind
}{
	{matcher.MustPattern(`email`), KindEmail},
	{matcher.MustPattern(`phone`), KindPhone},
	{matcher.MustPattern(`password`), KindPassword},
	{matcher.MustPattern(`url|website`), KindURL},
	{matcher.MustPattern(`text|description|bio|comment`), KindText},
	{matcher.MustPattern(`_id$`), KindSelect},
}

// DetectKind returns the explicit kind when as is a non-empty Kind or
// string, otherwise infers one from the attribute name.
func DetectKind(attribute string, as any) Kind {
	switch k := as.(type) {
	case Kind:
		if k != "" {
			return k
		}
	case string:
		if k != "" {
			return Kind(k)
		}
	}
	for _, d := range detection {
		if d.m.Match(attribute) {
			return d.kind
		}
	}
	return KindString
}

// collectionKind reports whether kind always renders a collection.
func collectionKind(kind Kind) bool {
	return kind == KindRadioButtons || kind == KindCheckBoxes
}
