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

// Package mapping declares the built-in field rules.
//
// Order is load-bearing: alternation in a regular expression says nothing
// about specificity, so domain rules ("movie_name", "company_name") are
// declared before the generic trailing-"name" rule, which precedes location,
// contact, credential, network and free-text rules. The same holds inside a
// group: "street_address" and "ip_address" must not reach the bare "address"
// rule.
package mapping

import (
	"errors"
	"fmt"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/matcher"
)

// Entry is one built-in rule before it is bound to a namespace.
type Entry struct {
	// Matcher selects fields.
	Matcher apis.Matcher
	// Expr is the namespace expression producing the value.
	Expr string
}

// nameExclusions keep the generic "name" rule from claiming fields owned by
// the domain rules above it.
var nameExclusions = []string{"movie_", "film_", "company_", "product_", "book_", "song_", "band_"}

var table = []Entry{
	// Entertainment
	{matcher.MustPattern(`movie.*name|film.*name|movie.*title|film.*title`), "Movie.title"},
	{matcher.MustPattern(`book.*name|book.*title`), "Book.title"},
	{matcher.MustPattern(`song.*name|song.*title`), "Music.song"},
	{matcher.MustPattern(`band.*name|artist.*name`), "Music.band"},

	// Business
	{matcher.MustPattern(`company.*name|business.*name`), "Company.name"},
	{matcher.MustPattern(`job.*title|position`), "Job.title"},
	{matcher.MustPattern(`department`), "Commerce.department"},
	{matcher.MustPattern(`product.*name`), "Commerce.product_name"},

	// Personal names. "username" also ends in "name", so it goes first.
	{matcher.MustPattern(`username`), "Internet.username"},
	{matcher.MustPattern(`first_name|fname`), "Name.first_name"},
	{matcher.MustPattern(`last_name|lname|surname`), "Name.last_name"},
	{matcher.Excluding(matcher.MustPattern(`full_name|name$`), nameExclusions...), "Name.name"},

	// Location
	{matcher.MustPattern(`city`), "Address.city"},
	{matcher.MustPattern(`state|province`), "Address.state"},
	{matcher.MustPattern(`country`), "Address.country"},
	{matcher.MustPattern(`street`), "Address.street_address"},
	{matcher.MustPattern(`zip.*code|postal.*code`), "Address.zip_code"},

	// Contact
	{matcher.MustPattern(`email`), "Internet.email"},
	{matcher.MustPattern(`phone.*number|phone`), "PhoneNumber.phone_number"},
	{matcher.MustPattern(`website|url`), "Internet.url"},

	// Credentials and network
	{matcher.MustPattern(`password`), "Internet.password"},
	{matcher.MustPattern(`ip.*address`), "Internet.ip_v4_address"},

	// Bare "address" last, after every "*_address" owner above.
	{matcher.MustPattern(`address`), "Address.full_address"},

	// Free text and misc
	{matcher.MustPattern(`description|bio`), "Lorem.paragraph"},
	{matcher.MustPattern(`comment`), "Lorem.sentence"},
	{matcher.MustPattern(`title$`), "Lorem.sentence(word_count: 3)"},
	{matcher.MustPattern(`age`), "Number.between(from: 18, to: 99)"},
	{matcher.MustPattern(`price|amount|cost`), "Commerce.price"},
	{matcher.MustPattern(`color`), "Color.color_name"},
}

// Entries returns the built-in table in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// Defaults binds the built-in table to ns. Entries whose expression does not
// compile against ns are left out and reported in the joined error; the
// returned rules are usable either way.
func Defaults(ns apis.Namespace) ([]apis.Rule, error) {
	rules := make([]apis.Rule, 0, len(table))
	var errs []error
	for _, e := range table {
		g, err := ns.Compile(e.Expr)
		if err != nil {
			errs = append(errs, fmt.Errorf("ffx(mapping): rule %q: %w", e.Matcher.String(), err))
			continue
		}
		rules = append(rules, apis.Rule{Matcher: e.Matcher, Generator: g})
	}
	return rules, errors.Join(errs...)
}

// Lookup returns the expression of the first built-in entry matching field.
// It is meant for diagnostics; resolution goes through the registry.
func Lookup(field string) (string, bool) {
	for _, e := range table {
		if e.Matcher.Match(field) {
			return e.Expr, true
		}
	}
	return "", false
}
