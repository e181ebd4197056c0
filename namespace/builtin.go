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

package namespace

import (
	"math"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dirpx.dev/ffx/apis"
)

// Argument ceilings for built-in generators. Expressions come from callers,
// so counts and lengths are bounded.
const (
	MaxWords          = 1000
	MaxSentences      = 100
	MaxPasswordLength = 1024
	MaxMagnitude      = 1_000_000_000_000_000
)

// Categories lists the built-in category names.
var Categories = []string{
	"Name", "Internet", "PhoneNumber", "Address", "Company", "Commerce",
	"Lorem", "Number", "Color", "Movie", "Book", "Music", "Job",
}

// str adapts an argument-free string generator.
func str(fn func(f *gofakeit.Faker) string) Func {
	return func(f *gofakeit.Faker, _ Args) (apis.Value, error) {
		return fn(f), nil
	}
}

func registerBuiltins(n *Namespace) {
	table := map[string]map[string]Func{
		"Name": {
			"name":       str((*gofakeit.Faker).Name),
			"first_name": str((*gofakeit.Faker).FirstName),
			"last_name":  str((*gofakeit.Faker).LastName),
			"prefix":     str((*gofakeit.Faker).NamePrefix),
			"suffix":     str((*gofakeit.Faker).NameSuffix),
		},
		"Internet": {
			"email":         str((*gofakeit.Faker).Email),
			"url":           str((*gofakeit.Faker).URL),
			"username":      str((*gofakeit.Faker).Username),
			"password":      password,
			"ip_v4_address": str((*gofakeit.Faker).IPv4Address),
			"ip_v6_address": str((*gofakeit.Faker).IPv6Address),
			"domain_name":   str((*gofakeit.Faker).DomainName),
			"user_agent":    str((*gofakeit.Faker).UserAgent),
		},
		"PhoneNumber": {
			"phone_number": str((*gofakeit.Faker).PhoneFormatted),
			"cell_phone":   str((*gofakeit.Faker).Phone),
		},
		"Address": {
			"city":           str((*gofakeit.Faker).City),
			"state":          str((*gofakeit.Faker).State),
			"country":        str((*gofakeit.Faker).Country),
			"street_address": str((*gofakeit.Faker).Street),
			"zip_code":       str((*gofakeit.Faker).Zip),
			"zip":            str((*gofakeit.Faker).Zip),
			"full_address": str(func(f *gofakeit.Faker) string {
				return f.Address().Address
			}),
			"latitude":  func(f *gofakeit.Faker, _ Args) (apis.Value, error) { return f.Latitude(), nil },
			"longitude": func(f *gofakeit.Faker, _ Args) (apis.Value, error) { return f.Longitude(), nil },
		},
		"Company": {
			"name":     str((*gofakeit.Faker).Company),
			"suffix":   str((*gofakeit.Faker).CompanySuffix),
			"buzzword": str((*gofakeit.Faker).BuzzWord),
			"bs":       str((*gofakeit.Faker).BS),
		},
		"Commerce": {
			"department":   str((*gofakeit.Faker).ProductCategory),
			"product_name": str((*gofakeit.Faker).ProductName),
			"material":     str((*gofakeit.Faker).ProductMaterial),
			"color":        str((*gofakeit.Faker).Color),
			"price":        price,
		},
		"Lorem": {
			"word":      str((*gofakeit.Faker).Word),
			"words":     words,
			"sentence":  sentence,
			"paragraph": paragraph,
			"question":  str((*gofakeit.Faker).Question),
		},
		"Number": {
			"number":  number,
			"between": between,
			"digit":   func(f *gofakeit.Faker, _ Args) (apis.Value, error) { return f.Number(0, 9), nil },
			"decimal": decimal,
		},
		"Color": {
			"color_name": str((*gofakeit.Faker).Color),
			"hex_color":  str((*gofakeit.Faker).HexColor),
			"safe_color": str((*gofakeit.Faker).SafeColor),
		},
		"Movie": {
			"title": str((*gofakeit.Faker).MovieName),
			"genre": str((*gofakeit.Faker).MovieGenre),
		},
		"Book": {
			"title":  str((*gofakeit.Faker).BookTitle),
			"author": str((*gofakeit.Faker).BookAuthor),
			"genre":  str((*gofakeit.Faker).BookGenre),
		},
		"Music": {
			"song": str(func(f *gofakeit.Faker) string {
				return title(f.Adjective() + " " + f.Noun())
			}),
			"band": str(func(f *gofakeit.Faker) string {
				return "The " + title(f.Adjective()+" "+f.Noun())
			}),
			"album": str(func(f *gofakeit.Faker) string {
				return title(f.HipsterWord() + " " + f.Noun())
			}),
		},
		"Job": {
			"title":     str((*gofakeit.Faker).JobTitle),
			"field":     str((*gofakeit.Faker).JobDescriptor),
			"seniority": str((*gofakeit.Faker).JobLevel),
		},
	}

	for cat, methods := range table {
		for name, fn := range methods {
			// Names are static and non-empty.
			_ = n.Register(cat, name, fn)
		}
	}
}

// title capitalizes each word. A Caser is stateful, so one is made per call.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func password(f *gofakeit.Faker, a Args) (apis.Value, error) {
	lo, err := a.IntIn("min_length", 0, 8, 0, MaxPasswordLength)
	if err != nil {
		return nil, err
	}
	hi, err := a.IntIn("max_length", 1, 16, 0, MaxPasswordLength)
	if err != nil {
		return nil, err
	}
	mixed, err := a.Bool("mix_case", 2, true)
	if err != nil {
		return nil, err
	}
	special, err := a.Bool("special_characters", 3, false)
	if err != nil {
		return nil, err
	}
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return f.Password(true, mixed, true, special, false, f.Number(lo, hi)), nil
}

func price(f *gofakeit.Faker, a Args) (apis.Value, error) {
	lo, err := a.Float("min", 0, 0)
	if err != nil {
		return nil, err
	}
	hi, err := a.Float("max", 1, 100)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return math.Round(f.Price(lo, hi)*100) / 100, nil
}

func words(f *gofakeit.Faker, a Args) (apis.Value, error) {
	n, err := a.IntIn("number", 0, 3, 0, MaxWords)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for range n {
		out = append(out, f.Word())
	}
	return strings.Join(out, " "), nil
}

func sentence(f *gofakeit.Faker, a Args) (apis.Value, error) {
	n, err := a.IntIn("word_count", 0, 4, 0, MaxWords)
	if err != nil {
		return nil, err
	}
	return f.Sentence(max(n, 1)), nil
}

func paragraph(f *gofakeit.Faker, a Args) (apis.Value, error) {
	n, err := a.IntIn("sentence_count", 0, 3, 0, MaxSentences)
	if err != nil {
		return nil, err
	}
	return f.Paragraph(1, max(n, 1), 10, " "), nil
}

// number returns an integer with exactly digits decimal digits.
func number(f *gofakeit.Faker, a Args) (apis.Value, error) {
	d, err := a.Int("digits", 0, 10)
	if err != nil {
		return nil, err
	}
	d = min(max(d, 1), 18)
	if d == 1 {
		return f.Number(0, 9), nil
	}
	lo := int(math.Pow10(d - 1))
	return f.Number(lo, lo*10-1), nil
}

func between(f *gofakeit.Faker, a Args) (apis.Value, error) {
	from, err := a.IntIn("from", 0, 1, -MaxMagnitude, MaxMagnitude)
	if err != nil {
		return nil, err
	}
	to, err := a.IntIn("to", 1, 5000, -MaxMagnitude, MaxMagnitude)
	if err != nil {
		return nil, err
	}
	if to < from {
		from, to = to, from
	}
	return f.Number(from, to), nil
}

func decimal(f *gofakeit.Faker, a Args) (apis.Value, error) {
	l, err := a.Int("l_digits", 0, 5)
	if err != nil {
		return nil, err
	}
	r, err := a.Int("r_digits", 1, 2)
	if err != nil {
		return nil, err
	}
	l, r = min(max(l, 1), 15), min(max(r, 1), 6)
	scale := math.Pow10(r)
	v := f.Float64Range(math.Pow10(l-1), math.Pow10(l)-1/scale)
	return math.Round(v*scale) / scale, nil
}
