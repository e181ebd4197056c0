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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/ffx/apis"
)

func TestParse(t *testing.T) {
	cases := []struct {
		expr  string
		cat   string
		meth  string
		pos   []apis.Value
		named map[string]apis.Value
	}{
		{expr: "Name.first_name", cat: "Name", meth: "first_name"},
		{expr: "Faker::Name.first_name", cat: "Name", meth: "first_name"},
		{expr: "  Lorem.word  ", cat: "Lorem", meth: "word"},
		{expr: "Lorem.word()", cat: "Lorem", meth: "word"},
		{
			expr: "Faker::Internet.password(min_length: 8)", cat: "Internet", meth: "password",
			named: map[string]apis.Value{"minlength": 8},
		},
		{
			expr: `Number.between(from: -5, to: 10)`, cat: "Number", meth: "between",
			named: map[string]apis.Value{"from": -5, "to": 10},
		},
		{
			expr: `Commerce.price(1.5, 9.99)`, cat: "Commerce", meth: "price",
			pos: []apis.Value{1.5, 9.99},
		},
		{
			expr: `X.y("a,b", true, k: false)`, cat: "X", meth: "y",
			pos:   []apis.Value{"a,b", true},
			named: map[string]apis.Value{"k": false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			c, err := parse(tc.expr)
			require.NoError(t, err)
			require.Equal(t, tc.cat, c.category)
			require.Equal(t, tc.meth, c.method)
			require.Equal(t, tc.pos, c.args.Pos)
			require.Equal(t, tc.named, c.args.Named)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	bad := []string{
		"",
		"Name",
		"Name.",
		".first_name",
		"Name.first_name extra",
		"Kernel::Name.first_name",
		"Name.first_name(",
		"Name.first_name(1 2)",
		"Name.first_name(key 1)",
		"Name.first_name(-)",
		`Name.first_name("unterminated)`,
		"system('rm -rf /')",
		"`ls`",
	}
	for _, expr := range bad {
		t.Run(expr, func(t *testing.T) {
			_, err := parse(expr)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrSyntax), "got %v", err)
		})
	}
}

func TestParse_ScannerErrorMessage(t *testing.T) {
	_, err := parse(`Name.first_name("100%)`)
	require.ErrorIs(t, err, ErrSyntax)
	require.Contains(t, err.Error(), "literal not terminated")
	require.NotContains(t, err.Error(), "%!")
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "firstname", normalize("first_name"))
	require.Equal(t, "firstname", normalize("FirstName"))
	require.Equal(t, "phonenumber", normalize(" Phone_Number "))
}
