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

package reflect_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/ffx/apis"
	uref "dirpx.dev/ffx/utils/reflect"
)

// Local test types.
type Author struct {
	ID   int64
	Name string
}

type Tag struct {
	slug string
}

func (t Tag) Slug() string { return t.slug }

type Category struct {
	Code string
}

func (c *Category) ValueMethod() string { return "cat-" + c.Code }

type slugger interface {
	Slug() string
}

func TestPluck_Structs(t *testing.T) {
	cases := []struct {
		name       string
		collection any
		member     string
		want       []apis.Value
	}{
		{"values", []Author{{ID: 1}, {ID: 2}}, "id", []apis.Value{int64(1), int64(2)}},
		{"pointers", []*Author{{ID: 3}, nil}, "ID", []apis.Value{int64(3), nil}},
		{"array", [2]Author{{Name: "a"}, {Name: "b"}}, "name", []apis.Value{"a", "b"}},
		{"pointer to slice", &[]Author{{ID: 5}}, "id", []apis.Value{int64(5)}},
		{"value method", []Tag{{slug: "go"}}, "slug", []apis.Value{"go"}},
		{"pointer method", []*Category{{Code: "x"}}, "value_method", []apis.Value{"cat-x"}},
		{"nil pointer receiver", []*Category{nil}, "value_method", []apis.Value{nil}},
		{"nil interface items", []slugger{Tag{slug: "a"}, nil}, "slug", []apis.Value{"a", nil}},
		{"maps", []map[string]any{{"id": 7}, {"id": 8}}, "id", []apis.Value{7, 8}},
		{"any items", []any{Author{ID: 9}, &Author{ID: 10}}, "id", []apis.Value{int64(9), int64(10)}},
		{"empty", []Author{}, "id", []apis.Value{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Pluck(tc.collection, tc.member)
			if err != nil {
				t.Fatalf("Pluck error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Pluck len = %d; want %d (%v)", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Pluck[%d] = %#v; want %#v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestPluck_Errors(t *testing.T) {
	var nilSlice *[]Author
	cases := []struct {
		name       string
		collection any
		member     string
		want       error
	}{
		{"nil", nil, "id", uref.ErrReflectNilCollection},
		{"nil pointer", nilSlice, "id", uref.ErrReflectNilCollection},
		{"scalar", 42, "id", uref.ErrReflectNotCollection},
		{"missing field", []Author{{}}, "email", uref.ErrReflectNoMember},
		{"unexported field", []Tag{{slug: "x"}}, "slug_field", uref.ErrReflectNoMember},
		{"missing key", []map[string]int{{"a": 1}}, "id", uref.ErrReflectNoMember},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uref.Pluck(tc.collection, tc.member)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Pluck err = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestPluck_Concurrent(t *testing.T) {
	authors := []*Author{{ID: 1}, {ID: 2}, {ID: 3}}
	workers := runtime.GOMAXPROCS(0) * 4

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				ids, err := uref.Pluck(authors, "id")
				if err != nil {
					errCh <- err
					return
				}
				if len(ids) != 3 {
					errCh <- errors.New("short pluck")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatal(e)
	}
}
