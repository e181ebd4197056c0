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

package reflect

import (
	"errors"
	"reflect"
	"strings"

	"dirpx.dev/ffx/apis"
)

// DefaultMaxUnwrap bounds pointer and interface unwrapping.
const DefaultMaxUnwrap = 8

var (
	// ErrReflectNilCollection is returned when a nil collection is provided.
	ErrReflectNilCollection = errors.New("reflect: nil collection provided")
	// ErrReflectNotCollection is returned when the value is not a slice or array.
	ErrReflectNotCollection = errors.New("reflect: value is not a slice or array")
	// ErrReflectNoMember indicates that an item has no field, map key or
	// zero-argument method with the requested name.
	ErrReflectNoMember = errors.New("reflect: item has no such member")
)

// Pluck returns member name of every item of collection, in order. It is the
// Go counterpart of mapping a collection through its value method.
//
// Unwrapping policy:
//   - collection: pointers and interfaces are unwrapped to a slice or array.
//   - items: pointers and interfaces are unwrapped (at most DefaultMaxUnwrap
//     levels); a nil item yields a nil value.
//   - member lookup, in order: an exported zero-argument method with one
//     result, a struct field, a map entry keyed by name. Names compare after
//     lowercasing and dropping underscores, so "id" finds "ID" and
//     "value_method" finds "ValueMethod".
func Pluck(collection any, name string) ([]apis.Value, error) {
	if collection == nil {
		return nil, ErrReflectNilCollection
	}
	v, ok := unwrap(reflect.ValueOf(collection))
	if !ok {
		return nil, ErrReflectNilCollection
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, ErrReflectNotCollection
	}

	key := fold(name)
	out := make([]apis.Value, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		m, err := member(v.Index(i), name, key)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func member(item reflect.Value, name, key string) (apis.Value, error) {
	// Methods may be declared on the pointer, so look before unwrapping.
	if m, ok := method(item, key); ok {
		return m, nil
	}
	item, ok := unwrap(item)
	if !ok {
		return nil, nil
	}
	if m, ok := method(item, key); ok {
		return m, nil
	}

	switch item.Kind() {
	case reflect.Struct:
		t := item.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.IsExported() && fold(f.Name) == key {
				return item.Field(i).Interface(), nil
			}
		}
	case reflect.Map:
		if item.Type().Key().Kind() == reflect.String {
			k := reflect.ValueOf(name).Convert(item.Type().Key())
			if e := item.MapIndex(k); e.IsValid() {
				return e.Interface(), nil
			}
		}
	}
	return nil, ErrReflectNoMember
}

func method(item reflect.Value, key string) (apis.Value, bool) {
	if !item.IsValid() {
		return nil, false
	}
	// Calling through a nil interface panics; a nil pointer receiver is skipped too.
	if (item.Kind() == reflect.Interface || item.Kind() == reflect.Ptr) && item.IsNil() {
		return nil, false
	}
	t := item.Type()
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if fold(m.Name) != key {
			continue
		}
		fn := item.Method(i)
		if fn.Type().NumIn() != 0 || fn.Type().NumOut() != 1 {
			return nil, false
		}
		return fn.Call(nil)[0].Interface(), true
	}
	return nil, false
}

// unwrap dereferences pointers and interfaces. It reports false for nil.
func unwrap(v reflect.Value) (reflect.Value, bool) {
	for i := 0; i < DefaultMaxUnwrap; i++ {
		switch v.Kind() {
		case reflect.Ptr, reflect.Interface:
			if v.IsNil() {
				return v, false
			}
			v = v.Elem()
		case reflect.Invalid:
			return v, false
		default:
			return v, true
		}
	}
	return v, v.Kind() != reflect.Ptr && v.Kind() != reflect.Interface
}

func fold(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}
