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
	"fmt"

	"dirpx.dev/ffx/apis"
)

// Args are the arguments of a parsed call. Named keys are normalized the
// same way as method names.
type Args struct {
	Pos   []apis.Value
	Named map[string]apis.Value
}

func (a Args) lookup(name string, pos int) (apis.Value, bool) {
	if v, ok := a.Named[normalize(name)]; ok {
		return v, true
	}
	if pos >= 0 && pos < len(a.Pos) {
		return a.Pos[pos], true
	}
	return nil, false
}

// Int returns the argument called name (or at position pos), or def when
// absent. pos < 0 disables positional lookup.
func (a Args) Int(name string, pos, def int) (int, error) {
	v, ok := a.lookup(name, pos)
	if !ok {
		return def, nil
	}
	if n, ok := v.(int); ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrBadArgument, name, v)
}

// IntIn is Int restricted to [lo, hi]; values outside it are rejected with
// ErrBadArgument.
func (a Args) IntIn(name string, pos, def, lo, hi int) (int, error) {
	n, err := a.Int(name, pos, def)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s must be within [%d, %d], got %d", ErrBadArgument, name, lo, hi, n)
	}
	return n, nil
}

// Float is like Int for floating point arguments; integers are accepted.
func (a Args) Float(name string, pos int, def float64) (float64, error) {
	v, ok := a.lookup(name, pos)
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrBadArgument, name, v)
}

// Bool is like Int for boolean arguments.
func (a Args) Bool(name string, pos int, def bool) (bool, error) {
	v, ok := a.lookup(name, pos)
	if !ok {
		return def, nil
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrBadArgument, name, v)
}
