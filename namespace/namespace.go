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

// Package namespace is the closed registry of named generators that override
// expressions are evaluated against.
//
// Expressions have the form
//
//	[Faker::]Category.method[(arg, key: value, ...)]
//
// for example "Internet.password(min_length: 12)" or "Faker::Name.first_name".
// Category and method names are compared after normalization, so
// "PhoneNumber.phone_number" and "phonenumber.PhoneNumber" are the same
// entry. Nothing outside the registry is ever executed.
package namespace

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v6"

	"dirpx.dev/ffx/apis"
)

var (
	// ErrSyntax is returned for expressions that do not parse.
	ErrSyntax = errors.New("ffx(namespace): invalid expression")
	// ErrUnknownCategory is returned when the category is not registered.
	ErrUnknownCategory = errors.New("ffx(namespace): unknown category")
	// ErrUnknownMethod is returned when the category has no such method.
	ErrUnknownMethod = errors.New("ffx(namespace): unknown method")
	// ErrBadArgument is returned when an argument has the wrong type.
	ErrBadArgument = errors.New("ffx(namespace): bad argument")
	// ErrNilFunc is returned when registering a nil Func.
	ErrNilFunc = errors.New("ffx(namespace): nil generator func")
)

// Func is a registered generator. It receives the shared faker and the
// parsed call arguments.
type Func func(f *gofakeit.Faker, args Args) (apis.Value, error)

// Namespace maps Category.method names to generator funcs.
// It is safe for concurrent use.
type Namespace struct {
	faker *gofakeit.Faker

	mu   sync.RWMutex
	cats map[string]*category
}

type category struct {
	name    string
	methods map[string]entry
}

type entry struct {
	name string
	fn   Func
}

// Ensure Namespace implements apis.Namespace.
var _ apis.Namespace = (*Namespace)(nil)

// New returns a Namespace preloaded with the built-in categories. A nil
// faker is replaced with a crypto-seeded one.
func New(f *gofakeit.Faker) *Namespace {
	n := Empty(f)
	registerBuiltins(n)
	return n
}

// Empty returns a Namespace with no categories.
func Empty(f *gofakeit.Faker) *Namespace {
	if f == nil {
		f = gofakeit.New(0)
	}
	return &Namespace{faker: f, cats: make(map[string]*category)}
}

// Faker returns the random source used by the registered funcs.
func (n *Namespace) Faker() *gofakeit.Faker { return n.faker }

// Register adds or replaces Category.method.
func (n *Namespace) Register(cat, method string, fn Func) error {
	if fn == nil {
		return ErrNilFunc
	}
	ck, mk := normalize(cat), normalize(method)
	if ck == "" || mk == "" {
		return fmt.Errorf("%w: empty name in %q.%q", ErrSyntax, cat, method)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.cats[ck]
	if !ok {
		c = &category{name: cat, methods: make(map[string]entry)}
		n.cats[ck] = c
	}
	c.methods[mk] = entry{name: method, fn: fn}
	return nil
}

// Eval parses expr and invokes it once.
func (n *Namespace) Eval(expr string) (apis.Value, error) {
	c, err := parse(expr)
	if err != nil {
		return nil, err
	}
	fn, err := n.lookup(c)
	if err != nil {
		return nil, err
	}
	return fn(n.faker, c.args)
}

// Compile parses expr, checks that it evaluates, and returns a Generator
// bound to the parsed call. The Generator yields nil if a later call fails.
func (n *Namespace) Compile(expr string) (apis.Generator, error) {
	c, err := parse(expr)
	if err != nil {
		return nil, err
	}
	fn, err := n.lookup(c)
	if err != nil {
		return nil, err
	}
	if _, err := fn(n.faker, c.args); err != nil {
		return nil, err
	}
	f, args := n.faker, c.args
	return func() apis.Value {
		v, err := fn(f, args)
		if err != nil {
			return nil
		}
		return v
	}, nil
}

// MustCompile is like Compile but panics on error.
func (n *Namespace) MustCompile(expr string) apis.Generator {
	g, err := n.Compile(expr)
	if err != nil {
		panic(err)
	}
	return g
}

// Names lists every registered "Category.method", sorted.
func (n *Namespace) Names() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var out []string
	for _, c := range n.cats {
		for _, m := range c.methods {
			out = append(out, c.name+"."+m.name)
		}
	}
	sort.Strings(out)
	return out
}

func (n *Namespace) lookup(c call) (Func, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	cat, ok := n.cats[normalize(c.category)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, c.category)
	}
	m, ok := cat.methods[normalize(c.method)]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, c.category, c.method)
	}
	return m.fn, nil
}

// normalize folds case and drops underscores: "first_name" == "FirstName".
func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}
