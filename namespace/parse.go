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
	"strconv"
	"strings"
	"text/scanner"

	"dirpx.dev/ffx/apis"
)

// call is a parsed expression.
type call struct {
	category string
	method   string
	args     Args
}

type parser struct {
	s    scanner.Scanner
	tok  rune
	text string
	err  error
	expr string
}

func parse(expr string) (call, error) {
	p := &parser{expr: expr}
	p.s.Init(strings.NewReader(expr))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings | scanner.ScanRawStrings
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = p.fail("%s", msg)
		}
	}
	p.next()

	c, err := p.call()
	if err != nil {
		return call{}, err
	}
	if p.err != nil {
		return call{}, p.err
	}
	return c, nil
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
}

func (p *parser) fail(format string, a ...any) error {
	return fmt.Errorf("%w: %q: %s", ErrSyntax, p.expr, fmt.Sprintf(format, a...))
}

func (p *parser) ident() (string, error) {
	if p.tok != scanner.Ident {
		return "", p.fail("expected identifier, got %q", p.text)
	}
	s := p.text
	p.next()
	return s, nil
}

func (p *parser) expect(r rune) error {
	if p.tok != r {
		return p.fail("expected %q, got %q", string(r), p.text)
	}
	p.next()
	return nil
}

func (p *parser) call() (call, error) {
	var c call

	first, err := p.ident()
	if err != nil {
		return c, err
	}
	c.category = first

	// Optional "Faker::" module prefix.
	if p.tok == ':' {
		p.next()
		if err := p.expect(':'); err != nil {
			return c, err
		}
		if !strings.EqualFold(first, "Faker") {
			return c, p.fail("unknown module %q", first)
		}
		if c.category, err = p.ident(); err != nil {
			return c, err
		}
	}

	if err := p.expect('.'); err != nil {
		return c, err
	}
	if c.method, err = p.ident(); err != nil {
		return c, err
	}

	if p.tok == '(' {
		p.next()
		if c.args, err = p.arguments(); err != nil {
			return c, err
		}
	}

	if p.tok != scanner.EOF {
		return c, p.fail("unexpected %q", p.text)
	}
	return c, nil
}

func (p *parser) arguments() (Args, error) {
	var a Args
	for p.tok != ')' {
		if p.tok == scanner.Ident && p.text != "true" && p.text != "false" {
			name := p.text
			p.next()
			if err := p.expect(':'); err != nil {
				return a, err
			}
			v, err := p.literal()
			if err != nil {
				return a, err
			}
			if a.Named == nil {
				a.Named = make(map[string]apis.Value)
			}
			a.Named[normalize(name)] = v
		} else {
			v, err := p.literal()
			if err != nil {
				return a, err
			}
			a.Pos = append(a.Pos, v)
		}

		if p.tok == ',' {
			p.next()
			continue
		}
		if p.tok != ')' {
			return a, p.fail("expected ',' or ')', got %q", p.text)
		}
	}
	p.next()
	return a, nil
}

func (p *parser) literal() (apis.Value, error) {
	neg := false
	if p.tok == '-' {
		neg = true
		p.next()
	}

	text := p.text
	switch p.tok {
	case scanner.Int:
		p.next()
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, p.fail("integer %s: %v", text, err)
		}
		if neg {
			n = -n
		}
		return n, nil
	case scanner.Float:
		p.next()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.fail("float %s: %v", text, err)
		}
		if neg {
			f = -f
		}
		return f, nil
	}

	if neg {
		return nil, p.fail("expected number after '-', got %q", text)
	}

	switch p.tok {
	case scanner.String, scanner.RawString:
		p.next()
		s, err := strconv.Unquote(text)
		if err != nil {
			return nil, p.fail("string %s: %v", text, err)
		}
		return s, nil
	case scanner.Ident:
		p.next()
		switch text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, p.fail("expected literal, got %q", text)
}
