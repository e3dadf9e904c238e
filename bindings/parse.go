package bindings

import (
	"fmt"
	"os"
	"strings"

	"github.com/rubiojr/lvgen/scanner"
)

// ParseFile reads a bindgen module from disk and parses it.
func ParseFile(path string) ([]RawSignature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sigs, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sigs, nil
}

// Parse extracts every function declared in an `extern "C" { ... }` block
// of a bindgen module, in source order. Items outside foreign blocks
// (structs, consts, type aliases, impls) are skipped, as are foreign
// statics and type declarations.
func Parse(src string) ([]RawSignature, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.module()
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.peekAt(0) }

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (t token) is(text string) bool {
	return (t.kind == tokPunct || t.kind == tokIdent) && t.text == text
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Line: t.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(text string) (token, error) {
	t := p.next()
	if !t.is(text) {
		return t, p.errorf(t, "expected %q, found %s", text, describe(t))
	}
	return t, nil
}

func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}

// module walks the top level, tracking brace balance and descending into
// foreign blocks.
func (p *parser) module() ([]RawSignature, error) {
	var sigs []RawSignature
	var open []token
	for {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			if len(open) > 0 {
				return nil, p.errorf(open[len(open)-1], "unclosed brace")
			}
			return sigs, nil
		case t.is("extern") && p.peek().kind == tokString && p.peekAt(1).is("{"):
			abi := p.next()
			p.next()
			if abi.text != "C" {
				if err := p.skipBlock(t); err != nil {
					return nil, err
				}
				continue
			}
			block, err := p.foreignBlock(t)
			if err != nil {
				return nil, err
			}
			sigs = append(sigs, block...)
		case t.is("{"):
			open = append(open, t)
		case t.is("}"):
			if len(open) == 0 {
				return nil, p.errorf(t, "unexpected }")
			}
			open = open[:len(open)-1]
		}
	}
}

// skipBlock consumes tokens up to the brace closing an already opened block.
func (p *parser) skipBlock(start token) error {
	depth := 1
	for depth > 0 {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return p.errorf(start, "unclosed brace")
		case t.is("{"):
			depth++
		case t.is("}"):
			depth--
		}
	}
	return nil
}

func (p *parser) foreignBlock(start token) ([]RawSignature, error) {
	var sigs []RawSignature
	var doc []string
	for {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return nil, p.errorf(start, "unterminated extern block")
		case t.is("}"):
			return sigs, nil
		case t.is("#"):
			line, isDoc, err := p.attribute()
			if err != nil {
				return nil, err
			}
			if isDoc {
				doc = append(doc, line)
			}
		case t.is("pub"):
			if p.peek().is("(") {
				p.next()
				if _, err := p.collect(")"); err != nil {
					return nil, err
				}
				p.next()
			}
		case t.is("safe") || t.is("unsafe"):
		case t.is("fn"):
			sig, err := p.function(t, doc)
			if err != nil {
				return nil, err
			}
			sigs = append(sigs, sig)
			doc = nil
		case t.is("static") || t.is("type"):
			if _, err := p.collect(";"); err != nil {
				return nil, err
			}
			p.next()
			doc = nil
		default:
			return nil, p.errorf(t, "unexpected %s in extern block", describe(t))
		}
	}
}

// attribute parses the remainder of `#[...]`. Doc attributes return their
// text with the single leading space rustdoc inserts removed.
func (p *parser) attribute() (string, bool, error) {
	if _, err := p.expect("["); err != nil {
		return "", false, err
	}
	if p.peek().is("doc") && p.peekAt(1).is("=") && p.peekAt(2).kind == tokString && p.peekAt(3).is("]") {
		p.pos += 2
		text := p.next().text
		p.next()
		return strings.TrimRight(strings.TrimPrefix(text, " "), " \t\r\n"), true, nil
	}
	if _, err := p.collect("]"); err != nil {
		return "", false, err
	}
	p.next()
	return "", false, nil
}

func (p *parser) function(fn token, doc []string) (RawSignature, error) {
	name := p.next()
	if name.kind != tokIdent {
		return RawSignature{}, p.errorf(name, "expected function name, found %s", describe(name))
	}
	sig := RawSignature{Name: name.text, Line: fn.line, Doc: doc}
	if _, err := p.expect("("); err != nil {
		return RawSignature{}, err
	}

	for !p.peek().is(")") {
		if p.peek().is("...") {
			p.next()
			sig.Variadic = true
			if p.peek().is(",") {
				p.next()
			}
			break
		}
		pname := p.next()
		if pname.kind != tokIdent {
			return RawSignature{}, p.errorf(pname, "expected parameter name in %s, found %s", sig.Name, describe(pname))
		}
		if _, err := p.expect(":"); err != nil {
			return RawSignature{}, err
		}
		typ, err := p.collect(",", ")")
		if err != nil {
			return RawSignature{}, err
		}
		if typ == "" {
			return RawSignature{}, p.errorf(pname, "missing type for parameter %s of %s", pname.text, sig.Name)
		}
		sig.Params = append(sig.Params, Param{Name: pname.text, Type: typ})
		if p.peek().is(",") {
			p.next()
		}
	}
	if _, err := p.expect(")"); err != nil {
		return RawSignature{}, err
	}

	if p.peek().is("->") {
		arrow := p.next()
		ret, err := p.collect(";")
		if err != nil {
			return RawSignature{}, err
		}
		if ret == "" {
			return RawSignature{}, p.errorf(arrow, "missing return type for %s", sig.Name)
		}
		if ret != "( )" {
			sig.Return = ret
		}
	}
	if _, err := p.expect(";"); err != nil {
		return RawSignature{}, err
	}
	return sig, nil
}

// collect gathers the tokens of a type up to (not including) the first stop
// token found outside brackets, joined by single spaces.
func (p *parser) collect(stops ...string) (string, error) {
	start := p.peek()
	var parts []string
	depth := 0
	for {
		t := p.peek()
		if t.kind == tokEOF {
			return "", p.errorf(start, "expected %q before end of input", stops[0])
		}
		if depth == 0 {
			for _, s := range stops {
				if t.is(s) {
					return strings.Join(parts, " "), nil
				}
			}
			if t.is("pub") {
				return "", p.errorf(t, "expected %q, found %s", stops[0], describe(t))
			}
		}
		if t.kind == tokPunct && len(t.text) == 1 {
			switch {
			case scanner.IsOpenBracket(t.text[0]):
				depth++
			case scanner.IsCloseBracket(t.text[0]):
				depth--
				if depth < 0 {
					return "", p.errorf(t, "unbalanced %q", t.text)
				}
			}
		}
		if t.kind == tokString {
			parts = append(parts, fmt.Sprintf("%q", t.text))
		} else {
			parts = append(parts, t.text)
		}
		p.next()
	}
}
