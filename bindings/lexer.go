package bindings

import (
	"strconv"
	"strings"

	"github.com/rubiojr/lvgen/scanner"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

// multiPunct lists the punctuation that is kept together, longest first.
var multiPunct = []string{"...", "::", "->"}

// lex splits bindgen output into identifiers, string literals and
// punctuation. Comments and whitespace are dropped.
func lex(src string) ([]token, error) {
	s := scanner.New(src)
	var toks []token

	var ident strings.Builder
	identLine := 0
	flush := func() {
		if ident.Len() > 0 {
			toks = append(toks, token{kind: tokIdent, text: ident.String(), line: identLine})
			ident.Reset()
		}
	}

	var str strings.Builder
	inStr := false
	strLine := 0

	for ch, ok := s.Next(); ok; ch, ok = s.Next() {
		switch {
		case s.InString():
			if !inStr {
				flush()
				inStr = true
				strLine = s.Line()
				str.Reset()
				continue
			}
			if s.AtStringEnd() {
				toks = append(toks, token{kind: tokString, text: unescape(str.String()), line: strLine})
				inStr = false
				continue
			}
			str.WriteByte(ch)
		case s.InComment():
			flush()
		case scanner.IsIdentByte(ch):
			if ident.Len() == 0 {
				identLine = s.Line()
			}
			ident.WriteByte(ch)
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		default:
			flush()
			p := string(ch)
			for _, m := range multiPunct {
				if s.LookingAt(m) {
					p = m
					s.Skip(len(m) - 1)
					break
				}
			}
			toks = append(toks, token{kind: tokPunct, text: p, line: s.Line()})
		}
	}

	if inStr {
		return nil, &SyntaxError{Line: strLine, Msg: "unterminated string literal"}
	}
	if s.InBlockComment() {
		return nil, &SyntaxError{Line: s.Line(), Msg: "unterminated block comment"}
	}
	flush()
	toks = append(toks, token{kind: tokEOF, line: s.Line()})
	return toks, nil
}

// unescape resolves the escapes bindgen writes into doc strings.
func unescape(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' || i+1 >= len(raw) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(raw[i])
		case '\n':
			// line continuation: drop the newline and leading whitespace
			for i+1 < len(raw) && strings.IndexByte(" \t\r\n", raw[i+1]) >= 0 {
				i++
			}
		case 'u':
			end := strings.IndexByte(raw[i:], '}')
			if i+1 < len(raw) && raw[i+1] == '{' && end > 0 {
				if n, err := strconv.ParseUint(raw[i+2:i+end], 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += end
					continue
				}
			}
			b.WriteString(`\u`)
		default:
			b.WriteByte('\\')
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}
