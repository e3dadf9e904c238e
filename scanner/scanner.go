// Package scanner provides literal-aware scanning for bindgen output. It
// tracks double-quoted string literals with escape sequences, line comments
// and (nested) block comments, so readers of the generated Rust module never
// mistake the contents of a doc attribute or a comment for code.
package scanner

import "strings"

// closingKind tracks which construct was just closed.
type closingKind byte

const (
	noClosing      closingKind = iota
	closingDouble              // just closed a "..." string
	closingComment             // just closed a /* ... */ comment
)

// CodeScanner iterates byte-by-byte over source text, tracking string
// literal and comment boundaries. Callers check InString() and InComment()
// instead of maintaining their own flags.
//
// InString() returns true for the entire string span including both
// delimiters. InComment() returns true for the comment span including the
// opening and closing markers; the newline ending a line comment is code.
type CodeScanner struct {
	src       string
	pos       int
	line      int
	inDbl     bool
	escaped   bool
	inLine    bool
	depth     int  // block comment nesting
	openNext  bool // next '*' belongs to a "/*" opener
	closeNext bool // next '/' belongs to a "*/" closer
	closing   closingKind
}

// New creates a CodeScanner for the given source text.
// Call Next() to advance to the first byte.
func New(src string) *CodeScanner {
	return &CodeScanner{src: src, pos: -1, line: 1}
}

// Next advances to the next byte, updating string, comment and escape
// state. Returns the byte and true, or (0, false) at end of input.
func (s *CodeScanner) Next() (byte, bool) {
	s.closing = noClosing
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	if ch == '\n' {
		s.line++
	}

	switch {
	case s.inLine:
		if ch == '\n' {
			s.inLine = false
		}
	case s.depth > 0:
		s.commentByte(ch)
	case s.inDbl:
		if s.escaped {
			s.escaped = false
		} else if ch == '\\' {
			s.escaped = true
		} else if ch == '"' {
			s.inDbl = false
			s.closing = closingDouble
		}
	default:
		next, _ := s.Peek()
		switch {
		case ch == '"':
			s.inDbl = true
		case ch == '/' && next == '/':
			s.inLine = true
		case ch == '/' && next == '*':
			s.depth = 1
			s.openNext = true
		}
	}

	return ch, true
}

func (s *CodeScanner) commentByte(ch byte) {
	next, _ := s.Peek()
	switch {
	case s.openNext:
		s.openNext = false
	case s.closeNext:
		s.closeNext = false
		s.depth--
		if s.depth == 0 {
			s.closing = closingComment
		}
	case ch == '*' && next == '/':
		s.closeNext = true
	case ch == '/' && next == '*':
		s.depth++
		s.openNext = true
	}
}

// InString reports whether the current position is inside a double-quoted
// string literal, including both delimiters.
func (s *CodeScanner) InString() bool {
	return s.inDbl || s.closing == closingDouble
}

// AtStringEnd reports whether the current byte closed a string literal.
func (s *CodeScanner) AtStringEnd() bool { return s.closing == closingDouble }

// InComment reports whether the current position is inside a line or block
// comment.
func (s *CodeScanner) InComment() bool {
	return s.inLine || s.depth > 0 || s.closing == closingComment
}

// InBlockComment reports whether a block comment is open. At end of input
// this means the comment was never terminated.
func (s *CodeScanner) InBlockComment() bool { return s.depth > 0 }

// InCode reports whether the current position is outside all string
// literals and comments.
func (s *CodeScanner) InCode() bool { return !s.InString() && !s.InComment() }

// Pos returns the current byte offset (the position of the last byte
// returned by Next). Returns -1 before the first call to Next.
func (s *CodeScanner) Pos() int { return s.pos }

// Line returns the current 1-based line number.
func (s *CodeScanner) Line() int { return s.line }

// Peek returns the next byte without advancing, or (0, false) at end.
func (s *CodeScanner) Peek() (byte, bool) {
	if s.pos+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+1], true
}

// LookingAt checks if src[pos:] starts with the given prefix.
// Useful for multi-character tokens such as "::", "->" and "...".
func (s *CodeScanner) LookingAt(prefix string) bool {
	if s.pos < 0 || s.pos >= len(s.src) {
		return false
	}
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

// Skip advances past n bytes without returning them. String and comment
// state is updated for each skipped byte. Returns the number of bytes
// actually skipped (may be less than n at end of input).
func (s *CodeScanner) Skip(n int) int {
	skipped := 0
	for i := 0; i < n; i++ {
		if _, ok := s.Next(); !ok {
			break
		}
		skipped++
	}
	return skipped
}

// IsOpenBracket reports whether ch opens a bracket, paren, brace or
// generic argument list.
func IsOpenBracket(ch byte) bool {
	return ch == '(' || ch == '[' || ch == '{' || ch == '<'
}

// IsCloseBracket reports whether ch closes a bracket, paren, brace or
// generic argument list.
func IsCloseBracket(ch byte) bool {
	return ch == ')' || ch == ']' || ch == '}' || ch == '>'
}

// IsIdentByte reports whether ch can appear in a Rust identifier or
// numeric literal.
func IsIdentByte(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}
