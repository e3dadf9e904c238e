package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// codeBytes returns only the bytes the scanner reports as code.
func codeBytes(src string) string {
	s := New(src)
	var out []byte
	for ch, ok := s.Next(); ok; ch, ok = s.Next() {
		if s.InCode() {
			out = append(out, ch)
		}
	}
	return string(out)
}

func TestCodeScanner_PlainCode(t *testing.T) {
	assert.Equal(t, "pub fn lv_obj_clean(obj: *mut lv_obj_t);", codeBytes("pub fn lv_obj_clean(obj: *mut lv_obj_t);"))
}

func TestCodeScanner_DoubleString(t *testing.T) {
	assert.Equal(t, `#[doc = ]`, codeBytes(`#[doc = "Set { the } text"]`))
}

func TestCodeScanner_EscapedQuote(t *testing.T) {
	assert.Equal(t, `a  b`, codeBytes(`a "say \"hi\" {" b`))
}

func TestCodeScanner_EscapedBackslash(t *testing.T) {
	assert.Equal(t, `x  y`, codeBytes(`x "c:\\" y`))
}

func TestCodeScanner_LineComment(t *testing.T) {
	assert.Equal(t, "a\nb", codeBytes("a// fn lv_fake() {\nb"))
}

func TestCodeScanner_BlockComment(t *testing.T) {
	assert.Equal(t, "a b", codeBytes("a /* { */b"))
}

func TestCodeScanner_NestedBlockComment(t *testing.T) {
	assert.Equal(t, "ab", codeBytes("a/* outer /* inner */ still */b"))
}

func TestCodeScanner_SlashStarSlash(t *testing.T) {
	// "/*/" opens a comment; the slash after the star does not close it.
	assert.Equal(t, "ab", codeBytes("a/*/ x */b"))
}

func TestCodeScanner_CommentMarkerInString(t *testing.T) {
	assert.Equal(t, "a  b", codeBytes(`a "http://x/*" b`))
}

func TestCodeScanner_QuoteInComment(t *testing.T) {
	assert.Equal(t, "a\nb", codeBytes("a// don't \"\nb"))
}

func TestCodeScanner_AtStringEnd(t *testing.T) {
	s := New(`"ab"c`)
	var ends []int
	for _, ok := s.Next(); ok; _, ok = s.Next() {
		if s.AtStringEnd() {
			ends = append(ends, s.Pos())
		}
	}
	assert.Equal(t, []int{3}, ends)
}

func TestCodeScanner_UnterminatedBlockComment(t *testing.T) {
	s := New("a /* never closed")
	for _, ok := s.Next(); ok; _, ok = s.Next() {
	}
	assert.True(t, s.InBlockComment())
}

func TestCodeScanner_Line(t *testing.T) {
	s := New("a\nb\n\"x\ny\"\nz")
	lines := map[byte]int{}
	for ch, ok := s.Next(); ok; ch, ok = s.Next() {
		if ch != '\n' {
			lines[ch] = s.Line()
		}
	}
	assert.Equal(t, 1, lines['a'])
	assert.Equal(t, 2, lines['b'])
	assert.Equal(t, 4, lines['y'])
	assert.Equal(t, 5, lines['z'])
}

func TestCodeScanner_LookingAtAndSkip(t *testing.T) {
	s := New("a::b")
	s.Next()
	s.Next()
	assert.True(t, s.LookingAt("::"))
	assert.Equal(t, 1, s.Skip(1))
	ch, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, byte('b'), ch)
	assert.Equal(t, 0, s.Skip(5))
}

func TestCodeScanner_Peek(t *testing.T) {
	s := New("ab")
	ch, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, byte('a'), ch)
	s.Next()
	s.Next()
	_, ok = s.Peek()
	assert.False(t, ok)
}

func TestBracketHelpers(t *testing.T) {
	for _, ch := range []byte("([{<") {
		assert.True(t, IsOpenBracket(ch))
		assert.False(t, IsCloseBracket(ch))
	}
	for _, ch := range []byte(")]}>") {
		assert.True(t, IsCloseBracket(ch))
	}
	assert.True(t, IsIdentByte('_'))
	assert.True(t, IsIdentByte('9'))
	assert.False(t, IsIdentByte(':'))
}
