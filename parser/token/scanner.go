package token

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned by Scanner when the source contains a byte
// sequence that is not valid utf-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8 sequence in source text")

// Scanner facilitates construction of tokens from a rune stream.  Scanner
// reads from its source one rune at a time so it never blocks waiting for
// input beyond the rune currently being examined.
type Scanner struct {
	file string
	r    io.RuneScanner

	// location of the next rune to be scanned
	pos  int
	line int
	col  int

	start Location // location of the first rune of the current token
	text  strings.Builder
	c     rune
}

// NewScanner initializes and returns a new Scanner.  If r is not an
// io.RuneScanner it is buffered.
func NewScanner(file string, r io.Reader) *Scanner {
	rs, ok := r.(io.RuneScanner)
	if !ok {
		rs = bufio.NewReader(r)
	}
	s := &Scanner{
		file: file,
		r:    rs,
		line: 1,
		col:  1,
	}
	s.Ignore()
	return s
}

// File returns the name of the source being scanned.
func (s *Scanner) File() string {
	return s.file
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.start = Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned without consuming it.  Peek
// returns io.EOF at the end of input, ErrInvalidUTF8 if the next bytes do not
// form a utf-8 rune, or any error encountered reading the source.
func (s *Scanner) Peek() (rune, error) {
	c, n, err := s.r.ReadRune()
	if err != nil {
		return 0, err
	}
	err = s.r.UnreadRune()
	if err != nil {
		return 0, err
	}
	if c == utf8.RuneError && n == 1 {
		return c, ErrInvalidUTF8
	}
	return c, nil
}

// ScanRune consumes the next rune and includes it in the current token.  An
// invalid utf-8 byte is consumed before ErrInvalidUTF8 is returned so that
// scanning can continue after it.
func (s *Scanner) ScanRune() error {
	c, n, err := s.r.ReadRune()
	if err != nil {
		return err
	}
	s.c = c
	s.text.WriteRune(c)
	s.pos += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	if c == utf8.RuneError && n == 1 {
		return ErrInvalidUTF8
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	loc := s.start
	return &loc
}

// Loc returns a Location referencing the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}
