package lexer

import (
	"io"
	"unicode"

	"github.com/aburry/learning-by-wrote/parser/token"
)

// Lexer splits a rune stream into tokens.
//
//		(  )  '    single rune tokens
//		;...       comment through the end of the line
//		other      a maximal run of runes that are not whitespace, (, ) or '
//
// A ';' only starts a comment when it is the first rune of a token.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// eof is set once the source is exhausted
	eof bool
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner: s,
	}
}

// NextToken scans and returns the next token.  At the end of input NextToken
// returns an EOF token and keeps returning EOF tokens on subsequent calls.
// Errors reading the source are returned as ERROR tokens; the lexer may be
// used again after an ERROR token.
func (lex *Lexer) NextToken() *token.Token {
	if lex.eof {
		return lex.emit(token.EOF, "")
	}
	err := lex.skipWhitespace()
	if err != nil {
		return lex.emitError(err)
	}
	err = lex.readChar()
	if err != nil {
		return lex.emitError(err)
	}
	switch lex.ch {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case '\'':
		return lex.scanner.EmitToken(token.QUOTE)
	case ';':
		for {
			c, err := lex.scanner.Peek()
			if err == io.EOF {
				return lex.scanner.EmitToken(token.COMMENT)
			}
			if err == token.ErrInvalidUTF8 {
				// comment text is discarded so its encoding doesn't matter
				lex.scanner.ScanRune()
				continue
			}
			if err != nil {
				return lex.emitError(err)
			}
			if c == '\n' {
				return lex.scanner.EmitToken(token.COMMENT)
			}
			err = lex.readChar()
			if err != nil {
				return lex.emitError(err)
			}
		}
	default:
		err := lex.readSymbol()
		if err != nil {
			return lex.emitError(err)
		}
		return lex.scanner.EmitToken(token.SYMBOL)
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error) *token.Token {
	if err == io.EOF {
		lex.eof = true
		return lex.emit(token.EOF, "")
	}
	tok := lex.emit(token.ERROR, err.Error())
	tok.Err = err
	return tok
}

// readSymbol consumes word runes following the current rune.  The symbol ends
// at the first rune that is not part of a word, at the end of input, or at a
// rune that can't be decoded (which is left for the next token).
func (lex *Lexer) readSymbol() error {
	for {
		c, err := lex.scanner.Peek()
		if err == io.EOF || err == token.ErrInvalidUTF8 {
			return nil
		}
		if err != nil {
			return err
		}
		if !isWord(c) {
			return nil
		}
		err = lex.readChar()
		if err != nil {
			return err
		}
	}
}

func (lex *Lexer) skipWhitespace() error {
	defer lex.scanner.Ignore()
	for {
		c, err := lex.scanner.Peek()
		if err == token.ErrInvalidUTF8 {
			return nil
		}
		if err != nil {
			return err
		}
		if !unicode.IsSpace(c) {
			return nil
		}
		err = lex.readChar()
		if err != nil {
			return err
		}
	}
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

// isWord includes ';' so a;b is a single symbol rather than a followed by a
// comment.
func isWord(c rune) bool {
	switch c {
	case '(', ')', '\'':
		return false
	default:
		return !unicode.IsSpace(c)
	}
}
