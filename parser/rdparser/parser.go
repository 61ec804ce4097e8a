package rdparser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aburry/learning-by-wrote/lisp"
	"github.com/aburry/learning-by-wrote/parser/lexer"
	"github.com/aburry/learning-by-wrote/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Interpreter.
func NewReader() lisp.Reader {
	return &reader{}
}

// Stream implements lisp.Reader.
func (*reader) Stream(name string, r io.Reader) lisp.ObjectReader {
	return NewFromReader(name, r)
}

// ParseError is a syntax error found while parsing.
type ParseError struct {
	Source *token.Location
	// Incomplete is true if input ended in the middle of an expression.
	Incomplete bool
	Err        error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("%v: %v", err.Source, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// IsIncomplete returns true if err is a ParseError caused by the input ending
// in the middle of an expression.
func IsIncomplete(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr) && perr.Incomplete
}

// Parser is a lisp parser.
type Parser struct {
	lex     *lexer.Lexer
	parsing bool
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return &Parser{
		lex: lexer.New(scanner),
	}
}

// NewFromReader returns a Parser that reads source text from r.
func NewFromReader(name string, r io.Reader) *Parser {
	return New(token.NewScanner(name, r))
}

// ReadAll parses every expression in r.  ReadAll stops at the first error.
func ReadAll(name string, r io.Reader) ([]lisp.Object, error) {
	p := NewFromReader(name, r)
	var exprs []lisp.Object
	for {
		expr, err := p.Read()
		if err == io.EOF {
			return exprs, nil
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

// ReadString is like ReadAll but parses expressions from source.
func ReadString(name, source string) ([]lisp.Object, error) {
	return ReadAll(name, strings.NewReader(source))
}

// IsParsing returns true if p is in the middle of parsing an expression.  A
// call to Read that is blocked waiting for input with IsParsing false is
// waiting for the start of a new expression.
func (p *Parser) IsParsing() bool {
	return p.parsing
}

// Read parses and returns the next expression.  Read returns io.EOF if input
// ends before an expression starts.  Syntax errors are returned as
// *ParseError; after a syntax error the parser resumes with the token
// following the one that caused it.  Other errors come from the underlying
// reader.
func (p *Parser) Read() (lisp.Object, error) {
	p.parsing = false
	tok := p.readToken()
	if tok.Type == token.EOF {
		return nil, io.EOF
	}
	p.parsing = true
	defer func() { p.parsing = false }()
	return p.parseExpression(tok)
}

func (p *Parser) parseExpression(tok *token.Token) (lisp.Object, error) {
	switch tok.Type {
	case token.SYMBOL:
		return lisp.Intern(tok.Text), nil
	case token.PAREN_L:
		return p.parseList(tok)
	case token.QUOTE:
		return p.parseQuote(tok)
	case token.PAREN_R:
		return nil, p.errorf(tok, "unexpected %s", tok.Type)
	case token.EOF:
		return nil, p.errorf(tok, "unexpected %s", tok.Type)
	case token.ERROR:
		return nil, p.readError(tok)
	default:
		return nil, p.errorf(tok, "unexpected %s token", tok.Type)
	}
}

// parseList parses list elements following the opening token open.
func (p *Parser) parseList(open *token.Token) (lisp.Object, error) {
	var cells []lisp.Object
	for {
		tok := p.readToken()
		switch tok.Type {
		case token.EOF:
			return nil, p.incomplete(open, "unmatched %s", open.Text)
		case token.PAREN_R:
			return lisp.List(cells...), nil
		}
		x, err := p.parseExpression(tok)
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
}

// parseQuote parses the expression following the quote token q and returns
// (quote x).
func (p *Parser) parseQuote(q *token.Token) (lisp.Object, error) {
	tok := p.readToken()
	if tok.Type == token.EOF {
		return nil, p.incomplete(q, "nothing quoted by %s", q.Text)
	}
	x, err := p.parseExpression(tok)
	if err != nil {
		return nil, err
	}
	return lisp.List(lisp.Quote, x), nil
}

// readToken returns the next token that isn't a comment.
func (p *Parser) readToken() *token.Token {
	for {
		tok := p.lex.NextToken()
		if tok.Type != token.COMMENT {
			return tok
		}
	}
}

func (p *Parser) errorf(tok *token.Token, format string, v ...interface{}) error {
	return &ParseError{
		Source: tok.Source,
		Err:    lisp.Errorf(lisp.SyntaxError, format, v...),
	}
}

func (p *Parser) incomplete(tok *token.Token, format string, v ...interface{}) error {
	return &ParseError{
		Source:     tok.Source,
		Incomplete: true,
		Err:        lisp.Errorf(lisp.SyntaxError, format, v...),
	}
}

// readError converts an ERROR token.  Undecodable text is a syntax error;
// anything else is a failure of the underlying reader and is passed through.
func (p *Parser) readError(tok *token.Token) error {
	if errors.Is(tok.Err, token.ErrInvalidUTF8) {
		return p.errorf(tok, "%v", tok.Err)
	}
	return fmt.Errorf("%v: %w", tok.Source, tok.Err)
}
