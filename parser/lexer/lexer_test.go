package lexer

import (
	"strings"
	"testing"

	"github.com/aburry/learning-by-wrote/parser/token"
	"github.com/stretchr/testify/assert"
)

type testToken struct {
	typ  token.Type
	text string
}

func lexAll(src string) []testToken {
	lex := New(token.NewScanner("test", strings.NewReader(src)))
	var toks []testToken
	for {
		tok := lex.NextToken()
		toks = append(toks, testToken{tok.Type, tok.Text})
		if tok.Type == token.EOF || len(toks) > 100 {
			return toks
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name   string
		source string
		tokens []testToken
	}{
		{"empty", "", []testToken{
			{token.EOF, ""},
		}},
		{"whitespace", " \t\n ", []testToken{
			{token.EOF, ""},
		}},
		{"list", "(a b)", []testToken{
			{token.PAREN_L, "("},
			{token.SYMBOL, "a"},
			{token.SYMBOL, "b"},
			{token.PAREN_R, ")"},
			{token.EOF, ""},
		}},
		{"quote", "'a '(x)", []testToken{
			{token.QUOTE, "'"},
			{token.SYMBOL, "a"},
			{token.QUOTE, "'"},
			{token.PAREN_L, "("},
			{token.SYMBOL, "x"},
			{token.PAREN_R, ")"},
			{token.EOF, ""},
		}},
		{"symbols", "#t #f 123 eq? -> a.b λ", []testToken{
			{token.SYMBOL, "#t"},
			{token.SYMBOL, "#f"},
			{token.SYMBOL, "123"},
			{token.SYMBOL, "eq?"},
			{token.SYMBOL, "->"},
			{token.SYMBOL, "a.b"},
			{token.SYMBOL, "λ"},
			{token.EOF, ""},
		}},
		{"delimiters", "a(b)c'd", []testToken{
			{token.SYMBOL, "a"},
			{token.PAREN_L, "("},
			{token.SYMBOL, "b"},
			{token.PAREN_R, ")"},
			{token.SYMBOL, "c"},
			{token.QUOTE, "'"},
			{token.SYMBOL, "d"},
			{token.EOF, ""},
		}},
		{"comments", "; comment\na ; more\n;last", []testToken{
			{token.COMMENT, "; comment"},
			{token.SYMBOL, "a"},
			{token.COMMENT, "; more"},
			{token.COMMENT, ";last"},
			{token.EOF, ""},
		}},
		{"semicolon in symbol", "a;b c", []testToken{
			{token.SYMBOL, "a;b"},
			{token.SYMBOL, "c"},
			{token.EOF, ""},
		}},
		{"comment invalid utf8", "; \xff\na", []testToken{
			{token.COMMENT, "; �"},
			{token.SYMBOL, "a"},
			{token.EOF, ""},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.tokens, lexAll(test.source))
		})
	}
}

func TestLexer_InvalidUTF8(t *testing.T) {
	lex := New(token.NewScanner("test", strings.NewReader("ab\xff c")))
	tok := lex.NextToken()
	assert.Equal(t, token.SYMBOL, tok.Type)
	assert.Equal(t, "ab", tok.Text)
	tok = lex.NextToken()
	assert.Equal(t, token.ERROR, tok.Type)
	assert.Equal(t, token.ErrInvalidUTF8, tok.Err)
	assert.Equal(t, "test:1:3", tok.Source.String())
	tok = lex.NextToken()
	assert.Equal(t, token.SYMBOL, tok.Type)
	assert.Equal(t, "c", tok.Text)
	assert.Equal(t, token.EOF, lex.NextToken().Type)
	assert.Equal(t, token.EOF, lex.NextToken().Type)
}

func TestLexer_Location(t *testing.T) {
	lex := New(token.NewScanner("test", strings.NewReader("(a\n  bc)")))
	var locs []string
	for tok := lex.NextToken(); tok.Type != token.EOF; tok = lex.NextToken() {
		locs = append(locs, tok.Source.String())
	}
	assert.Equal(t, []string{"test:1:1", "test:1:2", "test:2:3", "test:2:5"}, locs)
}
