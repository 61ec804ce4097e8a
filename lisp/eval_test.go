package lisp_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aburry/learning-by-wrote/lisp"
	"github.com/aburry/learning-by-wrote/lisptest"
	"github.com/aburry/learning-by-wrote/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := lisptest.TestSuite{
		{"transcript", lisptest.TestSequence{
			{"(define x 5)", "#t", ""},
			{"(define inc (lambda (n) (cons n '())))", "#t", ""},
			{"(inc x)", "(5)", ""},
			{"(eq? '() '())", "#t", ""},
			{"(if #f 1 2)", "2", ""},
		}},
		{"constants", lisptest.TestSequence{
			{"()", "()", ""},
			{"#t", "#t", ""},
			{"#f", "#f", ""},
			{"42", "42", ""},
			{"x", "undefined-symbol: x", ""},
			{"'x", "x", ""},
			{"''x", "(quote x)", ""},
			{"cons", "#<primitive: cons>", ""},
			{"(lambda (n) (cons n '()))", "#<closure: (lambda (n) (cons n (quote ())))>", ""},
		}},
		{"lists", lisptest.TestSequence{
			{"(cons 'a '())", "(a)", ""},
			{"(cons 'a '(b c))", "(a b c)", ""},
			{"(cons '(a) '(b))", "((a) b)", ""},
			{"(cons 'a 'b)", "type-error: cons: second argument is not a list: b", ""},
			{"(head '(a b c))", "a", ""},
			{"(tail '(a b c))", "(b c)", ""},
			{"(tail '(a))", "()", ""},
			{"(head '())", "empty-list: head: argument is the empty list", ""},
			{"(tail '())", "empty-list: tail: argument is the empty list", ""},
			{"(head 'a)", "type-error: head: argument is not a list: a", ""},
			{"(tail 'a)", "type-error: tail: argument is not a list: a", ""},
		}},
		{"identity", lisptest.TestSequence{
			{"(eq? 'a 'a)", "#t", ""},
			{"(eq? 'a 'b)", "#f", ""},
			{"(eq? (cons 'a '()) (cons 'a '()))", "#f", ""},
			{"(define l '(a))", "#t", ""},
			{"(eq? l l)", "#t", ""},
			{"(eq? (tail (cons 'b l)) l)", "#t", ""},
			{"(eq? cons cons)", "#t", ""},
		}},
		{"predicates", lisptest.TestSequence{
			{"(symbol? 'a)", "#t", ""},
			{"(symbol? '(a))", "#f", ""},
			{"(symbol? #t)", "#t", ""},
			{"(list? '(a))", "#t", ""},
			{"(list? '())", "#t", ""},
			{"(list? 'a)", "#f", ""},
			{"(procedure? (lambda () 'a))", "#t", ""},
			{"(procedure? cons)", "#f", ""},
			{"(procedure? 'a)", "#f", ""},
		}},
		{"if", lisptest.TestSequence{
			{"(if #t 'a 'b)", "a", ""},
			{"(if #f 'a 'b)", "b", ""},
			{"(if '() 'a 'b)", "a", ""},
			{"(if 'x 'a 'b)", "a", ""},
			{"(if #f (head '()) 'ok)", "ok", ""},
			{"(if #t 'ok (undefined-function))", "ok", ""},
			{"(if #t 'a)", "arity-error: if: expected 3 arguments (got 2)", ""},
		}},
		{"arity", lisptest.TestSequence{
			{"(cons 'a)", "arity-error: cons: expected 2 arguments (got 1)", ""},
			{"(cons 'a '() '())", "arity-error: cons: expected 2 arguments (got 3)", ""},
			{"(eq? 'a)", "arity-error: eq?: expected 2 arguments (got 1)", ""},
			{"(eq? 'a 'a 'a)", "arity-error: eq?: expected 2 arguments (got 3)", ""},
			{"(head)", "arity-error: head: expected 1 arguments (got 0)", ""},
			{"(tail '(a) '(b))", "arity-error: tail: expected 1 arguments (got 2)", ""},
			{"(quote)", "arity-error: quote: expected 1 arguments (got 0)", ""},
			{"(quote a b)", "arity-error: quote: expected 1 arguments (got 2)", ""},
			{"(symbol? 'a 'b)", "arity-error: symbol?: expected 1 arguments (got 2)", ""},
			{"((lambda (x) x))", "arity-error: expected 1 arguments (got 0)", ""},
			{"((lambda () 'a) 'b)", "arity-error: expected 0 arguments (got 1)", ""},
		}},
		{"define", lisptest.TestSequence{
			{"(define a 'b)", "#t", ""},
			{"a", "b", ""},
			{"(define a 'c)", "#t", ""},
			{"a", "c", ""},
			{"(define (f) 'a)", "type-error: define: first argument is not a symbol: (f)", ""},
			// numerals evaluate to themselves so a binding could never be read
			{"(define 5 'a)", "type-error: define: cannot bind a numeral: 5", ""},
			{"5", "5", ""},
			{"(define b (head '()))", "empty-list: head: argument is the empty list", ""},
			{"b", "undefined-symbol: b", ""},
			// effects before an error persist
			{"(cons (define w 'a) (head '()))", "empty-list: head: argument is the empty list", ""},
			{"w", "a", ""},
			// define in a closure body binds in the call frame
			{"(define f (lambda () (define y 'local)))", "#t", ""},
			{"(f)", "#t", ""},
			{"y", "undefined-symbol: y", ""},
			{"(define g (lambda (y) (if (define y 'inner) y 'no)))", "#t", ""},
			{"(g 'outer)", "inner", ""},
		}},
		{"lambda", lisptest.TestSequence{
			{"((lambda (x) x) 'a)", "a", ""},
			{"((lambda (x y) (cons y (cons x '()))) 'a 'b)", "(b a)", ""},
			{"(((lambda (x) (lambda (y) (cons x (cons y '())))) 'a) 'b)", "(a b)", ""},
			{"(lambda x x)", "type-error: lambda: parameter list is not a list: x", ""},
			{"(lambda (a (b)) a)", "type-error: lambda: parameter is not a symbol: (b)", ""},
			{"(lambda (x 1) x)", "type-error: lambda: cannot bind a numeral: 1", ""},
			{"(lambda (x))", "arity-error: lambda: expected 2 arguments (got 1)", ""},
			{"((lambda (x) y) 'a)", "undefined-symbol: y", ""},
			// arguments are evaluated before the arity check
			{"((lambda (x) x) (head '()))", "empty-list: head: argument is the empty list", ""},
		}},
		{"lexical scope", lisptest.TestSequence{
			{"(define x 5)", "#t", ""},
			{"(define f (lambda (n) x))", "#t", ""},
			{"(define x 6)", "#t", ""},
			{"(f 0)", "6", ""},
			{"(define g (lambda (x) (lambda () x)))", "#t", ""},
			{"(define h (g 'captured))", "#t", ""},
			{"(define x 'global)", "#t", ""},
			{"(h)", "captured", ""},
			// the caller's bindings are not visible to the callee
			{"(define k (lambda () z))", "#t", ""},
			{"((lambda (z) (k)) 'a)", "undefined-symbol: z", ""},
			{"(define z 'late)", "#t", ""},
			{"(k)", "late", ""},
		}},
		{"recursion", lisptest.TestSequence{
			{`(define append (lambda (a b)
				(if (eq? a '())
					b
					(cons (head a) (append (tail a) b)))))`, "#t", ""},
			{"(append '(a b) '(c d))", "(a b c d)", ""},
			{`(define reverse (lambda (l)
				(if (eq? l '()) l (append (reverse (tail l)) (cons (head l) '())))))`, "#t", ""},
			{"(reverse '(a b c))", "(c b a)", ""},
		}},
		{"apply", lisptest.TestSequence{
			{"(apply cons '(a ()))", "(a)", ""},
			{"(apply (lambda (x y) (cons y (cons x '()))) '(a b))", "(b a)", ""},
			{"(apply head '((a b)))", "a", ""},
			// values are not evaluated a second time
			{"(apply eq? '(x x))", "#t", ""},
			{"(apply symbol? '((head '())))", "#f", ""},
			{"(apply 'a '())", "type-error: apply: first argument is not a procedure: a", ""},
			{"(apply cons 'a)", "type-error: apply: second argument is not a list: a", ""},
			{"(apply cons '(a))", "arity-error: cons: expected 2 arguments (got 1)", ""},
			{"(apply (lambda (x) x) '(a b))", "arity-error: expected 1 arguments (got 2)", ""},
			{"(apply define '(x y))", "type-error: define: first argument is not a symbol: (quote x)", ""},
			// special forms receive quoted operands
			{"(apply quote '(a))", "(quote a)", ""},
			{"(apply lambda '((x) x))", "type-error: lambda: parameter is not a symbol: (x)", ""},
			{"(apply apply (cons cons '((a ()))))", "(a)", ""},
		}},
		{"unknown expression", lisptest.TestSequence{
			{"('a 'b)", "type-error: unknown expression: ((quote a) (quote b))", ""},
			{"(() 'a)", "type-error: unknown expression: (() (quote a))", ""},
			{"(undefined 'a)", "undefined-symbol: undefined", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestEval_Trace(t *testing.T) {
	tests := lisptest.TestSuite{
		{"trace", lisptest.TestSequence{
			{"(head '(a))", "a", "(head (quote (a)))\nhead\n(quote (a))\nquote\n"},
			{"(if #f 'a 'b)", "b", "(if #f (quote a) (quote b))\nif\n#f\n(quote b)\nquote\n"},
			{"((lambda (x) x) 'y)", "y", "((lambda (x) x) (quote y))\n(lambda (x) x)\nlambda\n(quote y)\nquote\nx\n"},
		}},
	}
	lisptest.RunTestSuite(t, tests, lisp.WithTrace(true))
}

func TestEval_MaximumDepth(t *testing.T) {
	tests := lisptest.TestSuite{
		{"overflow", lisptest.TestSequence{
			{"(define loop (lambda (x) (loop x)))", "#t", ""},
			{"(loop 'a)", "stack-overflow: evaluation exceeded maximum depth 50", ""},
			// depth is restored after the failed evaluation
			{"((lambda (x) x) 'a)", "a", ""},
			{"(loop 'b)", "stack-overflow: evaluation exceeded maximum depth 50", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests, lisp.WithMaximumDepth(50))

	var stderr bytes.Buffer
	_, err := lisptest.NewInterpreter(&stderr, lisp.WithMaximumDepth(-1))
	assert.True(t, lisp.IsKind(err, lisp.InvalidError))
}

func TestEval_ReaderRoundTrip(t *testing.T) {
	sources := []string{
		"a",
		"()",
		"(a b c)",
		"(a (b (c ())) d)",
		"(quote (quote x))",
		"(#t #f 123 x;y ...)",
	}
	for _, src := range sources {
		exprs, err := rdparser.ReadString("test", src)
		require.NoError(t, err, src)
		require.Len(t, exprs, 1, src)
		text := lisp.String(exprs[0])
		assert.Equal(t, src, text)
		again, err := rdparser.ReadString("test", text)
		require.NoError(t, err, src)
		require.Len(t, again, 1, src)
		assert.True(t, equalTree(exprs[0], again[0]), src)
	}
}

// equalTree reports whether a and b are lists with the same shape and the
// same symbols.
func equalTree(a, b lisp.Object) bool {
	la, ok := lisp.GetList(a)
	if !ok {
		return a == b
	}
	lb, ok := lisp.GetList(b)
	if !ok || la.Len() != lb.Len() {
		return false
	}
	xa, xb := la.Slice(), lb.Slice()
	for i := range xa {
		if !equalTree(xa[i], xb[i]) {
			return false
		}
	}
	return true
}

func TestInterpreter_Load(t *testing.T) {
	var stderr bytes.Buffer
	ip, err := lisptest.NewInterpreter(&stderr)
	require.NoError(t, err)

	v, err := ip.LoadString("test", `
		; a comment
		(define id (lambda (x) x))
		(id 'a)
	`)
	require.NoError(t, err)
	assert.Equal(t, "a", lisp.String(v))

	v, err = ip.LoadString("empty", "")
	require.NoError(t, err)
	assert.Same(t, lisp.Empty, v)

	_, err = ip.LoadString("bad", "(define y 'b) (head '()) (define z 'c)")
	assert.True(t, lisp.IsKind(err, lisp.EmptyListError))
	_, ok := ip.Global().Lookup(lisp.Intern("y"))
	assert.True(t, ok)
	_, ok = ip.Global().Lookup(lisp.Intern("z"))
	assert.False(t, ok)

	_, err = ip.LoadString("syntax", "(id 'a")
	assert.True(t, lisp.IsKind(err, lisp.SyntaxError))
	assert.True(t, rdparser.IsIncomplete(err))

	_, err = ip.Load("broken", io.MultiReader(strings.NewReader("(id "), errReader{}))
	assert.ErrorIs(t, err, errBroken)

	noreader, err := lisp.New()
	require.NoError(t, err)
	_, err = noreader.LoadString("test", "a")
	assert.Error(t, err)
}

var errBroken = errors.New("broken reader")

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errBroken }

func TestInterpreter_Define(t *testing.T) {
	ip, err := lisp.New(lisp.WithStderr(io.Discard))
	require.NoError(t, err)
	ip.Define("answer", lisp.Intern("yes"))
	v, err := ip.EvalGlobal(lisp.Intern("answer"))
	require.NoError(t, err)
	assert.Equal(t, "yes", lisp.String(v))

	// host primitives receive unevaluated arguments
	ip.AddPrimitives(&lisp.PrimitiveDef{
		Name:  "first-arg",
		Arity: 2,
		Fn: func(ip *lisp.Interpreter, args []lisp.Object, env *lisp.Env) (lisp.Object, error) {
			return args[0], nil
		},
	})
	expr := lisp.List(lisp.Intern("first-arg"), lisp.List(lisp.Intern("head"), lisp.Empty), lisp.Intern("b"))
	v, err = ip.EvalGlobal(expr)
	require.NoError(t, err)
	assert.Equal(t, "(head ())", lisp.String(v))

	assert.Len(t, lisp.DefaultPrimitives(), 12)
	for _, def := range lisp.DefaultPrimitives() {
		v, ok := ip.Global().Lookup(lisp.Intern(def.Name))
		if assert.True(t, ok, def.Name) {
			_, ok = lisp.GetPrimitive(v)
			assert.True(t, ok, def.Name)
		}
	}
}
