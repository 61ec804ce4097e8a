package lisptest

import (
	"bytes"
	"testing"

	"github.com/aburry/learning-by-wrote/lisp"
	"github.com/aburry/learning-by-wrote/parser/rdparser"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a single lisp.Interpreter.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result, or the error message
	Output string // diagnostic output written while evaluating (checked when not empty)
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewInterpreter returns an interpreter set up the way RunTestSuite uses it.
// Diagnostic output is written to stderr.
func NewInterpreter(stderr *bytes.Buffer, config ...lisp.Config) (*lisp.Interpreter, error) {
	config = append([]lisp.Config{
		lisp.WithReader(rdparser.NewReader()),
		lisp.WithStderr(stderr),
	}, config...)
	return lisp.New(config...)
}

// RunTestSuite runs each TestSequence in tests on an isolated
// lisp.Interpreter.  Any config is applied to each interpreter.
func RunTestSuite(t *testing.T, tests TestSuite, config ...lisp.Config) {
	for i, test := range tests {
		var stderr bytes.Buffer
		ip, err := NewInterpreter(&stderr, config...)
		if err != nil {
			t.Errorf("test %d %q: unable to create interpreter: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			stderr.Reset()
			v, err := rdparser.ReadString("test", expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			var result string
			val, err := ip.EvalGlobal(v[0])
			if err != nil {
				result = err.Error()
			} else {
				result = lisp.String(val)
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if expr.Output != "" && stderr.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stderr.String())
			}
		}
	}
}
