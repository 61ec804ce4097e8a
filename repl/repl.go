package repl

import (
	"fmt"
	"io"

	"github.com/aburry/learning-by-wrote/lisp"
	"github.com/aburry/learning-by-wrote/parser/rdparser"
)

// DefaultPrompt is printed before each expression is read.
const DefaultPrompt = "ok "

// Run reads expressions from in and evaluates each one in the global
// environment of ip as soon as it has been read.  Results are written to out.
// Syntax and evaluation errors are written to errw and the loop moves on to
// the next expression.  Run returns nil when in is exhausted.  Only a failure
// reading in causes Run to return an error.
func Run(in io.Reader, out, errw io.Writer, ip *lisp.Interpreter) error {
	return RunPrompt(DefaultPrompt, in, out, errw, ip)
}

// RunPrompt is like Run but prints prompt instead of DefaultPrompt.
func RunPrompt(prompt string, in io.Reader, out, errw io.Writer, ip *lisp.Interpreter) error {
	p := rdparser.NewFromReader("stdin", in)
	io.WriteString(out, prompt)
	for {
		expr, err := p.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if !lisp.IsKind(err, lisp.SyntaxError) {
				return err
			}
			errln(errw, err)
			if rdparser.IsIncomplete(err) {
				return nil
			}
			io.WriteString(out, prompt)
			continue
		}
		v, err := ip.EvalGlobal(expr)
		if err != nil {
			errln(errw, err)
		} else {
			lisp.Format(out, v)
			io.WriteString(out, "\n")
		}
		io.WriteString(out, prompt)
	}
}

func errln(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
