package lisp

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader parses source streams for an Interpreter.
type Reader interface {
	// Stream returns an ObjectReader that parses objects from r.  The name
	// identifies the stream in error messages.
	Stream(name string, r io.Reader) ObjectReader
}

// ObjectReader returns one parsed object per call to Read.  Read returns
// io.EOF when the stream ends between objects.
type ObjectReader interface {
	Read() (Object, error)
}

// Interpreter evaluates lisp expressions.  An Interpreter owns a single global
// environment, created along with its primitive bindings, that persists for
// the life of the Interpreter.  An Interpreter must not be used by multiple
// goroutines concurrently.
type Interpreter struct {
	global   *Env
	reader   Reader
	stderr   io.Writer
	trace    bool
	maxDepth int
	depth    int
}

// New initializes and returns a new Interpreter with the default primitives
// bound in its global environment.
func New(config ...Config) (*Interpreter, error) {
	ip := &Interpreter{
		global:   NewEnv(nil),
		stderr:   os.Stderr,
		maxDepth: DefaultMaximumDepth,
	}
	ip.AddPrimitives()
	for _, fn := range config {
		err := fn(ip)
		if err != nil {
			return nil, err
		}
	}
	return ip, nil
}

// Global returns the interpreter's global environment.
func (ip *Interpreter) Global() *Env {
	return ip.global
}

// Stderr returns the writer receiving diagnostic output.
func (ip *Interpreter) Stderr() io.Writer {
	return ip.stderr
}

// SetTrace enables or disables evaluation tracing.
func (ip *Interpreter) SetTrace(trace bool) {
	ip.trace = trace
}

// Tracing returns true if evaluation tracing is enabled.
func (ip *Interpreter) Tracing() bool {
	return ip.trace
}

// Define binds name to v in the global environment.
func (ip *Interpreter) Define(name string, v Object) {
	ip.global.Insert(Intern(name), v)
}

// EvalGlobal evaluates expr in the global environment.
func (ip *Interpreter) EvalGlobal(expr Object) (Object, error) {
	return ip.Eval(expr, ip.global)
}

// Eval evaluates expr in the scope of env and returns the result.
//
// Empty, the symbols #t and #f, and numerals evaluate to themselves.  Other
// symbols evaluate to their binding in env.  A list is an application: its head is
// evaluated and must produce a primitive, which receives the remaining
// elements unevaluated, or a closure, which receives the values of the
// remaining elements evaluated from left to right.
func (ip *Interpreter) Eval(expr Object, env *Env) (Object, error) {
	if ip.trace {
		ip.traceExpr(expr)
	}
	if ip.maxDepth > 0 {
		ip.depth++
		defer func() { ip.depth-- }()
		if ip.depth > ip.maxDepth {
			return nil, Errorf(StackOverflowError, "evaluation exceeded maximum depth %d", ip.maxDepth)
		}
	}
	switch expr := expr.(type) {
	case *Symbol:
		if expr == True || expr == False || expr.numeral {
			return expr, nil
		}
		return env.Find(expr)
	case *Cons:
		if expr == Empty {
			return expr, nil
		}
		return ip.evalApplication(expr, env)
	default:
		return nil, Errorf(TypeError, "unknown expression: %s", String(expr))
	}
}

func (ip *Interpreter) evalApplication(expr *Cons, env *Env) (Object, error) {
	op, err := ip.Eval(expr.head, env)
	if err != nil {
		return nil, err
	}
	switch op := op.(type) {
	case *Primitive:
		return op.Fn(ip, expr.tail, env)
	case *Closure:
		args, err := ip.evalArgs(expr.tail, env)
		if err != nil {
			return nil, err
		}
		return ip.call(op, args)
	default:
		return nil, Errorf(TypeError, "unknown expression: %s", String(expr))
	}
}

// evalArgs evaluates each element of args from left to right.
func (ip *Interpreter) evalArgs(args *Cons, env *Env) (*Cons, error) {
	vals := make([]Object, 0, args.Len())
	for it := NewListIterator(args); it.Next(); {
		v, err := ip.Eval(it.Value(), env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return List(vals...), nil
}

// call evaluates the body of fn in a new frame binding its parameters to
// args.  The frame's parent is the environment captured by fn, not the
// caller's.
func (ip *Interpreter) call(fn *Closure, args *Cons) (Object, error) {
	frame, err := Extend(fn.Env, fn.Params, args)
	if err != nil {
		return nil, err
	}
	return ip.Eval(fn.Body, frame)
}

// Invoke applies fn to a list of values that have already been evaluated.
// A primitive receives each value quoted so that it is not evaluated again.
// Special forms see those quoted operands too: invoking quote on (a) yields
// (quote a), and define and lambda fail with a TypeError because they find a
// quote form where they expect a symbol.  Invoke returns a TypeError if fn
// can't be applied.
func (ip *Interpreter) Invoke(fn Object, args *Cons, env *Env) (Object, error) {
	switch fn := fn.(type) {
	case *Closure:
		return ip.call(fn, args)
	case *Primitive:
		return fn.Fn(ip, quoteEach(args), env)
	default:
		return nil, Errorf(TypeError, "not a procedure: %s", String(fn))
	}
}

func quoteEach(args *Cons) *Cons {
	vals := args.Slice()
	for i := range vals {
		vals[i] = List(Quote, vals[i])
	}
	return List(vals...)
}

func (ip *Interpreter) traceExpr(expr Object) {
	var b strings.Builder
	Format(&b, expr)
	b.WriteString("\n")
	io.WriteString(ip.stderr, b.String())
}

// Load reads every object in r using the interpreter's Reader and evaluates
// it in the global environment.  Load stops at the first error.  Bindings made
// before an error remain in place.  Load returns the value of the last object
// evaluated, or Empty if r contained no objects.
func (ip *Interpreter) Load(name string, r io.Reader) (Object, error) {
	if ip.reader == nil {
		return nil, fmt.Errorf("%s: interpreter has no reader", name)
	}
	src := ip.reader.Stream(name, r)
	var last Object = Empty
	for {
		expr, err := src.Read()
		if err == io.EOF {
			return last, nil
		}
		if err != nil {
			return nil, err
		}
		last, err = ip.EvalGlobal(expr)
		if err != nil {
			return nil, err
		}
	}
}

// LoadString is like Load but reads objects from source.
func (ip *Interpreter) LoadString(name, source string) (Object, error) {
	return ip.Load(name, strings.NewReader(source))
}
