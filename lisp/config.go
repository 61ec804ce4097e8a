package lisp

import "io"

// DefaultMaximumDepth is the evaluation depth allowed by interpreters that are
// not configured with WithMaximumDepth.
const DefaultMaximumDepth = 10000

// Config is a function that configures an Interpreter.
type Config func(ip *Interpreter) error

// WithStderr returns a Config that makes the interpreter write diagnostic
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(ip *Interpreter) error {
		ip.stderr = w
		return nil
	}
}

// WithTrace returns a Config that makes the interpreter write the textual
// form of every expression to its diagnostic output just before the
// expression is evaluated.
func WithTrace(trace bool) Config {
	return func(ip *Interpreter) error {
		ip.trace = trace
		return nil
	}
}

// WithMaximumDepth returns a Config that will prevent the interpreter from
// nesting evaluation more than n levels deep.  When the limit is exceeded
// evaluation fails with a StackOverflowError.  If n is zero evaluation depth
// is not limited and deep recursion will exhaust the host stack.
func WithMaximumDepth(n int) Config {
	return func(ip *Interpreter) error {
		if n < 0 {
			return Errorf(InvalidError, "negative maximum depth: %d", n)
		}
		ip.maxDepth = n
		return nil
	}
}

// WithReader returns a Config that makes the interpreter use r to parse source
// streams passed to Load.  There is no default Reader.
func WithReader(r Reader) Config {
	return func(ip *Interpreter) error {
		ip.reader = r
		return nil
	}
}
