package lisp

import (
	"fmt"
	"io"
	"strings"
)

// writeOp is a function that looks like w.Write but may involve many calls to
// w.Write and aggregate the result.
type writeOp func(w io.Writer) (int, error)

// countingWriter tracks the total number of bytes written across all calls to
// its methods.
type countingWriter struct {
	w io.Writer
	n int
}

func (w *countingWriter) count(n int, err error) (int, error) {
	w.n += n
	return n, err
}

// Write implements io.Writer
func (w *countingWriter) Write(b []byte) (int, error) {
	return w.count(w.w.Write(b))
}

// WriteString implements io.StringWriter
func (w *countingWriter) WriteString(s string) (int, error) {
	return w.count(io.WriteString(w.w, s))
}

// deferCount passes the underlying io.Writer to fn and counts the bytes fn
// reports.  It saves the counter from being updated for each write that fn
// makes.
func (w *countingWriter) deferCount(fn writeOp) (int, error) {
	return w.count(fn(w.w))
}

// Format writes the textual form of v to w and returns the number of bytes
// written.
//
//		symbol     text
//		Empty      ()
//		list       (a b c)
//		closure    #<closure: (lambda (x) body)>
//		primitive  #<primitive: name>
func Format(w io.Writer, v Object) (int, error) {
	switch v := v.(type) {
	case *Symbol:
		return io.WriteString(w, v.name)
	case *Cons:
		return formatList(w, v)
	case *Closure:
		cw := &countingWriter{w: w}
		_, err := cw.WriteString("#<closure: (lambda ")
		if err != nil {
			return cw.n, err
		}
		_, err = cw.deferCount(func(w io.Writer) (int, error) { return formatList(w, v.Params) })
		if err != nil {
			return cw.n, err
		}
		_, err = cw.WriteString(" ")
		if err != nil {
			return cw.n, err
		}
		_, err = cw.deferCount(func(w io.Writer) (int, error) { return Format(w, v.Body) })
		if err != nil {
			return cw.n, err
		}
		_, err = cw.WriteString(")>")
		return cw.n, err
	case *Primitive:
		return fmt.Fprintf(w, "#<primitive: %s>", v.Name.name)
	default:
		return 0, fmt.Errorf("unrecognized object: %T", v)
	}
}

func formatList(w io.Writer, c *Cons) (int, error) {
	cw := &countingWriter{w: w}
	_, err := cw.WriteString("(")
	if err != nil {
		return cw.n, err
	}
	for it := c; it != Empty; it = it.tail {
		if it != c {
			_, err = cw.WriteString(" ")
			if err != nil {
				return cw.n, err
			}
		}
		head := it.head
		_, err = cw.deferCount(func(w io.Writer) (int, error) { return Format(w, head) })
		if err != nil {
			return cw.n, err
		}
	}
	_, err = cw.WriteString(")")
	return cw.n, err
}

// String returns the textual form of v.
func String(v Object) string {
	var b strings.Builder
	Format(&b, v)
	return b.String()
}
