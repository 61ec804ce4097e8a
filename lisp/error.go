package lisp

import (
	"errors"
	"fmt"
)

// ErrorKind is the condition type of an Error.
type ErrorKind uint8

// Possible ErrorKind values
const (
	InvalidError ErrorKind = iota
	// SyntaxError is a malformed token stream: an unexpected closing paren
	// or a list or quote truncated by the end of input.
	SyntaxError
	// ArityError is a wrong argument count to a primitive or closure.
	ArityError
	// TypeError is an operand that is not of the required kind.
	TypeError
	// UndefinedSymbolError is a symbol that is not bound in any frame of an
	// environment.
	UndefinedSymbolError
	// EmptyListError is an attempt to take the head or tail of Empty.
	EmptyListError
	// StackOverflowError is evaluation nested deeper than the interpreter
	// allows.
	StackOverflowError

	numErrorKinds
)

var errorKindStrings = [numErrorKinds]string{
	InvalidError:         "error",
	SyntaxError:          "syntax-error",
	ArityError:           "arity-error",
	TypeError:            "type-error",
	UndefinedSymbolError: "undefined-symbol",
	EmptyListError:       "empty-list",
	StackOverflowError:   "stack-overflow",
}

func (k ErrorKind) String() string {
	if k >= numErrorKinds {
		return errorKindStrings[InvalidError]
	}
	return errorKindStrings[k]
}

// Error is an error produced while reading or evaluating lisp code.
type Error struct {
	Kind ErrorKind
	Msg  string
}

// Errorf returns an Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, v...),
	}
}

// Error implements the error interface.
func (err *Error) Error() string {
	return err.Kind.String() + ": " + err.Msg
}

// IsKind returns true if err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var lerr *Error
	return errors.As(err, &lerr) && lerr.Kind == kind
}

func arityErrorf(name string, expect, got int) *Error {
	return Errorf(ArityError, "%s: expected %d arguments (got %d)", name, expect, got)
}
