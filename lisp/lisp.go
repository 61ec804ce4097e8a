package lisp

import (
	"fmt"
)

func panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

// Kind identifies the variant of an Object.
type Kind uint8

// Possible Kind values
const (
	KInvalid Kind = iota
	// KSymbol is an interned name.
	KSymbol
	// KList is either Empty or a cons cell.
	KList
	// KClosure is a user defined function.
	KClosure
	// KPrimitive is a builtin operation.
	KPrimitive

	numKinds
)

var kindStrings = [numKinds]string{
	KInvalid:   "invalid",
	KSymbol:    "symbol",
	KList:      "list",
	KClosure:   "closure",
	KPrimitive: "primitive",
}

func (k Kind) String() string {
	if k >= numKinds {
		return kindStrings[KInvalid]
	}
	return kindStrings[k]
}

// Object is a lisp value.  The set of Object implementations is closed: an
// Object is a *Symbol, a *Cons (possibly Empty), a *Closure, or a *Primitive.
// Two Objects are the same value iff they are equal as Go interface values.
type Object interface {
	// Kind returns the variant of the Object.
	Kind() Kind

	object()
}

var (
	_ Object = (*Symbol)(nil)
	_ Object = (*Cons)(nil)
	_ Object = (*Closure)(nil)
	_ Object = (*Primitive)(nil)
)

// Symbol is an interned name.  Symbols are only created by a SymbolTable and
// there is exactly one *Symbol for any given text in a table.
type Symbol struct {
	name string
	id   SymbolID
	// numeral is true if name is a non-empty run of decimal digits
	numeral bool
}

// Kind implements Object.
func (sym *Symbol) Kind() Kind { return KSymbol }

func (sym *Symbol) object() {}

// Name returns the text of sym.
func (sym *Symbol) Name() string {
	return sym.name
}

// ID returns the numeric identifier assigned to sym when it was interned.
func (sym *Symbol) ID() SymbolID {
	return sym.id
}

// IsNumeral returns true if the text of sym consists only of decimal digits.
// Numerals are ordinary symbols that evaluate to themselves.
func (sym *Symbol) IsNumeral() bool {
	return sym.numeral
}

func (sym *Symbol) String() string {
	return sym.name
}

// Cons is a list cell.  The zero-length list is the unique value Empty.  A
// Cons is never modified after being returned from NewCons.
type Cons struct {
	head Object
	tail *Cons
}

// Empty is the empty list.  It is the only *Cons without a head.
var Empty = &Cons{}

// NewCons returns a new list with head followed by the elements of tail.
func NewCons(head Object, tail *Cons) *Cons {
	if head == nil {
		panicf("cons: nil head")
	}
	if tail == nil {
		panicf("cons: nil tail")
	}
	return &Cons{head: head, tail: tail}
}

// Kind implements Object.
func (c *Cons) Kind() Kind { return KList }

func (c *Cons) object() {}

// IsEmpty returns true if c is the Empty list.
func (c *Cons) IsEmpty() bool {
	return c == Empty
}

// Head returns the first element of c.  Head returns nil if c is Empty.
func (c *Cons) Head() Object {
	return c.head
}

// Tail returns the elements of c following its head.  Tail returns nil if c is
// Empty.
func (c *Cons) Tail() *Cons {
	return c.tail
}

func (c *Cons) String() string {
	return String(c)
}

// Closure is a function value pairing a parameter list and body with the
// environment in which the function was defined.  The environment is shared,
// not copied.
type Closure struct {
	Params *Cons
	Body   Object
	Env    *Env
}

// Kind implements Object.
func (fn *Closure) Kind() Kind { return KClosure }

func (fn *Closure) object() {}

func (fn *Closure) String() string {
	return String(fn)
}

// PrimitiveFunc implements a Primitive.  A PrimitiveFunc receives its
// arguments unevaluated along with the calling environment.
type PrimitiveFunc func(ip *Interpreter, args *Cons, env *Env) (Object, error)

// Primitive is a builtin operation.
type Primitive struct {
	Name *Symbol
	Fn   PrimitiveFunc
}

// Kind implements Object.
func (fn *Primitive) Kind() Kind { return KPrimitive }

func (fn *Primitive) object() {}

func (fn *Primitive) String() string {
	return String(fn)
}

// Symbols with special meaning to the reader and evaluator.
var (
	True  = Intern("#t")
	False = Intern("#f")
	Quote = Intern("quote")
)

// Bool returns True if ok and False otherwise.
func Bool(ok bool) *Symbol {
	if ok {
		return True
	}
	return False
}

// IsTrue returns true iff v is any value other than the symbol False.
func IsTrue(v Object) bool {
	return v != Object(False)
}

// GetSymbol returns v as a *Symbol.  GetSymbol returns false if v is not a
// symbol.
func GetSymbol(v Object) (*Symbol, bool) {
	sym, ok := v.(*Symbol)
	return sym, ok
}

// GetList returns v as a *Cons.  GetList returns false if v is not a list.
func GetList(v Object) (*Cons, bool) {
	lis, ok := v.(*Cons)
	return lis, ok
}

// GetClosure returns v as a *Closure.  GetClosure returns false if v is not a
// closure.
func GetClosure(v Object) (*Closure, bool) {
	fn, ok := v.(*Closure)
	return fn, ok
}

// GetPrimitive returns v as a *Primitive.  GetPrimitive returns false if v is
// not a primitive.
func GetPrimitive(v Object) (*Primitive, bool) {
	fn, ok := v.(*Primitive)
	return fn, ok
}

// IsCallable returns true if v can be applied to arguments.
func IsCallable(v Object) bool {
	switch v.(type) {
	case *Closure, *Primitive:
		return true
	default:
		return false
	}
}
