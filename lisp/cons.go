package lisp

// List returns a list containing the elements of v.  The list is assembled
// from the back so that no cell is modified after it is created.
//		List() == Empty
//		List(a, b) == NewCons(a, NewCons(b, Empty))
func List(v ...Object) *Cons {
	lis := Empty
	for i := len(v) - 1; i >= 0; i-- {
		lis = NewCons(v[i], lis)
	}
	return lis
}

// Len returns the number of elements in c.
func (c *Cons) Len() int {
	n := 0
	for ; c != Empty; c = c.tail {
		n++
	}
	return n
}

// Slice collects the elements of c into a slice.
func (c *Cons) Slice() []Object {
	s := make([]Object, 0, c.Len())
	for ; c != Empty; c = c.tail {
		s = append(s, c.head)
	}
	return s
}

// ListIterator iterates through the elements of a list.
type ListIterator struct {
	v    Object
	rest *Cons
}

// NewListIterator returns a ListIterator that will iterate through lis.
func NewListIterator(lis *Cons) *ListIterator {
	return &ListIterator{rest: lis}
}

// Value returns the iteration's current value.  Value will return nil if Next
// has not been called.
func (it *ListIterator) Value() Object {
	return it.v
}

// Rest returns the items remaining to be iterated over.
func (it *ListIterator) Rest() *Cons {
	return it.rest
}

// Next advances the iterator to the next list element.  Next returns false
// when the list has no more elements.
func (it *ListIterator) Next() bool {
	if it.rest == Empty {
		return false
	}
	it.v = it.rest.head
	it.rest = it.rest.tail
	return true
}
