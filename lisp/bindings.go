package lisp

type bindingPair struct {
	name  *Symbol
	value Object
}

// bindings is an ordered set of variable bindings for one frame.
type bindings struct {
	pairs []bindingPair
	index map[*Symbol]int
}

func newBindings(n int) *bindings {
	return &bindings{
		pairs: make([]bindingPair, 0, n),
		index: make(map[*Symbol]int, n),
	}
}

// Len returns the number of symbols bound.
func (s *bindings) Len() int {
	return len(s.pairs)
}

// Get returns the value bound to variable.
func (s *bindings) Get(variable *Symbol) (Object, bool) {
	i, ok := s.index[variable]
	if !ok {
		return nil, false
	}
	return s.pairs[i].value, true
}

// Put binds variable to v.  If variable was previously bound its entry will be
// updated in place.  Otherwise Put creates a new variable binding.
func (s *bindings) Put(variable *Symbol, v Object) {
	i, ok := s.index[variable]
	if ok {
		s.pairs[i].value = v
		return
	}
	s.index[variable] = len(s.pairs)
	s.pairs = append(s.pairs, bindingPair{variable, v})
}

// Symbols returns the bound variables in the order they were first bound.
func (s *bindings) Symbols() []*Symbol {
	syms := make([]*Symbol, len(s.pairs))
	for i := range s.pairs {
		syms[i] = s.pairs[i].name
	}
	return syms
}

// zipBindings takes a list of variable names with a list of variable values
// and returns the corresponding bindings.  The lists must be of equal length
// and every variable must be a symbol.
func zipBindings(vars, vals *Cons) (*bindings, error) {
	n, m := vars.Len(), vals.Len()
	if n != m {
		return nil, Errorf(ArityError, "expected %d arguments (got %d)", n, m)
	}
	s := newBindings(n)
	itVars := NewListIterator(vars)
	itVals := NewListIterator(vals)
	for itVars.Next() && itVals.Next() {
		name, ok := GetSymbol(itVars.Value())
		if !ok {
			return nil, Errorf(TypeError, "parameter is not a symbol: %s", String(itVars.Value()))
		}
		s.Put(name, itVals.Value())
	}
	return s, nil
}
