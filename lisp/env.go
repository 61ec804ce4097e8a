package lisp

// Env is a lexical environment frame.  Env contains local symbol bindings and
// a parent environment.  Env is in the scope of its parent's bindings.
//
// Frames can gain bindings after they are created (see Insert) and are shared
// by every closure created within them.
type Env struct {
	parent   *Env
	root     *Env
	bindings *bindings
}

// NewEnv returns a new environment.  If parent is nil a root Env will be
// returned.
func NewEnv(parent *Env) *Env {
	return newEnv(parent, newBindings(0))
}

func newEnv(parent *Env, b *bindings) *Env {
	env := &Env{
		parent:   parent,
		bindings: b,
	}
	if parent != nil {
		env.root = parent.Root()
	}
	return env
}

// Extend returns a child of parent binding each of params to the value at the
// same position in args.  Extend returns an ArityError if the lists differ in
// length and a TypeError if any parameter is not a symbol.
func Extend(parent *Env, params, args *Cons) (*Env, error) {
	b, err := zipBindings(params, args)
	if err != nil {
		return nil, err
	}
	return newEnv(parent, b), nil
}

// Parent returns the enclosing environment of env, or nil for a root Env.
func (env *Env) Parent() *Env {
	return env.parent
}

// Root returns the outermost environment enclosing env.
func (env *Env) Root() *Env {
	if env.root != nil {
		return env.root
	}
	return env
}

// Len returns the number of local bindings in env.
func (env *Env) Len() int {
	return env.bindings.Len()
}

// Symbols returns the symbols bound locally in env in the order they were
// first bound.
func (env *Env) Symbols() []*Symbol {
	return env.bindings.Symbols()
}

// Lookup returns the value bound to sym in the innermost frame of env that
// binds it.
func (env *Env) Lookup(sym *Symbol) (Object, bool) {
	for ; env != nil; env = env.parent {
		v, ok := env.bindings.Get(sym)
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Find is like Lookup but returns an UndefinedSymbolError if sym is not bound.
func (env *Env) Find(sym *Symbol) (Object, error) {
	v, ok := env.Lookup(sym)
	if !ok {
		return nil, Errorf(UndefinedSymbolError, "%s", sym.name)
	}
	return v, nil
}

// Insert binds sym to v in env itself, shadowing any binding in a parent.
func (env *Env) Insert(sym *Symbol, v Object) {
	env.bindings.Put(sym, v)
}
