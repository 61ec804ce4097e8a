package lisp

// PrimitiveDef describes a builtin operation and the number of arguments it
// takes.
type PrimitiveDef struct {
	Name  string
	Arity int
	Fn    func(ip *Interpreter, args []Object, env *Env) (Object, error)
}

var langPrimitives = []*PrimitiveDef{
	{"cons", 2, primCons},
	{"head", 1, primHead},
	{"tail", 1, primTail},
	{"eq?", 2, primEqP},
	{"symbol?", 1, primSymbolP},
	{"list?", 1, primListP},
	{"procedure?", 1, primProcedureP},
	{"if", 3, primIf},
	{"quote", 1, primQuote},
	{"define", 2, primDefine},
	{"lambda", 2, primLambda},
	{"apply", 2, primApply},
}

// DefaultPrimitives returns the language primitives bound by New.
func DefaultPrimitives() []*PrimitiveDef {
	defs := make([]*PrimitiveDef, len(langPrimitives))
	copy(defs, langPrimitives)
	return defs
}

// AddPrimitives binds the given primitives to their names in the global
// environment.  When called with no arguments AddPrimitives adds
// DefaultPrimitives.
func (ip *Interpreter) AddPrimitives(defs ...*PrimitiveDef) {
	if len(defs) == 0 {
		defs = langPrimitives
	}
	for _, def := range defs {
		p := NewPrimitive(def)
		ip.global.Insert(p.Name, p)
	}
}

// NewPrimitive returns a Primitive that checks its argument count before
// calling def.Fn.
func NewPrimitive(def *PrimitiveDef) *Primitive {
	name, arity, fn := def.Name, def.Arity, def.Fn
	return &Primitive{
		Name: Intern(name),
		Fn: func(ip *Interpreter, args *Cons, env *Env) (Object, error) {
			argv := args.Slice()
			if len(argv) != arity {
				return nil, arityErrorf(name, arity, len(argv))
			}
			return fn(ip, argv, env)
		},
	}
}

func primCons(ip *Interpreter, args []Object, env *Env) (Object, error) {
	head, err := ip.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	v, err := ip.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	tail, ok := GetList(v)
	if !ok {
		return nil, Errorf(TypeError, "cons: second argument is not a list: %s", String(v))
	}
	return NewCons(head, tail), nil
}

func evalNonEmpty(ip *Interpreter, name string, arg Object, env *Env) (*Cons, error) {
	v, err := ip.Eval(arg, env)
	if err != nil {
		return nil, err
	}
	lis, ok := GetList(v)
	if !ok {
		return nil, Errorf(TypeError, "%s: argument is not a list: %s", name, String(v))
	}
	if lis.IsEmpty() {
		return nil, Errorf(EmptyListError, "%s: argument is the empty list", name)
	}
	return lis, nil
}

func primHead(ip *Interpreter, args []Object, env *Env) (Object, error) {
	lis, err := evalNonEmpty(ip, "head", args[0], env)
	if err != nil {
		return nil, err
	}
	return lis.head, nil
}

func primTail(ip *Interpreter, args []Object, env *Env) (Object, error) {
	lis, err := evalNonEmpty(ip, "tail", args[0], env)
	if err != nil {
		return nil, err
	}
	return lis.tail, nil
}

func primEqP(ip *Interpreter, args []Object, env *Env) (Object, error) {
	a, err := ip.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	b, err := ip.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	return Bool(a == b), nil
}

func kindPredicate(kind Kind) func(*Interpreter, []Object, *Env) (Object, error) {
	return func(ip *Interpreter, args []Object, env *Env) (Object, error) {
		v, err := ip.Eval(args[0], env)
		if err != nil {
			return nil, err
		}
		return Bool(v.Kind() == kind), nil
	}
}

var (
	primSymbolP    = kindPredicate(KSymbol)
	primListP      = kindPredicate(KList)
	primProcedureP = kindPredicate(KClosure)
)

// primIf evaluates only the branch selected by its condition.  Every value
// other than #f selects the first branch.
func primIf(ip *Interpreter, args []Object, env *Env) (Object, error) {
	cond, err := ip.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	if IsTrue(cond) {
		return ip.Eval(args[1], env)
	}
	return ip.Eval(args[2], env)
}

func primQuote(ip *Interpreter, args []Object, env *Env) (Object, error) {
	return args[0], nil
}

// primDefine binds in env itself.  Inside a closure body that is the call's
// own frame, not the global environment.
func primDefine(ip *Interpreter, args []Object, env *Env) (Object, error) {
	sym, ok := GetSymbol(args[0])
	if !ok {
		return nil, Errorf(TypeError, "define: first argument is not a symbol: %s", String(args[0]))
	}
	if sym.numeral {
		return nil, Errorf(TypeError, "define: cannot bind a numeral: %s", sym.name)
	}
	v, err := ip.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	env.Insert(sym, v)
	return True, nil
}

func primLambda(ip *Interpreter, args []Object, env *Env) (Object, error) {
	params, ok := GetList(args[0])
	if !ok {
		return nil, Errorf(TypeError, "lambda: parameter list is not a list: %s", String(args[0]))
	}
	for it := NewListIterator(params); it.Next(); {
		sym, ok := GetSymbol(it.Value())
		if !ok {
			return nil, Errorf(TypeError, "lambda: parameter is not a symbol: %s", String(it.Value()))
		}
		if sym.numeral {
			return nil, Errorf(TypeError, "lambda: cannot bind a numeral: %s", sym.name)
		}
	}
	return &Closure{
		Params: params,
		Body:   args[1],
		Env:    env,
	}, nil
}

func primApply(ip *Interpreter, args []Object, env *Env) (Object, error) {
	fn, err := ip.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	if !IsCallable(fn) {
		return nil, Errorf(TypeError, "apply: first argument is not a procedure: %s", String(fn))
	}
	v, err := ip.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	lis, ok := GetList(v)
	if !ok {
		return nil, Errorf(TypeError, "apply: second argument is not a list: %s", String(v))
	}
	return ip.Invoke(fn, lis, env)
}
