package gomal

// Eval evaluates forms in order in e and returns the value of the last
// one, or nil when there are none. Definitions made before a failing form
// stay in effect.
func (e *Env) Eval(forms ...*Value) (*Value, error) {
	ret := Nil()
	for _, form := range forms {
		var err error
		ret, err = Eval(e, form)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Eval evaluates expr in env.
func Eval(env *Env, expr *Value) (*Value, error) {
	switch expr.Type() {
	case ValueSymbol:
		name, _ := expr.Name()
		v, ok := env.Lookup(name)
		if !ok {
			return nil, evalError(SymbolNotFound, name)
		}
		return v, nil
	case ValueList:
		return evalList(env, expr)
	case ValueVector, ValueMap:
		return nil, evalError(UnsupportedExpression, expr.Type().String())
	}
	return expr, nil
}

func evalList(env *Env, expr *Value) (*Value, error) {
	list := expr.Items()
	if len(list) == 0 {
		return expr, nil
	}
	if head := list[0]; head.Type() == ValueSymbol {
		name, _ := head.Name()
		switch name {
		case "def!":
			return doDef(env, list)
		case "let*":
			return doLetStar(env, list)
		case "fn*":
			return doFn(env, list)
		case "do":
			return doDo(env, list)
		}
	}

	vals, err := evalSeq(env, list)
	if err != nil {
		return nil, err
	}
	return apply(env, vals[0], vals[1:])
}

func evalSeq(env *Env, list []*Value) ([]*Value, error) {
	vals := make([]*Value, 0, len(list))
	for _, item := range list {
		v, err := Eval(env, item)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func apply(env *Env, fn *Value, args []*Value) (*Value, error) {
	switch fn.Type() {
	case ValueNative, ValueSymbol:
		name, _ := fn.Name()
		builtin, ok := env.Native(name)
		if !ok {
			return nil, evalError(FunctionUndefined, name)
		}
		return builtin(args)
	case ValueClosure:
		c, _ := fn.Closure()
		if len(args) != len(c.Params) {
			return nil, ErrInvalidArgs
		}
		scope := NewEnv(c.Env)
		for i, param := range c.Params {
			scope.Define(param, args[i])
		}
		return Eval(scope, c.Body)
	}
	return nil, evalError(BadFunctionDesignator, fn.String())
}

// (def! name expr)
func doDef(env *Env, list []*Value) (*Value, error) {
	if len(list) != 3 {
		return nil, ErrInvalidArgs
	}
	if list[1].Type() != ValueSymbol {
		return nil, ErrNotASymbol
	}
	v, err := Eval(env, list[2])
	if err != nil {
		return nil, err
	}
	name, _ := list[1].Name()
	env.Define(name, v)
	return v, nil
}

// (let* (name expr ...) body)
//
// Bindings are evaluated in the new frame, so each one sees those before it.
func doLetStar(env *Env, list []*Value) (*Value, error) {
	if len(list) != 3 {
		return nil, ErrInvalidArgs
	}
	if list[1].Type() != ValueList {
		return nil, ErrNotAList
	}
	bindings := list[1].Items()
	if len(bindings)%2 != 0 {
		return nil, ErrInvalidArgs
	}

	scope := NewEnv(env)
	for i := 0; i < len(bindings); i += 2 {
		if bindings[i].Type() != ValueSymbol {
			return nil, ErrNotASymbol
		}
		v, err := Eval(scope, bindings[i+1])
		if err != nil {
			return nil, err
		}
		name, _ := bindings[i].Name()
		scope.Define(name, v)
	}
	return Eval(scope, list[2])
}

// (fn* (param ...) body)
func doFn(env *Env, list []*Value) (*Value, error) {
	if len(list) != 3 {
		return nil, ErrInvalidArgs
	}
	if list[1].Type() != ValueList {
		return nil, ErrNotAList
	}
	var params []string
	for _, p := range list[1].Items() {
		name, ok := p.Name()
		if !ok || p.Type() != ValueSymbol {
			return nil, ErrNotASymbol
		}
		params = append(params, name)
	}
	return NewClosure(env, params, list[2]), nil
}

// (do expr ...)
func doDo(env *Env, list []*Value) (*Value, error) {
	return env.Eval(list[1:]...)
}
