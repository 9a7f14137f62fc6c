package gomal

// Builtin is a native function. It receives evaluated arguments and must
// not keep references to them after it returns.
type Builtin func(args []*Value) (*Value, error)

// Registry maps names to native functions. It is read-only once a root
// Env has been created from it.
type Registry map[string]Builtin

// Env is one frame of the scope chain. Define writes only to the frame it
// is called on; ancestors are never modified through a child.
type Env struct {
	vars    map[string]*Value
	env     *Env
	natives Registry
}

// NewRootEnv returns a frame with no parent that falls back to natives
// for names not bound anywhere in the chain.
func NewRootEnv(natives Registry) *Env {
	return &Env{
		vars:    make(map[string]*Value),
		natives: natives,
	}
}

// NewEnv returns an empty child frame of parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		vars: make(map[string]*Value),
		env:  parent,
	}
}

func (e *Env) Parent() *Env {
	return e.env
}

func (e *Env) Define(name string, v *Value) {
	e.vars[name] = v
}

// Lookup resolves name through this frame, its ancestors and finally the
// native registry. A native resolves to a Native reference value.
func (e *Env) Lookup(name string) (*Value, bool) {
	curr := e
	for {
		if v, ok := curr.vars[name]; ok {
			return v, true
		}
		if curr.env == nil {
			break
		}
		curr = curr.env
	}
	if _, ok := curr.natives[name]; ok {
		return Native(name), true
	}
	return nil, false
}

// Native returns the registered native function called name.
func (e *Env) Native(name string) (Builtin, bool) {
	root := e
	for root.env != nil {
		root = root.env
	}
	fn, ok := root.natives[name]
	return fn, ok
}
