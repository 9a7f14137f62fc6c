package gomal

import (
	"bytes"
	"fmt"
	"strings"
)

type ValueType int

const (
	ValueNil ValueType = iota
	ValueBool
	ValueSymbol
	ValueString
	ValueInt
	ValueList
	ValueVector
	ValueMap
	ValueClosure
	ValueNative
)

var valueTypeNames = [...]string{
	ValueNil:     "nil",
	ValueBool:    "boolean",
	ValueSymbol:  "symbol",
	ValueString:  "string",
	ValueInt:     "integer",
	ValueList:    "list",
	ValueVector:  "vector",
	ValueMap:     "map",
	ValueClosure: "function",
	ValueNative:  "builtin",
}

func (t ValueType) String() string {
	if t < 0 || int(t) >= len(valueTypeNames) {
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
	return valueTypeNames[t]
}

// Value is an immutable tagged value. v holds the bool, int64 or string
// payload of atoms; seq holds the elements of lists, vectors and maps.
type Value struct {
	t   ValueType
	v   interface{}
	seq []*Value
	fn  *Closure
}

// Closure is a user function. Env is shared with the defining scope, so
// later definitions in that scope are visible when the body runs.
type Closure struct {
	Env    *Env
	Params []string
	Body   *Value
}

var (
	nilValue   = &Value{t: ValueNil}
	trueValue  = &Value{t: ValueBool, v: true}
	falseValue = &Value{t: ValueBool, v: false}
)

func Nil() *Value   { return nilValue }
func True() *Value  { return trueValue }
func False() *Value { return falseValue }

func Bool(b bool) *Value {
	if b {
		return trueValue
	}
	return falseValue
}

func Symbol(name string) *Value {
	return &Value{t: ValueSymbol, v: name}
}

func String(text string) *Value {
	return &Value{t: ValueString, v: text}
}

func Int(i int64) *Value {
	return &Value{t: ValueInt, v: i}
}

func List(items ...*Value) *Value {
	return newSeq(ValueList, items)
}

func Vector(items ...*Value) *Value {
	return newSeq(ValueVector, items)
}

// Map builds a map literal from alternating keys and values. The
// pairing is not validated.
func Map(items ...*Value) *Value {
	return newSeq(ValueMap, items)
}

func newSeq(t ValueType, items []*Value) *Value {
	seq := make([]*Value, len(items))
	copy(seq, items)
	return &Value{t: t, seq: seq}
}

func NewClosure(env *Env, params []string, body *Value) *Value {
	p := make([]string, len(params))
	copy(p, params)
	return &Value{
		t:  ValueClosure,
		fn: &Closure{Env: env, Params: p, Body: body},
	}
}

// Native is a reference to a function in the native registry.
func Native(name string) *Value {
	return &Value{t: ValueNative, v: name}
}

func (v *Value) Type() ValueType {
	if v == nil {
		return ValueNil
	}
	return v.t
}

func (v *Value) IsNil() bool {
	return v.Type() == ValueNil
}

func (v *Value) Int() (int64, bool) {
	if v.Type() != ValueInt {
		return 0, false
	}
	return v.v.(int64), true
}

func (v *Value) Str() (string, bool) {
	if v.Type() != ValueString {
		return "", false
	}
	return v.v.(string), true
}

// Name returns the name of a symbol or native reference.
func (v *Value) Name() (string, bool) {
	switch v.Type() {
	case ValueSymbol, ValueNative:
		return v.v.(string), true
	}
	return "", false
}

func (v *Value) isSymbol(name string) bool {
	return v.Type() == ValueSymbol && v.v.(string) == name
}

// Items returns the elements of a list, vector or map. The returned
// slice is shared and must not be modified.
func (v *Value) Items() []*Value {
	if v == nil {
		return nil
	}
	return v.seq
}

func (v *Value) Len() int {
	return len(v.Items())
}

func (v *Value) Closure() (*Closure, bool) {
	if v.Type() != ValueClosure {
		return nil, false
	}
	return v.fn, true
}

// Equal reports structural equality. Tags must match, so a list never
// equals a vector with the same elements. Closures are equal only to
// themselves.
func (v *Value) Equal(o *Value) bool {
	if v.Type() != o.Type() {
		return false
	}
	switch v.Type() {
	case ValueNil:
		return true
	case ValueList, ValueVector, ValueMap:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case ValueClosure:
		return v.fn == o.fn
	}
	return v.v == o.v
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func (v *Value) String() string {
	var buf bytes.Buffer
	v.print(&buf)
	return buf.String()
}

func (v *Value) print(buf *bytes.Buffer) {
	switch v.Type() {
	case ValueNil:
		buf.WriteString("nil")
	case ValueBool:
		fmt.Fprint(buf, v.v.(bool))
	case ValueInt:
		fmt.Fprint(buf, v.v.(int64))
	case ValueSymbol:
		buf.WriteString(v.v.(string))
	case ValueString:
		buf.WriteByte('"')
		stringEscaper.WriteString(buf, v.v.(string))
		buf.WriteByte('"')
	case ValueList:
		printSeq(buf, '(', ')', v.seq)
	case ValueVector:
		printSeq(buf, '[', ']', v.seq)
	case ValueMap:
		printSeq(buf, '{', '}', v.seq)
	case ValueClosure:
		buf.WriteString("#<function>")
	case ValueNative:
		fmt.Fprintf(buf, "#<builtin %s>", v.v)
	}
}

func printSeq(buf *bytes.Buffer, open, close byte, seq []*Value) {
	buf.WriteByte(open)
	for i, item := range seq {
		if i > 0 {
			buf.WriteByte(' ')
		}
		item.print(buf)
	}
	buf.WriteByte(close)
}
