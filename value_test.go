package gomal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	atoms := []*Value{
		Nil(),
		True(),
		False(),
		Int(0),
		Int(42),
		Int(-7),
		Int(9223372036854775807),
		String(""),
		String("hello world"),
		String(`with "quotes" and \ slash`),
		String("two\nlines"),
		Symbol("abc"),
		Symbol("+"),
	}
	for _, v := range atoms {
		forms, err := Read(v.String())
		if err != nil {
			t.Errorf("%s: %v", v, err)
			continue
		}
		if diff := cmp.Diff([]*Value{v}, forms); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", v, diff)
		}
	}
}

func TestValueString(t *testing.T) {
	env := NewRootEnv(nil)
	tests := []struct {
		v    *Value
		want string
	}{
		{List(), "()"},
		{List(Nil(), True(), False(), List(), Symbol("hello"), String("world"), Int(123)), `(nil true false () hello "world" 123)`},
		{Vector(), "[]"},
		{Vector(Int(1), Vector(Int(2))), "[1 [2]]"},
		{Map(), "{}"},
		{Map(String("a"), Int(1)), `{"a" 1}`},
		{NewClosure(env, []string{"x"}, Symbol("x")), "#<function>"},
		{Native("+"), "#<builtin +>"},
	}
	for _, test := range tests {
		if got := test.v.String(); got != test.want {
			t.Errorf("want %q but got %q", test.want, got)
		}
	}
}

func TestValueEqual(t *testing.T) {
	env := NewRootEnv(nil)
	f := NewClosure(env, nil, Nil())
	tests := []struct {
		a, b *Value
		want bool
	}{
		{Nil(), Nil(), true},
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{String("a"), Symbol("a"), false},
		{Symbol("a"), Native("a"), false},
		{List(Int(1), List(Int(2))), List(Int(1), List(Int(2))), true},
		{List(Int(1)), Vector(Int(1)), false},
		{List(Int(1)), List(Int(1), Int(2)), false},
		{Map(Int(1), Int(2)), Map(Int(1), Int(2)), true},
		{f, f, true},
		{f, NewClosure(env, nil, Nil()), false},
		{Bool(true), True(), true},
		{False(), Nil(), false},
	}
	for _, test := range tests {
		if got := test.a.Equal(test.b); got != test.want {
			t.Errorf("%s = %s: want %v but got %v", test.a, test.b, test.want, got)
		}
	}
}

func TestSequenceCopy(t *testing.T) {
	items := []*Value{Int(1), Int(2)}
	l := List(items...)
	items[0] = Int(9)
	if diff := cmp.Diff(List(Int(1), Int(2)), l); diff != "" {
		t.Errorf("list changed with its source slice: %s", diff)
	}
}

func TestAccessors(t *testing.T) {
	if i, ok := Int(3).Int(); !ok || i != 3 {
		t.Errorf("Int: %v %v", i, ok)
	}
	if _, ok := String("3").Int(); ok {
		t.Error("string must not be an integer")
	}
	if s, ok := String("x").Str(); !ok || s != "x" {
		t.Errorf("Str: %v %v", s, ok)
	}
	if n, ok := Native("count").Name(); !ok || n != "count" {
		t.Errorf("Name: %v %v", n, ok)
	}
	if _, ok := Int(1).Closure(); ok {
		t.Error("integer must not be a closure")
	}
	if got := ValueVector.String(); got != "vector" {
		t.Errorf("want vector but got %q", got)
	}
}
