package gomal

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// NewBuiltins returns the native function library. prn writes to w, or
// to os.Stdout when w is nil.
func NewBuiltins(w io.Writer) Registry {
	if w == nil {
		w = os.Stdout
	}
	return Registry{
		"+":      doPlus,
		"-":      doMinus,
		"*":      doMul,
		"=":      doEqual,
		"<":      compareInts(func(a, b int64) bool { return a < b }),
		"<=":     compareInts(func(a, b int64) bool { return a <= b }),
		">":      compareInts(func(a, b int64) bool { return a > b }),
		">=":     compareInts(func(a, b int64) bool { return a >= b }),
		"list":   doList,
		"list?":  doListp,
		"empty?": doEmptyp,
		"count":  doCount,
		"prn":    doPrn(w),
	}
}

func toInt(v *Value) (int64, error) {
	i, ok := v.Int()
	if !ok {
		return 0, evalError(NotANumber, v.String())
	}
	return i, nil
}

func doPlus(args []*Value) (*Value, error) {
	var acc int64
	for _, arg := range args {
		i, err := toInt(arg)
		if err != nil {
			return nil, err
		}
		acc += i
	}
	return Int(acc), nil
}

func doMinus(args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, ErrInvalidArgs
	}
	acc, err := toInt(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return Int(-acc), nil
	}
	for _, arg := range args[1:] {
		i, err := toInt(arg)
		if err != nil {
			return nil, err
		}
		acc -= i
	}
	return Int(acc), nil
}

func doMul(args []*Value) (*Value, error) {
	acc := int64(1)
	for _, arg := range args {
		i, err := toInt(arg)
		if err != nil {
			return nil, err
		}
		acc *= i
	}
	return Int(acc), nil
}

func doEqual(args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, ErrInvalidArgs
	}
	return Bool(args[0].Equal(args[1])), nil
}

func compareInts(cmp func(a, b int64) bool) Builtin {
	return func(args []*Value) (*Value, error) {
		if len(args) != 2 {
			return nil, ErrInvalidArgs
		}
		lhs, err := toInt(args[0])
		if err != nil {
			return nil, err
		}
		rhs, err := toInt(args[1])
		if err != nil {
			return nil, err
		}
		return Bool(cmp(lhs, rhs)), nil
	}
}

func doList(args []*Value) (*Value, error) {
	return List(args...), nil
}

func doListp(args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, ErrInvalidArgs
	}
	return Bool(args[0].Type() == ValueList), nil
}

func doEmptyp(args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, ErrInvalidArgs
	}
	if args[0].Type() != ValueList {
		return nil, evalError(NotAList, args[0].String())
	}
	return Bool(args[0].Len() == 0), nil
}

func doCount(args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, ErrInvalidArgs
	}
	if args[0].Type() != ValueList {
		return nil, evalError(NotAList, args[0].String())
	}
	return Int(int64(args[0].Len())), nil
}

func doPrn(w io.Writer) Builtin {
	return func(args []*Value) (*Value, error) {
		s := make([]string, len(args))
		for i, arg := range args {
			s[i] = arg.String()
		}
		if _, err := fmt.Fprintln(w, strings.Join(s, " ")); err != nil {
			return nil, err
		}
		return Nil(), nil
	}
}
