package gomal

import (
	"errors"
	"fmt"
)

type ParseErrorKind int

const (
	UnterminatedInput ParseErrorKind = iota
	UnterminatedString
	NewlineInString
	UnknownEscapeSequence
	UnexpectedToken
)

// ParseError is returned by the Reader. Char is set for
// UnknownEscapeSequence; Token and Pos for UnexpectedToken.
type ParseError struct {
	Kind  ParseErrorKind
	Char  rune
	Token string
	Pos   int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnterminatedInput:
		return "unexpected end of input"
	case UnterminatedString:
		return "unterminated string"
	case NewlineInString:
		return "newline in string"
	case UnknownEscapeSequence:
		return fmt.Sprintf("unknown escape sequence: \\%c", e.Char)
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token: '%s' (%d)", e.Token, e.Pos)
	}
	return "parse error"
}

func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnterminatedInput     = &ParseError{Kind: UnterminatedInput}
	ErrUnterminatedString    = &ParseError{Kind: UnterminatedString}
	ErrNewlineInString       = &ParseError{Kind: NewlineInString}
	ErrUnknownEscapeSequence = &ParseError{Kind: UnknownEscapeSequence}
	ErrUnexpectedToken       = &ParseError{Kind: UnexpectedToken}
)

// IsIncomplete reports whether err means the input ended inside an open
// list, vector or map, so more input may complete it.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrUnterminatedInput)
}

type EvalErrorKind int

const (
	SymbolNotFound EvalErrorKind = iota
	FunctionUndefined
	BadFunctionDesignator
	NotANumber
	NotASymbol
	NotAList
	InvalidArgs
	UnsupportedExpression
)

var evalErrorText = map[EvalErrorKind]string{
	SymbolNotFound:        "symbol not found",
	FunctionUndefined:     "function undefined",
	BadFunctionDesignator: "bad function designator",
	NotANumber:            "not a number",
	NotASymbol:            "not a symbol",
	NotAList:              "not a list",
	InvalidArgs:           "invalid arguments",
	UnsupportedExpression: "unsupported expression",
}

// EvalError is returned by Eval and by builtins. Name carries the
// offending symbol, function name or printed value when there is one.
type EvalError struct {
	Kind EvalErrorKind
	Name string
}

func (e *EvalError) Error() string {
	if e.Name == "" {
		return evalErrorText[e.Kind]
	}
	return evalErrorText[e.Kind] + ": " + e.Name
}

// Is matches on Kind. A target with a non-empty Name must also match
// the name.
func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	if !ok || t.Kind != e.Kind {
		return false
	}
	return t.Name == "" || t.Name == e.Name
}

var (
	ErrSymbolNotFound        = &EvalError{Kind: SymbolNotFound}
	ErrFunctionUndefined     = &EvalError{Kind: FunctionUndefined}
	ErrBadFunctionDesignator = &EvalError{Kind: BadFunctionDesignator}
	ErrNotANumber            = &EvalError{Kind: NotANumber}
	ErrNotASymbol            = &EvalError{Kind: NotASymbol}
	ErrNotAList              = &EvalError{Kind: NotAList}
	ErrInvalidArgs           = &EvalError{Kind: InvalidArgs}
	ErrUnsupportedExpression = &EvalError{Kind: UnsupportedExpression}
)

func evalError(kind EvalErrorKind, name string) error {
	return &EvalError{Kind: kind, Name: name}
}
