package gomal

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenOpen tokenType = iota
	tokenClose
	tokenQuote
	tokenString
	tokenAtom
)

type token struct {
	t   tokenType
	s   string
	pos int
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		buf: bufio.NewReader(r),
	}
}

// Parser reads forms from a stream. The whole stream is tokenized before
// any form is built, so a failed Parse returns no forms.
type Parser struct {
	buf  *bufio.Reader
	pos  int
	last int
}

// Read parses every form in text.
func Read(text string) ([]*Value, error) {
	return NewParser(strings.NewReader(text)).Parse()
}

// Parse reads to EOF and returns the forms in source order.
func (p *Parser) Parse() ([]*Value, error) {
	tokens, err := p.tokenize()
	if err != nil {
		return nil, err
	}
	var forms []*Value
	for len(tokens) > 0 {
		var form *Value
		form, tokens, err = readForm(tokens)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

func (p *Parser) Pos() int {
	return p.pos
}

func (p *Parser) readRune() (rune, error) {
	r, n, err := p.buf.ReadRune()
	p.pos += n
	p.last = n
	return r, err
}

func (p *Parser) unreadRune() error {
	err := p.buf.UnreadRune()
	if err == nil {
		p.pos -= p.last
	}
	return err
}

func isStructural(r rune) bool {
	return strings.ContainsRune("()[]{}", r)
}

func isQuoteMarker(r rune) bool {
	return strings.ContainsRune("'`~", r)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

func isDelimiter(r rune) bool {
	return isSeparator(r) || isStructural(r) || isQuoteMarker(r) || r == '"' || r == ';'
}

func (p *Parser) tokenize() ([]token, error) {
	var tokens []token
	for {
		start := p.pos
		r, err := p.readRune()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case isSeparator(r):
		case r == ';':
			if err := p.skipComment(); err != nil {
				return nil, err
			}
		case r == '(' || r == '[' || r == '{':
			tokens = append(tokens, token{t: tokenOpen, s: string(r), pos: start})
		case r == ')' || r == ']' || r == '}':
			tokens = append(tokens, token{t: tokenClose, s: string(r), pos: start})
		case isQuoteMarker(r):
			tokens = append(tokens, token{t: tokenQuote, s: string(r), pos: start})
		case r == '"':
			s, err := p.readString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{t: tokenString, s: s, pos: start})
		default:
			p.unreadRune()
			s, err := p.readLiteral()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{t: tokenAtom, s: s, pos: start})
		}
	}
}

func (p *Parser) skipComment() error {
	for {
		r, err := p.readRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

// readString reads the body of a string literal after the opening quote.
func (p *Parser) readString() (string, error) {
	var buf bytes.Buffer
	for {
		r, err := p.readRune()
		if err == io.EOF {
			return "", ErrUnterminatedString
		}
		if err != nil {
			return "", err
		}

		switch r {
		case '"':
			return buf.String(), nil
		case '\n':
			return "", ErrNewlineInString
		case '\\':
			r, err = p.readRune()
			if err == io.EOF {
				return "", ErrUnterminatedString
			}
			if err != nil {
				return "", err
			}
			switch r {
			case '"', '\\':
			case 'n':
				r = '\n'
			default:
				return "", &ParseError{Kind: UnknownEscapeSequence, Char: r}
			}
		}
		buf.WriteRune(r)
	}
}

func (p *Parser) readLiteral() (string, error) {
	var buf bytes.Buffer
	for {
		r, err := p.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if isDelimiter(r) {
			p.unreadRune()
			break
		}
		buf.WriteRune(r)
	}
	return buf.String(), nil
}

var closeFor = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

func readForm(tokens []token) (*Value, []token, error) {
	tok := tokens[0]
	switch tok.t {
	case tokenOpen:
		items, rest, err := readSeq(tokens[1:], closeFor[tok.s])
		if err != nil {
			return nil, nil, err
		}
		switch tok.s {
		case "[":
			return Vector(items...), rest, nil
		case "{":
			return Map(items...), rest, nil
		}
		return List(items...), rest, nil
	case tokenClose, tokenQuote:
		return nil, nil, &ParseError{Kind: UnexpectedToken, Token: tok.s, Pos: tok.pos}
	}
	v, err := readAtom(tok)
	if err != nil {
		return nil, nil, err
	}
	return v, tokens[1:], nil
}

func readSeq(tokens []token, until string) ([]*Value, []token, error) {
	items := []*Value{}
	for len(tokens) > 0 {
		tok := tokens[0]
		if tok.t == tokenClose {
			if tok.s != until {
				return nil, nil, &ParseError{Kind: UnexpectedToken, Token: tok.s, Pos: tok.pos}
			}
			return items, tokens[1:], nil
		}
		item, rest, err := readForm(tokens)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		tokens = rest
	}
	return nil, nil, ErrUnterminatedInput
}

func isIntegerLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func readAtom(tok token) (*Value, error) {
	if tok.t == tokenString {
		return String(tok.s), nil
	}
	switch tok.s {
	case "nil":
		return Nil(), nil
	case "true":
		return True(), nil
	case "false":
		return False(), nil
	}
	if isIntegerLiteral(tok.s) {
		i, err := strconv.ParseInt(tok.s, 10, 64)
		if err != nil {
			return nil, &ParseError{Kind: UnexpectedToken, Token: tok.s, Pos: tok.pos}
		}
		return Int(i), nil
	}
	return Symbol(tok.s), nil
}
