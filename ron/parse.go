package ron

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxError reports malformed input. Line and Col are 1-based; Col counts
// bytes.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ron: %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse reads exactly one value from src. Whitespace, line comments and
// block comments may appear between tokens and trailing commas are allowed.
func Parse(src string) (Value, error) {
	p := &parser{src: src}
	p.skip()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if err := p.skipChecked(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %q after value", p.peek())
	}
	return v, nil
}

// maxDepth bounds how deeply values may nest.
const maxDepth = 128

type parser struct {
	src   string
	pos   int
	err   error
	depth int
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	line := 1 + strings.Count(p.src[:p.pos], "\n")
	col := p.pos + 1
	if i := strings.LastIndexByte(p.src[:p.pos], '\n'); i >= 0 {
		col = p.pos - i
	}
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// skip advances over whitespace and comments. An unterminated block comment
// is recorded and surfaced by skipChecked.
func (p *parser) skip() {
	for !p.eof() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case strings.HasPrefix(p.src[p.pos:], "//"):
			end := strings.IndexByte(p.src[p.pos:], '\n')
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 1
		case strings.HasPrefix(p.src[p.pos:], "/*"):
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				if p.err == nil {
					p.err = p.errorf("unterminated block comment")
				}
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			return
		}
	}
}

func (p *parser) skipChecked() error {
	p.skip()
	if p.err != nil {
		return p.err
	}
	return nil
}

func (p *parser) expect(c byte) error {
	if err := p.skipChecked(); err != nil {
		return err
	}
	if p.eof() {
		return p.errorf("expected %q, found end of input", c)
	}
	if p.peek() != c {
		return p.errorf("expected %q, found %q", c, p.peek())
	}
	p.pos++
	return nil
}

func (p *parser) value() (Value, error) {
	if err := p.skipChecked(); err != nil {
		return nil, err
	}
	if p.depth >= maxDepth {
		return nil, p.errorf("nesting exceeds %d levels", maxDepth)
	}
	p.depth++
	defer func() { p.depth-- }()

	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}
	switch c := p.peek(); {
	case c == '"':
		s, err := p.str()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case c == '[':
		return p.list()
	case c == '(':
		return p.structBody("")
	case c == '_' || isLetter(c):
		return p.identValue()
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '_' || isLetter(c) || isDigit(c) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) identValue() (Value, error) {
	name := p.ident()
	if err := p.skipChecked(); err != nil {
		return nil, err
	}
	if p.eof() || p.peek() != '(' {
		if name == "None" {
			return None, nil
		}
		return Ident(name), nil
	}
	if name != "Some" {
		return p.structBody(name)
	}

	p.pos++ // (
	inner, err := p.value()
	if err != nil {
		return nil, err
	}
	if err := p.skipChecked(); err != nil {
		return nil, err
	}
	if !p.eof() && p.peek() == ',' {
		p.pos++
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return Some(inner), nil
}

func (p *parser) structBody(name string) (Value, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	st := Struct{Name: name}
	seen := map[string]bool{}
	for {
		if err := p.skipChecked(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorf("unterminated struct %s", name)
		}
		if p.peek() == ')' {
			p.pos++
			return st, nil
		}
		if c := p.peek(); c != '_' && !isLetter(c) {
			return nil, p.errorf("expected field name, found %q", c)
		}
		fieldPos := p.pos
		field := p.ident()
		if seen[field] {
			p.pos = fieldPos
			return nil, p.errorf("duplicate field %q", field)
		}
		seen[field] = true
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, Field{Name: field, Value: v})

		if err := p.skipChecked(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorf("unterminated struct %s", name)
		}
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
		default:
			return nil, p.errorf("expected ',' or ')' after field %q, found %q", field, p.peek())
		}
	}
}

func (p *parser) list() (Value, error) {
	p.pos++ // [
	out := List{}
	for {
		if err := p.skipChecked(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorf("unterminated list")
		}
		if p.peek() == ']' {
			p.pos++
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		if err := p.skipChecked(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorf("unterminated list")
		}
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return nil, p.errorf("expected ',' or ']' in list, found %q", p.peek())
		}
	}
}

func (p *parser) str() (string, error) {
	start := p.pos
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return "", p.errorf("unterminated string")
		}
		c := p.peek()
		switch {
		case c == '"':
			p.pos++
			return b.String(), nil
		case c == '\\':
			r, err := p.escape()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if r == utf8.RuneError && size == 1 {
				return "", p.errorf("invalid UTF-8 in string")
			}
			b.WriteString(p.src[p.pos : p.pos+size])
			p.pos += size
		}
	}
}

func (p *parser) escape() (rune, error) {
	p.pos++ // backslash
	if p.eof() {
		return 0, p.errorf("unterminated escape")
	}
	c := p.peek()
	p.pos++
	switch c {
	case '"', '\\', '/', '\'':
		return rune(c), nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '0':
		return 0, nil
	case 'u':
		if p.eof() || p.peek() != '{' {
			return 0, p.errorf(`expected '{' after \u`)
		}
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end < 0 {
			return 0, p.errorf(`unterminated \u{...} escape`)
		}
		digits := p.src[p.pos+1 : p.pos+end]
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || len(digits) == 0 || len(digits) > 6 || !utf8.ValidRune(rune(n)) {
			return 0, p.errorf(`invalid \u{%s} escape`, digits)
		}
		p.pos += end + 1
		return rune(n), nil
	default:
		p.pos--
		return 0, p.errorf("unknown escape \\%c", c)
	}
}
