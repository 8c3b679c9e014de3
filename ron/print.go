package ron

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultIndent is the indentation unit used by Marshal.
const DefaultIndent = "  "

// Marshal pretty-prints v with DefaultIndent.
func Marshal(v Value) (string, error) {
	return MarshalIndent(v, DefaultIndent)
}

// MarshalIndent pretty-prints v using indent for each nesting level. The
// result has no trailing newline. Strings that are not valid UTF-8 cannot be
// represented and make the whole call fail.
func MarshalIndent(v Value, indent string) (string, error) {
	p := printer{indent: indent}
	if err := p.value(v, 0); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

type printer struct {
	b      strings.Builder
	indent string
}

func (p *printer) newline(depth int) {
	p.b.WriteByte('\n')
	for range depth {
		p.b.WriteString(p.indent)
	}
}

func (p *printer) value(v Value, depth int) error {
	switch v := v.(type) {
	case Struct:
		if v.Name != "" && !isIdent(v.Name) {
			return fmt.Errorf("ron: invalid struct name %q", v.Name)
		}
		p.b.WriteString(v.Name)
		p.b.WriteByte('(')
		if len(v.Fields) == 0 {
			p.b.WriteByte(')')
			return nil
		}
		for _, f := range v.Fields {
			if !isIdent(f.Name) {
				return fmt.Errorf("ron: invalid field name %q", f.Name)
			}
			p.newline(depth + 1)
			p.b.WriteString(f.Name)
			p.b.WriteString(": ")
			if err := p.value(f.Value, depth+1); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			p.b.WriteByte(',')
		}
		p.newline(depth)
		p.b.WriteByte(')')
	case List:
		if len(v) == 0 {
			p.b.WriteString("[]")
			return nil
		}
		p.b.WriteByte('[')
		for i, item := range v {
			p.newline(depth + 1)
			if err := p.value(item, depth+1); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
			p.b.WriteByte(',')
		}
		p.newline(depth)
		p.b.WriteByte(']')
	case String:
		if !utf8.ValidString(string(v)) {
			return fmt.Errorf("ron: string %q is not valid UTF-8", string(v))
		}
		p.b.WriteString(Quote(string(v)))
	case Ident:
		if !isIdent(string(v)) {
			return fmt.Errorf("ron: invalid identifier %q", string(v))
		}
		p.b.WriteString(string(v))
	case Option:
		if v.Value == nil {
			p.b.WriteString("None")
			return nil
		}
		p.b.WriteString("Some(")
		if err := p.value(v.Value, depth); err != nil {
			return err
		}
		p.b.WriteByte(')')
	case nil:
		return fmt.Errorf("ron: nil value")
	default:
		return fmt.Errorf("ron: unsupported value %T", v)
	}
	return nil
}

// Quote returns s as a double-quoted string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || isLetter(c) || (i > 0 && isDigit(c)) {
			continue
		}
		return false
	}
	return true
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
