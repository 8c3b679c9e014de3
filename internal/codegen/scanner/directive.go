package scanner

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/Alia5/scriptmeta/meta"
)

// DirectivePrefix starts every script directive comment.
const DirectivePrefix = "//scriptmeta:"

// DirectiveError is a misplaced or malformed directive.
type DirectiveError struct {
	Pos token.Position
	Msg string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func hasDirective(g *ast.CommentGroup) bool {
	return firstDirective(g) != nil
}

func firstDirective(g *ast.CommentGroup) *ast.Comment {
	for _, c := range g.List {
		if strings.HasPrefix(c.Text, DirectivePrefix) {
			return c
		}
	}
	return nil
}

// parseDoc reads the directives of one doc comment. It returns nil when the
// comment holds no script directive.
func parseDoc(fset *token.FileSet, doc *ast.CommentGroup) (*ScriptDecl, error) {
	var (
		sd   *ScriptDecl
		keys = map[string]bool{}
	)
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, DirectivePrefix) {
			continue
		}
		fail := func(format string, args ...any) error {
			return &DirectiveError{Pos: fset.Position(c.Slash), Msg: fmt.Sprintf(format, args...)}
		}

		verb, rest := splitVerb(strings.TrimPrefix(c.Text, DirectivePrefix))
		args, err := splitArgs(rest)
		if err != nil {
			return nil, fail("%v", err)
		}

		switch verb {
		case "script":
			if sd != nil {
				return nil, fail("duplicate script directive")
			}
			sd = &ScriptDecl{Params: []ParamDecl{}}
			for _, a := range args {
				switch a.key {
				case "name":
					if a.value == "" {
						return nil, fail("name must not be empty")
					}
					sd.Name = a.value
				default:
					return nil, fail(`unsupported argument %q (only name="..." is supported)`, a.key)
				}
			}
		case "param":
			if sd == nil {
				return nil, fail("param directive must follow a script directive")
			}
			p, err := paramFromArgs(args)
			if err != nil {
				return nil, fail("%v", err)
			}
			if keys[p.Key] {
				return nil, fail("duplicate param key %q", p.Key)
			}
			keys[p.Key] = true
			sd.Params = append(sd.Params, p)
		default:
			return nil, fail("unknown directive %q (expected script or param)", verb)
		}
	}
	return sd, nil
}

func paramFromArgs(args []arg) (ParamDecl, error) {
	var (
		p        ParamDecl
		hasLabel bool
		typeName string
	)
	for _, a := range args {
		switch a.key {
		case "key":
			p.Key = a.value
		case "label":
			p.Label = a.value
			hasLabel = true
		case "type":
			typeName = a.value
		case "default":
			d := a.value
			p.Default = &d
		default:
			return ParamDecl{}, fmt.Errorf("unsupported param argument %q (expected key, label, type or default)", a.key)
		}
	}
	if p.Key == "" {
		return ParamDecl{}, errors.New("param is missing key")
	}
	if typeName == "" {
		return ParamDecl{}, fmt.Errorf("param %q is missing type", p.Key)
	}
	ty, ok := meta.ParseParamType(typeName)
	if !ok {
		return ParamDecl{}, fmt.Errorf("param %q has unknown type %q (expected one of %v)", p.Key, typeName, meta.ParamTypes)
	}
	p.Type = ty
	if !hasLabel {
		p.Label = p.Key
	}
	return p, nil
}

type arg struct {
	key   string
	value string
}

// splitArgs parses space separated key=value pairs. Values are either bare
// words or Go string literals.
func splitArgs(s string) ([]arg, error) {
	var (
		out  []arg
		seen = map[string]bool{}
	)
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return out, nil
		}

		eq := strings.IndexAny(s, "= \t")
		if eq <= 0 || s[eq] != '=' {
			word, _, _ := strings.Cut(s, " ")
			return nil, fmt.Errorf("expected key=value, found %q", word)
		}
		key := s[:eq]
		s = s[eq+1:]
		if seen[key] {
			return nil, fmt.Errorf("duplicate argument %q", key)
		}
		seen[key] = true

		var value string
		switch {
		case s == "" || s[0] == ' ' || s[0] == '\t':
			return nil, fmt.Errorf("argument %q has no value", key)
		case s[0] == '"' || s[0] == '`':
			end := literalEnd(s)
			if end < 0 {
				return nil, fmt.Errorf("argument %q: unterminated string", key)
			}
			v, err := strconv.Unquote(s[:end])
			if err != nil {
				return nil, fmt.Errorf("argument %q: malformed string %s", key, s[:end])
			}
			value = v
			s = s[end:]
			if s != "" && s[0] != ' ' && s[0] != '\t' {
				return nil, fmt.Errorf("argument %q: unexpected text after string", key)
			}
		default:
			end := strings.IndexAny(s, " \t")
			if end < 0 {
				end = len(s)
			}
			value = s[:end]
			if strings.ContainsAny(value, "\"`") {
				return nil, fmt.Errorf("argument %q: quote inside bare value %s", key, value)
			}
			s = s[end:]
		}
		out = append(out, arg{key: key, value: value})
	}
}

// literalEnd returns the index just past the string literal that starts s,
// or -1 if it is not terminated.
func literalEnd(s string) int {
	quote := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if quote == '"' {
				i++
			}
		case quote:
			return i + 1
		}
	}
	return -1
}

// splitVerb cuts a directive body at its first space or tab.
func splitVerb(body string) (verb, rest string) {
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		return body[:i], body[i+1:]
	}
	return body, ""
}
