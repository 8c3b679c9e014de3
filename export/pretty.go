package export

import (
	"fmt"

	"github.com/Alia5/scriptmeta/meta"
	"github.com/Alia5/scriptmeta/ron"
)

const (
	schemaStruct = "Schema"
	scriptStruct = "ScriptMeta"
	paramStruct  = "ParamMeta"
)

// Pretty renders s in the canonical record notation. Equal schemas always
// render to identical text. An error means s holds data the notation cannot
// represent (text that is not valid UTF-8, or a parameter type that is not a
// plain identifier); nothing is ever silently dropped.
func Pretty(s meta.Schema) (string, error) {
	text, err := ron.Marshal(toValue(s))
	if err != nil {
		return "", fmt.Errorf("export schema: %w", err)
	}
	return text, nil
}

// ParsePretty is the inverse of Pretty.
func ParsePretty(text string) (meta.Schema, error) {
	v, err := ron.Parse(text)
	if err != nil {
		return meta.Schema{}, err
	}
	return fromValue(v)
}

func toValue(s meta.Schema) ron.Value {
	scripts := make(ron.List, 0, len(s.Scripts))
	for _, sc := range s.Scripts {
		params := make(ron.List, 0, len(sc.Params))
		for _, p := range sc.Params {
			def := ron.None
			if p.Default != nil {
				def = ron.Some(ron.String(*p.Default))
			}
			params = append(params, ron.Struct{Name: paramStruct, Fields: []ron.Field{
				{Name: "key", Value: ron.String(p.Key)},
				{Name: "label", Value: ron.String(p.Label)},
				{Name: "ty", Value: ron.Ident(p.Ty)},
				{Name: "default", Value: def},
			}})
		}
		scripts = append(scripts, ron.Struct{Name: scriptStruct, Fields: []ron.Field{
			{Name: "name", Value: ron.String(sc.Name)},
			{Name: "rust_symbol", Value: ron.String(sc.Symbol)},
			{Name: "params", Value: params},
		}})
	}
	return ron.Struct{Name: schemaStruct, Fields: []ron.Field{
		{Name: "scripts", Value: scripts},
	}}
}

func fromValue(v ron.Value) (meta.Schema, error) {
	root, err := asStruct(v, schemaStruct, "schema")
	if err != nil {
		return meta.Schema{}, err
	}
	items, err := listField(root, "scripts", "schema")
	if err != nil {
		return meta.Schema{}, err
	}

	out := meta.Schema{Scripts: make([]meta.ScriptMeta, 0, len(items))}
	for i, item := range items {
		where := fmt.Sprintf("scripts[%d]", i)
		st, err := asStruct(item, scriptStruct, where)
		if err != nil {
			return meta.Schema{}, err
		}
		var sc meta.ScriptMeta
		if sc.Name, err = stringField(st, "name", where); err != nil {
			return meta.Schema{}, err
		}
		if sc.Symbol, err = stringField(st, "rust_symbol", where); err != nil {
			return meta.Schema{}, err
		}
		params, err := listField(st, "params", where)
		if err != nil {
			return meta.Schema{}, err
		}
		sc.Params = make([]meta.ParamMeta, 0, len(params))
		for j, pv := range params {
			p, err := paramFromValue(pv, fmt.Sprintf("%s.params[%d]", where, j))
			if err != nil {
				return meta.Schema{}, err
			}
			sc.Params = append(sc.Params, p)
		}
		out.Scripts = append(out.Scripts, sc)
	}
	return out, nil
}

func paramFromValue(v ron.Value, where string) (meta.ParamMeta, error) {
	st, err := asStruct(v, paramStruct, where)
	if err != nil {
		return meta.ParamMeta{}, err
	}
	var p meta.ParamMeta
	if p.Key, err = stringField(st, "key", where); err != nil {
		return meta.ParamMeta{}, err
	}
	if p.Label, err = stringField(st, "label", where); err != nil {
		return meta.ParamMeta{}, err
	}

	tv, ok := st.Get("ty")
	if !ok {
		return meta.ParamMeta{}, fmt.Errorf("%s: missing field ty", where)
	}
	id, ok := tv.(ron.Ident)
	if !ok {
		return meta.ParamMeta{}, fmt.Errorf("%s.ty: expected variant, found %s", where, describe(tv))
	}
	p.Ty = meta.ParamType(id)
	if !p.Ty.Valid() {
		return meta.ParamMeta{}, fmt.Errorf("%s.ty: unknown variant %s", where, id)
	}

	// A missing default reads as None.
	if dv, ok := st.Get("default"); ok {
		opt, ok := dv.(ron.Option)
		if !ok {
			return meta.ParamMeta{}, fmt.Errorf("%s.default: expected Some(...) or None, found %s", where, describe(dv))
		}
		if opt.Value != nil {
			s, ok := opt.Value.(ron.String)
			if !ok {
				return meta.ParamMeta{}, fmt.Errorf("%s.default: expected string, found %s", where, describe(opt.Value))
			}
			d := string(s)
			p.Default = &d
		}
	}
	return p, nil
}

func asStruct(v ron.Value, name, where string) (ron.Struct, error) {
	st, ok := v.(ron.Struct)
	if !ok {
		return ron.Struct{}, fmt.Errorf("%s: expected %s, found %s", where, name, describe(v))
	}
	if st.Name != "" && st.Name != name {
		return ron.Struct{}, fmt.Errorf("%s: expected %s, found %s", where, name, st.Name)
	}
	return st, nil
}

func stringField(st ron.Struct, field, where string) (string, error) {
	v, ok := st.Get(field)
	if !ok {
		return "", fmt.Errorf("%s: missing field %s", where, field)
	}
	s, ok := v.(ron.String)
	if !ok {
		return "", fmt.Errorf("%s.%s: expected string, found %s", where, field, describe(v))
	}
	return string(s), nil
}

func listField(st ron.Struct, field, where string) (ron.List, error) {
	v, ok := st.Get(field)
	if !ok {
		return nil, fmt.Errorf("%s: missing field %s", where, field)
	}
	l, ok := v.(ron.List)
	if !ok {
		return nil, fmt.Errorf("%s.%s: expected list, found %s", where, field, describe(v))
	}
	return l, nil
}

func describe(v ron.Value) string {
	switch v := v.(type) {
	case ron.Struct:
		if v.Name == "" {
			return "struct"
		}
		return "struct " + v.Name
	case ron.List:
		return "list"
	case ron.String:
		return "string"
	case ron.Ident:
		return "identifier " + string(v)
	case ron.Option:
		return "option"
	default:
		return fmt.Sprintf("%T", v)
	}
}
